package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"snapbook/internal/booth"
)

const configFileName = ".snapbook.yaml"

type Config struct {
	SaveDirectory string `yaml:"save_directory"`
	Database      string `yaml:"database"`
	DefaultFilter string `yaml:"default_filter"`
	ShotCount     int    `yaml:"shot_count"`
	Mirror        bool   `yaml:"mirror"`
	Confirmations bool   `yaml:"confirmations"`
}

func defaultConfig() *Config {
	return &Config{
		Database:      "snapbook.db",
		DefaultFilter: booth.DefaultFilter.String(),
		ShotCount:     booth.DefaultTarget,
		Mirror:        true,
		Confirmations: true,
	}
}

// loadConfig reads ~/.snapbook.yaml. A missing or unreadable file leaves
// the defaults in place.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	config, err := loadConfigFile(filepath.Join(homeDir, configFileName), homeDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "snapbook: %v, using defaults\n", err)
		}
		return defaultConfig()
	}
	return config
}

func loadConfigFile(path, homeDir string) (*Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	config.SaveDirectory = expandPath(config.SaveDirectory, homeDir)
	config.Database = expandHome(config.Database, homeDir)
	if config.ShotCount <= 0 {
		config.ShotCount = booth.DefaultTarget
	}
	return config, nil
}

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return dir
}

func expandHome(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		return filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	return value
}

func expandPath(value, homeDir string) string {
	if value == "" {
		return value
	}
	value = expandHome(value, homeDir)
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// DatabasePath resolves the page database. A bare file name lives in the
// save directory.
func (c *Config) DatabasePath() string {
	if c.Database == ":memory:" || filepath.IsAbs(c.Database) || strings.ContainsRune(c.Database, filepath.Separator) {
		return c.Database
	}
	return c.GetSavePath(c.Database)
}
