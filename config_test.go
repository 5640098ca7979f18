package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, configFileName)
	data := []byte("save_directory: ~/books\ndefault_filter: polaroid\nmirror: false\nshot_count: 0\ndatabase: ~/pages.db\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfigFile(path, home)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "books"); config.SaveDirectory != want {
		t.Errorf("SaveDirectory = %q, want %q", config.SaveDirectory, want)
	}
	if config.DefaultFilter != "polaroid" || config.Mirror {
		t.Errorf("filter %q mirror %v", config.DefaultFilter, config.Mirror)
	}
	if config.ShotCount != 4 || !config.Confirmations {
		t.Errorf("defaults lost: %+v", config)
	}
	if want := filepath.Join(home, "pages.db"); config.DatabasePath() != want {
		t.Errorf("DatabasePath = %q, want %q", config.DatabasePath(), want)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"), "")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want not exist", err)
	}
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("shot_count: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfigFile(path, ""); err == nil {
		t.Error("invalid YAML accepted")
	}
}

func TestGetSavePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	config := defaultConfig()
	if got := config.GetSavePath("strip.jpg"); got != "strip.jpg" {
		t.Errorf("without save directory = %q", got)
	}

	config.SaveDirectory = dir
	if got, want := config.GetSavePath("strip.jpg"), filepath.Join(dir, "strip.jpg"); got != want {
		t.Errorf("GetSavePath = %q, want %q", got, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("save directory not created: %v", err)
	}
	if got, want := config.DatabasePath(), filepath.Join(dir, "snapbook.db"); got != want {
		t.Errorf("DatabasePath = %q, want %q", got, want)
	}

	config.Database = ":memory:"
	if got := config.DatabasePath(); got != ":memory:" {
		t.Errorf("DatabasePath = %q", got)
	}
}
