// Package fonts hands out TrueType faces built from the Go font family.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Style picks the weight and slant of a face.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// StyleOf combines the bold and italic flags of a text item.
func StyleOf(bold, italic bool) Style {
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

var (
	proportional = [...][]byte{Regular: goregular.TTF, Bold: gobold.TTF, Italic: goitalic.TTF, BoldItalic: gobolditalic.TTF}
	monospace    = [...][]byte{Regular: gomono.TTF, Bold: gomonobold.TTF, Italic: gomonoitalic.TTF, BoldItalic: gomonobolditalic.TTF}
)

type key struct {
	mono  bool
	style Style
}

var (
	mu     sync.Mutex
	parsed = map[key]*truetype.Font{}
)

func isMonospace(family string) bool {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "monospace", "mono", "courier", "go mono":
		return true
	}
	return false
}

func load(family string, style Style) (*truetype.Font, error) {
	if style < Regular || style > BoldItalic {
		style = Regular
	}
	k := key{mono: isMonospace(family), style: style}

	mu.Lock()
	defer mu.Unlock()
	if f, ok := parsed[k]; ok {
		return f, nil
	}
	data := proportional[style]
	if k.mono {
		data = monospace[style]
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", family, err)
	}
	parsed[k] = f
	return f, nil
}

// Face returns a new face of the given size in points. Monospace family
// names map to Go Mono; every other family, "serif" included, maps to the
// proportional Go font. Faces are not safe for concurrent use, so each call
// builds a fresh one over the shared parsed font.
func Face(family string, style Style, size float64) (font.Face, error) {
	f, err := load(family, style)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 16
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
