// Package filter implements the photo-booth colour presets.
package filter

import "golang.org/x/text/cases"

// Kind selects one of the fixed colour transforms.
type Kind int

const (
	None Kind = iota
	Sepia
	Polaroid
	Kodachrome
	Vintage
	BlackAndWhite
	Cyanotype
)

var kindNames = [...]string{
	None:          "none",
	Sepia:         "sepia",
	Polaroid:      "polaroid",
	Kodachrome:    "kodachrome",
	Vintage:       "vintage",
	BlackAndWhite: "bw",
	Cyanotype:     "cyanotype",
}

var displayNames = [...]string{
	None:          "None",
	Sepia:         "Classic Sepia",
	Polaroid:      "1970s Polaroid",
	Kodachrome:    "1950s Kodachrome",
	Vintage:       "Vintage Fade",
	BlackAndWhite: "Black & White",
	Cyanotype:     "Cyanotype",
}

var lookup = map[string]Kind{
	"none":            None,
	"sepia":           Sepia,
	"polaroid":        Polaroid,
	"kodachrome":      Kodachrome,
	"vintage":         Vintage,
	"bw":              BlackAndWhite,
	"black_and_white": BlackAndWhite,
	"cyanotype":       Cyanotype,
}

// Kinds lists every kind, None first.
func Kinds() []Kind {
	return []Kind{None, Sepia, Polaroid, Kodachrome, Vintage, BlackAndWhite, Cyanotype}
}

// Parse resolves a case-insensitive filter name. Names it does not know
// resolve to None; Parse never fails.
func Parse(name string) Kind {
	if k, ok := lookup[cases.Fold().String(name)]; ok {
		return k
	}
	return None
}

// String returns the name Parse accepts for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[None]
	}
	return kindNames[k]
}

// DisplayName returns the label shown to users.
func (k Kind) DisplayName() string {
	if k < 0 || int(k) >= len(displayNames) {
		return displayNames[None]
	}
	return displayNames[k]
}

// Next cycles through Kinds, wrapping from Cyanotype back to None.
func (k Kind) Next() Kind {
	return Kind((int(k) + 1) % len(kindNames))
}
