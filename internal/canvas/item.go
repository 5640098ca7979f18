// Package canvas models scrapbook pages: ordered, transformable items with
// hit-testing, selection, JSON records and rendering.
package canvas

import (
	"math"

	"github.com/google/uuid"
)

const (
	// MinItemSize is the smallest width or height Resize allows.
	MinItemSize = 20.0
	// CopyOffset is how far a copy is shifted from its original on each axis.
	CopyOffset = 20.0
)

// Kind identifies the payload of an item. The values match the type codes
// stored in page records.
type Kind int

const (
	KindImage  Kind = 1
	KindText   Kind = 2
	KindDoodle Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindText:
		return "text"
	case KindDoodle:
		return "doodle"
	default:
		return "unknown"
	}
}

// Content is the kind-specific payload of an item. It is implemented only by
// ImageContent, TextContent and DoodleContent.
type Content interface {
	Kind() Kind
	clone() Content
}

// ImageContent references a photo on disk.
type ImageContent struct {
	Path string
}

func (*ImageContent) Kind() Kind { return KindImage }

func (c *ImageContent) clone() Content {
	cp := *c
	return &cp
}

// TextContent is a caption.
type TextContent struct {
	Text   string
	Color  Color
	Size   float64
	Family string
	Bold   bool
	Italic bool
}

func (*TextContent) Kind() Kind { return KindText }

func (c *TextContent) clone() Content {
	cp := *c
	return &cp
}

// DoodleContent references a saved drawing.
type DoodleContent struct {
	Path        string
	StrokeColor Color
	StrokeWidth float64
}

func (*DoodleContent) Kind() Kind { return KindDoodle }

func (c *DoodleContent) clone() Content {
	cp := *c
	return &cp
}

// Item is one element of a page. X and Y locate the top-left corner before
// rotation and scale, which are both applied about the item's centre.
type Item struct {
	ID       string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64 // degrees
	Scale    float64

	Background   Color
	HasBorder    bool
	BorderColor  Color
	BorderWidth  float64
	CornerRadius float64

	Content Content
}

func newItem(w, h float64, c Content) *Item {
	return &Item{
		ID:          uuid.NewString(),
		Width:       w,
		Height:      h,
		Scale:       1,
		Background:  Transparent,
		BorderColor: DefaultBorderColor,
		BorderWidth: 2,
		Content:     c,
	}
}

// NewImage returns a 200x200 image item with rounded corners.
func NewImage(path string) *Item {
	it := newItem(200, 200, &ImageContent{Path: path})
	it.CornerRadius = 8
	return it
}

// NewText returns a 150x50 caption. An empty text gets the placeholder copy.
func NewText(text string) *Item {
	if text == "" {
		text = "Add your text here..."
	}
	return newItem(150, 50, &TextContent{
		Text:   text,
		Color:  DefaultTextColor,
		Size:   16,
		Family: "serif",
	})
}

// NewDoodle returns a 100x100 doodle item.
func NewDoodle(path string) *Item {
	return newItem(100, 100, &DoodleContent{
		Path:        path,
		StrokeColor: DefaultStrokeColor,
		StrokeWidth: 3,
	})
}

// NewItem returns an item of kind k with that kind's defaults, or nil for
// an unknown kind.
func NewItem(k Kind) *Item {
	switch k {
	case KindImage:
		return NewImage("")
	case KindText:
		return NewText("")
	case KindDoodle:
		return NewDoodle("")
	default:
		return nil
	}
}

// Kind reports the payload kind, or 0 when the item has no payload.
func (it *Item) Kind() Kind {
	if it.Content == nil {
		return 0
	}
	return it.Content.Kind()
}

// Move shifts the item. Rotation and scale are untouched.
func (it *Item) Move(dx, dy float64) {
	it.X += dx
	it.Y += dy
}

// Resize sets the size, raising each axis to MinItemSize if needed.
func (it *Item) Resize(w, h float64) {
	it.Width = math.Max(MinItemSize, w)
	it.Height = math.Max(MinItemSize, h)
}

// Copy returns an independent duplicate shifted by CopyOffset with a new ID.
func (it *Item) Copy() *Item {
	cp := *it
	cp.ID = uuid.NewString()
	cp.X += CopyOffset
	cp.Y += CopyOffset
	if it.Content != nil {
		cp.Content = it.Content.clone()
	}
	return &cp
}

// Transform maps item-local coordinates, where the item occupies
// [0,Width]x[0,Height], onto the page.
func (it *Item) Transform() Matrix {
	hw, hh := it.Width/2, it.Height/2
	return Translate(it.X+hw, it.Y+hh).
		Multiply(Rotate(Radians(it.Rotation))).
		Multiply(Scale(it.Scale, it.Scale)).
		Multiply(Translate(-hw, -hh))
}

func (it *Item) untransformed() bool {
	return math.Mod(it.Rotation, 360) == 0 && it.Scale == 1
}

// containsEpsilon absorbs rounding in the inverse transform so points on an
// edge stay inside after e.g. a 180 degree turn.
const containsEpsilon = 1e-9

// Local maps a page point into item-local coordinates. ok is false for a
// degenerate transform (zero scale).
func (it *Item) Local(x, y float64) (p Point, ok bool) {
	if it.untransformed() {
		return Point{X: x - it.X, Y: y - it.Y}, true
	}
	inv, ok := it.Transform().Invert()
	if !ok {
		return Point{}, false
	}
	return inv.TransformPoint(Point{X: x, Y: y}), true
}

// Contains reports whether the page point (x, y) lies on the item once its
// rotation and scale are taken into account. Edges count as inside.
func (it *Item) Contains(x, y float64) bool {
	p, ok := it.Local(x, y)
	if !ok {
		return false
	}
	return p.X >= -containsEpsilon && p.X <= it.Width+containsEpsilon &&
		p.Y >= -containsEpsilon && p.Y <= it.Height+containsEpsilon
}

// Bounds returns the axis-aligned box around the transformed item as its
// top-left and bottom-right corners.
func (it *Item) Bounds() (lo, hi Point) {
	m := it.Transform()
	corners := [4]Point{
		m.TransformPoint(Point{0, 0}),
		m.TransformPoint(Point{it.Width, 0}),
		m.TransformPoint(Point{0, it.Height}),
		m.TransformPoint(Point{it.Width, it.Height}),
	}
	lo, hi = corners[0], corners[0]
	for _, c := range corners[1:] {
		lo.X = math.Min(lo.X, c.X)
		lo.Y = math.Min(lo.Y, c.Y)
		hi.X = math.Max(hi.X, c.X)
		hi.Y = math.Max(hi.Y, c.Y)
	}
	return lo, hi
}
