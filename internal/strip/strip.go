// Package strip lays filtered shots out as a framed photo-booth strip.
package strip

import (
	"errors"
	"image"
	"image/color"
	"time"

	"github.com/fogleman/gg"

	"snapbook/internal/applog"
	"snapbook/internal/fonts"
	"snapbook/internal/pixel"
)

// ErrEmptyInput is returned by Compose when there are no shots.
var ErrEmptyInput = errors.New("strip: no shots")

const (
	Width        = 400
	CellWidth    = 350
	CellHeight   = 280
	Spacing      = 15
	HeaderHeight = 80
	FooterHeight = 60
	BorderWidth  = 50

	DefaultTitle = "VINTAGE MEMORIES"
	DateLayout   = "January 02, 2006"
)

var (
	background  = color.NRGBA{0xfa, 0xf8, 0xf5, 0xff}
	outerBorder = color.NRGBA{0x8b, 0x69, 0x14, 0xff}
	innerBorder = color.NRGBA{0xc4, 0xa7, 0x47, 0xff}
	titleColor  = color.NRGBA{0x6b, 0x44, 0x23, 0xff}
	frameColor  = color.NRGBA{0x3e, 0x27, 0x23, 0xff}
	footerColor = outerBorder
)

// Geometry is the layout of a strip holding a given number of shots.
type Geometry struct {
	Width, Height int
	// Cells holds one rectangle per shot, top to bottom.
	Cells []image.Rectangle
	// TitleBaseline and FooterBaseline are the y positions of the captions.
	TitleBaseline  float64
	FooterBaseline float64
}

// Height returns the strip height for n shots.
func Height(n int) int {
	return HeaderHeight + CellHeight*n + Spacing*(n+1) + FooterHeight + 2*BorderWidth
}

// Layout computes the geometry for n shots. Every shot gets a cell whether
// or not it is present, so a missing shot leaves a gap.
func Layout(n int) Geometry {
	if n < 0 {
		n = 0
	}
	g := Geometry{
		Width:          Width,
		Height:         Height(n),
		Cells:          make([]image.Rectangle, n),
		TitleBaseline:  BorderWidth + 50,
		FooterBaseline: float64(Height(n) - 35),
	}
	x := (Width - CellWidth) / 2
	y := HeaderHeight + BorderWidth
	for i := range g.Cells {
		g.Cells[i] = image.Rect(x, y, x+CellWidth, y+CellHeight)
		y += CellHeight + Spacing
	}
	return g
}

type options struct {
	title string
	clock func() time.Time
}

// Option customises Compose.
type Option func(*options)

// WithTitle replaces the header caption.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithClock sets the time source for the footer date.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// Compose draws shots top to bottom inside a bordered strip with a title
// and today's date. Nil or empty shots are skipped but keep their cell.
// Shots that are not CellWidth x CellHeight are scaled to fit the cell.
func Compose(shots []*pixel.Buffer, opts ...Option) (*pixel.Buffer, error) {
	if len(shots) == 0 {
		applog.Logger().Warn("strip: compose called without shots")
		return nil, ErrEmptyInput
	}
	o := options{title: DefaultTitle, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	g := Layout(len(shots))
	dc := gg.NewContext(g.Width, g.Height)
	dc.SetColor(background)
	dc.Clear()

	drawBorders(dc, float64(g.Width), float64(g.Height))
	if err := caption(dc, o.title, fonts.Bold, 32, titleColor, float64(g.Width)/2, g.TitleBaseline); err != nil {
		return nil, err
	}

	for i, shot := range shots {
		if shot.Empty() {
			continue
		}
		cell := g.Cells[i]
		if shot.Width != CellWidth || shot.Height != CellHeight {
			shot = pixel.Scale(shot, CellWidth, CellHeight)
		}
		dc.DrawImage(shot, cell.Min.X, cell.Min.Y)

		dc.SetColor(frameColor)
		dc.SetLineWidth(2)
		dc.DrawRectangle(float64(cell.Min.X), float64(cell.Min.Y), CellWidth, CellHeight)
		dc.Stroke()
	}

	date := o.clock().Format(DateLayout)
	if err := caption(dc, date, fonts.Italic, 14, footerColor, float64(g.Width)/2, g.FooterBaseline); err != nil {
		return nil, err
	}

	applog.Logger().Debug("strip: composed", "shots", len(shots), "width", g.Width, "height", g.Height)
	return pixel.FromImage(dc.Image()), nil
}

func drawBorders(dc *gg.Context, w, h float64) {
	dc.SetColor(outerBorder)
	dc.SetLineWidth(8)
	dc.DrawRectangle(10, 10, w-20, h-20)
	dc.Stroke()

	dc.SetColor(innerBorder)
	dc.SetLineWidth(3)
	dc.DrawRectangle(15, 15, w-30, h-30)
	dc.Stroke()
}

// caption draws s centred on x with its baseline at y.
func caption(dc *gg.Context, s string, style fonts.Style, size float64, c color.Color, x, y float64) error {
	face, err := fonts.Face("serif", style, size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(c)
	dc.DrawStringAnchored(s, x, y, 0.5, 0)
	return nil
}
