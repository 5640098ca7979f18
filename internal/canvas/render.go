package canvas

import (
	"fmt"
	"image"
	"strings"

	"github.com/fogleman/gg"

	"snapbook/internal/applog"
	"snapbook/internal/fonts"
	"snapbook/internal/pixel"
)

// ImageSource loads the picture behind an image item, a doodle or a page
// background.
type ImageSource func(path string) (image.Image, error)

func readFile(path string) (image.Image, error) {
	b, err := pixel.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b, nil
}

const (
	placeholderColor Color = 0xFFE0E0E0
	selectionColor   Color = 0xFF4CAF50
	selectionWidth         = 4.0
	selectionMargin        = 5.0
)

type renderOptions struct {
	source    ImageSource
	selection *Item
}

// RenderOption customises Render.
type RenderOption func(*renderOptions)

// WithImageSource replaces the default loader, which reads files from disk.
func WithImageSource(src ImageSource) RenderOption {
	return func(o *renderOptions) { o.source = src }
}

// WithSelection outlines it with the dashed selection marker.
func WithSelection(it *Item) RenderOption {
	return func(o *renderOptions) { o.selection = it }
}

// Render draws p onto a width x height buffer in page coordinates: the
// background colour, the background image stretched over the whole buffer,
// then every item bottom to top. Pictures that cannot be loaded are drawn
// as placeholders.
func Render(p *Page, width, height int, opts ...RenderOption) (*pixel.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: invalid render size %dx%d", width, height)
	}
	o := renderOptions{source: readFile}
	for _, opt := range opts {
		opt(&o)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(p.Background.NRGBA())
	dc.Clear()

	if p.BackgroundImage != "" {
		if img, err := o.source(p.BackgroundImage); err != nil {
			applog.Logger().Warn("canvas: background image", "path", p.BackgroundImage, "error", err)
		} else {
			drawStretched(dc, img, float64(width), float64(height))
		}
	}

	for _, it := range p.Items {
		if err := drawItem(dc, it, o.source); err != nil {
			return nil, err
		}
	}
	if o.selection != nil {
		drawSelection(dc, o.selection)
	}
	return pixel.FromImage(dc.Image()), nil
}

// drawStretched draws img over [0,w]x[0,h] of the current coordinate space.
func drawStretched(dc *gg.Context, img image.Image, w, h float64) {
	r := img.Bounds()
	if r.Empty() {
		return
	}
	dc.Push()
	dc.Scale(w/float64(r.Dx()), h/float64(r.Dy()))
	dc.DrawImage(img, -r.Min.X, -r.Min.Y)
	dc.Pop()
}

func roundRect(dc *gg.Context, x, y, w, h, r float64) {
	if r <= 0 {
		dc.DrawRectangle(x, y, w, h)
		return
	}
	dc.DrawRoundedRectangle(x, y, w, h, r)
}

// applyTransform sets up the same chain as Item.Transform.
func applyTransform(dc *gg.Context, it *Item) {
	dc.Translate(it.X+it.Width/2, it.Y+it.Height/2)
	dc.Rotate(gg.Radians(it.Rotation))
	dc.Scale(it.Scale, it.Scale)
	dc.Translate(-it.Width/2, -it.Height/2)
}

func drawItem(dc *gg.Context, it *Item, src ImageSource) error {
	dc.Push()
	defer dc.Pop()
	applyTransform(dc, it)

	if it.Background != Transparent {
		dc.SetColor(it.Background.NRGBA())
		roundRect(dc, 0, 0, it.Width, it.Height, it.CornerRadius)
		dc.Fill()
	}

	switch c := it.Content.(type) {
	case *ImageContent:
		drawImageContent(dc, it, c, src)
	case *TextContent:
		if err := drawTextContent(dc, it, c); err != nil {
			return err
		}
	case *DoodleContent:
		drawDoodleContent(dc, it, c, src)
	default:
		return fmt.Errorf("canvas: item %s has no content", it.ID)
	}

	if it.HasBorder && it.BorderWidth > 0 {
		dc.SetColor(it.BorderColor.NRGBA())
		dc.SetLineWidth(it.BorderWidth)
		roundRect(dc, 0, 0, it.Width, it.Height, it.CornerRadius)
		dc.Stroke()
	}
	return nil
}

func load(src ImageSource, path string) image.Image {
	if path == "" {
		return nil
	}
	img, err := src(path)
	if err != nil {
		applog.Logger().Debug("canvas: load picture", "path", path, "error", err)
		return nil
	}
	return img
}

func drawImageContent(dc *gg.Context, it *Item, c *ImageContent, src ImageSource) {
	if img := load(src, c.Path); img != nil {
		drawStretched(dc, img, it.Width, it.Height)
		return
	}
	dc.SetColor(placeholderColor.NRGBA())
	roundRect(dc, 0, 0, it.Width, it.Height, 8)
	dc.Fill()
}

func drawTextContent(dc *gg.Context, it *Item, c *TextContent) error {
	if strings.TrimSpace(c.Text) == "" {
		return nil
	}
	face, err := fonts.Face(c.Family, fonts.StyleOf(c.Bold, c.Italic), c.Size)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(c.Color.NRGBA())

	lineHeight := c.Size * 1.2
	y := c.Size
	for _, line := range strings.Split(c.Text, "\n") {
		if y >= it.Height {
			break
		}
		dc.DrawString(line, 8, y)
		y += lineHeight
	}
	return nil
}

func drawDoodleContent(dc *gg.Context, it *Item, c *DoodleContent, src ImageSource) {
	if img := load(src, c.Path); img != nil {
		drawStretched(dc, img, it.Width, it.Height)
		return
	}
	// Placeholder: a closed loop of two quadratic curves.
	w, h := it.Width, it.Height
	dc.SetColor(c.StrokeColor.NRGBA())
	dc.SetLineWidth(c.StrokeWidth)
	dc.MoveTo(10, h/2)
	dc.QuadraticTo(w/2, 10, w-10, h/2)
	dc.QuadraticTo(w/2, h-10, 10, h/2)
	dc.Stroke()
}

// drawSelection outlines it just outside its edges. The outline follows the
// item's rotation and scale.
func drawSelection(dc *gg.Context, it *Item) {
	dc.Push()
	defer dc.Pop()
	applyTransform(dc, it)
	dc.SetColor(selectionColor.NRGBA())
	dc.SetLineWidth(selectionWidth)
	dc.SetDash(10, 10)
	roundRect(dc, -selectionMargin, -selectionMargin,
		it.Width+2*selectionMargin, it.Height+2*selectionMargin, it.CornerRadius+selectionMargin)
	dc.Stroke()
	dc.SetDash()
}
