package main

import (
	"fmt"
	"math"

	"snapbook/internal/canvas"
	"snapbook/internal/pixel"
)

const (
	minPageWidth  = 600
	minPageHeight = 800
	pageMargin    = 20
	maxPageSide   = 8000
)

// pageSize is large enough to hold every item of p, up to maxPageSide on
// each side. Items further out are cut off.
func pageSize(p *canvas.Page) (int, int) {
	w, h := float64(minPageWidth), float64(minPageHeight)
	for _, it := range p.Items {
		_, hi := it.Bounds()
		if !isFinite(hi.X) || !isFinite(hi.Y) {
			continue
		}
		w = math.Max(w, hi.X+pageMargin)
		h = math.Max(h, hi.Y+pageMargin)
	}
	return int(math.Ceil(math.Min(w, maxPageSide))), int(math.Ceil(math.Min(h, maxPageSide)))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// exportPage renders p to filename. The extension picks PNG or JPEG.
func exportPage(p *canvas.Page, filename string, width, height int, selected *canvas.Item) error {
	if p == nil {
		return fmt.Errorf("no page available")
	}
	if width <= 0 || height <= 0 {
		width, height = pageSize(p)
	}
	var opts []canvas.RenderOption
	if selected != nil {
		opts = append(opts, canvas.WithSelection(selected))
	}
	img, err := canvas.Render(p, width, height, opts...)
	if err != nil {
		return err
	}
	return pixel.WriteFile(filename, img)
}

func (m *model) exportCurrentPage(filename string) error {
	board := m.getBoard()
	if board == nil {
		return fmt.Errorf("no page available")
	}
	return exportPage(board.Page(), m.config.GetSavePath(filename), 0, 0, nil)
}
