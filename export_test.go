package main

import (
	"math"
	"testing"

	"snapbook/internal/canvas"
)

func TestPageSize(t *testing.T) {
	place := func(x, y float64) *canvas.Page {
		p := canvas.NewPage("size")
		it := canvas.NewImage("")
		it.X, it.Y, it.Width, it.Height = x, y, 200, 100
		p.Items = []*canvas.Item{it}
		return p
	}
	tests := []struct {
		name string
		page *canvas.Page
		w, h int
	}{
		{"empty", canvas.NewPage("empty"), minPageWidth, minPageHeight},
		{"inside minimum", place(10, 10), minPageWidth, minPageHeight},
		{"grows to fit", place(100, 900), minPageWidth, 1020},
		{"far away", place(1e9, 1e9), maxPageSide, maxPageSide},
		{"not finite", place(math.NaN(), math.Inf(1)), minPageWidth, minPageHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := pageSize(tt.page)
			if w != tt.w || h != tt.h {
				t.Errorf("pageSize = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}
