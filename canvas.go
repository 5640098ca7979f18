package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"snapbook/internal/canvas"
)

// cellRect is an item's footprint on the terminal grid, in cells.
type cellRect struct {
	X, Y, Width, Height int
}

// itemCells covers the transformed bounds of it with whole cells.
func itemCells(it *canvas.Item) cellRect {
	lo, hi := it.Bounds()
	x0 := int(math.Floor(lo.X / cellWidth))
	y0 := int(math.Floor(lo.Y / cellHeight))
	x1 := int(math.Ceil(hi.X / cellWidth))
	y1 := int(math.Ceil(hi.Y / cellHeight))
	r := cellRect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	if r.Width < 2 {
		r.Width = 2
	}
	if r.Height < 2 {
		r.Height = 2
	}
	return r
}

func itemLabel(it *canvas.Item) []string {
	var lines []string
	switch c := it.Content.(type) {
	case *canvas.ImageContent:
		name := "photo"
		if c.Path != "" {
			name = filepath.Base(c.Path)
		}
		lines = []string{"[img] " + name}
	case *canvas.TextContent:
		lines = strings.Split(c.Text, "\n")
	case *canvas.DoodleContent:
		lines = []string{"~doodle~"}
	}
	if it.Rotation != 0 || it.Scale != 1 {
		lines = append(lines, fmt.Sprintf("%.0f° x%.2g", it.Rotation, it.Scale))
	}
	return lines
}

// renderPage draws the items of board as boxes on a width x height grid,
// bottom to top, so the topmost item is fully visible.
func renderPage(board *canvas.Board, width, height, panX, panY int, selected *canvas.Item) []string {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	if board != nil {
		for _, it := range board.Items() {
			r := itemCells(it)
			r.X -= panX
			r.Y -= panY
			drawBoxAt(grid, r, itemLabel(it), it == selected)
		}
	}

	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

func drawBoxAt(grid [][]rune, r cellRect, label []string, isSelected bool) {
	var corner, horizontal, vertical rune
	if isSelected {
		corner = '#'
		horizontal = '#'
		vertical = '#'
	} else {
		corner = '+'
		horizontal = '-'
		vertical = '|'
	}

	for y := r.Y; y < r.Y+r.Height; y++ {
		if y < 0 || y >= len(grid) {
			continue
		}
		for x := r.X; x < r.X+r.Width; x++ {
			if x < 0 || x >= len(grid[y]) {
				continue
			}
			switch {
			case (y == r.Y || y == r.Y+r.Height-1) && (x == r.X || x == r.X+r.Width-1):
				grid[y][x] = corner
			case y == r.Y || y == r.Y+r.Height-1:
				grid[y][x] = horizontal
			case x == r.X || x == r.X+r.Width-1:
				grid[y][x] = vertical
			default:
				grid[y][x] = ' '
			}
		}
	}

	maxWidth := r.Width - 2
	for lineIdx, line := range label {
		textY := r.Y + 1 + lineIdx
		if textY < 0 || textY >= len(grid) || textY >= r.Y+r.Height-1 {
			continue
		}
		for i, char := range []rune(line) {
			x := r.X + 1 + i
			if i >= maxWidth {
				break
			}
			if x >= 0 && x < len(grid[textY]) {
				grid[textY][x] = char
			}
		}
	}
}
