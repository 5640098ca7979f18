package canvas

import (
	"slices"

	"snapbook/internal/applog"
)

// Board edits one page: it owns the z-ordered item list of that page and
// the current selection. A Board is not safe for concurrent use.
type Board struct {
	page     *Page
	selected *Item
}

// NewBoard starts editing p.
func NewBoard(p *Page) *Board {
	return &Board{page: p}
}

// Page returns the page being edited.
func (b *Board) Page() *Page { return b.page }

// Items returns the items bottom to top. The slice is shared with the page.
func (b *Board) Items() []*Item { return b.page.Items }

// Index returns the z-position of it, or -1.
func (b *Board) Index(it *Item) int {
	for i, cur := range b.page.Items {
		if cur == it {
			return i
		}
	}
	return -1
}

// Add places it on top of every other item.
func (b *Board) Add(it *Item) {
	if it == nil {
		return
	}
	b.page.Items = append(b.page.Items, it)
	b.page.Touch()
	applog.Logger().Debug("canvas: item added", "id", it.ID, "kind", it.Kind().String(), "z", len(b.page.Items)-1)
}

// Insert places it at z-position i, clamped to the valid range.
func (b *Board) Insert(i int, it *Item) {
	if it == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(b.page.Items) {
		i = len(b.page.Items)
	}
	b.page.Items = append(b.page.Items, nil)
	copy(b.page.Items[i+1:], b.page.Items[i:])
	b.page.Items[i] = it
	b.page.Touch()
}

// Remove deletes it from the page. It reports false when it is not on the
// page. Removing the selected item clears the selection.
func (b *Board) Remove(it *Item) bool {
	i := b.Index(it)
	if i < 0 {
		return false
	}
	b.page.Items = slices.Delete(b.page.Items, i, i+1)
	if b.selected == it {
		b.selected = nil
	}
	b.page.Touch()
	applog.Logger().Debug("canvas: item removed", "id", it.ID)
	return true
}

// HitTest returns the topmost item containing (x, y), or nil.
func (b *Board) HitTest(x, y float64) *Item {
	for i := len(b.page.Items) - 1; i >= 0; i-- {
		if it := b.page.Items[i]; it.Contains(x, y) {
			return it
		}
	}
	return nil
}

// Move shifts it by (dx, dy).
func (b *Board) Move(it *Item, dx, dy float64) {
	it.Move(dx, dy)
	b.page.Touch()
}

// Resize sets the size of it, clamping each axis to MinItemSize.
func (b *Board) Resize(it *Item, w, h float64) {
	it.Resize(w, h)
	b.page.Touch()
}

// Rotate turns it by deg degrees about its centre.
func (b *Board) Rotate(it *Item, deg float64) {
	it.Rotation += deg
	b.page.Touch()
}

// Zoom multiplies the scale of it by factor. Non-positive factors are
// ignored so the transform stays invertible.
func (b *Board) Zoom(it *Item, factor float64) {
	if factor <= 0 {
		return
	}
	it.Scale *= factor
	b.page.Touch()
}

// Copy duplicates it, offset by CopyOffset, and places the copy on top.
func (b *Board) Copy(it *Item) *Item {
	cp := it.Copy()
	b.Add(cp)
	return cp
}

// Raise moves it to the top of the z-order.
func (b *Board) Raise(it *Item) {
	i := b.Index(it)
	if i < 0 || i == len(b.page.Items)-1 {
		return
	}
	copy(b.page.Items[i:], b.page.Items[i+1:])
	b.page.Items[len(b.page.Items)-1] = it
	b.page.Touch()
}

// Select makes it the selected item. Selecting nil clears the selection.
func (b *Board) Select(it *Item) { b.selected = it }

// SelectAt selects the topmost item under (x, y), or clears the selection.
func (b *Board) SelectAt(x, y float64) *Item {
	b.selected = b.HitTest(x, y)
	return b.selected
}

// Selected returns the selected item, or nil.
func (b *Board) Selected() *Item { return b.selected }

// ClearSelection deselects without touching any item.
func (b *Board) ClearSelection() { b.selected = nil }
