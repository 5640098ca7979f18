package main

import (
	"strings"

	"github.com/atotto/clipboard"

	"snapbook/internal/canvas"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getBoard() *canvas.Board {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.board
	}
	return nil
}

func (m *model) getPanOffset() (int, int) {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.panX, buf.panY
	}
	return 0, 0
}

// worldCoords returns the page position at the centre of the cursor cell.
func (m *model) worldCoords() (float64, float64) {
	panX, panY := m.getPanOffset()
	return (float64(m.cursorX+panX) + 0.5) * cellWidth, (float64(m.cursorY+panY) + 0.5) * cellHeight
}

func (m *model) itemUnderCursor() *canvas.Item {
	board := m.getBoard()
	if board == nil {
		return nil
	}
	return board.HitTest(m.worldCoords())
}

func (m *model) addNewBuffer(page *canvas.Page) {
	buffer := Buffer{
		board:     canvas.NewBoard(page),
		undoStack: []Action{},
		redoStack: []Action{},
	}
	m.buffers = append(m.buffers, buffer)
	m.currentBufferIndex = len(m.buffers) - 1
}

func (m *model) closeCurrentBuffer() {
	if len(m.buffers) <= 1 {
		return
	}
	m.buffers = append(m.buffers[:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
}

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	buf.undoStack = append(buf.undoStack, action)
	buf.redoStack = buf.redoStack[:0]
	buf.dirty = true
}

// addItem places it on top of the page, centred on the cursor.
func (m *model) addItem(it *canvas.Item) {
	board := m.getBoard()
	if board == nil || it == nil {
		return
	}
	x, y := m.worldCoords()
	it.X, it.Y = x-it.Width/2, y-it.Height/2
	board.Add(it)
	board.Select(it)
	m.recordAction(ActionAddItem, ItemData{Item: it, Index: board.Index(it)}, nil)
}

func (m *model) deleteItem(it *canvas.Item) {
	board := m.getBoard()
	if board == nil || it == nil {
		return
	}
	index := board.Index(it)
	if !board.Remove(it) {
		return
	}
	data := ItemData{Item: it, Index: index}
	m.recordAction(ActionDeleteItem, data, data)
}

// transformItem runs fn on it and records the geometry change.
func (m *model) transformItem(it *canvas.Item, fn func(*canvas.Board, *canvas.Item)) {
	board := m.getBoard()
	if board == nil || it == nil {
		return
	}
	before := captureState(it)
	fn(board, it)
	if before.changed() {
		m.recordAction(ActionTransformItem, captureState(it), before)
	}
}

// commitTransform records the change since m.original, made by a move or
// resize that updated the item as it went.
func (m *model) commitTransform() {
	if m.original.Item != nil && m.original.changed() {
		m.recordAction(ActionTransformItem, captureState(m.original.Item), m.original)
	}
	m.original = ItemState{}
}

func (m *model) cancelTransform() {
	if m.original.Item != nil {
		m.original.apply()
	}
	m.original = ItemState{}
}

func textOf(it *canvas.Item) (string, bool) {
	if tc, ok := it.Content.(*canvas.TextContent); ok {
		return tc.Text, true
	}
	return "", false
}

func setText(it *canvas.Item, text string) {
	if tc, ok := it.Content.(*canvas.TextContent); ok {
		tc.Text = text
	}
}

func (m *model) editItemText(it *canvas.Item, text string) {
	old, ok := textOf(it)
	if !ok || old == text {
		return
	}
	setText(it, text)
	if board := m.getBoard(); board != nil {
		board.Page().Touch()
	}
	m.recordAction(ActionEditText,
		EditTextData{Item: it, NewText: text, OldText: old},
		EditTextData{Item: it, NewText: old, OldText: text})
}

func copyItemToClipboard(it *canvas.Item) error {
	data, err := canvas.MarshalItem(it)
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}

// itemFromClipboard turns clipboard text into a new item: an item record
// pasted back becomes a copy of that item, anything else becomes a caption.
func itemFromClipboard(text string) *canvas.Item {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		if it, err := canvas.UnmarshalItem([]byte(text)); err == nil {
			return it.Copy()
		}
	}
	caption := captionText(text)
	if caption == "" {
		return nil
	}
	return canvas.NewText(caption)
}

// captionText normalises pasted text for a caption item: line endings
// become \n, tabs become spaces, other control characters are dropped and
// trailing blanks are trimmed from every line.
func captionText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case r < 32 || r == 0x7f:
			return -1
		}
		return r
	}, text)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), " \n")
}
