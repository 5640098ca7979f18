package main

import tea "github.com/charmbracelet/bubbletea"

func direction(key string) (dx, dy int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeMove:
		return m.handleItemMove(key, speed), nil
	case ModeResize:
		return m.handleItemResize(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return m
	}
	dx, dy := direction(key)
	buf.panX += dx * speed
	buf.panY += dy * speed
	if buf.panX < 0 {
		buf.panX = 0
	}
	if buf.panY < 0 {
		buf.panY = 0
	}
	return m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	return m
}

// handleItemMove drags the item being moved and the cursor together.
func (m *model) handleItemMove(key string, speed int) tea.Model {
	board, it := m.getBoard(), m.original.Item
	if board == nil || it == nil {
		return m
	}
	dx, dy := direction(key)
	board.Move(it, float64(dx*speed)*cellWidth, float64(dy*speed)*cellHeight)
	return m.handleCursorMove(key, speed)
}

func (m *model) handleItemResize(key string, speed int) tea.Model {
	board, it := m.getBoard(), m.original.Item
	if board == nil || it == nil {
		return m
	}
	dx, dy := direction(key)
	board.Resize(it, it.Width+float64(dx*speed)*cellWidth, it.Height+float64(dy*speed)*cellHeight)
	return m
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	// Leave room for status line
	maxY := m.height - 2
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
