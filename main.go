package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snapbook/internal/canvas"
	"snapbook/internal/store"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAF8F5")).Background(lipgloss.Color("#6B4423"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	tabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8B6914"))
	activeTab    = tabStyle.Copy().Bold(true).Underline(true)
)

func initialModel(config *Config, st *store.Store, pages []*canvas.Page) model {
	m := model{
		mode:   ModeNormal,
		config: config,
		store:  st,
	}
	for _, p := range pages {
		m.addNewBuffer(p)
	}
	if len(m.buffers) == 0 {
		m.addNewBuffer(canvas.NewPage("Untitled"))
	}
	m.currentBufferIndex = 0
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if m.help {
			switch key {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}

		switch m.mode {
		case ModeTextInput, ModeFileInput:
			return m.updateInput(msg)
		case ModeConfirm:
			return m.updateConfirm(key)
		case ModeMove, ModeResize:
			switch key {
			case "enter":
				m.commitTransform()
				m.mode = ModeNormal
			case "esc":
				m.cancelTransform()
				m.mode = ModeNormal
			default:
				return m.handleNavigation(key, m.getMoveSpeed(key))
			}
			return m, nil
		}
		return m.updateNormal(key)
	}
	return m, nil
}

func (m model) updateNormal(key string) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""
	board := m.getBoard()

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.anyDirty() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		return m.handleNavigation(key, m.getMoveSpeed(key))
	case "ctrl+h", "ctrl+j", "ctrl+k", "ctrl+l":
		return m.handlePan(strings.TrimPrefix(key, "ctrl+"), 1), nil
	case "tab":
		board.SelectAt(m.worldCoords())
	case "esc":
		board.ClearSelection()
	case "t":
		m.mode = ModeTextInput
		m.editItem = nil
		m.editText = ""
		m.editCursorPos = 0
	case "i":
		m.mode = ModeFileInput
		m.fileOp = FileOpAddImage
		m.filename = ""
	case "D":
		m.addItem(canvas.NewDoodle(""))
	case "e":
		it := m.targetItem()
		if text, ok := textOf(it); ok {
			m.mode = ModeTextInput
			m.editItem = it
			m.editText = text
			m.editCursorPos = len([]rune(text))
		}
	case "m", "r":
		if it := m.targetItem(); it != nil {
			m.original = captureState(it)
			board.Select(it)
			m.mode = ModeMove
			if key == "r" {
				m.mode = ModeResize
			}
		}
	case "d", "x":
		if it := m.targetItem(); it != nil {
			if m.config.Confirmations {
				m.mode = ModeConfirm
				m.confirmAction = ConfirmDeleteItem
				m.confirmItem = it
			} else {
				m.deleteItem(it)
			}
		}
	case "<", ">":
		step := rotateStep
		if key == "<" {
			step = -rotateStep
		}
		m.transformItem(m.targetItem(), func(b *canvas.Board, it *canvas.Item) { b.Rotate(it, step) })
	case "+", "=", "-":
		factor := zoomStep
		if key == "-" {
			factor = 1 / zoomStep
		}
		m.transformItem(m.targetItem(), func(b *canvas.Board, it *canvas.Item) { b.Zoom(it, factor) })
	case "f":
		if it := m.targetItem(); it != nil {
			board.Raise(it)
			m.getCurrentBuffer().dirty = true
		}
	case "y":
		if it := m.targetItem(); it != nil {
			cp := board.Copy(it)
			board.Select(cp)
			m.recordAction(ActionAddItem, ItemData{Item: cp, Index: board.Index(cp)}, nil)
		}
	case "c":
		if it := m.targetItem(); it != nil {
			if err := copyItemToClipboard(it); err != nil {
				m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
			} else {
				m.successMessage = "Item copied"
			}
		}
	case "p":
		text, err := clipboard.ReadAll()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Paste failed: %v", err)
			break
		}
		if it := itemFromClipboard(text); it != nil {
			m.addItem(it)
		}
	case "u":
		m.undo()
	case "ctrl+r", "U":
		m.redo()
	case "s":
		m.savePage()
	case "E":
		m.mode = ModeFileInput
		m.fileOp = FileOpExport
		m.filename = "page.png"
	case "n":
		m.addNewBuffer(canvas.NewPage("Untitled"))
	case "w":
		if len(m.buffers) > 1 {
			if m.getCurrentBuffer().dirty && m.config.Confirmations {
				m.mode = ModeConfirm
				m.confirmAction = ConfirmClosePage
			} else {
				m.closeCurrentBuffer()
			}
		}
	case "]":
		m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
	case "[":
		m.currentBufferIndex = (m.currentBufferIndex + len(m.buffers) - 1) % len(m.buffers)
	}
	return m, nil
}

// targetItem is the selected item, or else the one under the cursor.
func (m *model) targetItem() *canvas.Item {
	if board := m.getBoard(); board != nil && board.Selected() != nil {
		return board.Selected()
	}
	return m.itemUnderCursor()
}

func (m *model) anyDirty() bool {
	for _, buf := range m.buffers {
		if buf.dirty {
			return true
		}
	}
	return false
}

func (m *model) savePage() {
	buf := m.getCurrentBuffer()
	if buf == nil || m.store == nil {
		m.errorMessage = "No page store"
		return
	}
	id, err := m.store.SavePage(context.Background(), buf.board.Page())
	if err != nil {
		m.errorMessage = fmt.Sprintf("Save failed: %v", err)
		return
	}
	buf.dirty = false
	m.successMessage = fmt.Sprintf("Saved page %d", id)
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := &m.editText
	if m.mode == ModeFileInput {
		target = &m.filename
		m.editCursorPos = len([]rune(m.filename))
	}
	runes := []rune(*target)

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		return m, nil
	case tea.KeyEnter:
		if m.mode == ModeTextInput && msg.Alt {
			break
		}
		m.finishInput()
		m.mode = ModeNormal
		return m, nil
	case tea.KeyCtrlJ:
		if m.mode == ModeTextInput {
			runes = append(runes[:m.editCursorPos], append([]rune{'\n'}, runes[m.editCursorPos:]...)...)
			m.editCursorPos++
		}
	case tea.KeyBackspace:
		if m.editCursorPos > 0 {
			runes = append(runes[:m.editCursorPos-1], runes[m.editCursorPos:]...)
			m.editCursorPos--
		}
	case tea.KeyLeft:
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
	case tea.KeyRight:
		if m.editCursorPos < len(runes) {
			m.editCursorPos++
		}
	case tea.KeyRunes, tea.KeySpace:
		in := msg.Runes
		if msg.Type == tea.KeySpace {
			in = []rune{' '}
		}
		runes = append(runes[:m.editCursorPos], append(append([]rune{}, in...), runes[m.editCursorPos:]...)...)
		m.editCursorPos += len(in)
	}
	*target = string(runes)
	return m, nil
}

func (m *model) finishInput() {
	switch {
	case m.mode == ModeTextInput && m.editItem != nil:
		m.editItemText(m.editItem, m.editText)
	case m.mode == ModeTextInput:
		if strings.TrimSpace(m.editText) != "" {
			m.addItem(canvas.NewText(m.editText))
		}
	case m.fileOp == FileOpAddImage:
		path := expandPath(strings.TrimSpace(m.filename), homeDir())
		if _, err := os.Stat(path); err != nil {
			m.errorMessage = fmt.Sprintf("No such image: %s", m.filename)
			return
		}
		m.addItem(canvas.NewImage(path))
	case m.fileOp == FileOpExport:
		name := strings.TrimSpace(m.filename)
		if err := m.exportCurrentPage(name); err != nil {
			m.errorMessage = fmt.Sprintf("Export failed: %v", err)
			return
		}
		m.successMessage = "Exported " + filepath.Base(name)
	}
	m.editItem = nil
}

func (m model) updateConfirm(key string) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	if key != "y" && key != "Y" {
		return m, nil
	}
	switch m.confirmAction {
	case ConfirmDeleteItem:
		m.deleteItem(m.confirmItem)
		m.confirmItem = nil
	case ConfirmClosePage:
		m.closeCurrentBuffer()
	case ConfirmQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	showTabs := len(m.buffers) > 1
	renderHeight := m.height - 1
	if showTabs {
		renderHeight--
	}
	buf := m.getCurrentBuffer()
	var selected *canvas.Item
	if board := m.getBoard(); board != nil {
		selected = board.Selected()
	}
	lines := renderPage(buf.board, m.width, renderHeight, buf.panX, buf.panY, selected)

	if m.cursorY >= 0 && m.cursorY < len(lines) {
		row := []rune(lines[m.cursorY])
		if m.cursorX >= 0 && m.cursorX < len(row) {
			row[m.cursorX] = '█'
			lines[m.cursorY] = string(row)
		}
	}

	var b strings.Builder
	if showTabs {
		b.WriteString(m.renderTabs())
		b.WriteByte('\n')
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	return b.String()
}

func (m model) renderTabs() string {
	parts := make([]string, len(m.buffers))
	for i, buf := range m.buffers {
		title := buf.board.Page().Title
		if buf.dirty {
			title += "*"
		}
		if i == m.currentBufferIndex {
			parts[i] = activeTab.Render(title)
		} else {
			parts[i] = tabStyle.Render(title)
		}
	}
	return strings.Join(parts, " | ")
}

func (m model) statusLine() string {
	switch {
	case m.errorMessage != "":
		return errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		return successStyle.Render(m.successMessage)
	}
	var s string
	switch m.mode {
	case ModeTextInput:
		s = "Caption: " + strings.ReplaceAll(m.editText, "\n", "⏎")
	case ModeFileInput:
		s = "File: " + m.filename
	case ModeConfirm:
		s = "Are you sure? (y/n)"
	default:
		page := m.getBoard().Page()
		x, y := m.worldCoords()
		s = fmt.Sprintf("%s | %s | %d items | %.0f,%.0f | ? help", m.modeString(), page.Title, page.ItemCount(), x, y)
	}
	return statusStyle.Render(s)
}

func (m model) modeString() string {
	switch m.mode {
	case ModeTextInput:
		return "TEXT"
	case ModeResize:
		return "RESIZE"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "NORMAL"
	}
}

func (m model) helpView() string {
	return strings.Join([]string{
		"snapbook page editor",
		"====================",
		"",
		"  h/j/k/l, arrows   Move cursor (Shift for 2x)",
		"  ctrl+h/j/k/l      Pan the page",
		"  tab / esc         Select item under cursor / clear selection",
		"  t                 Add caption at cursor",
		"  i                 Add image from a file",
		"  D                 Add doodle",
		"  e                 Edit caption",
		"  m / r             Move / resize (Enter to finish, Esc to cancel)",
		"  < / >             Rotate by 15 degrees",
		"  + / -             Zoom item",
		"  f                 Bring to front",
		"  y                 Duplicate",
		"  c / p             Copy to / paste from clipboard",
		"  d                 Delete",
		"  u / U             Undo / redo",
		"  s                 Save page",
		"  E                 Export page as PNG or JPEG",
		"  n / w / [ / ]     New, close and switch pages",
		"  q                 Quit",
		"",
		"Press ? or Esc to close.",
	}, "\n")
}
