package main

func (m *model) undo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.undoStack) == 0 {
		return
	}

	lastIndex := len(buf.undoStack) - 1
	action := buf.undoStack[lastIndex]
	buf.undoStack = buf.undoStack[:lastIndex]

	board := buf.board
	switch action.Type {
	case ActionAddItem:
		data := action.Data.(ItemData)
		board.Remove(data.Item)
	case ActionDeleteItem:
		data := action.Inverse.(ItemData)
		board.Insert(data.Index, data.Item)
	case ActionEditText:
		data := action.Inverse.(EditTextData)
		setText(data.Item, data.NewText)
		board.Page().Touch()
	case ActionTransformItem:
		state := action.Inverse.(ItemState)
		state.apply()
		board.Page().Touch()
	}

	buf.redoStack = append(buf.redoStack, action)
	buf.dirty = true
}

func (m *model) redo() {
	buf := m.getCurrentBuffer()
	if buf == nil || len(buf.redoStack) == 0 {
		return
	}

	lastIndex := len(buf.redoStack) - 1
	action := buf.redoStack[lastIndex]
	buf.redoStack = buf.redoStack[:lastIndex]

	board := buf.board
	switch action.Type {
	case ActionAddItem:
		data := action.Data.(ItemData)
		board.Insert(data.Index, data.Item)
	case ActionDeleteItem:
		data := action.Data.(ItemData)
		board.Remove(data.Item)
	case ActionEditText:
		data := action.Data.(EditTextData)
		setText(data.Item, data.NewText)
		board.Page().Touch()
	case ActionTransformItem:
		state := action.Data.(ItemState)
		state.apply()
		board.Page().Touch()
	}

	buf.undoStack = append(buf.undoStack, action)
	buf.dirty = true
}
