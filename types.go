package main

import (
	"snapbook/internal/canvas"
	"snapbook/internal/store"
)

// Buffer is one open page with its own history.
type Buffer struct {
	board     *canvas.Board
	undoStack []Action
	redoStack []Action
	panX      int
	panY      int
	dirty     bool
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	help               bool
	editText           string
	editCursorPos      int
	editItem           *canvas.Item
	original           ItemState
	filename           string
	fileOp             FileOperation
	confirmAction      ConfirmAction
	confirmItem        *canvas.Item
	errorMessage       string
	successMessage     string
	config             *Config
	store              *store.Store
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

// ItemData records an item and the z-position it had on the page.
type ItemData struct {
	Item  *canvas.Item
	Index int
}

type EditTextData struct {
	Item    *canvas.Item
	NewText string
	OldText string
}

// ItemState is the geometry of an item at one point in time.
type ItemState struct {
	Item     *canvas.Item
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	Scale    float64
}

func captureState(it *canvas.Item) ItemState {
	return ItemState{
		Item:     it,
		X:        it.X,
		Y:        it.Y,
		Width:    it.Width,
		Height:   it.Height,
		Rotation: it.Rotation,
		Scale:    it.Scale,
	}
}

func (s ItemState) apply() {
	s.Item.X, s.Item.Y = s.X, s.Y
	s.Item.Width, s.Item.Height = s.Width, s.Height
	s.Item.Rotation, s.Item.Scale = s.Rotation, s.Scale
}

func (s ItemState) changed() bool {
	return s != captureState(s.Item)
}
