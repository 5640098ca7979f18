package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeResize
	ModeMove
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpAddImage FileOperation = iota
	FileOpExport
)

type ConfirmAction int

const (
	ConfirmDeleteItem ConfirmAction = iota
	ConfirmQuit
	ConfirmClosePage
)

type ActionType int

const (
	ActionAddItem ActionType = iota
	ActionDeleteItem
	ActionEditText
	ActionTransformItem
)

const (
	// Page units covered by one terminal cell.
	cellWidth  = 10.0
	cellHeight = 20.0

	rotateStep = 15.0
	zoomStep   = 1.1
)
