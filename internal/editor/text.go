package editor

import (
	"LocalNotes/internal/state"
)

// BeginTextEdit enters edit mode on the text box at index.
func (e *Editor) BeginTextEdit(index int) bool {
	box, ok := e.scene.At(index).(*state.TextBox)
	if !ok {
		return false
	}
	if e.editing >= 0 && e.editing != index {
		e.EndTextEdit()
	}
	e.editing = index
	if e.onTextBegin != nil {
		e.onTextBegin(index, *box)
	}
	e.repaint()
	return true
}

// EditAt enters edit mode on the topmost text box under a screen point.
func (e *Editor) EditAt(x, y float64) bool {
	i := e.HitTest(e.viewport.ScreenToWorld(x, y))
	if i < 0 {
		return false
	}
	return e.BeginTextEdit(i)
}

// UpdateText replaces the text of the box at index in place. Keystrokes do
// not create history entries; only the box creation is undoable.
func (e *Editor) UpdateText(index int, text string) {
	box, ok := e.scene.At(index).(*state.TextBox)
	if !ok || box.Text == text {
		return
	}
	next := *box
	next.Text = text
	e.scene.Replace(index, &next)
	e.sceneChanged()
	e.repaint()
}

// SetTextAlign changes the alignment of the box at index in place.
func (e *Editor) SetTextAlign(index int, align state.Align) {
	box, ok := e.scene.At(index).(*state.TextBox)
	if !ok || box.Align == align {
		return
	}
	next := *box
	next.Align = align
	e.scene.Replace(index, &next)
	e.sceneChanged()
	e.repaint()
}

// EndTextEdit leaves edit mode, if active.
func (e *Editor) EndTextEdit() {
	if e.editing < 0 {
		return
	}
	e.editing = -1
	if e.onTextEnd != nil {
		e.onTextEnd()
	}
	e.repaint()
}
