package ui

import (
	"LocalNotes/internal/input"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// textOverlay is the multi-line entry laid over a text box while it is
// being edited. Keys go through the dispatcher first so only the intents
// allowed during typing reach the editor.
type textOverlay struct {
	widget.Entry

	index       int
	keys        *input.Dispatcher
	onFocusLost func()
}

func newTextOverlay(keys *input.Dispatcher) *textOverlay {
	o := &textOverlay{index: -1, keys: keys}
	o.MultiLine = true
	o.Wrapping = fyne.TextWrapWord
	o.ExtendBaseWidget(o)
	o.Hide()
	return o
}

func (o *textOverlay) FocusGained() {
	o.Entry.FocusGained()
	o.keys.SetTextFocus(true)
}

func (o *textOverlay) FocusLost() {
	o.Entry.FocusLost()
	o.keys.SetTextFocus(false)
	if o.onFocusLost != nil {
		o.onFocusLost()
	}
}

func (o *textOverlay) TypedKey(k *fyne.KeyEvent) {
	if o.keys.Handle(input.Chord{Key: k.Name}) {
		return
	}
	o.Entry.TypedKey(k)
}

func (o *textOverlay) TypedShortcut(s fyne.Shortcut) {
	if c, ok := chordFor(s); ok && o.keys.Handle(c) {
		return
	}
	o.Entry.TypedShortcut(s)
}
