// Package input routes keyboard chords to editor intents. It is the only
// place keys are interpreted, so the canvas and the text overlay never
// race for the same key.
package input

import (
	"log"

	"fyne.io/fyne/v2"
)

// Intent is an editor action a key chord can trigger.
type Intent int

const (
	IntentUndo Intent = iota
	IntentRedo
	IntentDelete
	IntentCancel
	IntentSave
	IntentToolPen
	IntentToolSelect
	IntentToolErase
	IntentToolText
)

// Chord is a key plus modifiers.
type Chord struct {
	Key   fyne.KeyName
	Ctrl  bool
	Shift bool
}

// AllowDuringText reports whether intent may fire while a text box has
// keyboard focus. Everything else is left to the text input.
func AllowDuringText(intent Intent) bool {
	return intent == IntentCancel || intent == IntentSave
}

// Dispatcher maps chords to intents and intents to handlers.
type Dispatcher struct {
	bindings  map[Chord]Intent
	handlers  map[Intent]func()
	textFocus bool
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		bindings: make(map[Chord]Intent),
		handlers: make(map[Intent]func()),
	}
}

// Bind maps a chord to an intent, replacing any earlier binding.
func (d *Dispatcher) Bind(c Chord, intent Intent) { d.bindings[c] = intent }

// Register sets the handler for an intent.
func (d *Dispatcher) Register(intent Intent, fn func()) { d.handlers[intent] = fn }

// SetTextFocus is called when a text box gains or loses keyboard focus.
func (d *Dispatcher) SetTextFocus(focused bool) { d.textFocus = focused }

func (d *Dispatcher) TextFocus() bool { return d.textFocus }

// Handle runs the handler bound to c and reports whether the chord was
// consumed.
func (d *Dispatcher) Handle(c Chord) bool {
	intent, ok := d.bindings[c]
	if !ok {
		return false
	}
	if d.textFocus && !AllowDuringText(intent) {
		return false
	}
	fn := d.handlers[intent]
	if fn == nil {
		log.Printf("[INPUT] No handler for intent %d", intent)
		return false
	}
	fn()
	return true
}

// BindDefaults installs the standard desktop key map.
func (d *Dispatcher) BindDefaults() {
	d.Bind(Chord{Key: fyne.KeyZ, Ctrl: true}, IntentUndo)
	d.Bind(Chord{Key: fyne.KeyZ, Ctrl: true, Shift: true}, IntentRedo)
	d.Bind(Chord{Key: fyne.KeyY, Ctrl: true}, IntentRedo)
	d.Bind(Chord{Key: fyne.KeyDelete}, IntentDelete)
	d.Bind(Chord{Key: fyne.KeyBackspace}, IntentDelete)
	d.Bind(Chord{Key: fyne.KeyEscape}, IntentCancel)
	d.Bind(Chord{Key: fyne.KeyS, Ctrl: true}, IntentSave)
	d.Bind(Chord{Key: fyne.KeyP}, IntentToolPen)
	d.Bind(Chord{Key: fyne.KeyV}, IntentToolSelect)
	d.Bind(Chord{Key: fyne.KeyE}, IntentToolErase)
	d.Bind(Chord{Key: fyne.KeyT}, IntentToolText)
}
