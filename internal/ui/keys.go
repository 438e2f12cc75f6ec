package ui

import (
	"LocalNotes/internal/input"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// shortcuts are the modified chords registered on the window canvas.
// Plain keys arrive through the canvas typed-key hook instead.
var shortcuts = []fyne.Shortcut{
	&fyne.ShortcutUndo{},
	&fyne.ShortcutRedo{},
	&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
	&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
	&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
	&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
}

// chordFor converts a fyne shortcut to a dispatcher chord.
func chordFor(s fyne.Shortcut) (input.Chord, bool) {
	switch v := s.(type) {
	case *fyne.ShortcutUndo:
		return input.Chord{Key: fyne.KeyZ, Ctrl: true}, true
	case *fyne.ShortcutRedo:
		return input.Chord{Key: fyne.KeyZ, Ctrl: true, Shift: true}, true
	case *desktop.CustomShortcut:
		return input.Chord{
			Key:   v.KeyName,
			Ctrl:  v.Modifier&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0,
			Shift: v.Modifier&fyne.KeyModifierShift != 0,
		}, true
	}
	return input.Chord{}, false
}

// installKeys routes window-level keyboard input through keys.
func installKeys(c fyne.Canvas, keys *input.Dispatcher) {
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		keys.Handle(input.Chord{Key: ev.Name})
	})
	for _, s := range shortcuts {
		c.AddShortcut(s, func(s fyne.Shortcut) {
			if ch, ok := chordFor(s); ok {
				keys.Handle(ch)
			}
		})
	}
}
