package ui

import (
	"testing"

	"LocalNotes/internal/editor"
	"LocalNotes/internal/input"
	"LocalNotes/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
)

func newTestBoard(t *testing.T) (*CanvasWidget, *editor.Editor, *input.Dispatcher) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	keys := input.NewDispatcher()
	keys.BindDefaults()
	board := newCanvasWidget(keys)
	ed := editor.New(
		editor.WithRepaint(board.Refresh),
		editor.WithTextEdit(board.beginText, board.endText),
	)
	board.setEditor(ed)

	w := test.NewWindow(board)
	t.Cleanup(w.Close)
	w.Resize(fyne.NewSize(400, 300))
	return board, ed, keys
}

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: b}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestBoardDrawsStroke(t *testing.T) {
	board, ed, _ := newTestBoard(t)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	board.Dragged(drag(20, 20))
	board.Dragged(drag(20, 20))
	board.Dragged(drag(30, 30))
	board.DragEnd()
	board.MouseUp(mouse(30, 30, desktop.MouseButtonPrimary))

	items := ed.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if n := len(items[0].(*state.Stroke).Points); n != 3 {
		t.Fatalf("points = %d, want 3", n)
	}
	if ed.CanRedo() || ed.UndoDepth() != 1 {
		t.Fatalf("release committed more than once")
	}
}

func TestBoardSecondaryDragPans(t *testing.T) {
	board, ed, _ := newTestBoard(t)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonSecondary))
	board.MouseMoved(mouse(60, 40, desktop.MouseButtonSecondary))
	board.MouseUp(mouse(60, 40, desktop.MouseButtonSecondary))

	vp := ed.Viewport()
	if vp.OffsetX != 50 || vp.OffsetY != 30 {
		t.Fatalf("offset = (%v, %v), want (50, 30)", vp.OffsetX, vp.OffsetY)
	}
	if len(ed.Items()) != 0 {
		t.Fatalf("pan drew ink")
	}
}

func TestBoardPanDuringStrokeReleasesCapture(t *testing.T) {
	board, ed, _ := newTestBoard(t)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	board.Dragged(drag(20, 20))
	board.MouseDown(mouse(20, 20, desktop.MouseButtonSecondary))
	board.MouseMoved(mouse(40, 30, desktop.MouseButtonSecondary))
	board.MouseUp(mouse(40, 30, desktop.MouseButtonSecondary))
	board.MouseUp(mouse(40, 30, desktop.MouseButtonPrimary))

	if ed.Captured() || ed.Panning() || ed.Active() != nil {
		t.Fatalf("gesture stuck: captured=%v panning=%v active=%v", ed.Captured(), ed.Panning(), ed.Active() != nil)
	}
	items := ed.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	n := len(items[0].(*state.Stroke).Points)

	board.MouseMoved(mouse(80, 80, 0))
	board.MouseMoved(mouse(90, 90, 0))
	if got := len(ed.Items()[0].(*state.Stroke).Points); got != n || ed.Active() != nil {
		t.Fatalf("hover after release grew ink: %d -> %d points", n, got)
	}
	if ed.UndoDepth() != 1 {
		t.Fatalf("undo depth = %d, want 1", ed.UndoDepth())
	}
}

func TestBoardDragEndReleasesOnlyOnce(t *testing.T) {
	board, ed, _ := newTestBoard(t)

	board.MouseDown(mouse(10, 10, desktop.MouseButtonPrimary))
	board.Dragged(drag(30, 30))
	board.DragEnd()
	board.MouseUp(mouse(30, 30, desktop.MouseButtonPrimary))
	board.MouseUp(mouse(30, 30, desktop.MouseButtonSecondary))

	if ed.Captured() || ed.UndoDepth() != 1 || len(ed.Items()) != 1 {
		t.Fatalf("captured=%v undo=%d items=%d", ed.Captured(), ed.UndoDepth(), len(ed.Items()))
	}
}

func TestBoardScrollZooms(t *testing.T) {
	board, ed, _ := newTestBoard(t)
	board.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 100)},
		Scrolled:   fyne.NewDelta(0, 5),
	})
	if s := ed.Viewport().Scale; s <= 1 {
		t.Fatalf("scale = %v, want zoomed in", s)
	}
	board.Scrolled(&fyne.ScrollEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(100, 100)},
		Scrolled:   fyne.NewDelta(0, -5),
	})
	if s := ed.Viewport().Scale; s < 0.999999 || s > 1.000001 {
		t.Fatalf("scale = %v, want 1 after zooming back", s)
	}
}

func TestTextOverlayFollowsEditing(t *testing.T) {
	board, ed, keys := newTestBoard(t)
	ed.SetTool(editor.ToolText)

	board.MouseDown(mouse(50, 40, desktop.MouseButtonPrimary))
	board.MouseUp(mouse(50, 40, desktop.MouseButtonPrimary))

	if !board.overlay.Visible() || board.overlay.index != 0 {
		t.Fatalf("overlay not shown for new box")
	}
	if pos := board.overlay.Position(); pos.X != 50 || pos.Y != 40 {
		t.Fatalf("overlay at %v, want (50, 40)", pos)
	}
	if size := board.overlay.Size(); size.Width != state.DefaultTextWidth || size.Height != state.DefaultTextHeight {
		t.Fatalf("overlay size %v", size)
	}
	if !keys.TextFocus() {
		t.Fatalf("dispatcher not told about text focus")
	}

	test.Type(board.overlay, "hi")
	if got := ed.Items()[0].(*state.TextBox).Text; got != "hi" {
		t.Fatalf("box text = %q, want hi", got)
	}

	ed.EndTextEdit()
	if board.overlay.Visible() || keys.TextFocus() {
		t.Fatalf("overlay still active after edit ended")
	}
}

func TestButtonFor(t *testing.T) {
	tests := map[desktop.MouseButton]editor.Button{
		desktop.MouseButtonPrimary:   editor.ButtonPrimary,
		desktop.MouseButtonSecondary: editor.ButtonRight,
		desktop.MouseButtonTertiary:  editor.ButtonMiddle,
	}
	for in, want := range tests {
		if got := buttonFor(in); got != want {
			t.Errorf("buttonFor(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestChordFor(t *testing.T) {
	c, ok := chordFor(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl | fyne.KeyModifierShift})
	if !ok || c != (input.Chord{Key: fyne.KeyZ, Ctrl: true, Shift: true}) {
		t.Fatalf("chordFor = %+v, %v", c, ok)
	}
	if c, ok := chordFor(&fyne.ShortcutUndo{}); !ok || c != (input.Chord{Key: fyne.KeyZ, Ctrl: true}) {
		t.Fatalf("chordFor(undo) = %+v, %v", c, ok)
	}
	if _, ok := chordFor(&fyne.ShortcutCopy{}); ok {
		t.Fatalf("copy should not map to a chord")
	}
}
