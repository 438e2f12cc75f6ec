package ui

import (
	"image"
	"time"

	"LocalNotes/internal/editor"
	"LocalNotes/internal/input"
	"LocalNotes/internal/render"
	"LocalNotes/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/fogleman/gg"
)

// CanvasWidget is the drawing surface. It turns fyne pointer events into
// editor gestures and paints the editor's frame onto a raster.
type CanvasWidget struct {
	widget.BaseWidget

	ed      *editor.Editor
	overlay *textOverlay

	// buttons currently held, as a desktop.MouseButton bit set
	pressed desktop.MouseButton
	last    fyne.Position
}

var _ fyne.Widget = (*CanvasWidget)(nil)
var _ fyne.Draggable = (*CanvasWidget)(nil)
var _ fyne.Scrollable = (*CanvasWidget)(nil)
var _ fyne.DoubleTappable = (*CanvasWidget)(nil)
var _ desktop.Mouseable = (*CanvasWidget)(nil)
var _ desktop.Hoverable = (*CanvasWidget)(nil)

func newCanvasWidget(keys *input.Dispatcher) *CanvasWidget {
	c := &CanvasWidget{overlay: newTextOverlay(keys)}
	c.overlay.onFocusLost = func() {
		if c.ed != nil {
			c.ed.EndTextEdit()
		}
	}
	c.overlay.OnChanged = func(text string) {
		if c.ed != nil && c.overlay.index >= 0 {
			c.ed.UpdateText(c.overlay.index, text)
		}
	}
	c.ExtendBaseWidget(c)
	return c
}

// setEditor attaches the editor. The editor is built after the widget so
// its callbacks can point back here.
func (c *CanvasWidget) setEditor(ed *editor.Editor) {
	c.ed = ed
	c.Refresh()
}

func (c *CanvasWidget) MouseDown(e *desktop.MouseEvent) {
	if c.ed == nil {
		return
	}
	c.pressed |= e.Button
	c.last = e.Position
	c.ed.PointerDown(pointerEvent(e.Position, e.Button))
}

// MouseUp forwards the release of any button this widget saw go down.
func (c *CanvasWidget) MouseUp(e *desktop.MouseEvent) {
	c.release(e.Position, e.Button)
}

func (c *CanvasWidget) MouseIn(*desktop.MouseEvent) {}
func (c *CanvasWidget) MouseOut() {}

func (c *CanvasWidget) MouseMoved(e *desktop.MouseEvent) { c.move(e.Position) }

func (c *CanvasWidget) Dragged(e *fyne.DragEvent) { c.move(e.Position) }

// DragEnd fires instead of MouseUp when the primary button is released
// outside the widget.
func (c *CanvasWidget) DragEnd() {
	c.release(c.last, desktop.MouseButtonPrimary)
}

func (c *CanvasWidget) release(pos fyne.Position, b desktop.MouseButton) {
	if c.ed == nil || c.pressed&b == 0 {
		return
	}
	c.pressed &^= b
	c.ed.PointerUp(pointerEvent(pos, b))
}

func (c *CanvasWidget) Scrolled(e *fyne.ScrollEvent) {
	if c.ed == nil {
		return
	}
	switch {
	case e.Scrolled.DY > 0:
		c.ed.ZoomAt(float64(e.Position.X), float64(e.Position.Y), 1)
	case e.Scrolled.DY < 0:
		c.ed.ZoomAt(float64(e.Position.X), float64(e.Position.Y), -1)
	}
}

// DoubleTapped opens a text box for editing.
func (c *CanvasWidget) DoubleTapped(e *fyne.PointEvent) {
	if c.ed == nil {
		return
	}
	if t := c.ed.Tool(); t == editor.ToolSelect || t == editor.ToolText {
		c.ed.EditAt(float64(e.Position.X), float64(e.Position.Y))
	}
}

func (c *CanvasWidget) move(pos fyne.Position) {
	if c.ed == nil || (c.pressed != 0 && pos == c.last) {
		return
	}
	c.last = pos
	c.ed.PointerMove(pointerEvent(pos, c.dragButton()))
}

// dragButton names the button a move belongs to. Primary wins while it is
// held so a pan in the middle of a stroke keeps the stroke's gesture.
func (c *CanvasWidget) dragButton() desktop.MouseButton {
	for _, b := range []desktop.MouseButton{
		desktop.MouseButtonPrimary,
		desktop.MouseButtonSecondary,
		desktop.MouseButtonTertiary,
	} {
		if c.pressed&b != 0 {
			return b
		}
	}
	return 0
}

// beginText shows the overlay over the box being edited.
func (c *CanvasWidget) beginText(index int, box state.TextBox) {
	c.overlay.index = index
	c.overlay.SetText(box.Text)
	c.overlay.Show()
	c.placeOverlay()
	if cv := fyne.CurrentApp().Driver().CanvasForObject(c); cv != nil {
		cv.Focus(c.overlay)
	}
}

func (c *CanvasWidget) endText() {
	c.overlay.index = -1
	c.overlay.Hide()
	if cv := fyne.CurrentApp().Driver().CanvasForObject(c); cv != nil && cv.Focused() == c.overlay {
		cv.Unfocus()
	}
}

// placeOverlay keeps the overlay aligned with its box under the current view.
func (c *CanvasWidget) placeOverlay() {
	if c.ed == nil || c.overlay.index < 0 {
		return
	}
	items := c.ed.Items()
	if c.overlay.index >= len(items) {
		return
	}
	box, ok := items[c.overlay.index].(*state.TextBox)
	if !ok {
		return
	}
	vp := c.ed.Viewport()
	x, y := vp.WorldToScreen(state.Point{X: box.X, Y: box.Y}, 1)
	c.overlay.Move(fyne.NewPos(float32(x), float32(y)))
	c.overlay.Resize(fyne.NewSize(float32(box.W*vp.Scale), float32(box.H*vp.Scale)))
}

// draw renders the editor frame at device resolution. The raster is sized
// in device pixels, so its width over the widget width is the pixel ratio.
func (c *CanvasWidget) draw(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	if c.ed == nil {
		return dc.Image()
	}
	dpr := 1.0
	if size := c.Size(); size.Width > 0 {
		dpr = float64(w) / float64(size.Width)
	}
	render.Render(dc, c.ed.Frame(dpr))
	return dc.Image()
}

func (c *CanvasWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{board: c}
	r.raster = canvas.NewRaster(c.draw)
	return r
}

type canvasRenderer struct {
	board  *CanvasWidget
	raster *canvas.Raster
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster, r.board.overlay}
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.board.placeOverlay()
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *canvasRenderer) Refresh() {
	r.board.placeOverlay()
	r.raster.Refresh()
}

func (r *canvasRenderer) Destroy() {}

func pointerEvent(pos fyne.Position, b desktop.MouseButton) editor.PointerEvent {
	return editor.PointerEvent{
		X:      float64(pos.X),
		Y:      float64(pos.Y),
		Button: buttonFor(b),
		Time:   time.Now(),
	}
}

func buttonFor(b desktop.MouseButton) editor.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return editor.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return editor.ButtonRight
	case desktop.MouseButtonTertiary:
		return editor.ButtonMiddle
	}
	return editor.ButtonOther
}
