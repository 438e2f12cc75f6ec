// Package editor implements the canvas interaction state machine: pointer
// sequencing per tool, selection, erase, text editing and undo/redo.
//
// An Editor is not safe for concurrent use. All calls are expected to come
// from the UI event loop.
package editor

import (
	"math"

	"LocalNotes/internal/render"
	"LocalNotes/internal/state"
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithRepaint registers a callback invoked after every visual change,
// including each live ink sample.
func WithRepaint(fn func()) Option { return func(e *Editor) { e.onRepaint = fn } }

// WithSceneChanged registers a callback invoked at scene mutation
// boundaries only: committed strokes, added or removed items, text
// replacement, undo and redo.
func WithSceneChanged(fn func()) Option { return func(e *Editor) { e.onSceneChanged = fn } }

// WithTextEdit registers callbacks for entering and leaving text edit mode.
// begin receives the box being edited so the caller can seed its input.
func WithTextEdit(begin func(index int, box state.TextBox), end func()) Option {
	return func(e *Editor) {
		e.onTextBegin = begin
		e.onTextEnd = end
	}
}

// WithPen sets the initial pen color and width.
func WithPen(color string, width float64) Option {
	return func(e *Editor) {
		e.penColor = color
		e.penWidth = clampWidth(width)
	}
}

// WithTextStyle sets the font and color used for new text boxes.
func WithTextStyle(font, color string) Option {
	return func(e *Editor) {
		e.textFont = font
		e.textColor = color
	}
}

// WithTool sets the initial tool.
func WithTool(t Tool) Option { return func(e *Editor) { e.tool = t } }

// Editor owns the scene of the open note and all transient gesture state.
type Editor struct {
	scene     *state.Scene
	history   state.History
	viewport  state.Viewport
	selection state.Selection

	tool      Tool
	penColor  string
	penWidth  float64
	textFont  string
	textColor string

	// in-progress stroke, not yet in the scene
	active *state.Stroke

	pointerDown bool
	captured    bool

	panning    bool
	panStartX  float64
	panStartY  float64
	panOriginX float64
	panOriginY float64

	marqueeArmed    bool
	marqueeDragging bool
	anchorWorld     state.Point
	anchorX         float64
	anchorY         float64
	marquee         *state.Rect

	// set once the current erase gesture has recorded its history entry
	erased bool

	editing  int
	dirty    bool
	revision uint64

	onRepaint      func()
	onSceneChanged func()
	onTextBegin    func(int, state.TextBox)
	onTextEnd      func()
}

// New creates an editor with an empty scene.
func New(opts ...Option) *Editor {
	e := &Editor{
		scene:     state.NewScene(),
		viewport:  state.NewViewport(),
		tool:      ToolPen,
		penColor:  "black",
		penWidth:  3,
		textFont:  state.DefaultTextFont,
		textColor: "black",
		editing:   -1,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Items returns the live scene. Callers must not modify it.
func (e *Editor) Items() []state.Item { return e.scene.Items() }

func (e *Editor) Tool() Tool { return e.tool }
func (e *Editor) Viewport() state.Viewport { return e.viewport }
func (e *Editor) Selection() []int { return e.selection.Indices() }
func (e *Editor) EditingIndex() int { return e.editing }
func (e *Editor) Dirty() bool { return e.dirty }
func (e *Editor) Revision() uint64 { return e.revision }
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }
func (e *Editor) UndoDepth() int { return e.history.UndoDepth() }
func (e *Editor) Panning() bool { return e.panning }
func (e *Editor) PenColor() string { return e.penColor }
func (e *Editor) PenWidth() float64 { return e.penWidth }

// Captured reports whether a drag gesture holds pointer capture.
func (e *Editor) Captured() bool { return e.captured }

// Active returns the in-progress stroke, or nil.
func (e *Editor) Active() *state.Stroke { return e.active }

// Marquee returns the visible marquee rectangle, or nil before the drag
// threshold is crossed.
func (e *Editor) Marquee() *state.Rect {
	if e.marquee == nil {
		return nil
	}
	r := *e.marquee
	return &r
}

// Frame captures everything the renderer needs for one repaint.
func (e *Editor) Frame(dpr float64) render.Frame {
	f := render.Frame{
		Items:    append([]state.Item(nil), e.scene.Items()...),
		Viewport: e.viewport,
		DPR:      dpr,
		Selected: e.selection.Indices(),
		Marquee:  e.Marquee(),
	}
	if e.active != nil {
		f.Active = e.active.Clone().(*state.Stroke)
	}
	return f
}

func (e *Editor) SetPenColor(c string) { e.penColor = c }

func (e *Editor) SetPenWidth(w float64) { e.penWidth = clampWidth(w) }

// SetTool switches tools. An in-progress stroke is committed first; leaving
// the select tool clears the selection and any marquee.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.finalizeStroke()
	if e.tool == ToolSelect {
		e.selection.Clear()
		e.clearMarquee()
	}
	e.tool = t
	e.repaint()
}

// PointerDown starts a gesture.
func (e *Editor) PointerDown(ev PointerEvent) {
	switch ev.Button {
	case ButtonRight:
		e.panning = true
		e.captured = true
		e.panStartX, e.panStartY = ev.X, ev.Y
		e.panOriginX, e.panOriginY = e.viewport.OffsetX, e.viewport.OffsetY
		return
	case ButtonPrimary:
	default:
		e.clearMarquee()
		e.repaint()
		return
	}

	e.pointerDown = true
	e.captured = true
	p := e.worldPoint(ev)

	switch e.tool {
	case ToolPen:
		// A stroke still open here missed its pointer-up; keep it.
		e.finalizeStroke()
		e.active = &state.Stroke{Points: []state.Point{p}, Color: e.penColor, Width: e.penWidth}
		e.repaint()
	case ToolSelect:
		e.marqueeArmed = true
		e.marqueeDragging = false
		e.marquee = nil
		e.anchorWorld = p
		e.anchorX, e.anchorY = ev.X, ev.Y
	case ToolErase:
		e.erased = e.erase(p, true)
	case ToolText:
		e.placeText(p)
	}
}

// PointerMove continues a gesture. Moves without a held button are hover
// samples and are ignored.
func (e *Editor) PointerMove(ev PointerEvent) {
	if e.panning {
		e.viewport.OffsetX = e.panOriginX + (ev.X - e.panStartX)
		e.viewport.OffsetY = e.panOriginY + (ev.Y - e.panStartY)
		e.repaint()
		return
	}
	if !e.pointerDown {
		return
	}
	p := e.worldPoint(ev)

	switch e.tool {
	case ToolPen:
		if e.active == nil {
			return
		}
		e.active.Points = append(e.active.Points, p)
		e.repaint()
	case ToolSelect:
		if !e.marqueeArmed {
			return
		}
		if !e.marqueeDragging {
			if math.Hypot(ev.X-e.anchorX, ev.Y-e.anchorY) <= DragThreshold {
				return
			}
			e.marqueeDragging = true
		}
		r := state.NormalizeRect(e.anchorWorld, p)
		e.marquee = &r
		e.selectInRect(r)
		e.repaint()
	case ToolErase:
		if e.erase(p, !e.erased) {
			e.erased = true
		}
	}
}

// PointerUp ends a gesture.
func (e *Editor) PointerUp(ev PointerEvent) { e.release(ev, false) }

// PointerCancel ends a gesture the platform aborted. It commits like
// PointerUp but never turns into a click selection.
func (e *Editor) PointerCancel(ev PointerEvent) { e.release(ev, true) }

func (e *Editor) release(ev PointerEvent, cancelled bool) {
	if e.panning {
		e.panning = false
		if ev.Button == ButtonRight && !cancelled {
			e.captured = e.pointerDown
			return
		}
	}
	if !cancelled && ev.Button != ButtonPrimary {
		return
	}
	e.captured = false
	wasDown := e.pointerDown
	e.pointerDown = false

	e.finalizeStroke()

	if e.tool == ToolSelect && e.marqueeArmed {
		switch {
		case e.marqueeDragging && e.marquee != nil:
			e.selectInRect(*e.marquee)
		case wasDown && !cancelled:
			e.selection.Clear()
			if i := e.HitTest(e.worldPoint(ev)); i >= 0 {
				e.selection.Add(i)
			}
		}
	}
	e.clearMarquee()
	e.repaint()
}

// HitTest returns the index of the topmost item under world point p, or -1.
func (e *Editor) HitTest(p state.Point) int {
	items := e.scene.Items()
	for i := len(items) - 1; i >= 0; i-- {
		switch v := items[i].(type) {
		case *state.TextBox:
			if v.Bounds().ContainsPoint(p) {
				return i
			}
		case *state.Stroke:
			if state.StrokeNearPoint(v, p, HitThreshold) {
				return i
			}
		}
	}
	return -1
}

// selectInRect replaces the selection with the items picked by a marquee:
// text boxes fully inside it and strokes whose bounds intersect it.
func (e *Editor) selectInRect(r state.Rect) {
	e.selection.Clear()
	for i, it := range e.scene.Items() {
		switch v := it.(type) {
		case *state.TextBox:
			if r.ContainsRect(v.Bounds()) {
				e.selection.Add(i)
			}
		case *state.Stroke:
			if b, ok := state.StrokeBounds(v.Points); ok && state.BoundsOverlap(b, r) {
				e.selection.Add(i)
			}
		}
	}
}

// EraseAt removes every text box containing the world point and every
// stroke passing within HitThreshold of it. One history entry is recorded
// for the whole pass, and none when nothing was hit.
func (e *Editor) EraseAt(x, y float64) bool {
	return e.erase(state.Point{X: x, Y: y}, true)
}

// erase removes the items under p. A drag erase records history only on its
// first hit so the whole gesture undoes as one step.
func (e *Editor) erase(p state.Point, record bool) bool {
	var hit []int
	for i, it := range e.scene.Items() {
		switch v := it.(type) {
		case *state.TextBox:
			if v.Bounds().ContainsPoint(p) {
				hit = append(hit, i)
			}
		case *state.Stroke:
			if state.StrokeNearPoint(v, p, HitThreshold) {
				hit = append(hit, i)
			}
		}
	}
	if len(hit) == 0 {
		return false
	}
	if record {
		e.history.Push(e.scene.Items())
	}
	e.scene.Remove(hit)
	e.indicesInvalidated()
	e.sceneChanged()
	e.repaint()
	return true
}

// DeleteSelected removes the selected items as one undoable step.
func (e *Editor) DeleteSelected() bool {
	if e.selection.Len() == 0 {
		return false
	}
	e.history.Push(e.scene.Items())
	e.scene.Remove(e.selection.Indices())
	e.indicesInvalidated()
	e.sceneChanged()
	e.repaint()
	return true
}

func (e *Editor) Undo() bool {
	snap, ok := e.history.Undo(e.scene.Items())
	if !ok {
		return false
	}
	e.scene.Reset(snap)
	e.erased = false
	e.indicesInvalidated()
	e.sceneChanged()
	e.repaint()
	return true
}

func (e *Editor) Redo() bool {
	snap, ok := e.history.Redo(e.scene.Items())
	if !ok {
		return false
	}
	e.scene.Reset(snap)
	e.erased = false
	e.indicesInvalidated()
	e.sceneChanged()
	e.repaint()
	return true
}

// ZoomAt zooms around a screen point. View changes never enter history.
func (e *Editor) ZoomAt(x, y float64, direction int) {
	e.viewport.ZoomAt(x, y, direction)
	e.repaint()
}

// Pan shifts the view by a screen delta.
func (e *Editor) Pan(dx, dy float64) {
	e.viewport.Pan(dx, dy)
	e.repaint()
}

func (e *Editor) ResetView() {
	e.viewport.Reset()
	e.repaint()
}

// LoadScene replaces the scene with items from storage. Uncommitted ink,
// text edits and gesture state are discarded and history starts over.
func (e *Editor) LoadScene(items []state.Item) {
	e.active = nil
	e.pointerDown = false
	e.captured = false
	e.panning = false
	e.erased = false
	e.clearMarquee()
	e.scene.Reset(items)
	e.history.Reset()
	e.indicesInvalidated()
	e.dirty = false
	e.revision++
	if e.onSceneChanged != nil {
		e.onSceneChanged()
	}
	e.repaint()
}

// MarkDirty flags a change that lives outside the scene, such as a title.
func (e *Editor) MarkDirty() {
	e.dirty = true
	e.revision++
}

// MarkSaved clears the dirty flag if nothing changed since revision rev.
func (e *Editor) MarkSaved(rev uint64) {
	if rev == e.revision {
		e.dirty = false
	}
}

// FinalizeStroke commits the in-progress stroke, if any.
func (e *Editor) FinalizeStroke() {
	e.finalizeStroke()
	e.repaint()
}

func (e *Editor) finalizeStroke() {
	s := e.active
	if s == nil {
		return
	}
	e.active = nil
	if len(s.Points) == 0 {
		return
	}
	e.history.Push(e.scene.Items())
	e.scene.Append(s)
	e.selection.Clear()
	e.sceneChanged()
}

func (e *Editor) placeText(p state.Point) {
	e.EndTextEdit()
	box := state.NewTextBox(p.X, p.Y, e.textColor)
	box.Font = e.textFont
	e.history.Push(e.scene.Items())
	e.scene.Append(box)
	e.selection.Clear()
	e.sceneChanged()
	e.BeginTextEdit(e.scene.Len() - 1)
}

func (e *Editor) worldPoint(ev PointerEvent) state.Point {
	p := e.viewport.ScreenToWorld(ev.X, ev.Y)
	if !ev.Time.IsZero() {
		p.T = ev.Time.UnixMilli()
	}
	return p
}

func (e *Editor) clearMarquee() {
	e.marqueeArmed = false
	e.marqueeDragging = false
	e.marquee = nil
}

// indicesInvalidated drops everything that refers to scene positions after
// items were removed or the scene was swapped out.
func (e *Editor) indicesInvalidated() {
	e.selection.Clear()
	e.EndTextEdit()
}

func (e *Editor) sceneChanged() {
	e.dirty = true
	e.revision++
	if e.onSceneChanged != nil {
		e.onSceneChanged()
	}
}

func (e *Editor) repaint() {
	if e.onRepaint != nil {
		e.onRepaint()
	}
}

func clampWidth(w float64) float64 {
	return math.Max(minPenWidth, math.Min(maxPenWidth, w))
}
