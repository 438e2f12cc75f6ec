// Package render paints a scene onto a raster surface. Rendering is a pure
// function of its Frame; it never mutates editor state.
package render

import (
	"image/color"

	"LocalNotes/internal/state"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Surface is the part of *gg.Context the renderer draws with.
type Surface interface {
	Width() int
	Height() int
	Clear()
	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCap(c gg.LineCap)
	SetLineJoin(j gg.LineJoin)
	SetDash(dashes ...float64)
	NewSubPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	DrawRectangle(x, y, w, h float64)
	DrawCircle(x, y, r float64)
	Stroke()
	Fill()
	Clip()
	ResetClip()
	SetFontFace(f font.Face)
	MeasureString(s string) (float64, float64)
	DrawString(s string, x, y float64)
}

var _ Surface = (*gg.Context)(nil)

// Frame is the complete input of a repaint.
type Frame struct {
	Items    []state.Item
	Viewport state.Viewport
	DPR      float64
	Selected []int
	Active   *state.Stroke
	Marquee  *state.Rect
}

var (
	background     = color.White
	highlightColor = color.NRGBA{R: 59, G: 130, B: 246, A: 90}
	outlineColor   = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	marqueeColor   = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
)

const highlightExtra = 6.0

// Render repaints the whole surface from f.
func Render(dc Surface, f Frame) {
	dpr := f.DPR
	if dpr <= 0 {
		dpr = 1
	}
	p := painter{dc: dc, vp: f.Viewport, dpr: dpr, k: f.Viewport.Scale * dpr}

	dc.ResetClip()
	dc.SetDash()
	dc.SetColor(background)
	dc.Clear()
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, it := range f.Items {
		switch v := it.(type) {
		case *state.Stroke:
			p.stroke(v.Points, v.Width, ParseColor(v.Color))
		case *state.TextBox:
			p.text(v)
		}
	}

	for _, i := range f.Selected {
		if i < 0 || i >= len(f.Items) {
			continue
		}
		switch v := f.Items[i].(type) {
		case *state.Stroke:
			p.stroke(v.Points, v.Width+highlightExtra, highlightColor)
		case *state.TextBox:
			p.outline(v.Bounds(), outlineColor, 1.5, false)
		}
	}

	if f.Active != nil {
		p.stroke(f.Active.Points, f.Active.Width, ParseColor(f.Active.Color))
	}
	if f.Marquee != nil {
		p.outline(*f.Marquee, marqueeColor, 1, true)
	}
}

type painter struct {
	dc  Surface
	vp  state.Viewport
	dpr float64
	// k converts world lengths to device pixels.
	k float64
}

func (p painter) pt(pt state.Point) (float64, float64) {
	return p.vp.WorldToScreen(pt, p.dpr)
}

func (p painter) stroke(points []state.Point, width float64, c color.Color) {
	if len(points) == 0 {
		return
	}
	p.dc.SetColor(c)
	if len(points) == 1 {
		x, y := p.pt(points[0])
		p.dc.DrawCircle(x, y, width*p.k/2)
		p.dc.Fill()
		return
	}
	p.dc.SetLineWidth(width * p.k)
	p.dc.NewSubPath()
	x, y := p.pt(points[0])
	p.dc.MoveTo(x, y)
	for _, pt := range points[1:] {
		x, y = p.pt(pt)
		p.dc.LineTo(x, y)
	}
	p.dc.Stroke()
}

// outline strokes a world rectangle with a line width in screen units.
func (p painter) outline(r state.Rect, c color.Color, width float64, dashed bool) {
	x0, y0 := p.pt(state.Point{X: r.X, Y: r.Y})
	x1, y1 := p.pt(state.Point{X: r.Right(), Y: r.Bottom()})
	p.dc.SetColor(c)
	p.dc.SetLineWidth(width * p.dpr)
	if dashed {
		p.dc.SetDash(6*p.dpr, 4*p.dpr)
	}
	p.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	p.dc.Stroke()
	if dashed {
		p.dc.SetDash()
	}
}

func (p painter) text(t *state.TextBox) {
	if t.Text == "" {
		return
	}
	face := faceForSize(FontSize(t.Font) * p.k)
	p.dc.SetFontFace(face)
	lines := LayoutText(func(s string) float64 {
		w, _ := p.dc.MeasureString(s)
		return w / p.k
	}, t)
	if len(lines) == 0 {
		return
	}

	x0, y0 := p.pt(state.Point{X: t.X, Y: t.Y})
	p.dc.DrawRectangle(x0, y0, t.W*p.k, t.H*p.k)
	p.dc.Clip()
	p.dc.SetColor(ParseColor(t.Color))
	ascent := float64(face.Metrics().Ascent) / 64
	for _, line := range lines {
		x, y := p.pt(state.Point{X: t.X + line.DX, Y: t.Y + line.DY})
		p.dc.DrawString(line.Text, x, y+ascent)
	}
	p.dc.ResetClip()
}
