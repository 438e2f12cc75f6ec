package state

const (
	MinZoom  = 0.1
	MaxZoom  = 4.0
	ZoomStep = 1.1
)

// Viewport maps world space to screen space:
//
//	screen = world*Scale*dpr + Offset*dpr
//
// Offsets are kept in screen units (before device pixel ratio).
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// ScreenToWorld converts a pointer position to world coordinates.
func (v Viewport) ScreenToWorld(x, y float64) Point {
	return Point{X: (x - v.OffsetX) / v.Scale, Y: (y - v.OffsetY) / v.Scale}
}

// WorldToScreen converts a world point to device pixels.
func (v Viewport) WorldToScreen(p Point, dpr float64) (float64, float64) {
	return (p.X*v.Scale + v.OffsetX) * dpr, (p.Y*v.Scale + v.OffsetY) * dpr
}

// ZoomAt zooms in (direction > 0) or out (direction < 0) keeping the world
// point under (x, y) fixed on screen.
func (v *Viewport) ZoomAt(x, y float64, direction int) {
	if direction == 0 {
		return
	}
	factor := ZoomStep
	if direction < 0 {
		factor = 1 / ZoomStep
	}
	newScale := clampScale(v.Scale * factor)
	world := v.ScreenToWorld(x, y)
	v.OffsetX = x - world.X*newScale
	v.OffsetY = y - world.Y*newScale
	v.Scale = newScale
}

// Pan shifts the view by a raw screen delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
}

func (v *Viewport) Reset() {
	*v = NewViewport()
}

func clampScale(s float64) float64 {
	if s < MinZoom {
		return MinZoom
	}
	if s > MaxZoom {
		return MaxZoom
	}
	return s
}
