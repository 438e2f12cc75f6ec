package state

import (
	"math"
)

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64 { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// ContainsPoint reports whether p lies inside r, edges included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsRect reports whether inner lies fully inside r.
func (r Rect) ContainsRect(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}

// BoundsOverlap reports whether two rectangles intersect. Touching edges
// count as overlapping.
func BoundsOverlap(a, b Rect) bool {
	return a.X <= b.Right() && a.Right() >= b.X &&
		a.Y <= b.Bottom() && a.Bottom() >= b.Y
}

// NormalizeRect builds the rectangle spanned by two corner points.
func NormalizeRect(a, b Point) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// PointSegmentDistance returns the distance from p to the segment ab.
func PointSegmentDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	cx := a.X + t*dx
	cy := a.Y + t*dy
	return math.Hypot(p.X-cx, p.Y-cy)
}

// StrokeBounds calculates the bounding box of a point sequence. It returns
// false when there are no points.
func StrokeBounds(points []Point) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// StrokeNearPoint reports whether any segment of s passes within threshold
// of p. A single-point stroke is treated as a zero-length segment.
func StrokeNearPoint(s *Stroke, p Point, threshold float64) bool {
	switch len(s.Points) {
	case 0:
		return false
	case 1:
		return PointSegmentDistance(p, s.Points[0], s.Points[0]) <= threshold
	}
	for i := 0; i < len(s.Points)-1; i++ {
		if PointSegmentDistance(p, s.Points[i], s.Points[i+1]) <= threshold {
			return true
		}
	}
	return false
}
