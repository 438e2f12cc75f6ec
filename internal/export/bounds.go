package export

import (
	"math"

	"LocalNotes/internal/state"
)

// Margin is the padding added around exported content on every side.
const Margin = 24.0

// FallbackBounds is the crop rectangle used when there is nothing to export.
var FallbackBounds = state.Rect{X: 0, Y: 0, W: 600, H: 400}

// ContentBounds computes the crop rectangle for exporting items: the
// bounding box of every stroke point and text box, grown by Margin and
// rounded outward to whole units.
func ContentBounds(items []state.Item) state.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, it := range items {
		switch v := it.(type) {
		case *state.Stroke:
			for _, p := range v.Points {
				extend(p.X, p.Y)
			}
		case *state.TextBox:
			extend(v.X, v.Y)
			extend(v.X+v.W, v.Y+v.H)
		}
	}
	if math.IsInf(minX, 0) || math.IsInf(maxX, 0) {
		return FallbackBounds
	}
	x0 := math.Floor(minX - Margin)
	y0 := math.Floor(minY - Margin)
	x1 := math.Ceil(maxX + Margin)
	y1 := math.Ceil(maxY + Margin)
	return state.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
