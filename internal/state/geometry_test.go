package state

import (
	"math"
	"testing"
)

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"perpendicular", Point{X: 5, Y: 3}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 3},
		{"past end", Point{X: 13, Y: 4}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 5},
		{"before start", Point{X: -3, Y: 0}, Point{X: 0, Y: 0}, Point{X: 10, Y: 0}, 3},
		{"degenerate", Point{X: 3, Y: 4}, Point{X: 0, Y: 0}, Point{X: 0, Y: 0}, 5},
		{"on segment", Point{X: 2, Y: 2}, Point{X: 0, Y: 0}, Point{X: 4, Y: 4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointSegmentDistance(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrokeBounds(t *testing.T) {
	if _, ok := StrokeBounds(nil); ok {
		t.Fatal("expected no bounds for empty stroke")
	}
	r, ok := StrokeBounds([]Point{{X: 5, Y: -2}, {X: -1, Y: 7}, {X: 3, Y: 3}})
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Rect{X: -1, Y: -2, W: 6, H: 9}
	if r != want {
		t.Fatalf("bounds = %+v, want %+v", r, want)
	}
}

func TestBoundsOverlapTouchingCounts(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !BoundsOverlap(a, Rect{X: 10, Y: 10, W: 5, H: 5}) {
		t.Error("corner touch should overlap")
	}
	if !BoundsOverlap(a, Rect{X: 2, Y: 2, W: 1, H: 1}) {
		t.Error("inner rect should overlap")
	}
	if BoundsOverlap(a, Rect{X: 10.5, Y: 0, W: 5, H: 5}) {
		t.Error("disjoint rect should not overlap")
	}
}

func TestRectContainsRect(t *testing.T) {
	marquee := Rect{X: 0, Y: 0, W: 100, H: 100}
	if !marquee.ContainsRect(Rect{X: 10, Y: 10, W: 50, H: 50}) {
		t.Error("expected containment")
	}
	if (Rect{X: 20, Y: 20, W: 30, H: 30}).ContainsRect(Rect{X: 10, Y: 10, W: 50, H: 50}) {
		t.Error("partial overlap must not count as containment")
	}
}

func TestNormalizeRect(t *testing.T) {
	got := NormalizeRect(Point{X: 10, Y: 2}, Point{X: 4, Y: 8})
	want := Rect{X: 4, Y: 2, W: 6, H: 6}
	if got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
}

func TestStrokeNearPoint(t *testing.T) {
	s := &Stroke{Points: []Point{{X: 0, Y: 0}, {X: 100, Y: 0}}}
	if !StrokeNearPoint(s, Point{X: 50, Y: 8}, 8) {
		t.Error("point at threshold should hit")
	}
	if StrokeNearPoint(s, Point{X: 50, Y: 8.5}, 8) {
		t.Error("point past threshold should miss")
	}
	dot := &Stroke{Points: []Point{{X: 5, Y: 5}}}
	if !StrokeNearPoint(dot, Point{X: 9, Y: 5}, 8) {
		t.Error("single-point stroke should be hit near its point")
	}
}
