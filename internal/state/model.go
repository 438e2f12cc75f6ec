package state

// Kind discriminates the concrete type of a canvas item.
type Kind string

const (
	KindStroke Kind = "stroke"
	KindText   Kind = "text"
)

// Align is the horizontal alignment of text inside a TextBox.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Default sizes for a freshly placed text box.
const (
	DefaultTextWidth  = 240.0
	DefaultTextHeight = 80.0
	DefaultTextFont   = "16px sans-serif"
)

// Point is a world-space coordinate. T is the capture time in unix
// milliseconds, zero when unknown.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T int64   `json:"t,omitempty"`
}

// Item is a single entry of the scene. Implemented by *Stroke and *TextBox.
type Item interface {
	Kind() Kind
	Bounds() Rect
	Clone() Item
}

// Stroke is a freehand ink polyline.
type Stroke struct {
	Points []Point
	Color  string
	Width  float64
}

func (s *Stroke) Kind() Kind { return KindStroke }

// Bounds returns the bounding box of the stroke's points. An empty stroke
// has a zero Rect.
func (s *Stroke) Bounds() Rect {
	r, _ := StrokeBounds(s.Points)
	return r
}

// Clone returns a deep copy with its own point slice.
func (s *Stroke) Clone() Item {
	points := make([]Point, len(s.Points))
	copy(points, s.Points)
	return &Stroke{Points: points, Color: s.Color, Width: s.Width}
}

// TextBox is a resizable box of word-wrapped text.
type TextBox struct {
	ID    string
	X, Y  float64
	W, H  float64
	Text  string
	Font  string
	Color string
	Align Align
}

func (t *TextBox) Kind() Kind { return KindText }

func (t *TextBox) Bounds() Rect { return Rect{X: t.X, Y: t.Y, W: t.W, H: t.H} }

func (t *TextBox) Clone() Item {
	c := *t
	return &c
}

// NewTextBox creates an empty box of the default size anchored at (x, y).
func NewTextBox(x, y float64, color string) *TextBox {
	return &TextBox{
		ID:    NewItemID(),
		X:     x,
		Y:     y,
		W:     DefaultTextWidth,
		H:     DefaultTextHeight,
		Font:  DefaultTextFont,
		Color: color,
		Align: AlignLeft,
	}
}

// CloneItems deep-copies a slice of items.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
