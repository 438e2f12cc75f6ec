package state

import (
	"encoding/json"
	"fmt"
	"log"
)

// wireItem is the persisted shape of a canvas item. Strokes and text boxes
// share one flat object distinguished by Type.
type wireItem struct {
	Type   Kind    `json:"type,omitempty"`
	Points []Point `json:"points,omitempty"`
	Width  float64 `json:"width,omitempty"`

	ID    string  `json:"id,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Text  string  `json:"text,omitempty"`
	Font  string  `json:"font,omitempty"`
	Align Align   `json:"align,omitempty"`

	Color string `json:"color,omitempty"`
}

// EncodeItems serializes items to JSON.
func EncodeItems(items []Item) ([]byte, error) {
	out := make([]wireItem, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case *Stroke:
			out = append(out, wireItem{Type: KindStroke, Points: v.Points, Color: v.Color, Width: v.Width})
		case *TextBox:
			out = append(out, wireItem{
				Type: KindText, ID: v.ID,
				X: v.X, Y: v.Y, W: v.W, H: v.H,
				Text: v.Text, Font: v.Font, Color: v.Color, Align: v.Align,
			})
		default:
			return nil, fmt.Errorf("encode items: unsupported item %T", it)
		}
	}
	return json.Marshal(out)
}

// DecodeItems parses persisted items. It never fails: unparseable data
// yields an empty scene so a corrupted note still opens.
func DecodeItems(data []byte) []Item {
	if len(data) == 0 {
		return nil
	}
	var raw []wireItem
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("[SCENE] Discarding unparseable scene data (%d bytes): %v", len(data), err)
		return nil
	}
	items := make([]Item, 0, len(raw))
	for _, w := range raw {
		switch w.Type {
		case KindText:
			items = append(items, w.textBox())
		case KindStroke, "":
			// Items predating the type field are strokes.
			if len(w.Points) == 0 {
				continue
			}
			items = append(items, &Stroke{Points: w.Points, Color: w.Color, Width: w.Width})
		default:
			log.Printf("[SCENE] Skipping item of unknown type %q", w.Type)
		}
	}
	return items
}

func (w wireItem) textBox() *TextBox {
	t := &TextBox{
		ID: w.ID, X: w.X, Y: w.Y, W: w.W, H: w.H,
		Text: w.Text, Font: w.Font, Color: w.Color, Align: w.Align,
	}
	if t.ID == "" {
		t.ID = NewItemID()
	}
	if t.W <= 0 {
		t.W = DefaultTextWidth
	}
	if t.H <= 0 {
		t.H = DefaultTextHeight
	}
	if t.Font == "" {
		t.Font = DefaultTextFont
	}
	switch t.Align {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		t.Align = AlignLeft
	}
	return t
}
