package editor

import (
	"strings"
	"time"
)

// Tool is the active pointer tool.
type Tool int

const (
	ToolPen Tool = iota
	ToolSelect
	ToolErase
	ToolText
)

var toolNames = [...]string{"pen", "select", "erase", "text"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return "unknown"
	}
	return toolNames[t]
}

// ParseTool maps a tool name from config or the command line.
func ParseTool(s string) (Tool, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range toolNames {
		if name == s {
			return Tool(i), true
		}
	}
	return ToolPen, false
}

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonRight
	ButtonOther
)

// PointerEvent is a pointer sample in screen units relative to the drawing
// surface.
type PointerEvent struct {
	X, Y   float64
	Button Button
	Time   time.Time
}

const (
	// HitThreshold is the max world distance for a stroke to be hit or erased.
	HitThreshold = 8.0
	// DragThreshold is how far, in screen units, the pointer must travel
	// before a select gesture becomes a marquee drag.
	DragThreshold = 4.0

	minPenWidth = 1.0
	maxPenWidth = 50.0
)
