package render

import (
	"log"
	"math"
	"strconv"
	"strings"
	"sync"

	"LocalNotes/internal/state"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	defaultFontSize = 16.0
	// LineSpacing is the line height as a multiple of the font size.
	LineSpacing = 1.25
	// TextPadding is the inset between a text box edge and its text.
	TextPadding = 4.0
)

// FontSize extracts the pixel size from a font string such as
// "18px sans-serif". Strings without a size use 16.
func FontSize(spec string) float64 {
	for _, field := range strings.Fields(spec) {
		if !strings.HasSuffix(field, "px") {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSuffix(field, "px"), 64); err == nil && v > 0 {
			return v
		}
	}
	return defaultFontSize
}

// WrapText breaks text into lines no wider than width, honouring explicit
// newlines. Only lines that fit fully within maxHeight are returned; the
// trailing words are dropped.
func WrapText(measure func(string) float64, text string, width, lineHeight, maxHeight float64) []string {
	if text == "" || lineHeight <= 0 {
		return nil
	}
	maxLines := int(math.Floor(maxHeight/lineHeight + 1e-9))
	if maxLines <= 0 {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			if len(lines) >= maxLines {
				return lines
			}
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			if len(lines) >= maxLines {
				return lines
			}
			line = w
		}
		lines = append(lines, line)
		if len(lines) >= maxLines {
			return lines
		}
	}
	return lines
}

// TextLine is one wrapped line of a text box, offset from the box origin.
type TextLine struct {
	Text   string
	DX, DY float64
	Width  float64
}

// LayoutText wraps a text box and places each line for its alignment.
// Screen and PDF output share it so both break lines the same way.
func LayoutText(measure func(string) float64, t *state.TextBox) []TextLine {
	lineHeight := FontSize(t.Font) * LineSpacing
	lines := WrapText(measure, t.Text, t.W-2*TextPadding, lineHeight, t.H)
	out := make([]TextLine, 0, len(lines))
	for i, line := range lines {
		lw := measure(line)
		var dx float64
		switch t.Align {
		case state.AlignCenter:
			dx = (t.W - lw) / 2
		case state.AlignRight:
			dx = t.W - TextPadding - lw
		default:
			dx = TextPadding
		}
		out = append(out, TextLine{Text: line, DX: dx, DY: float64(i) * lineHeight, Width: lw})
	}
	return out
}

var (
	fontOnce  sync.Once
	baseFont  *opentype.Font
	faceMu    sync.Mutex
	faceCache = map[int]font.Face{}
)

// faceForSize returns a cached regular face at the given pixel size.
func faceForSize(px float64) font.Face {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			log.Printf("[RENDER] Falling back to bitmap font: %v", err)
			return
		}
		baseFont = f
	})
	if baseFont == nil {
		return basicfont.Face7x13
	}
	key := int(math.Round(px * 4))
	if key < 4 {
		key = 4
	}
	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[key]; ok {
		return f
	}
	face, err := opentype.NewFace(baseFont, &opentype.FaceOptions{
		Size:    float64(key) / 4,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	faceCache[key] = face
	return face
}
