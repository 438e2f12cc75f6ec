package render

import (
	"image/color"
	"strconv"
	"strings"
)

var namedColors = map[string]color.RGBA{
	"black":  {A: 255},
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"red":    {R: 255, A: 255},
	"green":  {G: 255, A: 255},
	"blue":   {B: 255, A: 255},
	"yellow": {R: 255, G: 255, A: 255},
}

// ParseColor converts a stored color string to RGBA. It accepts the named
// palette colors and #rgb / #rrggbb hex. Anything else renders black.
func ParseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if !strings.HasPrefix(s, "#") {
		return namedColors["black"]
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return namedColors["black"]
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return namedColors["black"]
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// ColorString is the inverse of ParseColor for palette colors; other colors
// are written as #rrggbb.
func ColorString(c color.Color) string {
	r, g, b, _ := c.RGBA()
	rgba := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
	for name, v := range namedColors {
		if v == rgba {
			return name
		}
	}
	return "#" + hex2(rgba.R) + hex2(rgba.G) + hex2(rgba.B)
}

func hex2(v uint8) string {
	s := strconv.FormatUint(uint64(v), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
