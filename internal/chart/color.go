package chart

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ParseHex parses "#rrggbb" or "rrggbb" into an opaque color.
func ParseHex(hex string) (color.Color, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(trimmed) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", hex)
	}
	for _, r := range trimmed {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return nil, fmt.Errorf("invalid hex color %q", hex)
		}
	}
	return drawing.ColorFromHex(trimmed), nil
}

// MustParseHex is ParseHex for compile-time palette constants.
func MustParseHex(hex string) color.Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// hexString renders c as "#rrggbb", dropping alpha.
func hexString(c color.Color) string {
	if c == nil {
		return "none"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
