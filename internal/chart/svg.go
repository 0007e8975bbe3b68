package chart

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"golang.org/x/text/width"
)

const svgFontFamily = "system-ui, sans-serif"

// Average advance of a narrow glyph relative to the font size. Wide and
// full-width runes advance a full em.
const narrowAdvance = 0.6

// SVGSurface records drawing calls as SVG elements.
type SVGSurface struct {
	width, height float64
	elements      []string
}

// NewSVGSurface returns an empty surface of the given pixel size.
func NewSVGSurface(width, height float64) *SVGSurface {
	return &SVGSurface{width: width, height: height}
}

// Size implements Surface.
func (s *SVGSurface) Size() (float64, float64) {
	return s.width, s.height
}

// Clear implements Surface.
func (s *SVGSurface) Clear() {
	s.elements = s.elements[:0]
}

// StrokeLine implements Surface.
func (s *SVGSurface) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	s.elements = append(s.elements, fmt.Sprintf(
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
		num(x1), num(y1), num(x2), num(y2), hexString(c), num(width)))
}

// FillRoundedRect implements Surface. A negative height extends downwards
// from y.
func (s *SVGSurface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	x, y, w, h = normalizeRect(x, y, w, h)
	radius = clampRadius(radius, w, h)
	s.elements = append(s.elements, fmt.Sprintf(
		`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s"/>`,
		num(x), num(y), num(w), num(h), num(radius), num(radius), hexString(c)))
}

// FillText implements Surface.
func (s *SVGSurface) FillText(text string, x, y float64, style TextStyle) {
	if text == "" {
		return
	}
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(text))
	s.elements = append(s.elements, fmt.Sprintf(
		`<text x="%s" y="%s" font-family="%s" font-size="%s" fill="%s">%s</text>`,
		num(x), num(y), svgFontFamily, num(style.Size), hexString(style.Color), escaped.String()))
}

// MeasureText implements Surface with a per-rune width estimate.
func (s *SVGSurface) MeasureText(text string, style TextStyle) float64 {
	var total float64
	for _, r := range text {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += style.Size
		default:
			total += style.Size * narrowAdvance
		}
	}
	return total
}

// WriteTo writes the SVG document to w.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// String returns the SVG document.
func (s *SVGSurface) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(s.width), num(s.height), num(s.width), num(s.height))
	sb.WriteString("\n")
	for _, el := range s.elements {
		sb.WriteString(el)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func normalizeRect(x, y, w, h float64) (float64, float64, float64, float64) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return x, y, w, h
}

func clampRadius(radius, w, h float64) float64 {
	return math.Max(0, math.Min(radius, math.Min(w, h)/2))
}
