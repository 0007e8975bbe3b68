// Package chart draws the per-task hour savings as a vertical bar chart onto
// a drawing Surface.
package chart

import (
	"fmt"
	"image/color"
	"math"
)

// TextStyle describes how a label is drawn.
type TextStyle struct {
	Size  float64 // font size in surface pixels
	Color color.Color
}

// Surface is a mutable drawing target with known pixel dimensions.
// Text coordinates address the left end of the alphabetic baseline.
type Surface interface {
	Size() (width, height float64)
	Clear()
	StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64)
	FillRoundedRect(x, y, w, h, radius float64, c color.Color)
	FillText(text string, x, y float64, style TextStyle)
	MeasureText(text string, style TextStyle) float64
}

// Options holds the layout and palette of the chart. Lengths are in CSS
// pixels and are multiplied by Scale when drawn.
type Options struct {
	Height       float64
	Padding      float64
	Scale        float64
	BarRatio     float64
	CornerRadius float64

	AxisColor     color.Color
	AxisWidth     float64
	BarColors     [2]color.Color
	ValueColor    color.Color
	ValueSize     float64
	ValueOffset   float64
	LabelColor    color.Color
	LabelSize     float64
	LabelOffset   float64
	LabelLineStep float64
}

// DefaultOptions returns the standard palette and layout at scale 1.
func DefaultOptions() Options {
	return Options{
		Height:       260,
		Padding:      36,
		Scale:        1,
		BarRatio:     0.6,
		CornerRadius: 10,

		AxisColor:     MustParseHex("#e7eaf0"),
		AxisWidth:     1,
		BarColors:     [2]color.Color{MustParseHex("#67e8f9"), MustParseHex("#93c5fd")},
		ValueColor:    MustParseHex("#0f172a"),
		ValueSize:     13,
		ValueOffset:   6,
		LabelColor:    MustParseHex("#586074"),
		LabelSize:     12,
		LabelOffset:   14,
		LabelLineStep: 14,
	}
}

// Dimensions returns the surface size in device pixels for a container of
// the given CSS width.
func (o Options) Dimensions(containerWidth float64) (width, height float64) {
	scale := o.scale()
	return math.Round(containerWidth * scale), math.Round(o.Height * scale)
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Renderer draws bar charts with fixed Options.
type Renderer struct {
	opts Options
}

// NewRenderer returns a Renderer using opts.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render draws values and labels onto s with DefaultOptions.
func Render(s Surface, values []float64, labels []string) {
	NewRenderer(DefaultOptions()).Render(s, values, labels)
}

// Render clears s and draws the axes, one bar per value, the value above each
// bar and the wrapped category label under the axis. labels[i] names
// values[i]; a missing label draws nothing. Bar heights are proportional to
// max(1, values...), so an all-zero series draws flat bars. Non-finite values
// keep their value label but draw a flat bar.
func (r *Renderer) Render(s Surface, values []float64, labels []string) {
	o := r.opts
	scale := o.scale()
	w, h := s.Size()
	pad := o.Padding * scale

	s.Clear()

	axisWidth := o.AxisWidth * scale
	s.StrokeLine(pad, h-pad, w-pad, h-pad, o.AxisColor, axisWidth)
	s.StrokeLine(pad, pad, pad, h-pad, o.AxisColor, axisWidth)

	if len(values) == 0 {
		return
	}

	maxValue := 1.0
	for _, v := range values {
		if v > maxValue && !math.IsInf(v, 1) {
			maxValue = v
		}
	}

	slot := (w - pad*2) / float64(len(values))
	barWidth := slot * o.BarRatio
	plotHeight := h - pad*2
	valueStyle := TextStyle{Size: o.ValueSize * scale, Color: o.ValueColor}
	labelStyle := TextStyle{Size: o.LabelSize * scale, Color: o.LabelColor}

	for i, v := range values {
		x := pad + float64(i)*slot + (slot-barWidth)/2
		barHeight := plotHeight * (v / maxValue)
		if math.IsNaN(barHeight) || math.IsInf(barHeight, 0) {
			barHeight = 0
		}
		y := h - pad - barHeight

		s.FillRoundedRect(x, y, barWidth, barHeight, o.CornerRadius*scale, o.BarColors[i%2])
		s.FillText(fmt.Sprintf("%.1f", v), x, y-o.ValueOffset*scale, valueStyle)

		if i >= len(labels) {
			continue
		}
		lines := WrapText(labels[i], barWidth, func(text string) float64 {
			return s.MeasureText(text, labelStyle)
		})
		lineY := h - pad + o.LabelOffset*scale
		for _, line := range lines {
			s.FillText(line, x, lineY, labelStyle)
			lineY += o.LabelLineStep * scale
		}
	}
}

// WrapText splits text into lines no wider than maxWidth according to
// measure. Runes are appended greedily; a rune that would overflow a
// non-empty line starts the next one. A single rune wider than maxWidth
// still gets its own line. The final partial line is always returned.
func WrapText(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	line := ""
	for _, r := range text {
		candidate := line + string(r)
		if measure(candidate) > maxWidth && line != "" {
			lines = append(lines, line)
			line = string(r)
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
