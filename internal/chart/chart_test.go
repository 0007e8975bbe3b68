package chart

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rectCall struct {
	x, y, w, h, radius float64
	color              color.Color
}

type textCall struct {
	text  string
	x, y  float64
	style TextStyle
}

// recordingSurface measures every rune as a fixed advance and records calls.
type recordingSurface struct {
	width, height float64
	advance       float64
	cleared       int
	lines         [][4]float64
	rects         []rectCall
	texts         []textCall
}

func newRecordingSurface(width, height float64) *recordingSurface {
	return &recordingSurface{width: width, height: height, advance: 10}
}

func (s *recordingSurface) Size() (float64, float64) { return s.width, s.height }
func (s *recordingSurface) Clear() { s.cleared++ }

func (s *recordingSurface) StrokeLine(x1, y1, x2, y2 float64, _ color.Color, _ float64) {
	s.lines = append(s.lines, [4]float64{x1, y1, x2, y2})
}

func (s *recordingSurface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	s.rects = append(s.rects, rectCall{x, y, w, h, radius, c})
}

func (s *recordingSurface) FillText(text string, x, y float64, style TextStyle) {
	s.texts = append(s.texts, textCall{text, x, y, style})
}

func (s *recordingSurface) MeasureText(text string, _ TextStyle) float64 {
	return float64(len([]rune(text))) * s.advance
}

func (s *recordingSurface) textsAt(y float64) []string {
	var out []string
	for _, t := range s.texts {
		if t.y == y {
			out = append(out, t.text)
		}
	}
	return out
}

func TestRenderDrawsAxesAndProportionalBars(t *testing.T) {
	s := newRecordingSurface(572, 260)
	Render(s, []float64{10, 5, -2, 0, 2.5}, []string{"A", "B", "C", "D", "E"})

	require.Equal(t, 1, s.cleared)
	require.Len(t, s.lines, 2)
	assert.Equal(t, [4]float64{36, 224, 536, 224}, s.lines[0], "bottom axis")
	assert.Equal(t, [4]float64{36, 36, 36, 224}, s.lines[1], "left axis")

	require.Len(t, s.rects, 5)
	slot := 500.0 / 5
	plot := 260.0 - 72
	for i, rect := range s.rects {
		assert.InDelta(t, 36+float64(i)*slot+slot*0.2, rect.x, 1e-9, "bar %d x", i)
		assert.InDelta(t, slot*0.6, rect.w, 1e-9, "bar %d width", i)
	}
	assert.InDelta(t, plot, s.rects[0].h, 1e-9)
	assert.InDelta(t, plot/2, s.rects[1].h, 1e-9)
	assert.InDelta(t, -plot/5, s.rects[2].h, 1e-9)
	assert.InDelta(t, 0, s.rects[3].h, 1e-9)
	assert.InDelta(t, 36, s.rects[0].y, 1e-9)

	defaults := DefaultOptions()
	for i, rect := range s.rects {
		assert.Equal(t, defaults.BarColors[i%2], rect.color, "bar %d color alternates", i)
	}
	assert.NotEqual(t, s.rects[0].color, s.rects[1].color)
}

func TestRenderValueLabels(t *testing.T) {
	s := newRecordingSurface(400, 260)
	Render(s, []float64{9.583333, 5}, []string{"x", "y"})

	var values []string
	for _, text := range s.texts {
		if text.style.Size == 13 {
			values = append(values, text.text)
			assert.InDelta(t, 0, text.y-(s.rects[len(values)-1].y-6), 1e-9, "value sits above its bar")
		}
	}
	assert.Equal(t, []string{"9.6", "5.0"}, values)
}

func TestRenderNonFiniteValues(t *testing.T) {
	s := newRecordingSurface(400, 260)
	Render(s, []float64{math.Inf(1), 4, math.NaN(), math.Inf(-1)}, []string{"a", "b", "c", "d"})

	require.Len(t, s.rects, 4)
	plot := 260.0 - 72
	assert.Equal(t, 0.0, s.rects[0].h, "+Inf bar is flat")
	assert.InDelta(t, plot, s.rects[1].h, 1e-9, "finite max scales the finite bar")
	assert.Equal(t, 0.0, s.rects[2].h, "NaN bar is flat")
	assert.Equal(t, 0.0, s.rects[3].h, "-Inf bar is flat")

	var values []string
	for _, text := range s.texts {
		if text.style.Size == 13 {
			values = append(values, text.text)
		}
	}
	assert.Equal(t, []string{"+Inf", "4.0", "NaN", "-Inf"}, values)
}

func TestRenderSingleZeroValue(t *testing.T) {
	s := newRecordingSurface(300, 260)

	require.NotPanics(t, func() {
		Render(s, []float64{0}, []string{"Only"})
	})
	require.Len(t, s.rects, 1)
	assert.Zero(t, s.rects[0].h)
	assert.Equal(t, []string{"0.0"}, s.textsAt(224-6))
}

func TestRenderEmptySeries(t *testing.T) {
	s := newRecordingSurface(300, 260)

	require.NotPanics(t, func() {
		Render(s, nil, nil)
	})
	assert.Len(t, s.lines, 2)
	assert.Empty(t, s.rects)
	assert.Empty(t, s.texts)
}

func TestRenderMissingLabels(t *testing.T) {
	s := newRecordingSurface(300, 260)
	Render(s, []float64{1, 2}, []string{"first"})

	labelY := 260.0 - 36 + 14
	assert.Equal(t, []string{"first"}, s.textsAt(labelY))
}

func TestRenderWrapsLongLabels(t *testing.T) {
	// slot 100, bar width 60, 10px per rune => 6 runes per line
	s := newRecordingSurface(172, 260)
	Render(s, []float64{3}, []string{"Attendance management"})

	labelStyleSize := 12.0
	var lines []textCall
	for _, text := range s.texts {
		if text.style.Size == labelStyleSize {
			lines = append(lines, text)
		}
	}
	require.Len(t, lines, 4)
	assert.Equal(t, "Attend", lines[0].text)
	assert.Equal(t, "ance m", lines[1].text)
	assert.Equal(t, "anagem", lines[2].text)
	assert.Equal(t, "ent", lines[3].text)
	for i, line := range lines {
		assert.LessOrEqual(t, s.MeasureText(line.text, line.style), s.rects[0].w)
		assert.InDelta(t, 260-36+14+float64(i)*14, line.y, 1e-9)
		assert.Equal(t, s.rects[0].x, line.x)
	}
}

func TestRenderScalesWithDevicePixelRatio(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 2
	width, height := opts.Dimensions(300)
	require.Equal(t, 600.0, width)
	require.Equal(t, 520.0, height)

	s := newRecordingSurface(width, height)
	NewRenderer(opts).Render(s, []float64{1}, []string{"a"})

	assert.Equal(t, [4]float64{72, 448, 528, 448}, s.lines[0])
	require.Len(t, s.rects, 1)
	assert.Equal(t, 20.0, s.rects[0].radius)
	assert.Equal(t, []string{"1.0"}, s.textsAt(60))
}

func TestWrapText(t *testing.T) {
	perRune := func(text string) float64 { return float64(len([]rune(text))) * 10 }

	tests := map[string]struct {
		text     string
		maxWidth float64
		expected []string
	}{
		"FitsOnOneLine":    {text: "abc", maxWidth: 30, expected: []string{"abc"}},
		"WrapsPerRune":     {text: "abcdefg", maxWidth: 30, expected: []string{"abc", "def", "g"}},
		"Empty":            {text: "", maxWidth: 30, expected: []string{""}},
		"RuneWiderThanMax": {text: "ab", maxWidth: 5, expected: []string{"a", "b"}},
		"MultiByteRunes":   {text: "勤務管理", maxWidth: 20, expected: []string{"勤務", "管理"}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			lines := WrapText(tc.text, tc.maxWidth, perRune)
			assert.Equal(t, tc.expected, lines)
		})
	}
}
