package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	regularFont     *opentype.Font
	regularFontErr  error
	regularFontOnce sync.Once
)

func loadRegularFont() (*opentype.Font, error) {
	regularFontOnce.Do(func() {
		regularFont, regularFontErr = opentype.Parse(goregular.TTF)
	})
	return regularFont, regularFontErr
}

// RasterSurface draws onto an RGBA image. Shapes go through go-chart's
// raster graphic context; text uses Go Regular faces cached per size.
type RasterSurface struct {
	img        *image.RGBA
	gc         *drawing.RasterGraphicContext
	background color.Color
	font       *opentype.Font
	faces      map[float64]font.Face
}

// NewRasterSurface allocates a surface of the given pixel size with a white
// background.
func NewRasterSurface(width, height int) (*RasterSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create graphic context: %w", err)
	}
	f, err := loadRegularFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	s := &RasterSurface{
		img:        img,
		gc:         gc,
		background: color.White,
		font:       f,
		faces:      make(map[float64]font.Face),
	}
	s.Clear()
	return s, nil
}

// Image returns the underlying image.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Size implements Surface.
func (s *RasterSurface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear implements Surface.
func (s *RasterSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// StrokeLine implements Surface.
func (s *RasterSurface) StrokeLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	s.gc.BeginPath()
	s.gc.SetStrokeColor(c)
	s.gc.SetLineWidth(width)
	s.gc.MoveTo(x1, y1)
	s.gc.LineTo(x2, y2)
	s.gc.Stroke()
}

// FillRoundedRect implements Surface. A negative height extends downwards
// from y.
func (s *RasterSurface) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {
	x, y, w, h = normalizeRect(x, y, w, h)
	if w == 0 || h == 0 {
		return
	}
	r := clampRadius(radius, w, h)

	s.gc.BeginPath()
	s.gc.SetFillColor(c)
	s.gc.MoveTo(x+r, y)
	s.gc.LineTo(x+w-r, y)
	s.gc.QuadCurveTo(x+w, y, x+w, y+r)
	s.gc.LineTo(x+w, y+h-r)
	s.gc.QuadCurveTo(x+w, y+h, x+w-r, y+h)
	s.gc.LineTo(x+r, y+h)
	s.gc.QuadCurveTo(x, y+h, x, y+h-r)
	s.gc.LineTo(x, y+r)
	s.gc.QuadCurveTo(x, y, x+r, y)
	s.gc.Close()
	s.gc.Fill()
}

// FillText implements Surface.
func (s *RasterSurface) FillText(text string, x, y float64, style TextStyle) {
	if text == "" {
		return
	}
	face := s.face(style.Size)
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))},
	}
	d.DrawString(text)
}

// MeasureText implements Surface.
func (s *RasterSurface) MeasureText(text string, style TextStyle) float64 {
	face := s.face(style.Size)
	if face == nil {
		return 0
	}
	return float64(font.MeasureString(face, text)) / 64
}

// EncodePNG writes the image to w as PNG.
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}

func (s *RasterSurface) face(size float64) font.Face {
	if size <= 0 {
		size = 12
	}
	if face, ok := s.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	s.faces[size] = face
	return face
}
