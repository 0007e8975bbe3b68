package chart

import (
	"fmt"
	"io"
)

// Output formats understood by Encode.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Encode renders values with opts at the given container width and writes
// the result to w as an SVG document or PNG image.
func Encode(w io.Writer, format string, opts Options, containerWidth float64, values []float64, labels []string) error {
	width, height := opts.Dimensions(containerWidth)
	renderer := NewRenderer(opts)

	switch format {
	case FormatSVG:
		surface := NewSVGSurface(width, height)
		renderer.Render(surface, values, labels)
		if _, err := surface.WriteTo(w); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
	case FormatPNG:
		surface, err := NewRasterSurface(int(width), int(height))
		if err != nil {
			return err
		}
		renderer.Render(surface, values, labels)
		if err := surface.EncodePNG(w); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
	default:
		return fmt.Errorf("unsupported chart format %q", format)
	}
	return nil
}
