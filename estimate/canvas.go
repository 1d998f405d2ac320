package estimate

import (
	"fmt"

	"github.com/tdewolff/canvas"
)

const mmPerInch = 25.4

// CanvasMetrics measures text with a tdewolff/canvas font face.
//
// canvas reports lengths in millimetres; CanvasMetrics converts them to
// pixels at DPI so the results can be compared with a pixel container width.
type CanvasMetrics struct {
	face *canvas.FontFace
	dpi  float64
}

// NewCanvasMetrics returns metrics backed by face at dpi dots per inch.
func NewCanvasMetrics(face *canvas.FontFace, dpi float64) *CanvasMetrics {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &CanvasMetrics{face: face, dpi: dpi}
}

// NewCanvasFace loads TrueType/OpenType fontData into a canvas font family
// and returns metrics for its regular face at sizePt points.
func NewCanvasFace(name string, fontData []byte, sizePt, dpi float64) (*CanvasMetrics, error) {
	if sizePt <= 0 {
		sizePt = DefaultFontSize
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(fontData, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font %s: %w", name, err)
	}
	face := family.Face(sizePt, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	return NewCanvasMetrics(face, dpi), nil
}

// LineHeight implements FontMetrics.
func (c *CanvasMetrics) LineHeight() float64 {
	return c.toPixels(c.face.Metrics().LineHeight)
}

// MeasureWidth implements FontMetrics.
func (c *CanvasMetrics) MeasureWidth(line string) float64 {
	if line == "" {
		return 0
	}
	return c.toPixels(c.face.TextWidth(line))
}

func (c *CanvasMetrics) toPixels(mm float64) float64 {
	return mm * c.dpi / mmPerInch
}
