package estimate

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Default pixel font settings.
const (
	DefaultFontSize = 14
	DefaultDPI      = 72
)

// FaceMetrics measures text in pixels with a golang.org/x/image font face.
//
// A font.Face is not safe for concurrent use, so neither is FaceMetrics.
// Wrap it with NewCached when several goroutines measure through it.
type FaceMetrics struct {
	face font.Face
}

// NewFaceMetrics returns metrics backed by face.
func NewFaceMetrics(face font.Face) *FaceMetrics {
	return &FaceMetrics{face: face}
}

// NewBasicFace returns metrics for the fixed 7x13 bitmap face.
func NewBasicFace() *FaceMetrics {
	return NewFaceMetrics(basicfont.Face7x13)
}

// NewGoFace returns metrics for one of the embedded Go fonts ("goregular",
// "gomono" or "gobold") at size points and dpi dots per inch. Non-positive
// size and dpi fall back to DefaultFontSize and DefaultDPI.
func NewGoFace(name string, size, dpi float64) (*FaceMetrics, error) {
	data, err := GoFontData(name)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s face: %w", name, err)
	}
	return NewFaceMetrics(face), nil
}

// GoFontData returns the TrueType bytes of an embedded Go font.
func GoFontData(name string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "goregular", "go":
		return goregular.TTF, nil
	case "gomono":
		return gomono.TTF, nil
	case "gobold":
		return gobold.TTF, nil
	default:
		return nil, fmt.Errorf("unknown go font %q", name)
	}
}

// LineHeight implements FontMetrics.
func (f *FaceMetrics) LineHeight() float64 {
	return fixedToFloat(f.face.Metrics().Height)
}

// MeasureWidth implements FontMetrics.
func (f *FaceMetrics) MeasureWidth(line string) float64 {
	if line == "" {
		return 0
	}
	return fixedToFloat(font.MeasureString(f.face, line))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
