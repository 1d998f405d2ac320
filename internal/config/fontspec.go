package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/treykane/dyntext/estimate"
)

var (
	fontLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "At", Pattern: `@`},
	})

	fontParser = participle.MustBuild[FontSpec](
		participle.Lexer(fontLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
	)
)

// FontSpec describes the metrics used for the pixel estimate, written as
//
//	<family> [<size>[px|pt]] [@<dpi>[dpi]] [flag ...]
//
// for example "cells", "cells eastasian", "basic", "goregular 14" or
// "gomono 12pt @96dpi canvas".
type FontSpec struct {
	Family string    `parser:"@Ident"`
	Size   *FontSize `parser:"@@?"`
	DPI    string    `parser:"( At @Number 'dpi'? )?"`
	Flags  []string  `parser:"@Ident*"`
}

// FontSize is a size with an optional unit. Sizes without a unit are points.
type FontSize struct {
	Value string `parser:"@Number"`
	Unit  string `parser:"@( 'px' | 'pt' )?"`
}

const (
	familyCells = "cells"
	familyBasic = "basic"

	flagEastAsian = "eastasian"
	flagCanvas    = "canvas"
	flagCached    = "cached"
)

// ParseFontSpec parses and validates a font spec.
func ParseFontSpec(input string) (*FontSpec, error) {
	spec, err := fontParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", input, err)
	}
	spec.Family = strings.ToLower(spec.Family)
	for i, f := range spec.Flags {
		spec.Flags[i] = strings.ToLower(f)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("font %q: %w", input, err)
	}
	return spec, nil
}

func (s *FontSpec) validate() error {
	switch s.Family {
	case familyCells, familyBasic:
		if s.Size != nil || s.DPI != "" {
			return fmt.Errorf("%s has a fixed size", s.Family)
		}
	default:
		if _, err := estimate.GoFontData(s.Family); err != nil {
			return err
		}
	}

	for _, flag := range s.Flags {
		switch flag {
		case flagEastAsian:
			if s.Family != familyCells {
				return fmt.Errorf("%s only applies to cells", flag)
			}
		case flagCanvas:
			if s.Family == familyCells || s.Family == familyBasic {
				return fmt.Errorf("%s needs an outline font", flag)
			}
		case flagCached:
		default:
			return fmt.Errorf("unknown flag %q", flag)
		}
	}

	if _, err := s.points(); err != nil {
		return err
	}
	if _, err := s.dpi(); err != nil {
		return err
	}
	return nil
}

// HasFlag reports whether flag was given.
func (s *FontSpec) HasFlag(flag string) bool {
	for _, f := range s.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// Cells reports whether the spec measures in terminal cells.
func (s *FontSpec) Cells() bool {
	return s.Family == familyCells
}

// String returns the spec in canonical form.
func (s *FontSpec) String() string {
	parts := []string{s.Family}
	if s.Size != nil {
		parts = append(parts, s.Size.Value+s.Size.Unit)
	}
	if s.DPI != "" {
		parts = append(parts, "@"+s.DPI+"dpi")
	}
	parts = append(parts, s.Flags...)
	return strings.Join(parts, " ")
}

// Metrics builds the font metrics the spec describes.
func (s *FontSpec) Metrics() (estimate.FontMetrics, error) {
	var metrics estimate.FontMetrics
	switch s.Family {
	case familyCells:
		metrics = estimate.CellMetrics{EastAsian: s.HasFlag(flagEastAsian)}
	case familyBasic:
		metrics = estimate.NewBasicFace()
	default:
		points, err := s.points()
		if err != nil {
			return nil, err
		}
		dpi, err := s.dpi()
		if err != nil {
			return nil, err
		}
		if s.HasFlag(flagCanvas) {
			data, err := estimate.GoFontData(s.Family)
			if err != nil {
				return nil, err
			}
			metrics, err = estimate.NewCanvasFace(s.Family, data, points, dpi)
			if err != nil {
				return nil, err
			}
		} else {
			metrics, err = estimate.NewGoFace(s.Family, points, dpi)
			if err != nil {
				return nil, err
			}
		}
	}

	if s.HasFlag(flagCached) {
		return estimate.NewCached(metrics, estimate.DefaultCacheSize)
	}
	return metrics, nil
}

func (s *FontSpec) points() (float64, error) {
	if s.Size == nil {
		return estimate.DefaultFontSize, nil
	}
	size, err := parsePositive("size", s.Size.Value)
	if err != nil {
		return 0, err
	}
	if strings.EqualFold(s.Size.Unit, "px") {
		dpi, err := s.dpi()
		if err != nil {
			return 0, err
		}
		size = size * 72 / dpi
	}
	return size, nil
}

func (s *FontSpec) dpi() (float64, error) {
	if s.DPI == "" {
		return estimate.DefaultDPI, nil
	}
	return parsePositive("dpi", s.DPI)
}

func parsePositive(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, value)
	}
	return v, nil
}
