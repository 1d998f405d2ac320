package config

import (
	"strings"
	"testing"

	"github.com/treykane/dyntext/estimate"
)

func TestParseFontSpec(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "cells", want: "cells"},
		{input: "Cells EastAsian", want: "cells eastasian"},
		{input: "basic", want: "basic"},
		{input: "goregular 14", want: "goregular 14"},
		{input: "gomono 12pt @96dpi canvas", want: "gomono 12pt @96dpi canvas"},
		{input: "gobold 16px @ 144 cached", want: "gobold 16px @144dpi cached"},
		{input: "go 10.5", want: "go 10.5"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParseFontSpec(tt.input)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := spec.String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseFontSpecErrors(t *testing.T) {
	tests := map[string]string{
		"":                 "parse font",
		"12":               "parse font",
		"gomono @":         "parse font",
		"papyrus":          "unknown go font",
		"cells 12":         "fixed size",
		"basic @96":        "fixed size",
		"gomono eastasian": "only applies to cells",
		"cells canvas":     "needs an outline font",
		"gomono 12 italic": "unknown flag",
		"gomono 0":         "must be positive",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := ParseFontSpec(input)
			if err == nil {
				t.Fatalf("expected error for %q", input)
			}
			if !strings.Contains(err.Error(), want) {
				t.Fatalf("expected error containing %q, got %v", want, err)
			}
		})
	}
}

func TestFontSpecMetrics(t *testing.T) {
	t.Run("cells", func(t *testing.T) {
		spec, err := ParseFontSpec("cells eastasian")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		m, err := spec.Metrics()
		if err != nil {
			t.Fatalf("metrics: %v", err)
		}
		cells, ok := m.(estimate.CellMetrics)
		if !ok || !cells.EastAsian {
			t.Fatalf("expected east asian cell metrics, got %#v", m)
		}
		if !spec.Cells() {
			t.Fatal("expected Cells to report true")
		}
	})

	t.Run("basic", func(t *testing.T) {
		spec, err := ParseFontSpec("basic")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		m, err := spec.Metrics()
		if err != nil {
			t.Fatalf("metrics: %v", err)
		}
		if got := m.MeasureWidth("abc"); got != 21 {
			t.Fatalf("expected width 21, got %v", got)
		}
	})

	t.Run("pixel size matches point size at 72dpi", func(t *testing.T) {
		px, err := ParseFontSpec("gomono 14px")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		pt, err := ParseFontSpec("gomono 14pt")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		a, err := px.Metrics()
		if err != nil {
			t.Fatalf("metrics: %v", err)
		}
		b, err := pt.Metrics()
		if err != nil {
			t.Fatalf("metrics: %v", err)
		}
		if a.MeasureWidth("hello") != b.MeasureWidth("hello") {
			t.Fatalf("expected equal widths, got %v and %v", a.MeasureWidth("hello"), b.MeasureWidth("hello"))
		}
	})

	t.Run("canvas", func(t *testing.T) {
		spec, err := ParseFontSpec("goregular 12pt @96dpi canvas")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		m, err := spec.Metrics()
		if err != nil {
			t.Fatalf("metrics: %v", err)
		}
		if _, ok := m.(*estimate.CanvasMetrics); !ok {
			t.Fatalf("expected canvas metrics, got %T", m)
		}
	})

	t.Run("cached", func(t *testing.T) {
		spec, err := ParseFontSpec("basic cached")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		m, err := spec.Metrics()
		if err != nil {
			t.Fatalf("metrics: %v", err)
		}
		cached, ok := m.(*estimate.Cached)
		if !ok {
			t.Fatalf("expected cached metrics, got %T", m)
		}
		cached.MeasureWidth("abc")
		if cached.Len() != 1 {
			t.Fatalf("expected one cached width, got %d", cached.Len())
		}
	})
}
