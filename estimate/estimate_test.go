package estimate

import (
	"math"
	"strings"
	"testing"
)

// stubMetrics reports a fixed line height and width per rune, with optional
// per-line overrides.
type stubMetrics struct {
	lineHeight float64
	perRune    float64
	widths     map[string]float64
	calls      int
}

func (s *stubMetrics) LineHeight() float64 { return s.lineHeight }

func (s *stubMetrics) MeasureWidth(line string) float64 {
	s.calls++
	if w, ok := s.widths[line]; ok {
		return w
	}
	return float64(len([]rune(line))) * s.perRune
}

func TestEstimateEmptyTextIsOneLine(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 10}
	res := Estimate("", m, Constraints{ContainerWidth: 300, MaxLines: 5})

	if res.LineCount != 1 {
		t.Fatalf("expected 1 line, got %d", res.LineCount)
	}
	if res.PixelHeight != 20 {
		t.Fatalf("expected height 20, got %v", res.PixelHeight)
	}
	if res.ExplicitLines != 1 || res.WrapLines != 0 {
		t.Fatalf("expected explicit=1 wraps=0, got explicit=%d wraps=%d", res.ExplicitLines, res.WrapLines)
	}
}

func TestEstimateHardBreaksWithSpacing(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 10}
	res := Estimate("a\nb\nc", m, Constraints{ContainerWidth: 300, MaxLines: 5, LineSpacing: 2})

	if res.ExplicitLines != 3 {
		t.Fatalf("expected 3 explicit lines, got %d", res.ExplicitLines)
	}
	if res.WrapLines != 0 {
		t.Fatalf("expected no wrapped lines, got %d", res.WrapLines)
	}
	if res.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", res.LineCount)
	}
	if res.PixelHeight != 64 {
		t.Fatalf("expected height 3*(20+2)-2 = 64, got %v", res.PixelHeight)
	}
}

func TestEstimateClampsHardBreaksToMaxLines(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 10}
	res := Estimate("a\nb\nc", m, Constraints{ContainerWidth: 300, MaxLines: 2, LineSpacing: 2})

	if res.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", res.LineCount)
	}
	if res.PixelHeight != 42 {
		t.Fatalf("expected height 2*(20+2)-2 = 42, got %v", res.PixelHeight)
	}
	if !res.Overflows() {
		t.Fatal("expected clamped result to report overflow")
	}
}

func TestEstimateOverflowsOnlyPastMaxLines(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 10}

	exact := Estimate("a\nb", m, Constraints{ContainerWidth: 300, MaxLines: 2})
	if exact.Overflows() {
		t.Fatal("expected text filling exactly max lines not to overflow")
	}

	// one hard break plus one wrap needs three lines
	wrapped := Estimate("a\n"+strings.Repeat("x", 31), m, Constraints{ContainerWidth: 300, MaxLines: 2})
	if wrapped.LineCount != 2 || !wrapped.Overflows() {
		t.Fatalf("expected 2 clamped lines with overflow, got %d lines overflow=%v", wrapped.LineCount, wrapped.Overflows())
	}
}

func TestEstimateZeroWidthSkipsWrapCounting(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 1000}
	res := Estimate("a very long line\nanother", m, Constraints{ContainerWidth: 0, MaxLines: 10})

	if res.WrapLines != 0 {
		t.Fatalf("expected no wrapped lines at zero width, got %d", res.WrapLines)
	}
	if res.LineCount != 2 {
		t.Fatalf("expected 2 lines, got %d", res.LineCount)
	}
	if m.calls != 0 {
		t.Fatalf("expected no measurements at zero width, got %d", m.calls)
	}
	if math.IsNaN(res.PixelHeight) || res.PixelHeight != 40 {
		t.Fatalf("expected height 40, got %v", res.PixelHeight)
	}
}

func TestEstimateTruncatesWrapRatio(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, widths: map[string]float64{"long": 650}}
	res := Estimate("long", m, Constraints{ContainerWidth: 300, MaxLines: 10})

	if res.WrapLines != 2 {
		t.Fatalf("expected floor(650/300) = 2 wrapped lines, got %d", res.WrapLines)
	}
	if res.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", res.LineCount)
	}
}

func TestEstimateWrapCountTruncatesPartialWidths(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, widths: map[string]float64{"x": 301}}
	res := Estimate("x", m, Constraints{ContainerWidth: 300, MaxLines: 5})

	if res.WrapLines != 1 {
		t.Fatalf("expected 1 wrapped line for 301/300, got %d", res.WrapLines)
	}

	m.widths["x"] = 299
	res = Estimate("x", m, Constraints{ContainerWidth: 300, MaxLines: 5})
	if res.WrapLines != 0 {
		t.Fatalf("expected no wrapped line for 299/300, got %d", res.WrapLines)
	}

	m.widths["x"] = 600
	res = Estimate("x", m, Constraints{ContainerWidth: 300, MaxLines: 5})
	if res.WrapLines != 2 {
		t.Fatalf("expected an exact multiple to count 2 wrapped lines, got %d", res.WrapLines)
	}
}

func TestEstimateSumsWrapsAcrossHardLines(t *testing.T) {
	m := &stubMetrics{lineHeight: 1, widths: map[string]float64{"a": 25, "b": 10, "c": 41}}
	res := Estimate("a\nb\nc", m, Constraints{ContainerWidth: 10, MaxLines: 20})

	// 25/10 -> 2, 10/10 -> 1, 41/10 -> 4
	if res.WrapLines != 7 {
		t.Fatalf("expected 7 wrapped lines, got %d", res.WrapLines)
	}
	if res.LineCount != 10 {
		t.Fatalf("expected 3 + 7 = 10 lines, got %d", res.LineCount)
	}
}

func TestEstimateNonFiniteWidthsResolveToZero(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, widths: map[string]float64{
		"inf": math.Inf(1),
		"nan": math.NaN(),
		"neg": -500,
	}}
	res := Estimate("inf\nnan\nneg", m, Constraints{ContainerWidth: 300, MaxLines: 10})

	if res.WrapLines != 0 {
		t.Fatalf("expected non-finite widths to contribute no wraps, got %d", res.WrapLines)
	}
	if res.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", res.LineCount)
	}
}

func TestEstimateNormalizesDegenerateConstraints(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 10}

	cases := []Constraints{
		{ContainerWidth: math.NaN(), MaxLines: 3},
		{ContainerWidth: math.Inf(1), MaxLines: 3},
		{ContainerWidth: -10, MaxLines: 3},
		{ContainerWidth: 100, MaxLines: 3, LineSpacing: math.NaN()},
		{ContainerWidth: 100, MaxLines: 3, LineSpacing: -4},
	}
	for _, c := range cases {
		res := Estimate("hello", m, c)
		if res.LineCount != 1 {
			t.Fatalf("constraints %+v: expected 1 line, got %d", c, res.LineCount)
		}
		if res.PixelHeight != 20 {
			t.Fatalf("constraints %+v: expected height 20, got %v", c, res.PixelHeight)
		}
	}
}

func TestEstimateInvalidLineHeightFallsBackToOne(t *testing.T) {
	for _, h := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		m := &stubMetrics{lineHeight: h, perRune: 1}
		res := Estimate("a\nb", m, Constraints{ContainerWidth: 80, MaxLines: 5})
		if res.PixelHeight != 2 {
			t.Fatalf("line height %v: expected height 2, got %v", h, res.PixelHeight)
		}
	}
}

func TestEstimateMaxLinesBelowOneActsAsOne(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 10}
	texts := []string{"", "a", "a\nb\nc", strings.Repeat("x", 200)}

	for _, text := range texts {
		want := Estimate(text, m, Constraints{ContainerWidth: 300, MaxLines: 1, LineSpacing: 3})
		for _, maxLines := range []int{0, -1, -100} {
			got := Estimate(text, m, Constraints{ContainerWidth: 300, MaxLines: maxLines, LineSpacing: 3})
			if got != want {
				t.Fatalf("text %q maxLines %d: expected %+v, got %+v", text, maxLines, want, got)
			}
		}
	}
}

func TestEstimateBoundsAndFiniteness(t *testing.T) {
	m := &stubMetrics{lineHeight: 17, perRune: 9}
	texts := []string{
		"",
		"\n",
		"\n\n\n\n\n\n\n\n",
		strings.Repeat("word ", 400),
		"short\n" + strings.Repeat("y", 1000) + "\nend",
	}
	for _, text := range texts {
		for maxLines := -2; maxLines <= 8; maxLines++ {
			for _, width := range []float64{0, 1, 50, 300} {
				res := Estimate(text, m, Constraints{ContainerWidth: width, MaxLines: maxLines, LineSpacing: 1.5})
				limit := max(maxLines, 1)
				if res.LineCount < 1 || res.LineCount > limit {
					t.Fatalf("line count %d out of [1, %d]", res.LineCount, limit)
				}
				if math.IsNaN(res.PixelHeight) || math.IsInf(res.PixelHeight, 0) || res.PixelHeight <= 0 {
					t.Fatalf("expected finite positive height, got %v", res.PixelHeight)
				}
			}
		}
	}

	extremes := []struct {
		name    string
		metrics *stubMetrics
		spacing float64
	}{
		{name: "huge spacing", metrics: &stubMetrics{lineHeight: 20, perRune: 10}, spacing: math.MaxFloat64},
		{name: "huge line height", metrics: &stubMetrics{lineHeight: math.MaxFloat64, perRune: 10}},
		{name: "both huge", metrics: &stubMetrics{lineHeight: math.MaxFloat64, perRune: 10}, spacing: math.MaxFloat64},
	}
	for _, tt := range extremes {
		t.Run(tt.name, func(t *testing.T) {
			for _, text := range []string{"a", "a\nb", "a\nb\nc\nd\ne\nf"} {
				res := Estimate(text, tt.metrics, Constraints{ContainerWidth: 300, MaxLines: 5, LineSpacing: tt.spacing})
				if math.IsNaN(res.PixelHeight) || math.IsInf(res.PixelHeight, 0) || res.PixelHeight <= 0 {
					t.Fatalf("text %q: expected finite positive height, got %v", text, res.PixelHeight)
				}
				if res.Rows() < 1 {
					t.Fatalf("text %q: expected positive rows, got %d", text, res.Rows())
				}
			}
		})
	}
}

func TestResultRowsSaturates(t *testing.T) {
	huge := Result{PixelHeight: math.MaxFloat64}
	if got := huge.Rows(); got != math.MaxInt {
		t.Fatalf("expected %d rows, got %d", math.MaxInt, got)
	}
	for _, h := range []float64{0, -3, math.NaN()} {
		if got := (Result{PixelHeight: h}).Rows(); got != 1 {
			t.Fatalf("height %v: expected 1 row, got %d", h, got)
		}
	}
}

func TestEstimateHeightStaysMonotonicWhenSaturated(t *testing.T) {
	m := &stubMetrics{lineHeight: 1e308, perRune: 1}
	prev := 0.0
	text := "a"
	for i := 0; i < 6; i++ {
		res := Estimate(text, m, Constraints{MaxLines: 6})
		if res.PixelHeight < prev {
			t.Fatalf("lines %d: height dropped from %v to %v", res.LineCount, prev, res.PixelHeight)
		}
		prev = res.PixelHeight
		text += "\na"
	}
	if prev != math.MaxFloat64 {
		t.Fatalf("expected saturated height, got %v", prev)
	}
}

func TestEstimateIsIdempotent(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 7}
	c := Constraints{ContainerWidth: 120, MaxLines: 4, LineSpacing: 2}
	text := "first line\n" + strings.Repeat("z", 50)

	first := Estimate(text, m, c)
	second := Estimate(text, m, c)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestEstimateAppendingNewlineNeverShrinks(t *testing.T) {
	m := &stubMetrics{lineHeight: 20, perRune: 7}
	c := Constraints{ContainerWidth: 100, MaxLines: 6, LineSpacing: 1}

	text := "start " + strings.Repeat("q", 30)
	prev := Estimate(text, m, c)
	for i := 0; i < 10; i++ {
		text += "\n"
		next := Estimate(text, m, c)
		if next.LineCount < prev.LineCount {
			t.Fatalf("step %d: line count dropped from %d to %d", i, prev.LineCount, next.LineCount)
		}
		if next.PixelHeight < prev.PixelHeight {
			t.Fatalf("step %d: height dropped from %v to %v", i, prev.PixelHeight, next.PixelHeight)
		}
		prev = next
	}
	if prev.LineCount != c.MaxLines {
		t.Fatalf("expected to settle at %d lines, got %d", c.MaxLines, prev.LineCount)
	}
}

func TestEstimateZeroSpacingIsLinesTimesLineHeight(t *testing.T) {
	m := &stubMetrics{lineHeight: 13, perRune: 1}
	for n := 1; n <= 6; n++ {
		text := strings.Repeat("\n", n-1)
		res := Estimate(text, m, Constraints{ContainerWidth: 100, MaxLines: 10})
		if want := float64(n) * 13; res.PixelHeight != want {
			t.Fatalf("%d lines: expected height %v, got %v", n, want, res.PixelHeight)
		}
	}
}

func TestEstimateStopsMeasuringOnceLimitReached(t *testing.T) {
	m := &stubMetrics{lineHeight: 1, perRune: 1}
	text := strings.Repeat(strings.Repeat("m", 100)+"\n", 1000)

	res := Estimate(text, m, Constraints{ContainerWidth: 10, MaxLines: 3})
	if res.LineCount != 3 {
		t.Fatalf("expected 3 lines, got %d", res.LineCount)
	}
	if m.calls != 1 {
		t.Fatalf("expected a single measurement before hitting the limit, got %d", m.calls)
	}
}

func TestHeightForLines(t *testing.T) {
	m := &stubMetrics{lineHeight: 20}
	if got := HeightForLines(3, m, 2); got != 64 {
		t.Fatalf("expected 64, got %v", got)
	}
	if got := HeightForLines(0, m, 2); got != 20 {
		t.Fatalf("expected a single line for n=0, got %v", got)
	}
}

func TestResultRowsRoundsUp(t *testing.T) {
	if got := (Result{PixelHeight: 2.1}).Rows(); got != 3 {
		t.Fatalf("expected 3 rows, got %d", got)
	}
	if got := (Result{PixelHeight: 4}).Rows(); got != 4 {
		t.Fatalf("expected 4 rows, got %d", got)
	}
}

func BenchmarkEstimate(b *testing.B) {
	cells := CellMetrics{}
	cached, err := NewCached(NewBasicFace(), 0)
	if err != nil {
		b.Fatal(err)
	}

	short := "hello\nworld"
	long := strings.Repeat("the quick brown fox jumps over the lazy dog\n", 200)

	b.Run("cells/short", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Estimate(short, cells, Constraints{ContainerWidth: 40, MaxLines: 5})
		}
	})
	b.Run("cells/long", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Estimate(long, cells, Constraints{ContainerWidth: 40, MaxLines: 500})
		}
	})
	b.Run("face-cached/long", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Estimate(long, cached, Constraints{ContainerWidth: 300, MaxLines: 500})
		}
	})
}
