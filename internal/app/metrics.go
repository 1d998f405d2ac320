package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/treykane/dyntext/estimate"
)

type composerMetrics struct {
	words int
	chars int
	lines int
}

func computeComposerMetrics(content string) composerMetrics {
	if content == "" {
		return composerMetrics{}
	}
	lines := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		lines++
	}
	return composerMetrics{
		words: len(strings.Fields(content)),
		chars: utf8.RuneCountInString(content),
		lines: lines,
	}
}

func (m *Model) composerMetricsSummary() string {
	content := m.editor.Value()
	if strings.TrimSpace(content) == "" {
		return ""
	}
	metrics := computeComposerMetrics(content)
	return fmt.Sprintf("W:%d C:%d L:%d", metrics.words, metrics.chars, metrics.lines)
}

// lineSummary reports the visible lines against the limit, marking a
// composer that scrolls internally.
func (m *Model) lineSummary() string {
	summary := fmt.Sprintf("%d/%d lines", m.editor.LineCount(), m.editor.MaxLines())
	if m.editor.Estimate().Overflows() {
		summary += " (scrolling)"
	}
	return summary
}

// pixelEstimate runs the composer text through the configured pixel font.
func (m *Model) pixelEstimate() (estimate.Result, bool) {
	if m.pixelMetrics == nil {
		return estimate.Result{}, false
	}
	spacing := float64(m.editor.LineSpacing()) * m.pixelMetrics.LineHeight()
	return estimate.Estimate(m.editor.Value(), m.pixelMetrics, estimate.Constraints{
		ContainerWidth: m.cfg.PixelWidth,
		MaxLines:       m.cfg.MaxLines,
		LineSpacing:    spacing,
	}), true
}

func (m *Model) pixelEstimateSummary() string {
	res, ok := m.pixelEstimate()
	if !ok {
		return ""
	}
	width := "unmeasured"
	if m.cfg.PixelWidth > 0 {
		width = fmt.Sprintf("%gpx wide", m.cfg.PixelWidth)
	}
	return fmt.Sprintf("%s: %d lines, %.0fpx (%s)", m.fontLabel, res.LineCount, res.PixelHeight, width)
}
