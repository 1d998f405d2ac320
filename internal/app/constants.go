package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3

	// MinTranscriptRows keeps part of the transcript visible however tall
	// the composer grows.
	MinTranscriptRows = 3
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters in one message.
	InputCharLimit = 4000

	// MaxTranscriptMessages bounds the transcript; older messages are dropped.
	MaxTranscriptMessages = 200
)

// Rendering constants control render timing and optimization
const (
	// RenderDebounce is the delay before re-rendering after a window resize
	RenderDebounce = 300 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching
	// Widths are rounded down to a multiple of this value
	RenderWidthBucket = 20

	// maxRendererCacheEntries bounds the number of width-specific Glamour
	// renderers retained in memory.
	maxRendererCacheEntries = 8

	// maxRenderCacheEntries bounds the number of rendered transcripts kept
	// per (revision, width) pair.
	maxRenderCacheEntries = 16
)

// Draft constants
const (
	// draftAutoSaveInterval controls how often the composer content is saved
	// to the draft file.
	draftAutoSaveInterval = 5 * time.Second

	// DraftFilePermission is the permission mode for the draft file
	DraftFilePermission = 0o600
)
