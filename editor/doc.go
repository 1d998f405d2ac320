// Package editor provides a Bubble Tea text input that grows with its
// content.
//
// The component wraps bubbles/textarea. Every time the text changes, or the
// host reports a new width through SetWidth, the text is run through
// estimate.Estimate and the textarea is resized to the resulting line count,
// up to Config.MaxLines. Past that limit the textarea scrolls internally.
//
// Hosts lay out around Height(), react to HeightChangedMsg when the
// component grows or shrinks, and receive SubmitMsg when the user submits.
package editor
