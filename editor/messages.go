package editor

// SubmitMsg is sent when the user presses the submit binding.
type SubmitMsg struct {
	Value string
}

// HeightChangedMsg is sent after the editor grew or shrank, so hosts can
// re-run their layout.
type HeightChangedMsg struct {
	Height    int
	LineCount int
}
