package transcription

// Request holds parameters for a transcription call.
type Request struct {
	// AudioPath is the path to the audio file to transcribe.
	AudioPath string `json:"audio_path"`
	// Language is the expected language of the audio (e.g. "en").
	Language string `json:"language,omitempty"`
	// Model is the transcription model to use.
	Model string `json:"model,omitempty"`
}

// Result holds the outcome of a transcription call.
type Result struct {
	// Segments contains time-aligned transcript segments.
	Segments []Segment `json:"segments"`
	// FullText is the full transcription text as produced by the backend.
	// It is an independent product of the backend, not a concatenation
	// of segment texts.
	FullText string `json:"full_text"`
	// Language is the detected or requested language, if reported.
	Language string `json:"language,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds from recording start.
	Start float64 `json:"start"`
	// End is the segment end time in seconds. Invariant: Start <= End.
	End float64 `json:"end"`
	// Text is the transcribed text for this segment.
	Text string `json:"text"`
}
