package diarization

// Request holds parameters for a diarization call.
type Request struct {
	// AudioPath is the path to the audio file to diarize.
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// Result holds the outcome of a diarization call. Segment order is
// whatever the backend produced; consumers must not assume it is sorted
// by time.
type Result struct {
	// Segments contains speaker-attributed time ranges.
	Segments []Turn `json:"segments"`
	// NumSpeakers is the number of distinct speakers detected.
	NumSpeakers int `json:"num_speakers"`
}

// Turn represents one speaker turn: who spoke during a time range.
type Turn struct {
	// Start is the turn start time in seconds from recording start.
	Start float64 `json:"start"`
	// End is the turn end time in seconds. Invariant: Start <= End.
	End float64 `json:"end"`
	// Speaker is the identified speaker label.
	Speaker string `json:"speaker"`
	// Text is transcript text attached after alignment. Diarization
	// backends identify who spoke when, not what was said, so this is
	// always empty in a fresh Result.
	Text string `json:"text,omitempty"`
}
