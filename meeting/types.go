package meeting

import (
	"github.com/skillsenselab/meetingminds/diarization"
	"github.com/skillsenselab/meetingminds/transcript"
	"github.com/skillsenselab/meetingminds/transcription"
)

// Request holds parameters for one pipeline run.
type Request struct {
	// AudioPath is the path to the recording to process.
	AudioPath string `json:"audio_path"`
	// Language is an optional language hint passed to the transcription
	// backend. Detection still runs on the merged transcript.
	Language string `json:"language,omitempty"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// Summarize requests an LLM summary of the cleaned transcript.
	Summarize bool `json:"summarize,omitempty"`
}

// Result carries every intermediate product of a pipeline run so
// callers can audit each stage, not just the final output.
type Result struct {
	// JobID uniquely identifies this run.
	JobID string `json:"job_id"`
	// AudioPath is the processed recording.
	AudioPath string `json:"audio_path"`
	// Transcription is the raw transcription backend output.
	Transcription *transcription.Result `json:"transcription"`
	// Diarization is the raw diarization backend output.
	Diarization *diarization.Result `json:"diarization"`
	// DiarizedTranscript is the speaker-attributed transcript built by
	// merging transcription and diarization.
	DiarizedTranscript *transcript.DiarizedTranscript `json:"diarized_transcript"`
	// Language is the detected language code, or "" when detection
	// could not decide.
	Language string `json:"language,omitempty"`
	// CleanedTranscript is the normalized, stopword-filtered transcript.
	CleanedTranscript *transcript.DiarizedTranscript `json:"cleaned_transcript"`
	// Summary is the LLM meeting summary. Empty unless requested.
	Summary string `json:"summary,omitempty"`
}
