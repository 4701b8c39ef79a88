// Package meeting orchestrates the audio processing pipeline. A
// Pipeline runs transcription and diarization backends, merges their
// outputs into a diarized transcript, detects the language, cleans the
// text, and optionally summarizes it with an LLM. Every intermediate
// product is kept on the Result.
package meeting
