// Package resilience provides retry with exponential backoff for calls
// against the transcription, diarization, and LLM backends, which can
// fail transiently while a sidecar loads a model or restarts.
package resilience
