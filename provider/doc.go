// Package provider implements the generic backend-provider kernel used
// by the transcription, diarization, and llm packages: named factories,
// a thread-safe registry of instances, a manager with an explicit
// Initialize step, and pluggable selection strategies.
package provider
