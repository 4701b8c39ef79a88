// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// # Backends
//
//   - diarization/pyannote: Pyannote-based speaker diarization sidecar
package diarization
