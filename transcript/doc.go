// Package transcript merges transcription and diarization results into
// a single speaker-attributed transcript by temporal overlap.
//
// The merge iterates speaker turns in producer order and attaches the
// text of every transcript segment whose time range strictly overlaps
// the turn. Turns with no overlapping speech are dropped, and the
// backend's full text is carried through unchanged.
package transcript
