// Package transcription defines the provider interface and common types
// for interacting with speech-to-text backends.
//
// It follows the provider pattern with a pluggable registry for
// runtime-selectable backends.
//
// # Backends
//
//   - transcription/whisper: faster-whisper speech-to-text sidecar
//
// # Usage
//
//	mgr := transcription.NewManager()
//	mgr.Register(whisper.ProviderName, whisper.Factory())
//	err := mgr.Initialize(whisper.ProviderName, cfgMap)
package transcription
