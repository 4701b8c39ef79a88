package provider

import "context"

// Provider is the base interface all backends must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	// For model-backed sidecars this reports loaded/ready state, so
	// readiness is explicit rather than discovered on first call.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
