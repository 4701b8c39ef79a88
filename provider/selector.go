package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Selector picks a provider from the available options.
type Selector[T Provider] interface {
	Select(ctx context.Context, providers map[string]T) (T, error)
}

// PrioritySelector tries providers in the given priority order
// and returns the first one that is available.
type PrioritySelector[T Provider] struct {
	// Priority is the ordered list of provider names to try.
	Priority []string
}

// Select returns the first available provider in priority order.
func (s *PrioritySelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	for _, name := range s.Priority {
		if p, ok := providers[name]; ok && p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no available provider found in priority list")
}

// RoundRobinSelector rotates through providers in sorted-name order,
// skipping ones that are unavailable.
type RoundRobinSelector[T Provider] struct {
	mu   sync.Mutex
	next int
}

// Select returns the next available provider in rotation.
func (s *RoundRobinSelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	s.mu.Lock()
	start := s.next
	s.mu.Unlock()

	for i := 0; i < len(names); i++ {
		idx := (start + i) % len(names)
		if p := providers[names[idx]]; p.IsAvailable(ctx) {
			s.mu.Lock()
			s.next = (idx + 1) % len(names)
			s.mu.Unlock()
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no available provider found")
}

// HealthCheckSelector picks the first available provider by calling
// IsAvailable in sorted-name order.
type HealthCheckSelector[T Provider] struct{}

// Select returns the first provider that reports as available.
func (s *HealthCheckSelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if p := providers[name]; p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no available provider found")
}
