package providers

import (
	"errors"
	"fmt"

	"github.com/upb/ai-proxy/models"
)

var (
	// ErrProviderNotFound is returned when no strategy serves a provider
	ErrProviderNotFound = errors.New("provider not found")

	// ErrProviderAlreadyRegistered is returned when two strategies claim the same provider
	ErrProviderAlreadyRegistered = errors.New("provider already registered")
)

// Registry maps each provider kind to its strategy. It is immutable once built,
// so lookups need no locking.
type Registry struct {
	strategies map[models.ProviderKind]Strategy
}

// NewRegistry builds a registry from strategies
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	r := &Registry{
		strategies: make(map[models.ProviderKind]Strategy, len(strategies)),
	}

	for _, s := range strategies {
		if s == nil {
			return nil, errors.New("strategy cannot be nil")
		}
		if _, exists := r.strategies[s.Kind()]; exists {
			return nil, fmt.Errorf("%w: %s", ErrProviderAlreadyRegistered, s.Kind())
		}
		r.strategies[s.Kind()] = s
	}

	return r, nil
}

// Get retrieves the strategy for kind
func (r *Registry) Get(kind models.ProviderKind) (Strategy, error) {
	s, exists := r.strategies[kind]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, kind)
	}
	return s, nil
}

// Kinds returns the registered providers in the canonical order
func (r *Registry) Kinds() []models.ProviderKind {
	kinds := make([]models.ProviderKind, 0, len(r.strategies))
	for _, kind := range models.ProviderKinds() {
		if _, ok := r.strategies[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Count returns the number of registered strategies
func (r *Registry) Count() int {
	return len(r.strategies)
}

// Missing lists supported providers that have no strategy
func (r *Registry) Missing() []models.ProviderKind {
	var missing []models.ProviderKind
	for _, kind := range models.ProviderKinds() {
		if _, ok := r.strategies[kind]; !ok {
			missing = append(missing, kind)
		}
	}
	return missing
}
