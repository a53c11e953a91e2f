package observability

import (
	"context"
	"sync"
)

// Dispatch outcomes recorded by Metrics
const (
	StatusSuccess     = "success"
	StatusFailure     = "failure"
	StatusConfigError = "config_error"
)

// Metrics collects application metrics.
type Metrics interface {
	RecordDispatch(ctx context.Context, labels RequestLabels)
}

// RequestLabels contains metric dimensions.
type RequestLabels struct {
	Provider string
	Status   string
}

// Counters is an in-process Metrics implementation keyed by provider and status
type Counters struct {
	mu     sync.Mutex
	counts map[RequestLabels]int64
}

// NewCounters creates an empty counter set
func NewCounters() *Counters {
	return &Counters{counts: make(map[RequestLabels]int64)}
}

// RecordDispatch increments the counter for labels
func (c *Counters) RecordDispatch(_ context.Context, labels RequestLabels) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[labels]++
}

// Snapshot returns provider -> status -> count
func (c *Counters) Snapshot() map[string]map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]map[string]int64)
	for labels, n := range c.counts {
		if out[labels.Provider] == nil {
			out[labels.Provider] = make(map[string]int64)
		}
		out[labels.Provider][labels.Status] = n
	}
	return out
}
