// Package worker defines the worker port (interface) and the registry the
// engine dispatches through. Workers are the pluggable domain analyzers; the
// engine treats them as opaque.
package worker

import (
	"context"

	"github.com/casepilot/casepilot/internal/domain/triage"
)

// Result is the structured payload a worker returns on success. Confidence
// must be in [0,1]; RecommendedAction is a short imperative sentence. Details
// carries worker-specific fields and is passed through to the report verbatim.
type Result struct {
	Confidence        float64
	RecommendedAction string
	Details           map[string]any
}

// Worker is the port interface for one domain analyzer.
type Worker interface {
	// ID returns the unique worker identifier (e.g. "records-wrangler").
	ID() string

	// Category returns the task category this worker serves.
	Category() triage.Category

	// Description is a one-line human-readable capability summary.
	Description() string

	// Analyze runs the worker against the case text. The text is read-only
	// and may be shared with concurrently running workers. Implementations
	// must honor ctx cancellation on a best-effort basis; the engine does not
	// depend on them actually stopping.
	Analyze(ctx context.Context, text string, task triage.DetectedTask) (Result, error)
}
