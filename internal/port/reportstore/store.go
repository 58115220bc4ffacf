// Package reportstore defines the port interface for archiving triage reports.
package reportstore

import (
	"context"

	"github.com/casepilot/casepilot/internal/domain/report"
)

// Summary is the lightweight listing view of an archived report.
type Summary struct {
	ID                string  `json:"id"`
	NarrativeSummary  string  `json:"narrative_summary"`
	OverallConfidence float64 `json:"overall_confidence"`
	WorkersAttempted  int     `json:"workers_attempted"`
	WorkersSucceeded  int     `json:"workers_succeeded"`
	CreatedAt         string  `json:"created_at"`
}

// Store is the port interface for the report archive. The triage core itself
// holds no state across invocations; the archive is a peripheral convenience
// for reviewing past reports.
type Store interface {
	// SaveReport persists a completed report.
	SaveReport(ctx context.Context, r *report.Report) error

	// GetReport retrieves a report by ID. Returns domain.ErrNotFound when
	// no report with that ID exists.
	GetReport(ctx context.Context, id string) (*report.Report, error)

	// ListReports returns summaries of archived reports, newest first,
	// up to limit (0 means a store-chosen default).
	ListReports(ctx context.Context, limit int) ([]Summary, error)
}
