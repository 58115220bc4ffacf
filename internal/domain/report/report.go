package report

import (
	"time"

	"github.com/casepilot/casepilot/internal/domain/casefile"
	"github.com/casepilot/casepilot/internal/domain/triage"
)

// Report is the single structured result of one triage invocation: the
// detected tasks, every worker's outcome, and the derived summary fields.
// A report is owned by the invocation that created it and is never shared
// or mutated across invocations.
type Report struct {
	ID                 string                   `json:"id"`
	NarrativeSummary   string                   `json:"narrative_summary"`
	DetectedTasks      []triage.DetectedTask    `json:"detected_tasks"`
	WorkerOutcomes     map[string]WorkerOutcome `json:"worker_outcomes"`
	RecommendedActions []string                 `json:"recommended_actions"`
	OverallConfidence  float64                  `json:"overall_confidence"`
	WorkersAttempted   int                      `json:"workers_attempted"`
	WorkersSucceeded   int                      `json:"workers_succeeded"`
	ElapsedMS          int64                    `json:"elapsed_ms"`
	Timestamp          time.Time                `json:"timestamp"`

	// CaseContext carries the metadata-enrichment pass output. It is attached
	// verbatim and never influences detection or dispatch.
	CaseContext *casefile.Context `json:"case_context,omitempty"`

	// AttorneyBrief is the templated prose generated after aggregation.
	AttorneyBrief string `json:"attorney_brief,omitempty"`
}
