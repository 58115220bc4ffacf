// Package triage defines the task-detection domain entities: the closed set of
// task categories a case file may imply, and the detected-task and workflow
// types built from them.
package triage

// Category is one of the fixed set of recognized work types a case file may
// imply. The set is closed: adding a category means adding a constant here,
// a pattern set in the detector, and arms to the exhaustive switches below.
type Category string

const (
	CategoryRecords       Category = "records"
	CategoryCommunication Category = "communication"
	CategoryResearch      Category = "research"
	CategoryScheduling    Category = "scheduling"
	CategoryEvidence      Category = "evidence"
)

// Categories returns all categories in declaration order. The order is part
// of the detector's contract: it breaks ties between equal-priority,
// equal-match-count detections.
func Categories() []Category {
	return []Category{
		CategoryRecords,
		CategoryCommunication,
		CategoryResearch,
		CategoryScheduling,
		CategoryEvidence,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryRecords, CategoryCommunication, CategoryResearch, CategoryScheduling, CategoryEvidence:
		return true
	}
	return false
}

// Priority returns the static urgency of work in this category. Priority is a
// property of the category, not of the text it was detected in.
func (c Category) Priority() Priority {
	switch c {
	case CategoryRecords, CategoryCommunication:
		return PriorityHigh
	case CategoryResearch, CategoryScheduling:
		return PriorityMedium
	case CategoryEvidence:
		return PriorityLow
	}
	return PriorityLow
}

// WorkerID returns the identifier of the worker that handles this category.
// Every category maps to exactly one worker.
func (c Category) WorkerID() string {
	switch c {
	case CategoryRecords:
		return "records-wrangler"
	case CategoryCommunication:
		return "communication-guru"
	case CategoryResearch:
		return "legal-researcher"
	case CategoryScheduling:
		return "scheduler"
	case CategoryEvidence:
		return "evidence-sorter"
	}
	return ""
}

// Priority represents the static urgency associated with a category.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns a comparable weight for sorting; higher means more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// DetectedTask is one category found in the case text, with its match density
// and a crude confidence score. Instances are produced fresh per invocation
// and never mutated after creation.
type DetectedTask struct {
	Category   Category `json:"category"`
	Priority   Priority `json:"priority"`
	MatchCount int      `json:"match_count"`
	Confidence float64  `json:"confidence"`
}

// WorkflowEntry selects one worker to run for a detected category. A workflow
// never contains two entries with the same WorkerID.
type WorkflowEntry struct {
	Category Category `json:"category"`
	WorkerID string   `json:"worker_id"`
}
