// Package report defines the worker outcome and aggregated report entities.
package report

// State represents the terminal result of one worker's execution attempt.
type State string

const (
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateTimedOut  State = "timed_out"
)

// WorkerOutcome records how a single worker's execution attempt ended.
// Exactly one outcome exists per workflow entry, and it is immutable once
// recorded by the engine.
type WorkerOutcome struct {
	WorkerID  string         `json:"worker_id"`
	State     State          `json:"state"`
	Payload   map[string]any `json:"payload,omitempty"`
	Error     string         `json:"error,omitempty"`
	ElapsedMS int64          `json:"elapsed_ms"`
}
