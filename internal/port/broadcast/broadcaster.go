// Package broadcast defines the port for pushing real-time triage progress
// events to connected clients.
package broadcast

import "context"

// Broadcaster sends typed events to all connected clients.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}

// Event types emitted over the progress stream.
const (
	EventTriageStarted   = "triage.started"
	EventWorkerStarted   = "worker.started"
	EventWorkerCompleted = "worker.completed"
	EventTriageCompleted = "triage.completed"
)
