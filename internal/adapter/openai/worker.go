package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/casepilot/casepilot/internal/domain"
	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/port/worker"
)

// llmWorker is one triage worker: a named prompt specialization of the
// shared client. All five workers share this implementation.
type llmWorker struct {
	client       *Client
	id           string
	category     triage.Category
	description  string
	systemPrompt string
}

var _ worker.Worker = (*llmWorker)(nil)

func (w *llmWorker) ID() string                { return w.id }
func (w *llmWorker) Category() triage.Category { return w.category }
func (w *llmWorker) Description() string       { return w.description }

// workerReply is the JSON shape every worker prompt asks the model for.
type workerReply struct {
	Confidence        *float64       `json:"confidence_score"`
	RecommendedAction string         `json:"recommended_action"`
	Summary           string         `json:"summary"`
	Details           map[string]any `json:"details"`
}

func (w *llmWorker) Analyze(ctx context.Context, text string, task triage.DetectedTask) (worker.Result, error) {
	userPrompt := fmt.Sprintf("Case notes:\n%s\n\nDetected %s task (priority %s, %d matching phrases). Analyze and reply with the JSON object described in your instructions.",
		text, task.Category, task.Priority, task.MatchCount)

	raw, err := w.client.complete(ctx, w.systemPrompt, userPrompt)
	if err != nil {
		return worker.Result{}, fmt.Errorf("%s: %w", w.id, err)
	}

	return parseReply(raw)
}

// parseReply decodes and sanitizes a model reply. A reply that is not a JSON
// object is an error; inside a valid object, missing or malformed fields
// degrade to safe defaults.
func parseReply(raw string) (worker.Result, error) {
	raw = strings.TrimSpace(raw)
	// Some models wrap JSON in a markdown fence despite instructions.
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var reply workerReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		return worker.Result{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	confidence := 0.5
	if reply.Confidence != nil {
		confidence = *reply.Confidence
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	details := reply.Details
	if details == nil {
		details = map[string]any{}
	}
	if reply.Summary != "" {
		details["summary"] = reply.Summary
	}

	return worker.Result{
		Confidence:        confidence,
		RecommendedAction: strings.TrimSpace(reply.RecommendedAction),
		Details:           details,
	}, nil
}
