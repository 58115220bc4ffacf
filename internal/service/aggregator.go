package service

import (
	"fmt"
	"strings"

	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/domain/triage"
)

// Aggregate folds per-worker outcomes into the report's summary fields:
// overall confidence, recommended actions, and the narrative. rep must
// already carry DetectedTasks; Aggregate fills the rest in place.
//
// Overall confidence is the mean of the succeeded workers' confidence
// scores; with no successes it is zero. Malformed payload fields count as
// absent, never as errors.
func Aggregate(rep *report.Report, workflow []triage.WorkflowEntry, outcomes map[string]report.WorkerOutcome) {
	rep.WorkerOutcomes = outcomes
	rep.WorkersAttempted = len(workflow)

	var (
		confidenceSum float64
		succeeded     int
		actions       []string
	)

	// Walk the workflow, not the map, so action order tracks dispatch order.
	for _, entry := range workflow {
		outcome, ok := outcomes[entry.WorkerID]
		if !ok || outcome.State != report.StateSucceeded {
			continue
		}
		succeeded++

		if score, ok := payloadFloat(outcome.Payload, "confidence_score"); ok {
			confidenceSum += score
		}
		if action, ok := payloadString(outcome.Payload, "recommended_action"); ok && action != "" {
			actions = append(actions, fmt.Sprintf("[%s] %s", entry.WorkerID, action))
		}
	}

	rep.WorkersSucceeded = succeeded
	rep.RecommendedActions = actions
	if succeeded > 0 {
		rep.OverallConfidence = confidenceSum / float64(succeeded)
	} else {
		rep.OverallConfidence = 0
	}

	rep.NarrativeSummary = narrative(rep, workflow)
}

func narrative(rep *report.Report, workflow []triage.WorkflowEntry) string {
	var b strings.Builder

	if len(rep.DetectedTasks) == 0 {
		b.WriteString("No specific tasks detected; ran the baseline case review. ")
	} else {
		names := make([]string, 0, len(rep.DetectedTasks))
		for _, t := range rep.DetectedTasks {
			names = append(names, string(t.Category))
		}
		fmt.Fprintf(&b, "Detected %d task area(s): %s. ", len(names), strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "%d of %d worker(s) completed successfully.", rep.WorkersSucceeded, rep.WorkersAttempted)

	var troubled []string
	for _, entry := range workflow {
		outcome, ok := rep.WorkerOutcomes[entry.WorkerID]
		if !ok {
			continue
		}
		switch outcome.State {
		case report.StateTimedOut:
			troubled = append(troubled, entry.WorkerID+" timed out")
		case report.StateFailed:
			troubled = append(troubled, entry.WorkerID+" failed")
		}
	}
	if len(troubled) > 0 {
		fmt.Fprintf(&b, " Issues: %s.", strings.Join(troubled, "; "))
	}

	switch {
	case rep.WorkersSucceeded == 0:
		b.WriteString(" Manual review of the case file is required.")
	case rep.OverallConfidence >= 0.75:
		b.WriteString(" Findings are high confidence.")
	case rep.OverallConfidence >= 0.5:
		b.WriteString(" Findings are moderate confidence; spot-check before acting.")
	default:
		b.WriteString(" Findings are low confidence; treat as leads only.")
	}

	return b.String()
}

func payloadFloat(payload map[string]any, key string) (float64, bool) {
	v, ok := payload[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func payloadString(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
