package openai

import (
	"strings"
	"testing"

	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/port/worker"
)

func TestParseReplyWellFormed(t *testing.T) {
	raw := `{"confidence_score": 0.85, "recommended_action": "request the MRI records", "summary": "Two records outstanding.", "details": {"providers": ["Mercy Hospital"]}}`

	res, err := parseReply(raw)
	if err != nil {
		t.Fatalf("parseReply: %v", err)
	}
	if res.Confidence != 0.85 {
		t.Errorf("confidence = %v", res.Confidence)
	}
	if res.RecommendedAction != "request the MRI records" {
		t.Errorf("action = %q", res.RecommendedAction)
	}
	if res.Details["summary"] != "Two records outstanding." {
		t.Errorf("summary not carried into details: %+v", res.Details)
	}
}

func TestParseReplyMarkdownFence(t *testing.T) {
	raw := "```json\n{\"confidence_score\": 0.6, \"recommended_action\": \"call the client\"}\n```"

	res, err := parseReply(raw)
	if err != nil {
		t.Fatalf("parseReply: %v", err)
	}
	if res.Confidence != 0.6 {
		t.Errorf("confidence = %v", res.Confidence)
	}
}

func TestParseReplyMissingConfidenceDefaults(t *testing.T) {
	res, err := parseReply(`{"recommended_action": "review the file"}`)
	if err != nil {
		t.Fatalf("parseReply: %v", err)
	}
	if res.Confidence != 0.5 {
		t.Errorf("default confidence = %v, want 0.5", res.Confidence)
	}
}

func TestParseReplyClampsConfidence(t *testing.T) {
	res, err := parseReply(`{"confidence_score": 7.2, "recommended_action": "act"}`)
	if err != nil {
		t.Fatalf("parseReply: %v", err)
	}
	if res.Confidence != 1 {
		t.Errorf("confidence = %v, want 1", res.Confidence)
	}

	res, err = parseReply(`{"confidence_score": -3, "recommended_action": "act"}`)
	if err != nil {
		t.Fatalf("parseReply: %v", err)
	}
	if res.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", res.Confidence)
	}
}

func TestParseReplyNotJSON(t *testing.T) {
	if _, err := parseReply("I think the records are missing."); err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
}

func TestRegisterWorkersRoster(t *testing.T) {
	reg := worker.NewRegistry()
	RegisterWorkers(reg, nil)

	workers := reg.List()
	if len(workers) != len(triage.Categories()) {
		t.Fatalf("registered %d workers, want %d", len(workers), len(triage.Categories()))
	}

	seen := make(map[triage.Category]bool)
	for _, w := range workers {
		if seen[w.Category()] {
			t.Errorf("category %s registered twice", w.Category())
		}
		seen[w.Category()] = true
		if w.Category().WorkerID() != w.ID() {
			t.Errorf("worker %s does not match category map %s", w.ID(), w.Category().WorkerID())
		}
		if !strings.Contains(w.Description(), " ") {
			t.Errorf("worker %s has no description", w.ID())
		}
	}
}
