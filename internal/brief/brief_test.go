package brief_test

import (
	"strings"
	"testing"

	"github.com/casepilot/casepilot/internal/brief"
	"github.com/casepilot/casepilot/internal/domain/casefile"
	"github.com/casepilot/casepilot/internal/domain/report"
)

func TestGenerateFullBrief(t *testing.T) {
	rep := &report.Report{
		ID:               "r1",
		NarrativeSummary: "Detected 2 task area(s): records, evidence. 1 of 2 worker(s) completed successfully.",
		WorkersAttempted: 2,
		WorkersSucceeded: 1,
		OverallConfidence: 0.8,
		WorkerOutcomes: map[string]report.WorkerOutcome{
			"records-wrangler": {
				State:   report.StateSucceeded,
				Payload: map[string]any{"summary": "three records outstanding", "recommended_action": "chase records"},
			},
			"evidence-sorter": {
				State: report.StateTimedOut,
				Error: "execution exceeded allotted time",
			},
		},
		RecommendedActions: []string{"[records-wrangler] chase records"},
		CaseContext: &casefile.Context{
			ClientName: casefile.Field{Value: "Maria Gonzalez", Confidence: 0.85},
			CaseNumber: casefile.Field{Value: "PI-2024-0187", Confidence: 0.9},
		},
	}

	text := brief.Generate(rep)

	for _, want := range []string{
		"CASE TRIAGE BRIEF",
		"Client: Maria Gonzalez",
		"Case number: PI-2024-0187",
		"records-wrangler: three records outstanding",
		"evidence-sorter: did not finish in time",
		"1. [records-wrangler] chase records",
		"80%",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("brief missing %q\n%s", want, text)
		}
	}
}

func TestGenerateWithoutContextOrActions(t *testing.T) {
	rep := &report.Report{
		NarrativeSummary: "No specific tasks detected; ran the baseline case review.",
		WorkerOutcomes: map[string]report.WorkerOutcome{
			"records-wrangler": {State: report.StateFailed, Error: "boom"},
		},
	}

	text := brief.Generate(rep)
	if !strings.Contains(text, "records-wrangler: failed (boom)") {
		t.Errorf("brief missing failure line:\n%s", text)
	}
	if strings.Contains(text, "RECOMMENDED ACTIONS") {
		t.Errorf("brief should omit empty actions section:\n%s", text)
	}
	if strings.Contains(text, "Client:") {
		t.Errorf("brief should omit empty case context:\n%s", text)
	}
}
