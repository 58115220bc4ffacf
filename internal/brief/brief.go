// Package brief renders a completed triage report as a plain-text attorney
// brief. The brief is a deterministic templating pass over the report; it
// adds no new analysis.
package brief

import (
	"fmt"
	"sort"
	"strings"

	"github.com/casepilot/casepilot/internal/domain/report"
)

// Generate renders the attorney brief for a completed report.
func Generate(rep *report.Report) string {
	var b strings.Builder

	b.WriteString("CASE TRIAGE BRIEF\n")
	b.WriteString("=================\n\n")

	if cc := rep.CaseContext; cc != nil {
		if cc.ClientName.Found() {
			fmt.Fprintf(&b, "Client: %s\n", cc.ClientName.Value)
		}
		if cc.CaseNumber.Found() {
			fmt.Fprintf(&b, "Case number: %s\n", cc.CaseNumber.Value)
		}
		if cc.CaseType.Found() {
			fmt.Fprintf(&b, "Case type: %s\n", cc.CaseType.Value)
		}
		if cc.InsuranceCarrier.Found() {
			fmt.Fprintf(&b, "Insurance carrier: %s\n", cc.InsuranceCarrier.Value)
		}
		if cc.IncidentDate.Found() {
			fmt.Fprintf(&b, "Incident date: %s\n", cc.IncidentDate.Value)
		}
		if len(cc.MedicalProviders) > 0 {
			names := make([]string, 0, len(cc.MedicalProviders))
			for _, p := range cc.MedicalProviders {
				names = append(names, p.Value)
			}
			fmt.Fprintf(&b, "Medical providers: %s\n", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("OVERVIEW\n")
	fmt.Fprintf(&b, "%s\n", rep.NarrativeSummary)
	fmt.Fprintf(&b, "Overall confidence: %.0f%% (%d/%d workers succeeded)\n\n",
		rep.OverallConfidence*100, rep.WorkersSucceeded, rep.WorkersAttempted)

	if len(rep.WorkerOutcomes) > 0 {
		b.WriteString("FINDINGS\n")
		for _, id := range sortedWorkerIDs(rep.WorkerOutcomes) {
			outcome := rep.WorkerOutcomes[id]
			switch outcome.State {
			case report.StateSucceeded:
				fmt.Fprintf(&b, "- %s: %s\n", id, findingLine(outcome))
			case report.StateTimedOut:
				fmt.Fprintf(&b, "- %s: did not finish in time\n", id)
			default:
				fmt.Fprintf(&b, "- %s: failed (%s)\n", id, outcome.Error)
			}
		}
		b.WriteString("\n")
	}

	if len(rep.RecommendedActions) > 0 {
		b.WriteString("RECOMMENDED ACTIONS\n")
		for i, action := range rep.RecommendedActions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, action)
		}
	}

	return b.String()
}

func findingLine(outcome report.WorkerOutcome) string {
	if summary, ok := outcome.Payload["summary"].(string); ok && summary != "" {
		return summary
	}
	if action, ok := outcome.Payload["recommended_action"].(string); ok && action != "" {
		return action
	}
	return "completed"
}

func sortedWorkerIDs(outcomes map[string]report.WorkerOutcome) []string {
	ids := make([]string, 0, len(outcomes))
	for id := range outcomes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
