package service

import "github.com/casepilot/casepilot/internal/domain/triage"

// fallbackCategories drive the workflow when detection finds nothing. A case
// file always warrants at least a records sweep and an evidence inventory.
var fallbackCategories = []triage.Category{
	triage.CategoryRecords,
	triage.CategoryEvidence,
}

// BuildWorkflow maps detected tasks to the worker roster, preserving the
// detector's ordering and dropping duplicate workers. Tasks with no mapped
// worker are skipped. When tasks is empty the fallback workflow is returned,
// so the result is never empty.
func BuildWorkflow(tasks []triage.DetectedTask) []triage.WorkflowEntry {
	if len(tasks) == 0 {
		entries := make([]triage.WorkflowEntry, 0, len(fallbackCategories))
		for _, cat := range fallbackCategories {
			entries = append(entries, triage.WorkflowEntry{
				Category: cat,
				WorkerID: cat.WorkerID(),
			})
		}
		return entries
	}

	seen := make(map[string]struct{}, len(tasks))
	entries := make([]triage.WorkflowEntry, 0, len(tasks))
	for _, task := range tasks {
		id := task.Category.WorkerID()
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, triage.WorkflowEntry{
			Category: task.Category,
			WorkerID: id,
		})
	}
	return entries
}
