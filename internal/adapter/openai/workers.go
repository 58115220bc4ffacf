package openai

import (
	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/port/worker"
)

const replyFormat = `Reply with a single JSON object:
{"confidence_score": <0..1>, "recommended_action": "<one concrete next step>", "summary": "<two sentences at most>", "details": {<any supporting fields>}}`

// RegisterWorkers registers the full worker roster against the shared
// client. One worker per category; IDs match the workflow builder's map.
func RegisterWorkers(reg *worker.Registry, client *Client) {
	reg.Register(&llmWorker{
		client:      client,
		id:          "records-wrangler",
		category:    triage.CategoryRecords,
		description: "Tracks down missing, incomplete, and duplicate case records",
		systemPrompt: "You are a paralegal assistant focused on case records. " +
			"Identify which records are missing, incomplete, duplicated, or still outstanding, " +
			"and which provider or institution to chase for each. " + replyFormat,
	})

	reg.Register(&llmWorker{
		client:      client,
		id:          "communication-guru",
		category:    triage.CategoryCommunication,
		description: "Drafts client updates and flags communication that cannot wait",
		systemPrompt: "You are a paralegal assistant focused on client communication. " +
			"Assess the client's state of mind from the notes, decide how urgently they need contact, " +
			"and propose the message to send. " + replyFormat,
	})

	reg.Register(&llmWorker{
		client:      client,
		id:          "legal-researcher",
		category:    triage.CategoryResearch,
		description: "Surfaces the legal questions and authorities the case turns on",
		systemPrompt: "You are a paralegal assistant focused on legal research. " +
			"Identify the legal questions the notes raise and the statutes, precedents, or doctrines to research first. " + replyFormat,
	})

	reg.Register(&llmWorker{
		client:      client,
		id:          "scheduler",
		category:    triage.CategoryScheduling,
		description: "Extracts calls, depositions, and appointments that need calendaring",
		systemPrompt: "You are a paralegal assistant focused on scheduling. " +
			"List every call, meeting, deposition, or appointment the notes imply, with who to contact and how soon. " + replyFormat,
	})

	reg.Register(&llmWorker{
		client:      client,
		id:          "evidence-sorter",
		category:    triage.CategoryEvidence,
		description: "Inventories and classifies the evidence mentioned in the file",
		systemPrompt: "You are a paralegal assistant focused on evidence. " +
			"Inventory the evidence the notes mention, classify each item, and flag gaps in the record. " + replyFormat,
	})
}
