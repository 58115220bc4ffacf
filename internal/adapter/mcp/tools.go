package mcp

import (
	"context"
	"encoding/json"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.triageCaseTool(),
		s.getReportTool(),
		s.listReportsTool(),
		s.listWorkersTool(),
	)
}

func (s *Server) triageCaseTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("triage_case",
		mcplib.WithDescription("Run casepilot triage on free-text case notes and return the full report"),
		mcplib.WithString("text",
			mcplib.Required(),
			mcplib.Description("The case notes to triage"),
		),
	)
	return mcpserver.ServerTool{Tool: tool, Handler: s.handleTriageCase}
}

func (s *Server) getReportTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("get_report",
		mcplib.WithDescription("Fetch an archived triage report by ID"),
		mcplib.WithString("report_id",
			mcplib.Required(),
			mcplib.Description("The report ID to fetch"),
		),
	)
	return mcpserver.ServerTool{Tool: tool, Handler: s.handleGetReport}
}

func (s *Server) listReportsTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("list_reports",
		mcplib.WithDescription("List archived triage report summaries, newest first"),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of summaries to return"),
		),
	)
	return mcpserver.ServerTool{Tool: tool, Handler: s.handleListReports}
}

func (s *Server) listWorkersTool() mcpserver.ServerTool {
	tool := mcplib.NewTool("list_workers",
		mcplib.WithDescription("List the registered triage workers and their specialties"),
	)
	return mcpserver.ServerTool{Tool: tool, Handler: s.handleListWorkers}
}

func (s *Server) handleTriageCase(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Triage == nil {
		return mcplib.NewToolResultError("triage service not configured"), nil
	}
	text, ok := req.GetArguments()["text"].(string)
	if !ok || text == "" {
		return mcplib.NewToolResultError("text argument is required"), nil
	}

	rep, err := s.deps.Triage.ProcessText(ctx, text)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("triage failed", err), nil
	}
	return toolResultJSON(rep)
}

func (s *Server) handleGetReport(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Store == nil {
		return mcplib.NewToolResultError("report store not configured"), nil
	}
	id, ok := req.GetArguments()["report_id"].(string)
	if !ok || id == "" {
		return mcplib.NewToolResultError("report_id argument is required"), nil
	}

	rep, err := s.deps.Store.GetReport(ctx, id)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to fetch report", err), nil
	}
	return toolResultJSON(rep)
}

func (s *Server) handleListReports(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Store == nil {
		return mcplib.NewToolResultError("report store not configured"), nil
	}
	limit := 0
	if n, ok := req.GetArguments()["limit"].(float64); ok {
		limit = int(n)
	}

	summaries, err := s.deps.Store.ListReports(ctx, limit)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to list reports", err), nil
	}
	return toolResultJSON(summaries)
}

func (s *Server) handleListWorkers(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) { //nolint:gocritic // hugeParam: mcp-go handler signature
	if s.deps.Registry == nil {
		return mcplib.NewToolResultError("worker registry not configured"), nil
	}

	type info struct {
		ID          string `json:"id"`
		Category    string `json:"category"`
		Description string `json:"description"`
	}
	var infos []info
	for _, w := range s.deps.Registry.List() {
		infos = append(infos, info{
			ID:          w.ID(),
			Category:    string(w.Category()),
			Description: w.Description(),
		})
	}
	return toolResultJSON(infos)
}

func toolResultJSON(v any) (*mcplib.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal result", err), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}
