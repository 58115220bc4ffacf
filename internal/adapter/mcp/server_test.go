package mcp

import (
	"context"
	"testing"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/casepilot/casepilot/internal/adapter/memory"
	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/port/worker"
	"github.com/casepilot/casepilot/internal/service"
)

type stubWorker struct {
	id       string
	category triage.Category
}

func (s *stubWorker) ID() string                { return s.id }
func (s *stubWorker) Category() triage.Category { return s.category }
func (s *stubWorker) Description() string       { return "stub " + s.id }

func (s *stubWorker) Analyze(context.Context, string, triage.DetectedTask) (worker.Result, error) {
	return worker.Result{Confidence: 0.8, RecommendedAction: "review"}, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()

	reg := worker.NewRegistry()
	for _, cat := range triage.Categories() {
		reg.Register(&stubWorker{id: cat.WorkerID(), category: cat})
	}
	store := memory.NewStore()
	engine := service.NewEngine(reg, time.Second, 0, nil)
	svc := service.NewTriage(service.NewDetector(), engine, service.WithStore(store))

	return NewServer(
		ServerConfig{Name: "casepilot", Version: "0.1.0"},
		ServerDeps{Triage: svc, Store: store, Registry: reg},
	)
}

func callReq(args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	return req
}

func TestNewServer(t *testing.T) {
	s := testServer(t)
	if s.MCPServer() == nil {
		t.Fatal("MCPServer() returned nil")
	}
}

func TestTriageCaseTool(t *testing.T) {
	s := testServer(t)

	res, err := s.handleTriageCase(context.Background(), callReq(map[string]any{
		"text": "Medical records are missing and the client is anxious.",
	}))
	if err != nil {
		t.Fatalf("handleTriageCase: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
}

func TestTriageCaseToolMissingText(t *testing.T) {
	s := testServer(t)

	res, err := s.handleTriageCase(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("handleTriageCase: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for missing text")
	}
}

func TestGetReportToolNotFound(t *testing.T) {
	s := testServer(t)

	res, err := s.handleGetReport(context.Background(), callReq(map[string]any{
		"report_id": "nope",
	}))
	if err != nil {
		t.Fatalf("handleGetReport: %v", err)
	}
	if !res.IsError {
		t.Fatal("expected tool error for unknown report")
	}
}

func TestListReportsTool(t *testing.T) {
	s := testServer(t)

	store := s.deps.Store.(*memory.Store)
	_ = store.SaveReport(context.Background(), &report.Report{ID: "r1", Timestamp: time.Now()})

	res, err := s.handleListReports(context.Background(), callReq(map[string]any{"limit": float64(5)}))
	if err != nil {
		t.Fatalf("handleListReports: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
}

func TestListWorkersTool(t *testing.T) {
	s := testServer(t)

	res, err := s.handleListWorkers(context.Background(), callReq(nil))
	if err != nil {
		t.Fatalf("handleListWorkers: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
}

func TestUnconfiguredDeps(t *testing.T) {
	s := NewServer(ServerConfig{Name: "casepilot", Version: "0.1.0"}, ServerDeps{})

	res, err := s.handleTriageCase(context.Background(), callReq(map[string]any{"text": "x"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected configuration error")
	}
}
