package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/port/worker"
	"github.com/casepilot/casepilot/internal/service"
)

// fakeWorker is a scriptable worker for engine tests.
type fakeWorker struct {
	id       string
	category triage.Category
	analyze  func(ctx context.Context, text string, task triage.DetectedTask) (worker.Result, error)
}

func (f *fakeWorker) ID() string                { return f.id }
func (f *fakeWorker) Category() triage.Category { return f.category }
func (f *fakeWorker) Description() string       { return "test worker" }

func (f *fakeWorker) Analyze(ctx context.Context, text string, task triage.DetectedTask) (worker.Result, error) {
	return f.analyze(ctx, text, task)
}

func okWorker(id string, cat triage.Category, confidence float64, action string) *fakeWorker {
	return &fakeWorker{
		id:       id,
		category: cat,
		analyze: func(context.Context, string, triage.DetectedTask) (worker.Result, error) {
			return worker.Result{Confidence: confidence, RecommendedAction: action}, nil
		},
	}
}

func entryFor(w *fakeWorker) triage.WorkflowEntry {
	return triage.WorkflowEntry{Category: w.category, WorkerID: w.id}
}

func TestExecuteOutcomePerEntry(t *testing.T) {
	reg := worker.NewRegistry()
	a := okWorker("records-wrangler", triage.CategoryRecords, 0.9, "request records")
	b := okWorker("evidence-sorter", triage.CategoryEvidence, 0.7, "sort exhibits")
	reg.Register(a)
	reg.Register(b)

	engine := service.NewEngine(reg, time.Second, 0, nil)
	workflow := []triage.WorkflowEntry{entryFor(a), entryFor(b)}

	outcomes := engine.Execute(context.Background(), "text", workflow, nil)
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, e := range workflow {
		outcome, ok := outcomes[e.WorkerID]
		if !ok {
			t.Fatalf("missing outcome for %s", e.WorkerID)
		}
		if outcome.State != report.StateSucceeded {
			t.Errorf("%s state = %s, want succeeded", e.WorkerID, outcome.State)
		}
		if outcome.Payload["recommended_action"] == "" {
			t.Errorf("%s payload missing recommended_action", e.WorkerID)
		}
	}
}

func TestExecuteWorkerError(t *testing.T) {
	reg := worker.NewRegistry()
	failing := &fakeWorker{
		id:       "legal-researcher",
		category: triage.CategoryResearch,
		analyze: func(context.Context, string, triage.DetectedTask) (worker.Result, error) {
			return worker.Result{}, errors.New("model unavailable")
		},
	}
	reg.Register(failing)

	engine := service.NewEngine(reg, time.Second, 0, nil)
	outcomes := engine.Execute(context.Background(), "text", []triage.WorkflowEntry{entryFor(failing)}, nil)

	outcome := outcomes["legal-researcher"]
	if outcome.State != report.StateFailed {
		t.Fatalf("state = %s, want failed", outcome.State)
	}
	if outcome.Error != "model unavailable" {
		t.Errorf("error = %q", outcome.Error)
	}
}

func TestExecuteWorkerPanic(t *testing.T) {
	reg := worker.NewRegistry()
	panicking := &fakeWorker{
		id:       "scheduler",
		category: triage.CategoryScheduling,
		analyze: func(context.Context, string, triage.DetectedTask) (worker.Result, error) {
			panic("boom")
		},
	}
	ok := okWorker("records-wrangler", triage.CategoryRecords, 0.8, "request records")
	reg.Register(panicking)
	reg.Register(ok)

	engine := service.NewEngine(reg, time.Second, 0, nil)
	workflow := []triage.WorkflowEntry{entryFor(panicking), entryFor(ok)}
	outcomes := engine.Execute(context.Background(), "text", workflow, nil)

	if outcomes["scheduler"].State != report.StateFailed {
		t.Fatalf("panicking worker state = %s, want failed", outcomes["scheduler"].State)
	}
	if !strings.Contains(outcomes["scheduler"].Error, "panicked") {
		t.Errorf("error = %q, want panic note", outcomes["scheduler"].Error)
	}
	if outcomes["records-wrangler"].State != report.StateSucceeded {
		t.Errorf("healthy worker affected by sibling panic: %+v", outcomes["records-wrangler"])
	}
}

func TestExecuteWorkerTimeout(t *testing.T) {
	reg := worker.NewRegistry()
	stuck := &fakeWorker{
		id:       "communication-guru",
		category: triage.CategoryCommunication,
		analyze: func(ctx context.Context, _ string, _ triage.DetectedTask) (worker.Result, error) {
			<-ctx.Done()
			// Keep not returning even after cancellation.
			time.Sleep(5 * time.Second)
			return worker.Result{}, ctx.Err()
		},
	}
	fast := okWorker("records-wrangler", triage.CategoryRecords, 0.9, "request records")
	reg.Register(stuck)
	reg.Register(fast)

	engine := service.NewEngine(reg, 50*time.Millisecond, 0, nil)
	workflow := []triage.WorkflowEntry{entryFor(stuck), entryFor(fast)}

	start := time.Now()
	outcomes := engine.Execute(context.Background(), "text", workflow, nil)
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Fatalf("Execute blocked on stuck worker for %v", elapsed)
	}
	if outcomes["communication-guru"].State != report.StateTimedOut {
		t.Fatalf("stuck worker state = %s, want timed_out", outcomes["communication-guru"].State)
	}
	if outcomes["communication-guru"].Error != "execution exceeded allotted time" {
		t.Errorf("timeout error = %q", outcomes["communication-guru"].Error)
	}
	if outcomes["records-wrangler"].State != report.StateSucceeded {
		t.Errorf("fast worker should still succeed, got %+v", outcomes["records-wrangler"])
	}
}

func TestExecuteUnregisteredWorker(t *testing.T) {
	engine := service.NewEngine(worker.NewRegistry(), time.Second, 0, nil)
	workflow := []triage.WorkflowEntry{{Category: triage.CategoryRecords, WorkerID: "records-wrangler"}}

	outcomes := engine.Execute(context.Background(), "text", workflow, nil)
	outcome := outcomes["records-wrangler"]
	if outcome.State != report.StateFailed {
		t.Fatalf("state = %s, want failed", outcome.State)
	}
	if !strings.Contains(outcome.Error, "not registered") {
		t.Errorf("error = %q", outcome.Error)
	}
}

func TestExecuteConcurrencyBound(t *testing.T) {
	reg := worker.NewRegistry()

	var mu sync.Mutex
	running, peak := 0, 0
	track := func(ctx context.Context, _ string, _ triage.DetectedTask) (worker.Result, error) {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()
		time.Sleep(20 * time.Millisecond)
		mu.Lock()
		running--
		mu.Unlock()
		return worker.Result{Confidence: 0.5}, nil
	}

	cats := []triage.Category{
		triage.CategoryRecords, triage.CategoryCommunication,
		triage.CategoryResearch, triage.CategoryScheduling, triage.CategoryEvidence,
	}
	var workflow []triage.WorkflowEntry
	for _, cat := range cats {
		w := &fakeWorker{id: cat.WorkerID(), category: cat, analyze: track}
		reg.Register(w)
		workflow = append(workflow, entryFor(w))
	}

	engine := service.NewEngine(reg, time.Second, 2, nil)
	engine.Execute(context.Background(), "text", workflow, nil)

	mu.Lock()
	defer mu.Unlock()
	if peak > 2 {
		t.Fatalf("peak concurrency %d exceeds bound 2", peak)
	}
	if peak == 0 {
		t.Fatal("no worker ran")
	}
}

func TestExecuteClampsConfidence(t *testing.T) {
	reg := worker.NewRegistry()
	wild := okWorker("records-wrangler", triage.CategoryRecords, 3.7, "act")
	reg.Register(wild)

	engine := service.NewEngine(reg, time.Second, 0, nil)
	outcomes := engine.Execute(context.Background(), "text", []triage.WorkflowEntry{entryFor(wild)}, nil)

	score, ok := outcomes["records-wrangler"].Payload["confidence_score"].(float64)
	if !ok {
		t.Fatal("confidence_score missing from payload")
	}
	if score != 1 {
		t.Fatalf("confidence_score = %v, want clamped to 1", score)
	}
}
