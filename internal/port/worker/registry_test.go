package worker_test

import (
	"context"
	"testing"

	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/port/worker"
)

type stubWorker struct {
	id string
}

func (s *stubWorker) ID() string                { return s.id }
func (s *stubWorker) Category() triage.Category { return triage.CategoryRecords }
func (s *stubWorker) Description() string       { return "stub" }
func (s *stubWorker) Analyze(_ context.Context, _ string, _ triage.DetectedTask) (worker.Result, error) {
	return worker.Result{Confidence: 1}, nil
}

func TestRegisterAndGet(t *testing.T) {
	r := worker.NewRegistry()
	r.Register(&stubWorker{id: "records-wrangler"})

	w, ok := r.Get("records-wrangler")
	if !ok {
		t.Fatal("expected worker to be registered")
	}
	if w.ID() != "records-wrangler" {
		t.Fatalf("unexpected worker ID %q", w.ID())
	}

	if _, ok := r.Get("unknown"); ok {
		t.Fatal("expected miss for unknown worker")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()

	r := worker.NewRegistry()
	r.Register(&stubWorker{id: "dup"})
	r.Register(&stubWorker{id: "dup"})
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := worker.NewRegistry()
	for _, id := range []string{"c", "a", "b"} {
		r.Register(&stubWorker{id: id})
	}

	got := r.List()
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d workers, got %d", len(want), len(got))
	}
	for i, w := range got {
		if w.ID() != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], w.ID())
		}
	}
}
