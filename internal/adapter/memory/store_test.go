package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/casepilot/casepilot/internal/adapter/memory"
	"github.com/casepilot/casepilot/internal/domain"
	"github.com/casepilot/casepilot/internal/domain/report"
)

func TestSaveAndGet(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	rep := &report.Report{ID: "r1", NarrativeSummary: "ok", Timestamp: time.Now()}
	if err := s.SaveReport(ctx, rep); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	got, err := s.GetReport(ctx, "r1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if got.NarrativeSummary != "ok" {
		t.Errorf("summary = %q", got.NarrativeSummary)
	}
}

func TestGetMissing(t *testing.T) {
	s := memory.NewStore()
	if _, err := s.GetReport(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		rep := &report.Report{
			ID:        fmt.Sprintf("r%d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveReport(ctx, rep); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
	}

	summaries, err := s.ListReports(ctx, 3)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("len = %d, want 3", len(summaries))
	}
	if summaries[0].ID != "r4" || summaries[2].ID != "r2" {
		t.Errorf("order wrong: %+v", summaries)
	}
}
