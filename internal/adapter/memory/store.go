// Package memory provides an in-memory report archive, used when no
// database is configured.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/casepilot/casepilot/internal/domain"
	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/port/reportstore"
)

const defaultListLimit = 50

// Store keeps reports in a map guarded by a mutex. Reports survive only for
// the lifetime of the process.
type Store struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

var _ reportstore.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{reports: make(map[string]*report.Report)}
}

func (s *Store) SaveReport(_ context.Context, r *report.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *Store) GetReport(_ context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (s *Store) ListReports(_ context.Context, limit int) ([]reportstore.Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	s.mu.RLock()
	all := make([]*report.Report, 0, len(s.reports))
	for _, r := range s.reports {
		all = append(all, r)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if len(all) > limit {
		all = all[:limit]
	}

	summaries := make([]reportstore.Summary, 0, len(all))
	for _, r := range all {
		summaries = append(summaries, reportstore.Summary{
			ID:                r.ID,
			NarrativeSummary:  r.NarrativeSummary,
			OverallConfidence: r.OverallConfidence,
			WorkersAttempted:  r.WorkersAttempted,
			WorkersSucceeded:  r.WorkersSucceeded,
			CreatedAt:         r.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return summaries, nil
}
