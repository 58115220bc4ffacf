package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casepilot/casepilot/internal/domain"
	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/port/reportstore"
)

const defaultListLimit = 50

// Store implements reportstore.Store on PostgreSQL. The full report is kept
// as JSONB; the summary columns are denormalized for listing.
type Store struct {
	pool *pgxpool.Pool
}

var _ reportstore.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) SaveReport(ctx context.Context, r *report.Report) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO reports (id, narrative_summary, overall_confidence,
			workers_attempted, workers_succeeded, elapsed_ms, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			narrative_summary = EXCLUDED.narrative_summary,
			overall_confidence = EXCLUDED.overall_confidence,
			workers_attempted = EXCLUDED.workers_attempted,
			workers_succeeded = EXCLUDED.workers_succeeded,
			elapsed_ms = EXCLUDED.elapsed_ms,
			body = EXCLUDED.body`,
		r.ID, r.NarrativeSummary, r.OverallConfidence,
		r.WorkersAttempted, r.WorkersSucceeded, r.ElapsedMS, body, r.Timestamp)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (s *Store) GetReport(ctx context.Context, id string) (*report.Report, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `SELECT body FROM reports WHERE id = $1`, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var r report.Report
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &r, nil
}

func (s *Store) ListReports(ctx context.Context, limit int) ([]reportstore.Summary, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, narrative_summary, overall_confidence,
			workers_attempted, workers_succeeded, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var summaries []reportstore.Summary
	for rows.Next() {
		var (
			sum       reportstore.Summary
			createdAt time.Time
		)
		if err := rows.Scan(&sum.ID, &sum.NarrativeSummary, &sum.OverallConfidence,
			&sum.WorkersAttempted, &sum.WorkersSucceeded, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		sum.CreatedAt = createdAt.Format(time.RFC3339)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return summaries, nil
}
