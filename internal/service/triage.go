package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/casepilot/casepilot/internal/brief"
	"github.com/casepilot/casepilot/internal/domain"
	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/enrich"
	"github.com/casepilot/casepilot/internal/logger"
	"github.com/casepilot/casepilot/internal/port/broadcast"
	"github.com/casepilot/casepilot/internal/port/cache"
	"github.com/casepilot/casepilot/internal/port/messagequeue"
	"github.com/casepilot/casepilot/internal/port/reportstore"
)

// Triage is the application entry point: it validates case text, runs the
// detect / dispatch / aggregate pipeline, and fans the finished report out to
// the cache, the archive, and the event surfaces.
type Triage struct {
	detector    *Detector
	engine      *Engine
	reportCache cache.Cache
	store       reportstore.Store
	queue       messagequeue.Queue
	broadcaster broadcast.Broadcaster
	cacheTTL    time.Duration
}

// TriageOption configures optional collaborators on a Triage service.
type TriageOption func(*Triage)

// WithCache attaches a report cache keyed by case-text content hash.
func WithCache(c cache.Cache, ttl time.Duration) TriageOption {
	return func(t *Triage) {
		t.reportCache = c
		t.cacheTTL = ttl
	}
}

// WithStore attaches a report archive.
func WithStore(s reportstore.Store) TriageOption {
	return func(t *Triage) { t.store = s }
}

// WithQueue attaches a message queue for lifecycle events.
func WithQueue(q messagequeue.Queue) TriageOption {
	return func(t *Triage) { t.queue = q }
}

// WithBroadcaster attaches a live progress broadcaster.
func WithBroadcaster(b broadcast.Broadcaster) TriageOption {
	return func(t *Triage) { t.broadcaster = b }
}

// NewTriage builds the triage service around a detector and an engine. All
// other collaborators are optional.
func NewTriage(detector *Detector, engine *Engine, opts ...TriageOption) *Triage {
	t := &Triage{
		detector: detector,
		engine:   engine,
		cacheTTL: 15 * time.Minute,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ProcessText runs the full triage pipeline on one case file. Worker-level
// failures never surface as errors; only invalid input does. Identical text
// within the cache TTL returns the cached report without re-dispatching.
func (t *Triage) ProcessText(ctx context.Context, text string) (*report.Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyInput
	}
	if !utf8.ValidString(text) {
		return nil, domain.ErrInvalidInput
	}

	log := logger.FromContext(ctx)
	key := contentKey(text)

	if cached := t.cachedReport(ctx, key); cached != nil {
		log.Info("triage served from cache", "report_id", cached.ID)
		return cached, nil
	}

	invocationID := uuid.NewString()
	ctx = logger.WithInvocationID(ctx, invocationID)
	log = log.With("invocation_id", invocationID)
	ctx = logger.WithContext(ctx, log)

	start := time.Now()
	t.publish(ctx, messagequeue.SubjectTriageStarted, map[string]any{"id": invocationID})
	t.emit(ctx, broadcast.EventTriageStarted, map[string]any{"id": invocationID})

	caseContext := enrich.Extract(text)
	tasks := t.detector.Detect(text)
	workflow := BuildWorkflow(tasks)

	log.Info("workflow built", "tasks", len(tasks), "workers", len(workflow))

	outcomes := t.engine.Execute(ctx, text, workflow, tasks)

	rep := &report.Report{
		ID:            invocationID,
		DetectedTasks: tasks,
		CaseContext:   caseContext,
		Timestamp:     time.Now().UTC(),
	}
	Aggregate(rep, workflow, outcomes)
	rep.AttorneyBrief = brief.Generate(rep)
	rep.ElapsedMS = time.Since(start).Milliseconds()

	log.Info("triage completed",
		"report_id", rep.ID,
		"workers_attempted", rep.WorkersAttempted,
		"workers_succeeded", rep.WorkersSucceeded,
		"overall_confidence", rep.OverallConfidence,
		"elapsed_ms", rep.ElapsedMS)

	t.cacheReport(ctx, key, rep)
	t.archiveReport(ctx, rep)
	t.publish(ctx, messagequeue.SubjectTriageCompleted, map[string]any{
		"id":                 rep.ID,
		"workers_succeeded":  rep.WorkersSucceeded,
		"workers_attempted":  rep.WorkersAttempted,
		"overall_confidence": rep.OverallConfidence,
	})
	t.emit(ctx, broadcast.EventTriageCompleted, map[string]any{
		"id":                 rep.ID,
		"overall_confidence": rep.OverallConfidence,
	})

	return rep, nil
}

// contentKey is the cache key for a piece of case text.
func contentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (t *Triage) cachedReport(ctx context.Context, key string) *report.Report {
	if t.reportCache == nil {
		return nil
	}
	data, ok, err := t.reportCache.Get(ctx, key)
	if err != nil || !ok {
		return nil
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		// Stale or corrupt entry; drop it and re-run.
		_ = t.reportCache.Delete(ctx, key)
		return nil
	}
	return &rep
}

func (t *Triage) cacheReport(ctx context.Context, key string, rep *report.Report) {
	if t.reportCache == nil {
		return
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	if err := t.reportCache.Set(ctx, key, data, t.cacheTTL); err != nil {
		logger.FromContext(ctx).Warn("report cache write failed", "error", err)
	}
}

func (t *Triage) archiveReport(ctx context.Context, rep *report.Report) {
	if t.store == nil {
		return
	}
	if err := t.store.SaveReport(ctx, rep); err != nil {
		logger.FromContext(ctx).Warn("report archive write failed", "report_id", rep.ID, "error", err)
	}
}

func (t *Triage) publish(ctx context.Context, subject string, payload map[string]any) {
	if t.queue == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := t.queue.Publish(ctx, subject, data); err != nil {
		logger.FromContext(ctx).Warn("event publish failed", "subject", subject, "error", err)
	}
}

func (t *Triage) emit(ctx context.Context, event string, payload map[string]any) {
	if t.broadcaster == nil {
		return
	}
	t.broadcaster.BroadcastEvent(ctx, event, payload)
}
