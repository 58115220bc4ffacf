package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/casepilot/casepilot/internal/domain/report"
	"github.com/casepilot/casepilot/internal/domain/triage"
	"github.com/casepilot/casepilot/internal/logger"
	"github.com/casepilot/casepilot/internal/port/broadcast"
	"github.com/casepilot/casepilot/internal/port/worker"
)

const timeoutErrMsg = "execution exceeded allotted time"

// Engine runs a workflow's workers concurrently and collects one outcome per
// entry. Worker failures, panics, and timeouts are absorbed into failed
// outcomes; Execute itself never fails.
type Engine struct {
	registry    *worker.Registry
	timeout     time.Duration
	maxParallel int64
	broadcaster broadcast.Broadcaster
}

// NewEngine builds an Engine. timeout bounds each worker individually;
// maxParallel <= 0 means unbounded concurrency. broadcaster may be nil.
func NewEngine(registry *worker.Registry, timeout time.Duration, maxParallel int, broadcaster broadcast.Broadcaster) *Engine {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Engine{
		registry:    registry,
		timeout:     timeout,
		maxParallel: int64(maxParallel),
		broadcaster: broadcaster,
	}
}

type workerReturn struct {
	result worker.Result
	err    error
}

// Execute dispatches every workflow entry to its worker and waits for all of
// them. The returned map holds exactly one outcome per entry, keyed by worker
// ID. A worker that exceeds the engine timeout is recorded as timed out; its
// goroutine is abandoned and any late result is discarded.
func (e *Engine) Execute(ctx context.Context, text string, workflow []triage.WorkflowEntry, tasks []triage.DetectedTask) map[string]report.WorkerOutcome {
	log := logger.FromContext(ctx)

	taskByCategory := make(map[triage.Category]triage.DetectedTask, len(tasks))
	for _, t := range tasks {
		taskByCategory[t.Category] = t
	}

	var sem *semaphore.Weighted
	if e.maxParallel > 0 {
		sem = semaphore.NewWeighted(e.maxParallel)
	}

	outcomes := make(map[string]report.WorkerOutcome, len(workflow))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, entry := range workflow {
		wg.Add(1)
		go func(entry triage.WorkflowEntry) {
			defer wg.Done()
			outcome := e.runWorker(ctx, sem, text, entry, taskByCategory[entry.Category])
			mu.Lock()
			outcomes[entry.WorkerID] = outcome
			mu.Unlock()

			log.Info("worker finished",
				"worker_id", entry.WorkerID,
				"state", string(outcome.State),
				"elapsed_ms", outcome.ElapsedMS)
		}(entry)
	}
	wg.Wait()

	return outcomes
}

func (e *Engine) runWorker(ctx context.Context, sem *semaphore.Weighted, text string, entry triage.WorkflowEntry, task triage.DetectedTask) report.WorkerOutcome {
	start := time.Now()

	w, ok := e.registry.Get(entry.WorkerID)
	if !ok {
		return report.WorkerOutcome{
			WorkerID: entry.WorkerID,
			State:    report.StateFailed,
			Error:    fmt.Sprintf("worker %q not registered", entry.WorkerID),
		}
	}

	if sem != nil {
		if err := sem.Acquire(ctx, 1); err != nil {
			return report.WorkerOutcome{
				WorkerID:  entry.WorkerID,
				State:     report.StateFailed,
				Error:     err.Error(),
				ElapsedMS: time.Since(start).Milliseconds(),
			}
		}
		defer sem.Release(1)
	}

	e.emit(ctx, broadcast.EventWorkerStarted, map[string]any{"worker_id": entry.WorkerID})

	wctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	// Buffered so an overdue worker's send never blocks after we stop
	// listening; the late value is simply dropped with the channel.
	done := make(chan workerReturn, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- workerReturn{err: fmt.Errorf("worker panicked: %v", r)}
			}
		}()
		res, err := w.Analyze(wctx, text, task)
		done <- workerReturn{result: res, err: err}
	}()

	var outcome report.WorkerOutcome
	select {
	case ret := <-done:
		outcome = e.outcomeFrom(entry.WorkerID, ret, start)
	case <-wctx.Done():
		outcome = report.WorkerOutcome{
			WorkerID:  entry.WorkerID,
			State:     report.StateTimedOut,
			Error:     timeoutErrMsg,
			ElapsedMS: time.Since(start).Milliseconds(),
		}
	}

	e.emit(ctx, broadcast.EventWorkerCompleted, map[string]any{
		"worker_id": entry.WorkerID,
		"state":     string(outcome.State),
	})
	return outcome
}

func (e *Engine) outcomeFrom(workerID string, ret workerReturn, start time.Time) report.WorkerOutcome {
	elapsed := time.Since(start).Milliseconds()
	if ret.err != nil {
		return report.WorkerOutcome{
			WorkerID:  workerID,
			State:     report.StateFailed,
			Error:     ret.err.Error(),
			ElapsedMS: elapsed,
		}
	}

	payload := map[string]any{
		"confidence_score":   clampUnit(ret.result.Confidence),
		"recommended_action": ret.result.RecommendedAction,
	}
	for k, v := range ret.result.Details {
		if _, reserved := payload[k]; !reserved {
			payload[k] = v
		}
	}

	return report.WorkerOutcome{
		WorkerID:  workerID,
		State:     report.StateSucceeded,
		Payload:   payload,
		ElapsedMS: elapsed,
	}
}

func (e *Engine) emit(ctx context.Context, event string, payload map[string]any) {
	if e.broadcaster == nil {
		return
	}
	e.broadcaster.BroadcastEvent(ctx, event, payload)
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
