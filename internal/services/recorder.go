package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lumaqa/lumacheck/internal/models"
	"github.com/lumaqa/lumacheck/internal/routes"
	"go.uber.org/zap"
)

const (
	// hitTimeout bounds each route hit write
	hitTimeout = 5 * time.Second
	// hitQueueSize is how many route hits may wait for the ledger
	hitQueueSize = 256
)

// RunRepository defines the interface for run ledger persistence
type RunRepository interface {
	CreateRun(ctx context.Context, run *models.Run) error
	FinishRun(ctx context.Context, run *models.Run) error
	RecordHit(ctx context.Context, hit *models.RouteHit) error
	RecordResult(ctx context.Context, res *models.ScenarioResult) error
}

// Recorder writes one suite run into the ledger. It observes the route hits
// of every session and collects scenario outcomes.
type Recorder struct {
	repo   RunRepository
	logger *zap.Logger

	hits    chan models.RouteHit
	drained chan struct{}
	stop    sync.Once

	mu       sync.Mutex
	run      *models.Run
	scenario string
	failed   bool
	closed   bool
}

var _ routes.Observer = (*Recorder)(nil)

// StartRecorder creates and stores a running run
func StartRecorder(ctx context.Context, repo RunRepository, target, baseURL string, logger *zap.Logger) (*Recorder, error) {
	run, err := models.NewRun(target, baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}

	if err := repo.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	logger.Info("run started", zap.String("run_id", run.ID), zap.String("target", target))
	r := &Recorder{
		repo:    repo,
		logger:  logger,
		run:     run,
		hits:    make(chan models.RouteHit, hitQueueSize),
		drained: make(chan struct{}),
	}
	go r.drain()
	return r, nil
}

// drain writes queued route hits until the queue is closed
func (r *Recorder) drain() {
	defer close(r.drained)
	for hit := range r.hits {
		ctx, cancel := context.WithTimeout(context.Background(), hitTimeout)
		err := r.repo.RecordHit(ctx, &hit)
		cancel()
		if err != nil {
			r.logger.Warn("failed to record route hit", zap.String("alias", hit.Alias), zap.Error(err))
		}
	}
}

// flush stops accepting route hits and waits for the queued ones
func (r *Recorder) flush(ctx context.Context) error {
	r.stop.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.hits)
		r.mu.Unlock()
	})

	select {
	case <-r.drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("route hits still queued: %w", ctx.Err())
	}
}

// RunID returns the id of the recorded run
func (r *Recorder) RunID() string {
	return r.run.ID
}

// Scenario tags subsequent hits with the running scenario
func (r *Recorder) Scenario(name string) {
	r.mu.Lock()
	r.scenario = name
	r.mu.Unlock()
}

// RouteHit queues an intercepted response for the ledger without blocking.
// A hit that arrives when the queue is full or the run has finished is
// dropped with a warning.
func (r *Recorder) RouteHit(hit routes.Hit) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		r.logger.Warn("run finished, dropping route hit", zap.String("alias", hit.Alias))
		return
	}

	select {
	case r.hits <- models.RouteHit{
		RunID:    r.run.ID,
		Alias:    hit.Alias,
		Method:   hit.Method,
		URL:      hit.URL,
		Status:   hit.Status,
		HitAt:    hit.At,
		Scenario: r.scenario,
	}:
	default:
		r.logger.Warn("route hit queue is full, dropping hit", zap.String("alias", hit.Alias))
	}
}

// Result stores how a scenario ended
func (r *Recorder) Result(ctx context.Context, name string, outcome models.Outcome, d time.Duration, screenshot string) error {
	res, err := models.NewScenarioResult(r.run.ID, name, outcome, d)
	if err != nil {
		return fmt.Errorf("invalid scenario result: %w", err)
	}
	res.Screenshot = screenshot

	if outcome == models.OutcomeFailed {
		r.mu.Lock()
		r.failed = true
		r.mu.Unlock()
	}

	if err := r.repo.RecordResult(ctx, res); err != nil {
		return fmt.Errorf("failed to record scenario result: %w", err)
	}
	return nil
}

// Finish writes the queued route hits, then closes the run as failed if any
// scenario failed
func (r *Recorder) Finish(ctx context.Context) error {
	if err := r.flush(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	failed := r.failed
	r.mu.Unlock()

	if err := r.run.Finish(failed); err != nil {
		return err
	}
	if err := r.repo.FinishRun(ctx, r.run); err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	r.logger.Info("run finished",
		zap.String("run_id", r.run.ID),
		zap.String("status", string(r.run.Status)),
		zap.Duration("duration", r.run.Duration()))
	return nil
}
