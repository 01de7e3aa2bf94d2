package models

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents valid suite run states
type RunStatus string

// Run statuses
const (
	RunStatusRunning RunStatus = "running"
	RunStatusPassed  RunStatus = "passed"
	RunStatusFailed  RunStatus = "failed"
)

// Run is one invocation of the browser suite against a storefront
type Run struct {
	ID         string
	Target     string
	BaseURL    string
	Status     RunStatus
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Domain errors
var (
	ErrInvalidTarget           = errors.New("run target must be live or stub")
	ErrInvalidBaseURL          = errors.New("run base URL must be absolute")
	ErrInvalidStatusTransition = errors.New("invalid run status transition")
	ErrMissingRun              = errors.New("run ID cannot be empty")
	ErrInvalidAlias            = errors.New("route alias cannot be empty")
	ErrInvalidScenario         = errors.New("scenario name cannot be empty")
	ErrInvalidOutcome          = errors.New("scenario outcome must be passed, failed or skipped")
)

// NewRun starts a run with validation
func NewRun(target, baseURL string) (*Run, error) {
	if target != "live" && target != "stub" {
		return nil, ErrInvalidTarget
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	return &Run{
		ID:        uuid.New().String(),
		Target:    target,
		BaseURL:   baseURL,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}, nil
}

// Finish closes the run as passed or failed
func (r *Run) Finish(failed bool) error {
	if r.Status != RunStatusRunning {
		return fmt.Errorf("%w: cannot finish a %s run", ErrInvalidStatusTransition, r.Status)
	}

	now := time.Now()
	r.FinishedAt = &now
	r.Status = RunStatusPassed
	if failed {
		r.Status = RunStatusFailed
	}
	return nil
}

// IsRunning returns true while scenarios are still reporting
func (r *Run) IsRunning() bool {
	return r.Status == RunStatusRunning
}

// Duration returns how long the run took, or has taken so far
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RouteHit is one intercepted storefront response recorded during a run
type RouteHit struct {
	ID       int64
	RunID    string
	Alias    string
	Method   string
	URL      string
	Status   int
	HitAt    time.Time
	Scenario string
}

// Validate checks a hit before it is stored
func (h RouteHit) Validate() error {
	if h.RunID == "" {
		return ErrMissingRun
	}
	if h.Alias == "" {
		return ErrInvalidAlias
	}
	return nil
}

// Outcome is the result of a single scenario
type Outcome string

// Scenario outcomes
const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// ScenarioResult records how one scenario of a run ended
type ScenarioResult struct {
	RunID      string
	Name       string
	Outcome    Outcome
	Duration   time.Duration
	Screenshot string
	RecordedAt time.Time
}

// NewScenarioResult builds a result with validation
func NewScenarioResult(runID, name string, outcome Outcome, d time.Duration) (*ScenarioResult, error) {
	if runID == "" {
		return nil, ErrMissingRun
	}
	if name == "" {
		return nil, ErrInvalidScenario
	}
	switch outcome {
	case OutcomePassed, OutcomeFailed, OutcomeSkipped:
	default:
		return nil, ErrInvalidOutcome
	}

	return &ScenarioResult{
		RunID:      runID,
		Name:       name,
		Outcome:    outcome,
		Duration:   d,
		RecordedAt: time.Now(),
	}, nil
}

// RunSummary aggregates the results of a run for reporting
type RunSummary struct {
	Run     Run
	Passed  int
	Failed  int
	Skipped int
	Hits    int
}

// Total returns the number of scenarios reported
func (s RunSummary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}
