package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lumaqa/lumacheck/internal/models"
	"github.com/lumaqa/lumacheck/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// startTestRecorder starts a recorder that is finished when the test ends
func startTestRecorder(t *testing.T, repo *MockRunRepository) *Recorder {
	t.Helper()
	rec, err := StartRecorder(context.Background(), repo, "stub", "http://127.0.0.1:8080/", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rec.Finish(context.Background()) })
	return rec
}

// MockRunRepository is a mock implementation of the ledger repositories for testing
type MockRunRepository struct {
	CreateRunFunc    func(*models.Run) error
	FinishRunFunc    func(*models.Run) error
	RecordHitFunc    func(*models.RouteHit) error
	RecordResultFunc func(*models.ScenarioResult) error
	ListRunsFunc     func(int) ([]models.Run, error)
	SummarizeFunc    func(string) (*models.RunSummary, error)

	mu      sync.Mutex
	hits    []models.RouteHit
	results []models.ScenarioResult
}

func (m *MockRunRepository) CreateRun(_ context.Context, run *models.Run) error {
	if m.CreateRunFunc != nil {
		return m.CreateRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) FinishRun(_ context.Context, run *models.Run) error {
	if m.FinishRunFunc != nil {
		return m.FinishRunFunc(run)
	}
	return nil
}

func (m *MockRunRepository) RecordHit(_ context.Context, hit *models.RouteHit) error {
	if m.RecordHitFunc != nil {
		return m.RecordHitFunc(hit)
	}
	m.mu.Lock()
	m.hits = append(m.hits, *hit)
	m.mu.Unlock()
	return nil
}

func (m *MockRunRepository) RecordResult(_ context.Context, res *models.ScenarioResult) error {
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(res)
	}
	m.mu.Lock()
	m.results = append(m.results, *res)
	m.mu.Unlock()
	return nil
}

func (m *MockRunRepository) ListRuns(_ context.Context, limit int) ([]models.Run, error) {
	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(limit)
	}
	return nil, nil
}

func (m *MockRunRepository) Summarize(_ context.Context, id string) (*models.RunSummary, error) {
	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(id)
	}
	return &models.RunSummary{Run: models.Run{ID: id}}, nil
}

func TestStartRecorder(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		mockError error
		wantErr   bool
	}{
		{name: "successful start", target: "stub"},
		{name: "invalid target", target: "staging", wantErr: true},
		{name: "repository error", target: "live", mockError: errors.New("database error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *models.Run
			repo := &MockRunRepository{
				CreateRunFunc: func(run *models.Run) error {
					created = run
					return tt.mockError
				},
			}

			rec, err := StartRecorder(context.Background(), repo, tt.target, "http://127.0.0.1:8080/", zap.NewNop())

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, rec)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = rec.Finish(context.Background()) })
			require.NotNil(t, created)
			assert.Equal(t, created.ID, rec.RunID())
			assert.Equal(t, models.RunStatusRunning, created.Status)
		})
	}
}

func TestRecorder_RouteHit(t *testing.T) {
	repo := &MockRunRepository{}
	rec, err := StartRecorder(context.Background(), repo, "stub", "http://127.0.0.1:8080/", zap.NewNop())
	require.NoError(t, err)

	// GIVEN the recorder observes an interceptor during a scenario
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rec.Scenario("TestCart/add")

	// WHEN a hit is observed and the run finishes
	var observer routes.Observer = rec
	observer.RouteHit(routes.Hit{Alias: "CartPage", Method: "GET", URL: "http://127.0.0.1:8080/checkout/cart/", Status: 200, At: at})
	rec.Scenario("TestCart/delete")
	require.NoError(t, rec.Finish(context.Background()))

	// THEN it is stored against the run and the scenario it was seen in
	require.Len(t, repo.hits, 1)
	assert.Equal(t, models.RouteHit{
		RunID:    rec.RunID(),
		Alias:    "CartPage",
		Method:   "GET",
		URL:      "http://127.0.0.1:8080/checkout/cart/",
		Status:   200,
		HitAt:    at,
		Scenario: "TestCart/add",
	}, repo.hits[0])
}

func TestRecorder_RouteHit_DoesNotWaitForTheLedger(t *testing.T) {
	// GIVEN a ledger whose writes hang until released
	release := make(chan struct{})
	var written atomic.Int32
	repo := &MockRunRepository{
		RecordHitFunc: func(*models.RouteHit) error {
			<-release
			written.Add(1)
			return nil
		},
	}
	rec := startTestRecorder(t, repo)

	// WHEN more hits arrive than the queue holds
	sent := make(chan struct{})
	go func() {
		defer close(sent)
		for i := 0; i < hitQueueSize+10; i++ {
			rec.RouteHit(routes.Hit{Alias: "CartPage", Status: 200})
		}
	}()

	// THEN the observer returns at once
	select {
	case <-sent:
	case <-time.After(time.Second):
		t.Fatal("RouteHit blocked on a ledger write")
	}

	// AND the queued hits are written once the ledger catches up
	close(release)
	require.NoError(t, rec.Finish(context.Background()))
	assert.GreaterOrEqual(t, int(written.Load()), hitQueueSize)
	assert.LessOrEqual(t, int(written.Load()), hitQueueSize+1)
}

func TestRecorder_RouteHit_AfterFinish(t *testing.T) {
	repo := &MockRunRepository{}
	rec := startTestRecorder(t, repo)
	require.NoError(t, rec.Finish(context.Background()))

	assert.NotPanics(t, func() {
		rec.RouteHit(routes.Hit{Alias: "CartPage", Status: 200})
	})
	assert.Empty(t, repo.hits)
}

func TestRecorder_Finish_WaitsForQueuedHits(t *testing.T) {
	// GIVEN a ledger write that never completes
	release := make(chan struct{})
	repo := &MockRunRepository{
		RecordHitFunc: func(*models.RouteHit) error {
			<-release
			return nil
		},
	}
	rec := startTestRecorder(t, repo)
	t.Cleanup(func() { close(release) })
	rec.RouteHit(routes.Hit{Alias: "CartPage", Status: 200})

	// WHEN finishing under a short deadline
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := rec.Finish(ctx)

	// THEN the run stays open and the deadline is reported
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, rec.run.IsRunning())
}

func TestRecorder_RouteHit_WriteErrorIsSwallowed(t *testing.T) {
	repo := &MockRunRepository{
		RecordHitFunc: func(*models.RouteHit) error { return errors.New("database error") },
	}
	rec := startTestRecorder(t, repo)

	rec.RouteHit(routes.Hit{Alias: "HomePage", Status: 200})
	assert.NoError(t, rec.Finish(context.Background()))
}

func TestRecorder_Finish(t *testing.T) {
	tests := []struct {
		name       string
		outcomes   []models.Outcome
		wantStatus models.RunStatus
	}{
		{
			name:       "all passed",
			outcomes:   []models.Outcome{models.OutcomePassed, models.OutcomeSkipped},
			wantStatus: models.RunStatusPassed,
		},
		{
			name:       "one failure fails the run",
			outcomes:   []models.Outcome{models.OutcomePassed, models.OutcomeFailed, models.OutcomePassed},
			wantStatus: models.RunStatusFailed,
		},
		{
			name:       "no scenarios",
			wantStatus: models.RunStatusPassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var finished *models.Run
			repo := &MockRunRepository{
				FinishRunFunc: func(run *models.Run) error {
					finished = run
					return nil
				},
			}
			ctx := context.Background()
			rec, err := StartRecorder(ctx, repo, "live", "https://magento.softwaretestingboard.com/", zap.NewNop())
			require.NoError(t, err)

			// GIVEN reported outcomes
			for i, o := range tt.outcomes {
				require.NoError(t, rec.Result(ctx, string(rune('A'+i)), o, time.Second, ""))
			}

			// WHEN the run finishes
			require.NoError(t, rec.Finish(ctx))

			// THEN the stored status reflects the outcomes
			require.NotNil(t, finished)
			assert.Equal(t, tt.wantStatus, finished.Status)
			assert.NotNil(t, finished.FinishedAt)
			assert.Len(t, repo.results, len(tt.outcomes))

			// AND the run cannot finish twice
			assert.ErrorIs(t, rec.Finish(ctx), models.ErrInvalidStatusTransition)
		})
	}
}

func TestRecorder_Result_Invalid(t *testing.T) {
	repo := &MockRunRepository{}
	ctx := context.Background()
	rec := startTestRecorder(t, repo)

	err := rec.Result(ctx, "", models.OutcomePassed, 0, "")
	assert.ErrorIs(t, err, models.ErrInvalidScenario)
	assert.Empty(t, repo.results)
}

func TestReport(t *testing.T) {
	runs := []models.Run{{ID: "run-2"}, {ID: "run-1"}}

	tests := []struct {
		name    string
		limit   int
		repo    *MockRunRepository
		wantIDs []string
		wantErr bool
	}{
		{
			name:    "summaries in listing order",
			limit:   5,
			repo:    &MockRunRepository{ListRunsFunc: func(int) ([]models.Run, error) { return runs, nil }},
			wantIDs: []string{"run-2", "run-1"},
		},
		{
			name:    "invalid limit",
			limit:   0,
			repo:    &MockRunRepository{},
			wantErr: true,
		},
		{
			name:  "summary error",
			limit: 5,
			repo: &MockRunRepository{
				ListRunsFunc:  func(int) ([]models.Run, error) { return runs, nil },
				SummarizeFunc: func(string) (*models.RunSummary, error) { return nil, errors.New("database error") },
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Report(context.Background(), tt.repo, tt.limit)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var ids []string
			for _, s := range got {
				ids = append(ids, s.Run.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}
