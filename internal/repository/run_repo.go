package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lumaqa/lumacheck/internal/models"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for the run ledger
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// CreateRun inserts a running run
func (r *RunRepository) CreateRun(ctx context.Context, run *models.Run) error {
	query := `
		INSERT INTO runs (id, target, base_url, status, started_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Target,
		run.BaseURL,
		run.Status,
		run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

// FinishRun stores the final status of a run
func (r *RunRepository) FinishRun(ctx context.Context, run *models.Run) error {
	query := `
		UPDATE runs
		SET status = $1, finished_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, run.Status, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

const runColumns = `id, target, base_url, status, started_at, finished_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*models.Run, error) {
	run := &models.Run{}
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &run.Target, &run.BaseURL, &run.Status, &run.StartedAt, &finished); err != nil {
		return nil, err
	}
	if finished.Valid {
		run.FinishedAt = &finished.Time
	}
	return run, nil
}

// GetRun retrieves a run by its id
func (r *RunRepository) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// ListRuns returns the most recent runs first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]models.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return runs, nil
}

// RecordHit stores an intercepted response of a run
func (r *RunRepository) RecordHit(ctx context.Context, hit *models.RouteHit) error {
	if err := hit.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO route_hits (run_id, alias, method, url, status, scenario, hit_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		hit.RunID,
		hit.Alias,
		hit.Method,
		hit.URL,
		hit.Status,
		hit.Scenario,
		hit.HitAt,
	).Scan(&hit.ID)
	if err != nil {
		return fmt.Errorf("failed to record route hit: %w", err)
	}

	return nil
}

// RecordResult stores a scenario outcome. A scenario reported twice keeps the
// last outcome.
func (r *RunRepository) RecordResult(ctx context.Context, res *models.ScenarioResult) error {
	query := `
		INSERT INTO scenario_results (run_id, name, outcome, duration_ms, screenshot, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (run_id, name) DO UPDATE
		SET outcome = EXCLUDED.outcome,
		    duration_ms = EXCLUDED.duration_ms,
		    screenshot = EXCLUDED.screenshot,
		    recorded_at = EXCLUDED.recorded_at
	`

	_, err := r.db.ExecContext(ctx, query,
		res.RunID,
		res.Name,
		res.Outcome,
		res.Duration.Milliseconds(),
		res.Screenshot,
		res.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record scenario result: %w", err)
	}

	return nil
}

// Summarize counts the outcomes and hits of a run
func (r *RunRepository) Summarize(ctx context.Context, id string) (*models.RunSummary, error) {
	run, err := r.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{Run: *run}

	query := `
		SELECT
			COUNT(*) FILTER (WHERE outcome = 'passed'),
			COUNT(*) FILTER (WHERE outcome = 'failed'),
			COUNT(*) FILTER (WHERE outcome = 'skipped')
		FROM scenario_results
		WHERE run_id = $1
	`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&summary.Passed, &summary.Failed, &summary.Skipped); err != nil {
		return nil, fmt.Errorf("failed to count scenario results: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM route_hits WHERE run_id = $1`, id).Scan(&summary.Hits); err != nil {
		return nil, fmt.Errorf("failed to count route hits: %w", err)
	}

	return summary, nil
}
