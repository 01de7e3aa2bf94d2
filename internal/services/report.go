package services

import (
	"context"
	"fmt"

	"github.com/lumaqa/lumacheck/internal/models"
)

// ReportRepository defines the reads behind the run report
type ReportRepository interface {
	ListRuns(ctx context.Context, limit int) ([]models.Run, error)
	Summarize(ctx context.Context, id string) (*models.RunSummary, error)
}

// Report summarizes the latest runs, newest first
func Report(ctx context.Context, repo ReportRepository, limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	runs, err := repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]models.RunSummary, 0, len(runs))
	for _, run := range runs {
		s, err := repo.Summarize(ctx, run.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize run %s: %w", run.ID, err)
		}
		summaries = append(summaries, *s)
	}
	return summaries, nil
}
