package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/lumaqa/lumacheck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(95 * time.Second)

	tests := []struct {
		name      string
		summaries []models.RunSummary
		want      [][]string
	}{
		{
			name: "no runs",
			want: [][]string{{"no", "runs", "recorded"}},
		},
		{
			name: "finished and running",
			summaries: []models.RunSummary{
				{
					Run:    models.Run{ID: "run-2", Target: "stub", Status: models.RunStatusRunning, StartedAt: start},
					Passed: 1,
				},
				{
					Run:    models.Run{ID: "run-1", Target: "live", Status: models.RunStatusFailed, StartedAt: start, FinishedAt: &end},
					Passed: 3, Failed: 1, Skipped: 2, Hits: 40,
				},
			},
			want: [][]string{
				{"RUN", "TARGET", "STATUS", "STARTED", "DURATION", "PASSED", "FAILED", "SKIPPED", "HITS"},
				{"run-2", "stub", "running", "2024-05-01", "10:00:00", "-", "1", "0", "0", "0"},
				{"run-1", "live", "failed", "2024-05-01", "10:00:00", "1m35s", "3", "1", "2", "40"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, WriteReport(&out, tt.summaries))

			var got [][]string
			for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
				got = append(got, strings.Fields(line))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
