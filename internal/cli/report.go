package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/lumaqa/lumacheck/internal/models"
)

// WriteReport prints run summaries, newest first
func WriteReport(w io.Writer, summaries []models.RunSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTARGET\tSTATUS\tSTARTED\tDURATION\tPASSED\tFAILED\tSKIPPED\tHITS")
	for _, s := range summaries {
		duration := "-"
		if s.Run.FinishedAt != nil {
			duration = s.Run.Duration().Round(time.Second).String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			s.Run.ID,
			s.Run.Target,
			s.Run.Status,
			s.Run.StartedAt.Format(time.DateTime),
			duration,
			s.Passed,
			s.Failed,
			s.Skipped,
			s.Hits)
	}
	return tw.Flush()
}
