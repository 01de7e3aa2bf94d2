package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/lumaqa/lumacheck/internal/routes"
)

// WriteRoutes prints the registry sorted by key
func WriteRoutes(w io.Writer, registry *routes.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tMETHOD\tPATTERN")
	for _, r := range registry.Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Key, r.Method, r.Pattern)
	}
	return tw.Flush()
}
