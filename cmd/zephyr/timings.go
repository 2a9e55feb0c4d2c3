package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zephyr/internal/observ"
)

// newTimer returns a timer when --timings is set and nil otherwise; nil
// timers are inert.
func newTimer(cmd *cobra.Command) *observ.Timer {
	on, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil || !on {
		return nil
	}
	return observ.NewTimer()
}

func printTimings(out io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	report := timer.Report()
	for _, p := range report.Phases {
		line := fmt.Sprintf("%-8s %8.1f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			line += fmt.Sprintf("  x%d", p.Count)
		}
		if p.Note != "" {
			line += "  " + p.Note
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "%-8s %8.1f ms\n", "total", report.TotalMS)
}
