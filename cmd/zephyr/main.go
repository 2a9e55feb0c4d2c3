package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zephyr/internal/prof"
	"zephyr/internal/version"
)

// errSilentFailure makes the process exit with status 1 without printing
// anything further; the command has already reported what went wrong.
var errSilentFailure = errors.New("command failed")

// newRootCmd builds the command tree. finish stops profiling and releases
// the tracer; it runs after successful commands and must also be called when
// Execute fails, since cobra skips post-run hooks on error.
func newRootCmd() (root *cobra.Command, finish func(failed bool)) {
	var (
		cleanupTrace func(bool)
		profiling    *prof.Session
	)
	finish = func(failed bool) {
		if err := profiling.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "zephyr: %v\n", err)
		}
		profiling = nil
		if cleanupTrace != nil {
			cleanupTrace(failed)
			cleanupTrace = nil
		}
	}
	root = &cobra.Command{
		Use:           "zephyr",
		Short:         "Zephyr language front end and toolchain",
		Long:          `Zephyr checks .zph sources: it lexes, parses and binds them and reports diagnostics`,
		Version:       version.Current().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := colorMode(cmd)
			if err != nil {
				return err
			}
			switch mode {
			case "on":
				color.NoColor = false
			case "off":
				color.NoColor = true
			}
			if profiling, err = setupProfiling(cmd); err != nil {
				return err
			}
			cleanupTrace, err = setupTracing(cmd)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) { finish(false) },
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	pf.Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode ring|both")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	addProfileFlags(root)

	root.AddCommand(
		newDiagCmd(),
		newSymbolsCmd(),
		newTokenizeCmd(),
		newInitCmd(),
		newLSPCmd(),
		newVersionCmd(),
	)
	return root, finish
}

func main() {
	root, finish := newRootCmd()
	err := root.Execute()
	finish(err != nil)
	if err != nil {
		if !errors.Is(err, errSilentFailure) {
			fmt.Fprintf(os.Stderr, "zephyr: %v\n", err)
		}
		os.Exit(1)
	}
}

func colorMode(cmd *cobra.Command) (string, error) {
	v, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return "", fmt.Errorf("failed to get color flag: %w", err)
	}
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "auto", "on", "off":
		return v, nil
	}
	return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", v)
}

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, err := colorMode(cmd)
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}

// isTerminal reports whether f is a terminal, including Cygwin and MSYS ptys.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd) // #nosec G115 -- file descriptors fit in int
}
