package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"zephyr/internal/driver"
	"zephyr/internal/source"
	"zephyr/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, isTTY bool) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTTY
	}
}

type dirOutcome struct {
	fset    *source.FileSet
	results []driver.Result
	err     error
}

// analyzeDirWithUI runs driver.AnalyzeDir while a bubbletea progress view
// renders its events to out. Quitting the view cancels the run.
func analyzeDirWithUI(ctx context.Context, out io.Writer, dir string, files []string, opts driver.Options, jobs int) (*source.FileSet, []driver.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		fset, results, err := driver.AnalyzeDir(ctx, dir, o, jobs)
		outcomeCh <- dirOutcome{fset: fset, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()
	// workers may still be sending after an early quit
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fset, outcome.results, uiErr
	}
	return outcome.fset, outcome.results, outcome.err
}
