package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zephyr/internal/library"
	"zephyr/internal/project"
)

// checkSettings is the zephyr.toml [check] and [library] configuration with
// explicitly set command-line flags layered on top.
type checkSettings struct {
	Manifest       *project.Manifest
	MaxDiagnostics int
	Jobs           int
	LibraryDir     string
	LibraryPrefix  string
	NoCache        bool
}

func addLibraryFlags(cmd *cobra.Command) {
	cmd.Flags().String("std", "", "standard library directory (overrides [library].path)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the library index cache")
}

// loadCheckSettings discovers the manifest governing startDir and applies
// flags that were set explicitly. A missing manifest is not an error.
func loadCheckSettings(cmd *cobra.Command, startDir string) (checkSettings, error) {
	var s checkSettings
	m, found, err := project.Load(startDir)
	if err != nil {
		return s, fmt.Errorf("failed to load %s: %w", project.ManifestName, err)
	}
	if found {
		s.Manifest = m
		s.MaxDiagnostics = m.Config.Check.MaxDiagnostics
		s.Jobs = m.Config.Check.Jobs
		s.LibraryDir = m.LibraryDir()
	}
	s.LibraryPrefix = m.LibraryPrefix()

	maxDiags, changed, err := intFlag(cmd, "max-diagnostics")
	if err != nil {
		return s, err
	}
	if changed || s.MaxDiagnostics == 0 {
		s.MaxDiagnostics = maxDiags
	}
	if jobs, changed, err := intFlag(cmd, "jobs"); err != nil {
		return s, err
	} else if changed {
		s.Jobs = jobs
	}
	if f := cmd.Flags().Lookup("std"); f != nil && f.Changed {
		dir, err := filepath.Abs(f.Value.String())
		if err != nil {
			return s, fmt.Errorf("invalid --std: %w", err)
		}
		s.LibraryDir = dir
	}
	if f := cmd.Flags().Lookup("no-cache"); f != nil {
		s.NoCache, err = cmd.Flags().GetBool("no-cache")
		if err != nil {
			return s, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
	}
	return s, nil
}

func intFlag(cmd *cobra.Command, name string) (value int, changed bool, err error) {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		return 0, false, nil
	}
	value, err = cmd.Flags().GetInt(name)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	return value, f.Changed, nil
}

// openLibrary indexes the configured standard library; nil when none is set.
func openLibrary(ctx context.Context, s checkSettings) (*library.Index, error) {
	if s.LibraryDir == "" {
		return nil, nil
	}
	return library.Open(ctx, s.LibraryDir, library.Options{
		Prefix:  s.LibraryPrefix,
		NoCache: s.NoCache,
	})
}

// startDirFor returns the directory manifest discovery starts from for a
// file or directory argument.
func startDirFor(path string) (string, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return "", false, fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return abs, true, nil
	}
	return filepath.Dir(abs), false, nil
}
