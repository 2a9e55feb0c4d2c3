package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zephyr/internal/diag"
	"zephyr/internal/diagfmt"
	"zephyr/internal/driver"
	"zephyr/internal/source"
	"zephyr/internal/trace"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.zph|directory>",
		Short: "Run diagnostics on a zephyr source file or directory",
		Long:  `Lex, parse and bind a zephyr source file, or every *.zph file under a directory, and report diagnostics`,
		Args:  cobra.ExactArgs(1),
		RunE:  runDiag,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|short|golden)")
	cmd.Flags().String("stages", "bind", "last stage to run (parse|bind)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	addLibraryFlags(cmd)
	return cmd
}

type diagOutput struct {
	format     string
	pathMode   diagfmt.PathMode
	withNotes  bool
	color      bool
	libraryDir string
}

func runDiag(cmd *cobra.Command, args []string) error {
	target := args[0]
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "short", "golden":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	stagesStr, err := cmd.Flags().GetString("stages")
	if err != nil {
		return fmt.Errorf("failed to get stages flag: %w", err)
	}
	var until driver.Stage
	switch stagesStr {
	case "parse", "syntax":
		until = driver.StageParse
	case "bind", "all":
		until = driver.StageBind
	default:
		return fmt.Errorf("unknown stages value: %s", stagesStr)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}

	startDir, isDir, err := startDirFor(target)
	if err != nil {
		return err
	}
	settings, err := loadCheckSettings(cmd, startDir)
	if err != nil {
		return err
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "diag")
	defer span.WithExtra("target", target).End("")

	lib, err := openLibrary(ctx, settings)
	if err != nil {
		return err
	}
	timer := newTimer(cmd)
	opts := driver.Options{
		MaxDiagnostics: settings.MaxDiagnostics,
		Until:          until,
		Library:        lib,
		Timer:          timer,
	}
	out := diagOutput{
		format:    format,
		pathMode:  pathMode,
		withNotes:  withNotes,
		color:      useColor(cmd, os.Stdout),
		libraryDir: settings.LibraryDir,
	}
	stdout := cmd.OutOrStdout()

	var failed bool
	if !isDir {
		fset, res, err := driver.Analyze(ctx, target, opts)
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		if err := writeFileDiagnostics(stdout, out, fset, res); err != nil {
			return err
		}
		failed = res.HasErrors()
	} else {
		var (
			fset    *source.FileSet
			results []driver.Result
		)
		if shouldUseTUI(mode, isTerminal(os.Stdout)) && format == "pretty" {
			files, listErr := driver.ListSources(startDir)
			if listErr != nil {
				return listErr
			}
			fset, results, err = analyzeDirWithUI(ctx, os.Stdout, startDir, files, opts, settings.Jobs)
		} else {
			fset, results, err = driver.AnalyzeDir(ctx, startDir, opts, settings.Jobs)
		}
		if err != nil {
			return fmt.Errorf("diagnosis failed: %w", err)
		}
		if err := writeDirDiagnostics(stdout, out, startDir, fset, results); err != nil {
			return err
		}
		sum := driver.Summarize(results)
		failed = sum.FilesFailed > 0
		if !quiet(cmd) && format != "json" {
			fmt.Fprintf(cmd.ErrOrStderr(), "checked %d files: %d errors, %d warnings\n", sum.Files, sum.Errors, sum.Warnings)
		}
	}

	printTimings(cmd.ErrOrStderr(), timer)
	if failed {
		return errSilentFailure
	}
	return nil
}

func writeFileDiagnostics(w io.Writer, out diagOutput, fset *source.FileSet, res *driver.Result) error {
	switch out.format {
	case "pretty":
		diagfmt.Pretty(w, res.Bag, fset, diagfmt.PrettyOpts{
			Color:     out.color,
			Context:   2,
			PathMode:  out.pathMode,
			ShowNotes: out.withNotes,
		})
	case "short":
		diagfmt.Short(w, res.Bag, fset, out.pathMode)
	case "golden":
		writeGolden(w, out, fset, res.Bag.Items())
	case "json":
		if err := diagfmt.JSON(w, res.Bag, fset, jsonOpts(out)); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	}
	return nil
}

func writeDirDiagnostics(w io.Writer, out diagOutput, dir string, fset *source.FileSet, results []driver.Result) error {
	switch out.format {
	case "pretty":
		first := true
		for i := range results {
			r := &results[i]
			if r.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			fmt.Fprintf(w, "== %s ==\n", displayPath(dir, r.Path, out.pathMode))
			diagfmt.Pretty(w, r.Bag, fset, diagfmt.PrettyOpts{
				Color:     out.color,
				Context:   2,
				PathMode:  out.pathMode,
				ShowNotes: out.withNotes,
			})
		}
	case "short":
		for i := range results {
			diagfmt.Short(w, results[i].Bag, fset, out.pathMode)
		}
	case "golden":
		var all []diag.Diagnostic
		for i := range results {
			all = append(all, results[i].Bag.Items()...)
		}
		writeGolden(w, out, fset, all)
	case "json":
		doc := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for i := range results {
			r := &results[i]
			doc[displayPath(dir, r.Path, out.pathMode)] = diagfmt.BuildDiagnosticsOutput(r.Bag, fset, jsonOpts(out))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	}
	return nil
}

func writeGolden(w io.Writer, out diagOutput, fset *source.FileSet, items []diag.Diagnostic) {
	text := diag.FormatGolden(items, fset, diag.GoldenOptions{
		Notes:      out.withNotes,
		LibraryDir: out.libraryDir,
	})
	if text != "" {
		fmt.Fprintln(w, text)
	}
}

func jsonOpts(out diagOutput) diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         out.pathMode,
		IncludeNotes:     out.withNotes,
	}
}

// displayPath names a directory member relative to the checked directory
// unless absolute or basename paths were requested.
func displayPath(dir, path string, mode diagfmt.PathMode) string {
	switch mode {
	case diagfmt.PathModeAbsolute:
		return filepath.ToSlash(path)
	case diagfmt.PathModeBasename:
		return filepath.Base(path)
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
