package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zephyr/internal/diagfmt"
	"zephyr/internal/driver"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [flags] file.zph",
		Short: "Dump the bound program of a zephyr source file",
		Long:  `Bind a zephyr source file and print its imports, exports and declared types with their members`,
		Args:  cobra.ExactArgs(1),
		RunE:  runSymbols,
	}
	cmd.Flags().String("format", "yaml", "output format (yaml|json)")
	cmd.Flags().String("path-mode", "auto", "how paths are printed (auto|absolute|relative|basename)")
	addLibraryFlags(cmd)
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	pathModeStr, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathModeStr)
	if err != nil {
		return err
	}

	path := args[0]
	settings, err := loadCheckSettings(cmd, filepath.Dir(path))
	if err != nil {
		return err
	}
	lib, err := openLibrary(cmd.Context(), settings)
	if err != nil {
		return err
	}
	fset, res, err := driver.Analyze(cmd.Context(), path, driver.Options{
		MaxDiagnostics: settings.MaxDiagnostics,
		Library:        lib,
	})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), res.Bag, fset, diagfmt.PrettyOpts{
			Color:    useColor(cmd, os.Stderr),
			Context:  2,
			PathMode: pathMode,
		})
	}

	doc := diagfmt.BuildSymbolsOutput(res.Program.Scope, fset, res.Path, pathMode)
	if format == "json" {
		err = diagfmt.FormatSymbolsJSON(cmd.OutOrStdout(), doc)
	} else {
		err = diagfmt.FormatSymbolsYAML(cmd.OutOrStdout(), doc)
	}
	if err != nil {
		return fmt.Errorf("failed to write symbols: %w", err)
	}
	if res.HasErrors() {
		return errSilentFailure
	}
	return nil
}
