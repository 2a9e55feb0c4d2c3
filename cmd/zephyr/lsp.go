package main

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"zephyr/internal/lsp"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the zephyr language server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runLSP,
	}
	cmd.Flags().Duration("debounce", 150*time.Millisecond, "delay before rebinding an edited document")
	addLibraryFlags(cmd)
	return cmd
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	settings, err := loadCheckSettings(cmd, wd)
	if err != nil {
		return err
	}
	lib, err := openLibrary(cmd.Context(), settings)
	if err != nil {
		return err
	}

	server := lsp.NewServer(os.Stdin, os.Stdout, lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: settings.MaxDiagnostics,
		Library:        lib,
		Log:            cmd.ErrOrStderr(),
	})
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			// the protocol asks for exit code 1 here
			return errSilentFailure
		}
		return err
	}
	return nil
}
