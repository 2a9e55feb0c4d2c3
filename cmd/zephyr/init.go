package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"zephyr/internal/project"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new zephyr project",
		Long: `Initialize a new zephyr project by creating a project manifest (zephyr.toml)
and a hello-world entry point (main.zph). If [path|name] is omitted, initializes
the current directory. If a non-existing name is provided, a directory will be
created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	res, err := project.Init(target)
	if err != nil {
		return err
	}
	if quiet(cmd) {
		return nil
	}

	rel := res.Root
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, res.Root); err == nil {
			rel = r
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized zephyr project in %s\n", rel)
	fmt.Fprintf(out, "  - %s\n", project.ManifestName)
	if res.CreatedMain {
		fmt.Fprintf(out, "  - %s\n", project.MainFile)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", project.MainFile)
	}
	return nil
}
