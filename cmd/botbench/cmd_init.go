package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/pszt/botbench/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .botbench.yaml project config",
		Long: `Create a .botbench.yaml project config with the default heuristics,
depths 1-8, the checkers program engine and the file result store.

Use --interactive to run a guided wizard instead of writing the defaults.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, interactive, force)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided setup wizard")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, interactive, force bool) error {
	out := cmd.OutOrStdout()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := projectconfig.New()
	if interactive {
		var err error
		cfg, err = wizard.RunInitWizard(cmd.InOrStdin(), out, cfg)
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.Save(path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s\n", path)                                             //nolint:errcheck
	fmt.Fprintf(out, "  heuristics: %d, depths: %s\n", len(cfg.Heuristics), cfg.Depths) //nolint:errcheck
	fmt.Fprintln(out, "\nNext: botbench schedule, then botbench run --report")           //nolint:errcheck
	return nil
}
