package main

import (
	"fmt"
	"os"

	"github.com/pszt/botbench/internal/archive"
	"github.com/pszt/botbench/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newArchiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Work with archived game logs",
	}
	cmd.AddCommand(newArchiveExtractCommand())
	cmd.AddCommand(newArchiveStoreCommand())
	return cmd
}

func newArchiveExtractCommand() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "extract <file.zst>",
		Short: "Decompress an archived game log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return archive.Extract(cmd.OutOrStdout(), args[0])
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outputPath, err)
			}
			if err := archive.Extract(f, args[0]); err != nil {
				f.Close() //nolint:errcheck
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the log to this file instead of stdout")
	return cmd
}

func newArchiveStoreCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "store <log> [<log>...]",
		Short: "Compress game logs into the archive directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				cfg, err := loadProject()
				if err != nil {
					return err
				}
				dir = cfg.Paths.Archive
			}
			if dir == "" {
				return fmt.Errorf("no archive directory: set paths.archive in %s or pass --dir", projectconfig.FileName)
			}

			a := archive.New(dir)
			for _, p := range args {
				dst, err := a.Store(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dst) //nolint:errcheck
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Archive directory (overrides config)")
	return cmd
}
