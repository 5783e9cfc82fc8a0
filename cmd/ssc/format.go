package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ssc/internal/diagfmt"
	"ssc/internal/format"
	"ssc/internal/source"
)

func newFormatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] file.ss...",
		Short: "Reprint ss source files in canonical layout",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFormat,
	}
	cmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	cmd.Flags().Bool("check", false, "exit 1 when a file is not formatted")
	return cmd
}

func runFormat(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	failed := false
	for _, path := range args {
		// #nosec G304 -- path is a user-supplied CLI argument
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		out, bag, err := format.Source(path, content, maxDiagnostics)
		if err != nil {
			return err
		}
		if bag.HasErrors() {
			fs := source.NewFileSet()
			fs.AddVirtual(path, content)
			colored, colorErr := useColor(cmd, cmd.ErrOrStderr())
			if colorErr != nil {
				return colorErr
			}
			diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{Color: colored, Context: 1})
			failed = true
			continue
		}

		switch {
		case check:
			if !bytes.Equal(out, content) {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				failed = true
			}
		case write:
			if bytes.Equal(out, content) {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
		default:
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}
		}
	}
	if failed {
		return errCheckFailed
	}
	return nil
}
