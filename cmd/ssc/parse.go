package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssc/internal/diagfmt"
	"ssc/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.ss",
		Short: "Parse an ss source file and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	// Диагностику выводим в stderr, дерево в stdout
	if result.Bag.Len() > 0 {
		useColorErr, err := useColor(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		result.Bag.Sort()
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:    useColorErr,
			Context:  1,
			PathMode: diagfmt.PathModeAuto,
		})
	}

	switch format {
	case "pretty":
		err = diagfmt.FormatASTPretty(cmd.OutOrStdout(), result.Builder, result.FileID, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(cmd.OutOrStdout(), result.Builder, result.FileID)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errCheckFailed
	}
	return nil
}
