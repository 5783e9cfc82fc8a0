package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssc/internal/diagfmt"
	"ssc/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.ss",
		Short: "Tokenize an ss source file",
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		colored, err := useColor(cmd, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: colored})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
