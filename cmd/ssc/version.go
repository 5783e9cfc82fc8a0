package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ssc/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show ssc build information",
		Args:  cobra.NoArgs,
		RunE:  runVersion,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("full", false, "include commit hash and build date")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return fmt.Errorf("failed to get full flag: %w", err)
	}

	switch strings.ToLower(format) {
	case "json":
		payload := versionPayload{Tool: "ssc", Version: version.Colored(false)}
		if full {
			payload.GitCommit = valueOrUnknown(version.GitCommit)
			payload.BuildDate = valueOrUnknown(version.BuildDate)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		colored, err := useColor(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		renderVersionPretty(cmd.OutOrStdout(), version.Colored(colored), full)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

func renderVersionPretty(out io.Writer, v string, full bool) {
	fmt.Fprintf(out, "ssc %s\n", v)
	if full {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(strings.TrimSpace(version.GitCommit)))
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(strings.TrimSpace(version.BuildDate)))
	}
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
