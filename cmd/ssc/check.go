package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ssc/internal/diag"
	"ssc/internal/diagfmt"
	"ssc/internal/driver"
	"ssc/internal/observ"
	"ssc/internal/source"
	"ssc/internal/trace"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] <file.ss|directory>",
		Short: "Type check an ss source file or directory",
		Long: `Check infers the type of every definition and reports the first failure
of each module. A directory is checked file by file, every *.ss file being an
independent module.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("disk-cache", false, "reuse check outcomes of unchanged files across runs")
	cmd.Flags().String("duplicate-decls", "last-wins", "duplicate declaration policy (last-wins|error)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	return cmd
}

type checkOutput struct {
	format    string
	pathMode  diagfmt.PathMode
	withNotes bool
	color     bool
	quiet     bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := resolveCheckSettings(cmd, args[0])
	if err != nil {
		return err
	}

	out, err := readCheckOutput(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := parseProgressMode(uiFlag)
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cleanup, err := setupTracing(cmd, settings.manifest)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "ssc check", 0).
		WithExtra("target", settings.target)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	opts := driver.Options{
		MaxDiagnostics: settings.maxDiagnostics,
		Policy:         settings.policy,
		Jobs:           settings.jobs,
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}
	if useCache {
		cache, err := driver.OpenDiskCache("ssc")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	var (
		fs      *source.FileSet
		results []*driver.CheckResult
	)
	if settings.isDir {
		opts.Exclude = settings.exclude()
		if mode.showProgress(settings, out, cmd.OutOrStdout()) {
			files, err := driver.ListSourceFiles(settings.target, opts.Exclude)
			if err != nil {
				return err
			}
			fs, results, err = runCheckDirWithUI(ctx, cmd.OutOrStdout(), "checking", files, settings.target, opts)
			if err != nil {
				return err
			}
		} else {
			fs, results, err = driver.CheckDir(ctx, settings.target, opts)
			if err != nil {
				return err
			}
		}
	} else {
		res, err := driver.Check(ctx, settings.target, opts)
		if err != nil {
			return err
		}
		fs, results = res.FileSet, []*driver.CheckResult{res}
	}

	if err := renderCheckResults(cmd.OutOrStdout(), fs, results, opts.Timer, out); err != nil {
		return err
	}
	failed := countFailed(results)
	if !out.quiet && out.format != "json" {
		printCheckSummary(cmd.ErrOrStderr(), results, failed)
		if opts.Timer != nil {
			fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
		}
	}
	if failed > 0 {
		span.WithExtra("failed", fmt.Sprint(failed))
		return errCheckFailed
	}
	return nil
}

func readCheckOutput(cmd *cobra.Command) (checkOutput, error) {
	var out checkOutput
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return out, fmt.Errorf("failed to get format flag: %w", err)
	}
	out.format = strings.ToLower(format)
	switch out.format {
	case "pretty", "short", "json":
	default:
		return out, fmt.Errorf("unknown format: %s (expected pretty|short|json)", format)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return out, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		out.pathMode = diagfmt.PathModeAbsolute
	} else {
		out.pathMode = diagfmt.PathModeRelative
	}
	if out.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return out, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if out.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return out, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if out.color, err = useColor(cmd, cmd.OutOrStdout()); err != nil {
		return out, err
	}
	return out, nil
}

func renderCheckResults(w io.Writer, fs *source.FileSet, results []*driver.CheckResult, timer *observ.Timer, out checkOutput) error {
	switch out.format {
	case "json":
		// один документ на весь прогон
		combined := diag.NewBag(0)
		var defs []diagfmt.Definition
		for _, r := range results {
			combined.Merge(r.Bag)
			defs = append(defs, r.Definitions...)
		}
		if timer != nil {
			driver.AppendTimings(combined, timer, source.Span{})
		}
		return diagfmt.JSON(w, combined, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         out.pathMode,
			IncludeNotes:     out.withNotes,
		}, &diagfmt.SemanticsInput{Definitions: defs})

	case "short":
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if _, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(r.Bag.Items(), r.FileSet, out.withNotes)); err != nil {
				return err
			}
		}
		return nil

	default:
		first := true
		for _, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(w)
			}
			first = false
			diagfmt.Pretty(w, r.Bag, r.FileSet, diagfmt.PrettyOpts{
				Color:     out.color,
				Context:   1,
				PathMode:  out.pathMode,
				ShowNotes: out.withNotes,
			})
		}
		return nil
	}
}

func countFailed(results []*driver.CheckResult) int {
	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	return failed
}

func printCheckSummary(w io.Writer, results []*driver.CheckResult, failed int) {
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	noun := "files"
	if len(results) == 1 {
		noun = "file"
	}
	fmt.Fprintf(w, "checked %d %s", len(results), noun)
	if cached > 0 {
		fmt.Fprintf(w, " (%d cached)", cached)
	}
	if failed > 0 {
		fmt.Fprintf(w, ": %d failed\n", failed)
		return
	}
	fmt.Fprintln(w, ": ok")
}
