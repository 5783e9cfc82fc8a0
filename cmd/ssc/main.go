package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ssc/internal/prof"
	"ssc/internal/version"
)

// errCheckFailed signals that diagnostics were already reported and the
// process should exit with status 1 without printing anything else.
var errCheckFailed = errors.New("check failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ssc",
		Short:         "Type checker for ss modules",
		Long:          `ssc infers and checks the types of definitions in ss source files`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	root.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	root.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
	root.PersistentPreRunE = startProfiling

	root.AddCommand(newCheckCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newFormatCmd())
	root.AddCommand(newVersionCmd())
	return root
}

var activeProfile *prof.Session

func init() {
	cobra.OnFinalize(stopProfiling)
}

func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	for name, dst := range map[string]*string{"cpuprofile": &opts.CPU, "memprofile": &opts.Mem, "runtime-trace": &opts.Trace} {
		v, err := flags.GetString(name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", name, err)
		}
		*dst = v
	}
	if !opts.Enabled() {
		return nil
	}
	session, err := prof.Start(opts)
	if err != nil {
		return err
	}
	activeProfile = session
	return nil
}

// stopProfiling runs after every command, including failed ones.
func stopProfiling() {
	if err := activeProfile.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "ssc: %v\n", err)
	}
	activeProfile = nil
}

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "ssc: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output written to w.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		f, ok := w.(*os.File)
		return ok && isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
