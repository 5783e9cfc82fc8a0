package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ssc/internal/project"
	"ssc/internal/trace"
)

// setupTracing inspects trace-related flags (falling back to the manifest's
// [trace] section for unset ones) and attaches the tracer to cmd's context.
// It returns a cleanup function that flushes and closes the tracer.
func setupTracing(cmd *cobra.Command, manifest *project.Manifest) (func(), error) {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	if manifest != nil {
		cfg := manifest.Config.Trace
		if !flags.Changed("trace") && manifest.IsDefined("trace", "output") {
			traceOutput = cfg.Output
		}
		if !flags.Changed("trace-level") && manifest.IsDefined("trace", "level") {
			levelStr = cfg.Level
		}
		if !flags.Changed("trace-format") && manifest.IsDefined("trace", "format") {
			formatStr = cfg.Format
		}
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace format: %w", err)
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       trace.ModeStream,
		Format:     format,
		OutputPath: traceOutput,
	}
	if traceOutput == "" || traceOutput == "-" {
		// stderr команды закрывать нельзя
		cfg.Output = struct{ io.Writer }{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
