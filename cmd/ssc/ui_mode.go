package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// progressMode is the value of `check --ui`.
type progressMode uint8

const (
	progressAuto progressMode = iota
	progressOn
	progressOff
)

var progressModeNames = map[string]progressMode{
	"":       progressAuto,
	"auto":   progressAuto,
	"on":     progressOn,
	"always": progressOn,
	"off":    progressOff,
	"never":  progressOff,
}

func (m progressMode) String() string {
	switch m {
	case progressOn:
		return "on"
	case progressOff:
		return "off"
	default:
		return "auto"
	}
}

func parseProgressMode(value string) (progressMode, error) {
	m, ok := progressModeNames[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		return progressAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	return m, nil
}

// showProgress decides whether a check run renders the progress view on w.
// Only directory runs with human-readable output qualify; --ui on forces the
// view even when w is not a terminal.
func (m progressMode) showProgress(settings checkSettings, out checkOutput, w io.Writer) bool {
	if !settings.isDir || out.format == "json" || out.quiet || m == progressOff {
		return false
	}
	if m == progressOn {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
