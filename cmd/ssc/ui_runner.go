package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"ssc/internal/driver"
	"ssc/internal/source"
	"ssc/internal/ui"
)

type checkDirOutcome struct {
	fs      *source.FileSet
	results []*driver.CheckResult
	err     error
}

// runCheckDirWithUI runs driver.CheckDir while a progress view renders its
// events to out.
func runCheckDirWithUI(ctx context.Context, out io.Writer, title string, files []string, dir string, opts driver.Options) (*source.FileSet, []*driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, opts)
		outcomeCh <- checkDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// отрисовка умерла, но CheckDir должен дочитать канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
