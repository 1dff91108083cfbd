package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"chearmyp/internal/driver"
	"chearmyp/internal/source"
	"chearmyp/internal/ui"
)

type parseDirOutcome struct {
	fileSet *source.FileSet
	results []*driver.ParseResult
	err     error
}

// runParseDirWithUI runs ParseDir in the background and renders its
// progress events until the run finishes.
func runParseDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []*driver.ParseResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		opts.Progress = func(ev driver.ProgressEvent) { events <- ev }
		fs, results, err := driver.ParseDir(ctx, dir, opts)
		outcomeCh <- parseDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C): не даём воркерам заблокироваться
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
