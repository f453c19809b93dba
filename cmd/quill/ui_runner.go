package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"quill/internal/driver"
	"quill/internal/source"
	"quill/internal/ui"
)

type tokenizeDirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runTokenizeDirWithUI runs driver.TokenizeDir while a Bubble Tea program
// renders its progress events to out.
func runTokenizeDirWithUI(ctx context.Context, out io.Writer, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeDirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, opts)
		close(events)
		outcomeCh <- tokenizeDirOutcome{fileSet: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel("tokenize "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// программа могла выйти раньше (ctrl+c), продюсер не должен зависнуть на канале
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
