package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"clint/internal/driver"
	"clint/internal/source"
	"clint/internal/ui"
)

type scanOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

func runScanWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ScanDir(ctx, dir, &optsCopy)
		outcomeCh <- scanOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
