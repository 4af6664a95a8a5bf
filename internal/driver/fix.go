package driver

import (
	"clint/internal/diag"
	"clint/internal/fix"
	"clint/internal/source"
)

// ApplyFixes собирает диагностики всех результатов и применяет их правки.
// Запись в файлы выполняет движок фиксов; сюда стекаются только события
// прогресса.
func ApplyFixes(fileSet *source.FileSet, results []FileResult, sink ProgressSink) (*fix.Result, error) {
	all := make([]diag.Diagnostic, 0)
	for _, res := range results {
		if res.Bag == nil {
			continue
		}
		all = append(all, res.Bag.Items()...)
	}

	for _, res := range results {
		publish(sink, Event{File: res.Path, Stage: StageFix, Status: StatusWorking})
	}

	result, err := fix.Apply(fileSet, all)

	for _, res := range results {
		status := StatusDone
		if res.Bag != nil && res.Bag.HasErrors() {
			status = StatusError
		}
		publish(sink, Event{File: res.Path, Stage: StageFix, Status: status})
	}
	return result, err
}
