package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"clint/internal/diag"
	"clint/internal/diagfmt"
	"clint/internal/driver"
	"clint/internal/fix"
	"clint/internal/source"
)

// parseFixArg читает второй позиционный аргумент (true|false),
// регистр не важен.
func parseFixArg(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid fix argument %q (expected true or false)", value)
	}
}

// runLint executes the root command: scan the target, report style
// diagnostics, and optionally rewrite the sources in place.
func runLint(cmd *cobra.Command, args []string) error {
	targetPath := args[0]
	applyFixes, err := parseFixArg(args[1])
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}

	st, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var (
		fileSet *source.FileSet
		results []driver.FileResult
	)
	if st.IsDir() {
		files, listErr := driver.ListCFiles(targetPath)
		if listErr != nil {
			return fmt.Errorf("failed to list sources: %w", listErr)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .c or .h files found under %s", targetPath)
		}
		if shouldUseTUI(mode) && !asJSON && !quiet {
			fileSet, results, err = runScanWithUI(cmd.Context(), "clint "+targetPath, files, targetPath, opts)
		} else {
			fileSet, results, err = driver.ScanDir(cmd.Context(), targetPath, &opts)
		}
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	} else {
		if !source.IsCSource(targetPath) {
			return fmt.Errorf("unsupported file %s (expected a .c or .h source)", targetPath)
		}
		fileSet = source.NewFileSet()
		results = []driver.FileResult{driver.ScanFile(fileSet, targetPath, &opts)}
	}

	// Сливаем все диагностики в один мешок для общего вывода
	total := diag.NewBag(maxDiagnostics)
	for _, res := range results {
		if res.Bag == nil {
			continue
		}
		total.Merge(res.Bag)
	}
	total.Sort()

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	if asJSON {
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeFixes:     true,
		}
		if err := diagfmt.JSON(os.Stdout, total, fileSet, jsonOpts); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	} else {
		prettyOpts := diagfmt.PrettyOpts{
			Color:       useColor,
			PathMode:    pathMode,
			ShowNotes:   !quiet,
			ShowPreview: !quiet,
		}
		diagfmt.Pretty(os.Stdout, total, fileSet, prettyOpts)
	}

	exitCode := 0
	if applyFixes {
		res, applyErr := driver.ApplyFixes(fileSet, results, nil)
		exitCode, err = reportApplyResult(res, applyErr, quiet)
		if err != nil {
			return err
		}
	} else if total.Len() > 0 {
		if !quiet && !asJSON {
			fmt.Fprintf(os.Stdout, "%d issue(s) found\n", total.Len())
		}
		exitCode = 1
	}
	if total.HasErrors() {
		exitCode = 1
	}

	if exitCode != 0 {
		// Suppress cobra usage output: diagnostics are already printed
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// reportApplyResult печатает итог применения фиксов и возвращает код выхода.
func reportApplyResult(res *fix.Result, applyErr error, quiet bool) (int, error) {
	if res == nil {
		if errors.Is(applyErr, fix.ErrNoFixes) {
			if !quiet {
				fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			}
			return 0, nil
		}
		return 0, applyErr
	}

	if len(res.FileChanges) > 0 && !quiet {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			if !quiet {
				fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			}
			return 0, nil
		}
		return 0, applyErr
	}

	if !quiet {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es).\n", len(res.Applied))
	}
	if len(res.Skipped) > 0 {
		return 1, nil
	}
	return 0, nil
}
