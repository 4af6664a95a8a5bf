package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"clint/internal/diag"
	"clint/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int // число правок фикса, реально попавших в буфер
}

// SkippedFix captures a skipped or failed fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
}

// Result aggregates applied fixes, skipped ones, and file changes.
type Result struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
	// Buffers holds the corrected content per touched file, including
	// virtual files (which are never written to disk).
	Buffers map[source.FileID][]byte
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply collects fixes from diagnostics and applies all of them, file by
// file. Edits are validated (range, OldText guard) and conflicting edits are
// dropped in favour of the earlier-starting one; every drop is recorded as a
// SkippedFix rather than corrupting the output. Real files are overwritten
// in place; virtual files only get a buffer in the result.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic) (*Result, error) {
	result := &Result{
		Applied:     make([]AppliedFix, 0),
		Skipped:     make([]SkippedFix, 0),
		FileChanges: make([]FileChange, 0),
		Buffers:     make(map[source.FileID][]byte),
	}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	applied, skipped, changes := applyCandidates(fs, candidates, result.Buffers)
	result.Applied = append(result.Applied, applied...)
	result.Skipped = append(result.Skipped, skipped...)

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	written, err := writeChanges(fs, result.Buffers, changes)
	result.FileChanges = append(result.FileChanges, written...)
	return result, err
}

// gatherCandidates материализует кандидатов из диагностик с фиксами и
// синтезирует стабильные ID там, где правило их не задало.
func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	cands := make([]candidate, 0)
	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			if f.ID == "" {
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates sorts candidates into deterministic document order:
// file, span start, span end, insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

func applyCandidates(fs *source.FileSet, candidates []candidate, buffers map[source.FileID][]byte) ([]AppliedFix, []SkippedFix, map[source.FileID]int) {
	applied := make([]AppliedFix, 0, len(candidates))
	skipped := make([]SkippedFix, 0)
	editCount := make(map[source.FileID]int)

	// все правки одного файла применяются одним проходом ApplyToContent
	perFile := make(map[source.FileID][]candidate)
	fileOrder := make([]source.FileID, 0)
	for _, cand := range candidates {
		id := cand.diag.Primary.File
		if _, seen := perFile[id]; !seen {
			fileOrder = append(fileOrder, id)
		}
		perFile[id] = append(perFile[id], cand)
	}

	baseDir := fs.BaseDir()
	for _, fileID := range fileOrder {
		file := fs.Get(fileID)
		edits := make([]diag.TextEdit, 0)
		editOwner := make([]int, 0) // индекс кандидата для каждого edit
		for ci, cand := range perFile[fileID] {
			if cand.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
				skipped = append(skipped, SkippedFix{
					ID:     cand.fix.ID,
					Title:  cand.fix.Title,
					Reason: fmt.Sprintf("applicability is %s", cand.fix.Applicability.String()),
				})
				continue
			}
			for _, e := range cand.fix.Edits {
				edits = append(edits, e)
				editOwner = append(editOwner, ci)
			}
		}
		if len(edits) == 0 {
			continue
		}

		out, skips := ApplyToContent(file.Content, edits)
		// учёт по отдельным правкам: фикс с несколькими правками может
		// примениться частично, и тогда в буфере остаются только уцелевшие
		skippedEdits := make(map[int]int)
		for _, sk := range skips {
			cand := perFile[fileID][editOwner[sk.Index]]
			skippedEdits[editOwner[sk.Index]]++
			skipped = append(skipped, SkippedFix{
				ID:     cand.fix.ID,
				Title:  cand.fix.Title,
				Reason: sk.Reason,
			})
		}

		appliedHere := 0
		for ci, cand := range perFile[fileID] {
			if cand.fix.Applicability != diag.FixApplicabilityAlwaysSafe {
				continue
			}
			landed := len(cand.fix.Edits) - skippedEdits[ci]
			if landed <= 0 {
				continue
			}
			applied = append(applied, AppliedFix{
				ID:          cand.fix.ID,
				Title:       cand.fix.Title,
				Code:        cand.diag.Code,
				Message:     cand.diag.Message,
				PrimaryPath: file.FormatPath("auto", baseDir),
				EditCount:   landed,
			})
			appliedHere += landed
		}
		if appliedHere > 0 {
			buffers[fileID] = out
			editCount[fileID] = appliedHere
		}
	}
	return applied, skipped, editCount
}

func writeChanges(fs *source.FileSet, buffers map[source.FileID][]byte, editCount map[source.FileID]int) ([]FileChange, error) {
	changes := make([]FileChange, 0, len(buffers))
	baseDir := fs.BaseDir()

	ids := make([]source.FileID, 0, len(buffers))
	for id := range buffers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, fileID := range ids {
		file := fs.Get(fileID)
		if file.Flags&source.FileVirtual != 0 {
			continue
		}

		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, file.RestoreFormat(buffers[fileID]), mode); err != nil {
			return changes, fmt.Errorf("write %s: %w", file.Path, err)
		}
		changes = append(changes, FileChange{
			Path:      file.FormatPath("relative", baseDir),
			EditCount: editCount[fileID],
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes, nil
}
