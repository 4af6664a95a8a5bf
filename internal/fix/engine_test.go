package fix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clint/internal/diag"
	"clint/internal/source"
)

func safeFix(title string, edits ...diag.TextEdit) diag.Fix {
	return diag.Fix{
		Title:         title,
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits:         edits,
	}
}

func TestApply_WritesRealFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a.c")
	if err := os.WriteFile(path, []byte("int* ptr;\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	fs := source.NewFileSetWithBase(tmp)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	d := diag.NewWarning(diag.StylePointerSpacing,
		source.Span{File: id, Start: 3, End: 5}, "put '*' next to 'ptr'").
		WithFixSuggestion(safeFix("attach '*' to the declared name",
			diag.TextEdit{
				Span:    source.Span{File: id, Start: 3, End: 5},
				NewText: " *",
				OldText: "* ",
			}))

	res, err := Apply(fs, []diag.Diagnostic{d})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied %d fixes, want 1", len(res.Applied))
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("skipped %d fixes, want 0", len(res.Skipped))
	}
	if len(res.FileChanges) != 1 {
		t.Fatalf("file changes = %d, want 1", len(res.FileChanges))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(got) != "int *ptr;\n" {
		t.Errorf("file content = %q, want %q", got, "int *ptr;\n")
	}
}

func TestApply_VirtualFileOnlyBuffered(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("virtual.c", []byte("int* p;\n"))

	d := diag.NewWarning(diag.StylePointerSpacing,
		source.Span{File: id, Start: 3, End: 5}, "put '*' next to 'p'").
		WithFixSuggestion(safeFix("attach '*' to the declared name",
			diag.TextEdit{
				Span:    source.Span{File: id, Start: 3, End: 5},
				NewText: " *",
				OldText: "* ",
			}))

	res, err := Apply(fs, []diag.Diagnostic{d})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.FileChanges) != 0 {
		t.Errorf("virtual file produced %d file changes", len(res.FileChanges))
	}
	if string(res.Buffers[id]) != "int *p;\n" {
		t.Errorf("buffer = %q, want %q", res.Buffers[id], "int *p;\n")
	}
}

func TestApply_NoFixes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("clean.c", []byte("int x;\n"))

	// диагностика без фиксов не даёт кандидатов
	d := diag.NewWarning(diag.StyleInfo, source.Span{File: id, Start: 0, End: 3}, "note")

	_, err := Apply(fs, []diag.Diagnostic{d})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
}

func TestApply_UnsafeFixSkipped(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("int* p;\n"))

	manual := diag.Fix{
		Title:         "risky rewrite",
		Applicability: diag.FixApplicabilityManualReview,
		Edits: []diag.TextEdit{{
			Span:    source.Span{File: id, Start: 3, End: 5},
			NewText: " *",
		}},
	}
	d := diag.NewWarning(diag.StylePointerSpacing,
		source.Span{File: id, Start: 3, End: 5}, "msg").
		WithFixSuggestion(manual)

	res, err := Apply(fs, []diag.Diagnostic{d})
	if !errors.Is(err, ErrNoFixes) {
		t.Fatalf("err = %v, want ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %d, want 1", len(res.Skipped))
	}
}

func TestApply_ConflictingFixesKeepEarlier(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("abcdef\n"))

	first := diag.NewWarning(diag.StyleInfo,
		source.Span{File: id, Start: 0, End: 4}, "first").
		WithFixSuggestion(safeFix("first",
			diag.TextEdit{Span: source.Span{File: id, Start: 0, End: 4}, NewText: "X"}))
	second := diag.NewWarning(diag.StyleInfo,
		source.Span{File: id, Start: 2, End: 6}, "second").
		WithFixSuggestion(safeFix("second",
			diag.TextEdit{Span: source.Span{File: id, Start: 2, End: 6}, NewText: "Y"}))

	res, err := Apply(fs, []diag.Diagnostic{first, second})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Errorf("applied = %d, want 1", len(res.Applied))
	}
	if len(res.Skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(res.Skipped))
	}
	if string(res.Buffers[id]) != "Xef\n" {
		t.Errorf("buffer = %q, want %q", res.Buffers[id], "Xef\n")
	}
}

func TestApply_PartiallySkippedFixCountsLandedEdits(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("abcdef\n"))

	first := diag.NewWarning(diag.StyleInfo,
		source.Span{File: id, Start: 0, End: 2}, "first").
		WithFixSuggestion(safeFix("first",
			diag.TextEdit{Span: source.Span{File: id, Start: 0, End: 2}, NewText: "X"}))
	// вторая правка фикса конфликтует с first, третья независима
	second := diag.NewWarning(diag.StyleInfo,
		source.Span{File: id, Start: 1, End: 5}, "second").
		WithFixSuggestion(safeFix("second",
			diag.TextEdit{Span: source.Span{File: id, Start: 1, End: 3}, NewText: "Y"},
			diag.TextEdit{Span: source.Span{File: id, Start: 4, End: 5}, NewText: "Z"}))

	res, err := Apply(fs, []diag.Diagnostic{first, second})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// фикс применился частично: считаем только уцелевшие правки
	if len(res.Applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(res.Applied))
	}
	for _, a := range res.Applied {
		if a.EditCount != 1 {
			t.Errorf("fix %q EditCount = %d, want 1", a.Title, a.EditCount)
		}
	}
	if len(res.Skipped) != 1 {
		t.Errorf("skipped = %d, want 1", len(res.Skipped))
	}
	if string(res.Buffers[id]) != "XcdZf\n" {
		t.Errorf("buffer = %q, want %q", res.Buffers[id], "XcdZf\n")
	}
}

func TestApply_SynthesizedFixIDs(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.c", []byte("int* p;\n"))

	d := diag.NewWarning(diag.StylePointerSpacing,
		source.Span{File: id, Start: 3, End: 5}, "msg").
		WithFixSuggestion(safeFix("fix",
			diag.TextEdit{Span: source.Span{File: id, Start: 3, End: 5}, NewText: " *"}))

	res, err := Apply(fs, []diag.Diagnostic{d})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID == "" {
		t.Errorf("expected synthesized non-empty fix ID, got %+v", res.Applied)
	}
}
