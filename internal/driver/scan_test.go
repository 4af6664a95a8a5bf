package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"clint/internal/diag"
	"clint/internal/diagfmt"
	"clint/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestListCFiles(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "b.c", "int x;\n")
	writeFile(t, tmp, "a.h", "int y;\n")
	writeFile(t, tmp, "notes.txt", "not a source\n")
	writeFile(t, tmp, filepath.Join("sub", "c.c"), "int z;\n")
	writeFile(t, tmp, "upper.C", "int u;\n")

	files, err := ListCFiles(tmp)
	if err != nil {
		t.Fatalf("ListCFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(tmp, "a.h"),
		filepath.Join(tmp, "b.c"),
		filepath.Join(tmp, "sub", "c.c"),
		filepath.Join(tmp, "upper.C"),
	}
	if len(files) != len(want) {
		t.Fatalf("found %d files, want %d: %v", len(files), len(want), files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestScanFile_Violations(t *testing.T) {
	tmp := t.TempDir()
	path := writeFile(t, tmp, "bad.c", "int* ptr;\nint main(void) {\n    return 0;\n}\n")

	fs := source.NewFileSetWithBase(tmp)
	res := ScanFile(fs, path, nil)

	if res.Bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", res.Bag.Len())
	}
	codes := map[diag.Code]bool{}
	for _, d := range res.Bag.Items() {
		codes[d.Code] = true
	}
	if !codes[diag.StylePointerSpacing] || !codes[diag.StyleBracePlacement] {
		t.Errorf("missing expected codes, got %v", codes)
	}
}

func TestScanFile_MissingFile(t *testing.T) {
	fs := source.NewFileSet()
	res := ScanFile(fs, filepath.Join(t.TempDir(), "gone.c"), nil)

	if !res.Bag.HasErrors() {
		t.Fatalf("expected an IO error diagnostic")
	}
	if res.Bag.Items()[0].Code != diag.IOLoadFileError {
		t.Errorf("code = %v, want IOLoadFileError", res.Bag.Items()[0].Code)
	}
}

func TestScanDir(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "bad.c", "char* s;\n")
	writeFile(t, tmp, "clean.h", "int x;\n")
	writeFile(t, tmp, "ignored.txt", "int* not_scanned;\n")

	fs, results, err := ScanDir(context.Background(), tmp, &Options{Jobs: 2})
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if fs.Len() != 2 {
		t.Errorf("loaded %d files, want 2", fs.Len())
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	// результаты в порядке отсортированных путей
	if filepath.Base(results[0].Path) != "bad.c" || filepath.Base(results[1].Path) != "clean.h" {
		t.Fatalf("unexpected result order: %q, %q", results[0].Path, results[1].Path)
	}
	if results[0].Bag.Len() != 1 {
		t.Errorf("bad.c diagnostics = %d, want 1", results[0].Bag.Len())
	}
	if results[1].Bag.Len() != 0 {
		t.Errorf("clean.h diagnostics = %d, want 0", results[1].Bag.Len())
	}
}

func TestScanDir_UnreadableFile(t *testing.T) {
	tmp := t.TempDir()
	// символическая ссылка на саму себя: попадает в список, но не читается
	loop := filepath.Join(tmp, "loop.c")
	if err := os.Symlink("loop.c", loop); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	writeFile(t, tmp, "ok.c", "int x;\n")

	fs, results, err := ScanDir(context.Background(), tmp, nil)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	bad := results[0] // loop.c сортируется раньше ok.c
	if !bad.Bag.HasErrors() {
		t.Fatalf("expected an IO error diagnostic for loop.c")
	}
	d := bad.Bag.Items()[0]
	if d.Code != diag.IOLoadFileError {
		t.Fatalf("code = %v, want IOLoadFileError", d.Code)
	}
	// диагностика привязана к настоящему файлу в FileSet, а не к FileID 0
	if int(d.Primary.File) >= fs.Len() {
		t.Fatalf("diagnostic file %d outside FileSet of %d", d.Primary.File, fs.Len())
	}
	if got := filepath.Base(fs.Get(d.Primary.File).Path); got != "loop.c" {
		t.Errorf("diagnostic attached to %q, want loop.c", got)
	}

	// и печатается без паники, с именем проблемного файла
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bad.Bag, fs, diagfmt.PrettyOpts{ShowPreview: true})
	out := buf.String()
	if !strings.Contains(out, "loop.c:1:1:") || !strings.Contains(out, "[IO4001]") {
		t.Errorf("unexpected rendering: %q", out)
	}
}

func TestScanDir_EmptyDir(t *testing.T) {
	fs, results, err := ScanDir(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}
	if fs == nil || fs.Len() != 0 {
		t.Errorf("expected empty FileSet")
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

// collectSink потокобезопасно накапливает события прогресса.
type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) Publish(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestScanDir_PublishesProgress(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "a.c", "int x;\n")
	writeFile(t, tmp, "b.c", "int* y;\n")

	sink := &collectSink{}
	_, _, err := ScanDir(context.Background(), tmp, &Options{Progress: sink})
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	perFile := map[string][]Status{}
	for _, ev := range sink.events {
		perFile[filepath.Base(ev.File)] = append(perFile[filepath.Base(ev.File)], ev.Status)
	}
	if len(perFile) != 2 {
		t.Fatalf("events for %d files, want 2", len(perFile))
	}
	// чистый файл завершается Done, файл с замечаниями — Error
	last := func(name string) Status {
		evs := perFile[name]
		return evs[len(evs)-1]
	}
	if last("a.c") != StatusDone {
		t.Errorf("a.c final status = %v, want StatusDone", last("a.c"))
	}
	if last("b.c") != StatusError {
		t.Errorf("b.c final status = %v, want StatusError", last("b.c"))
	}
}

func TestApplyFixes_RewritesFiles(t *testing.T) {
	tmp := t.TempDir()
	path := writeFile(t, tmp, "bad.c", "int* ptr;\n")

	fs, results, err := ScanDir(context.Background(), tmp, nil)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	res, err := ApplyFixes(fs, results, nil)
	if err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	if string(got) != "int *ptr;\n" {
		t.Errorf("file = %q, want %q", got, "int *ptr;\n")
	}
}

func TestApplyFixes_PreservesCRLFAndBOM(t *testing.T) {
	tmp := t.TempDir()
	raw := "\xEF\xBB\xBFint* ptr;\r\nint y;\r\n"
	path := writeFile(t, tmp, "win.c", raw)

	fs, results, err := ScanDir(context.Background(), tmp, nil)
	if err != nil {
		t.Fatalf("ScanDir failed: %v", err)
	}

	res, err := ApplyFixes(fs, results, nil)
	if err != nil {
		t.Fatalf("ApplyFixes failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}

	// правка касается только звёздочки: BOM и \r\n остаются на месте
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read back: %v", err)
	}
	want := "\xEF\xBB\xBFint *ptr;\r\nint y;\r\n"
	if string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}
