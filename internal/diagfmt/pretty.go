package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"clint/internal/diag"
	"clint/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.FgWhite, color.Faint)
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> [<CODE>]: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fileSet, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fileSet *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}

	// Span без файла в наборе печатаем без позиции: лучше урезанная
	// строка, чем паника на fileSet.Get
	if int(d.Primary.File) >= fileSet.Len() {
		fmt.Fprintf(w, "<unknown>: %s [%s]: %s\n", sev, code, d.Message)
		return
	}

	file := fileSet.Get(d.Primary.File)
	start, _ := fileSet.Resolve(d.Primary)
	path := formatPath(file, fileSet, opts.PathMode)

	fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n", path, start.Line, start.Col, sev, code, d.Message)

	if opts.ShowPreview {
		printPreview(w, file, d.Primary, start, opts)
	}
	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteStart, _ := fileSet.Resolve(note.Span)
			fmt.Fprintf(w, "%s:%d:%d: note: %s\n", path, noteStart.Line, noteStart.Col, note.Msg)
		}
	}
}

// printPreview печатает строку с нарушением и подчёркивание под Span.
func printPreview(w io.Writer, file *source.File, span source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", strings.ReplaceAll(line, "\t", "    "))

	// ширина префикса до начала подчёркивания — табуляции и широкие руны
	// считаем через runewidth, чтобы каретка попадала под нарушение
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	prefix := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", "    "))

	length := int(span.Len())
	if length <= 0 {
		length = 1
	}
	if remaining := len(line) - col; length > remaining && remaining > 0 {
		length = remaining
	}

	marker := "^" + strings.Repeat("~", length-1)
	if opts.Color {
		marker = warningColor.Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", prefix), marker)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func formatPath(f *source.File, fileSet *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fileSet.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}
