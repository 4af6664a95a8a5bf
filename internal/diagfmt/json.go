package diagfmt

import (
	"encoding/json"
	"io"

	"clint/internal/diag"
	"clint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Applicability string        `json:"applicability"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fileSet *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	// Span без файла в наборе — отдаём только байтовые границы
	if int(span.File) >= fileSet.Len() {
		return LocationJSON{StartByte: span.Start, EndByte: span.End}
	}

	f := fileSet.Get(span.File)

	var path string
	switch pathMode {
	case PathModeAbsolute:
		path = f.FormatPath("absolute", "")
	case PathModeRelative:
		path = f.FormatPath("relative", fileSet.BaseDir())
	case PathModeBasename:
		path = f.FormatPath("basename", "")
	default:
		path = f.FormatPath("auto", "")
	}

	loc := LocationJSON{
		File:      path,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fileSet.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fileSet *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		diagJSON := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fileSet, opts.PathMode, opts.IncludePositions),
		}

		if opts.IncludeFixes && len(d.Fixes) > 0 {
			diagJSON.Fixes = make([]FixJSON, 0, len(d.Fixes))
			for _, f := range d.Fixes {
				fixJSON := FixJSON{
					ID:            f.ID,
					Title:         f.Title,
					Applicability: f.Applicability.String(),
					Edits:         make([]FixEditJSON, 0, len(f.Edits)),
				}
				for _, e := range f.Edits {
					fixJSON.Edits = append(fixJSON.Edits, FixEditJSON{
						Location: makeLocation(e.Span, fileSet, opts.PathMode, opts.IncludePositions),
						NewText:  e.NewText,
						OldText:  e.OldText,
					})
				}
				diagJSON.Fixes = append(diagJSON.Fixes, fixJSON)
			}
		}
		diagnostics = append(diagnostics, diagJSON)
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       bag.Len(),
	}
}

// JSON сериализует диагностики в JSON и пишет в w.
func JSON(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, opts JSONOpts) error {
	out := BuildDiagnosticsOutput(bag, fileSet, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
