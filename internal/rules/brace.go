package rules

import (
	"clint/internal/diag"
	"clint/internal/lexer"
	"clint/internal/source"
)

// checkBracePlacement флагует '{', перед которой на строке есть значимый код
// (Allman: скобка на своей строке). Исключения:
//   - инициализаторы и списки значений: '{' сразу после '=', ',', '(' или '{';
//   - '{' внутри скобок (составной литерал в вызове);
//   - комментарии прозрачны: "/* note */ {" не флагуется, а комментарий
//     перед скобкой переживает фикс.
//
// Закрывающая '}' не переписывается никогда.
func checkBracePlacement(file *source.File, segs []lexer.Segment, mask []lexer.Kind, r diag.Reporter) {
	content := file.Content
	parenDepth := 0

	for _, seg := range segs {
		if seg.Kind != lexer.KindCode {
			continue
		}
		for i := int(seg.Span.Start); i < int(seg.Span.End); i++ {
			switch content[i] {
			case '(':
				parenDepth++
			case ')':
				if parenDepth > 0 {
					parenDepth--
				}
			case '{':
				checkBrace(file, mask, r, i, parenDepth)
			}
		}
	}
}

func checkBrace(file *source.File, mask []lexer.Kind, r diag.Reporter, brace, parenDepth int) {
	content := file.Content
	ls := lineStartAt(content, brace)

	// последний значимый байт строки перед скобкой; комментарии не в счёт
	lastSig := -1
	for j := ls; j < brace; j++ {
		if mask[j].Comment() || lexer.IsLineSpace(content[j]) {
			continue
		}
		lastSig = j
	}
	if lastSig < 0 {
		return // скобка и так одна на строке
	}

	switch content[lastSig] {
	case '=', ',', '(', '{':
		return // инициализатор, не составной оператор
	}
	if parenDepth > 0 {
		return
	}

	// правка: заменить пробелы непосредственно перед '{' на перевод строки
	// с отступом управляющей строки
	wsStart := brace
	for wsStart > ls && lexer.IsLineSpace(content[wsStart-1]) {
		wsStart--
	}
	current := string(content[wsStart:brace])
	newText := "\n" + lineIndentAt(content, ls)

	braceSpan := source.Span{File: file.ID, Start: uint32(brace), End: uint32(brace + 1)}
	fix := diag.Fix{
		Title:         "move '{' to the next line",
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits: []diag.TextEdit{{
			Span:    source.Span{File: file.ID, Start: uint32(wsStart), End: uint32(brace)},
			NewText: newText,
			OldText: current,
		}},
	}
	diag.ReportWarning(r, diag.StyleBracePlacement, braceSpan, "'{' must be on its own line").
		WithFixSuggestion(fix).
		Emit()
}
