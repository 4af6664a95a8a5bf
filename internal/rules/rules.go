// Package rules implements the two style checks the linter enforces on C
// sources: pointer declarations must bind '*' to the declared name, and
// opening braces of compound statements must stand alone on their line.
//
// Both rules consume the classified segments produced by lexer.Classify and
// only ever match inside code segments, so text in string/char literals and
// comments can never trigger them. Neither rule parses C; they rely on small
// token-context heuristics, and the known gaps are deliberate (see the
// per-rule comments).
package rules

import (
	"clint/internal/diag"
	"clint/internal/lexer"
	"clint/internal/source"
)

// CheckFile runs the classifier and both rule modules over one file, emitting
// every violation through r. Pure: no state survives the call.
func CheckFile(file *source.File, r diag.Reporter) {
	segs := lexer.Classify(file)
	mask := kindMask(file, segs)
	checkPointerSpacing(file, segs, r)
	checkBracePlacement(file, segs, mask, r)
}

// kindMask разворачивает сегменты в по-байтовую классификацию.
func kindMask(file *source.File, segs []lexer.Segment) []lexer.Kind {
	mask := make([]lexer.Kind, len(file.Content))
	for _, seg := range segs {
		for i := seg.Span.Start; i < seg.Span.End; i++ {
			mask[i] = seg.Kind
		}
	}
	return mask
}

// lineStartAt возвращает смещение первого байта строки, содержащей off.
func lineStartAt(content []byte, off int) int {
	for off > 0 && content[off-1] != '\n' {
		off--
	}
	return off
}

// lineIndentAt returns the leading spaces/tabs of the line starting at ls.
func lineIndentAt(content []byte, ls int) string {
	end := ls
	for end < len(content) && lexer.IsLineSpace(content[end]) {
		end++
	}
	return string(content[ls:end])
}

// wordStartBefore находит начало идентификатора, последний байт которого — end.
func wordStartBefore(content []byte, low, end int) int {
	start := end
	for start > low && lexer.IsIdentContinue(content[start-1]) {
		start--
	}
	return start
}

// skipSpacesBack возвращает индекс последнего непробельного байта не далее
// from, или low-1, если до low ничего нет. Переводы строк не пропускаются.
func skipSpacesBack(content []byte, low, from int) int {
	for from >= low && lexer.IsLineSpace(content[from]) {
		from--
	}
	return from
}

// skipSpacesForward возвращает индекс первого непробельного байта не ранее
// from, ограниченный high.
func skipSpacesForward(content []byte, from, high int) int {
	for from < high && lexer.IsLineSpace(content[from]) {
		from++
	}
	return from
}
