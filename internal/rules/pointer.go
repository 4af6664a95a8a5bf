package rules

import (
	"fmt"
	"strings"

	"clint/internal/diag"
	"clint/internal/lexer"
	"clint/internal/source"
)

// typeKeywords — токены, после которых '*' однозначно объявляет указатель.
var typeKeywords = map[string]bool{
	"int": true, "char": true, "float": true, "double": true,
	"long": true, "short": true, "signed": true, "unsigned": true,
	"void": true, "const": true, "volatile": true, "restrict": true,
	"size_t": true, "ssize_t": true, "ptrdiff_t": true, "bool": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"intptr_t": true, "uintptr_t": true, "wchar_t": true,
}

// declPrefixKeywords — токены, которые могут предшествовать имени типа в
// начале объявления (storage class, квалификаторы, теги).
var declPrefixKeywords = map[string]bool{
	"static": true, "extern": true, "register": true, "auto": true,
	"typedef": true, "struct": true, "union": true, "enum": true,
	"const": true, "volatile": true, "inline": true,
	"signed": true, "unsigned": true, "long": true, "short": true,
}

// controlKeywords never start a declaration; a '(' after one of these opens
// an expression, not a parameter list.
var controlKeywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true,
	"switch": true, "return": true, "sizeof": true, "case": true,
}

// starGroup — группа из одной или нескольких '*' между типом и именем.
type starGroup struct {
	stars      int // количество '*'
	groupEnd   int // индекс за последней '*'
	identStart int
	identEnd   int
}

// readStarGroup собирает группу '*' начиная с первой звёздочки first и
// требует, чтобы за группой (через пробелы) стоял идентификатор.
func readStarGroup(content []byte, first, high int) (starGroup, bool) {
	var g starGroup
	j := first
	for j < high {
		if content[j] == '*' {
			g.stars++
			j++
			g.groupEnd = j
			continue
		}
		if lexer.IsLineSpace(content[j]) {
			k := skipSpacesForward(content, j, high)
			if k < high && content[k] == '*' {
				j = k
				continue
			}
		}
		break
	}
	if g.stars == 0 {
		return g, false
	}
	g.identStart = skipSpacesForward(content, g.groupEnd, high)
	if g.identStart >= high || !lexer.IsIdentStart(content[g.identStart]) {
		return g, false
	}
	g.identEnd = g.identStart
	for g.identEnd < high && lexer.IsIdentContinue(content[g.identEnd]) {
		g.identEnd++
	}
	return g, true
}

// checkPointerSpacing находит группы '*' в декларационном контексте и
// сверяет их с канонической формой: ровно один пробел перед первой '*'
// (ни одного после '('), звёздочки подряд, без пробела перед именем.
//
// Умышленно не флагуется (умножение, не объявление): группа, перед которой
// на строке стоит '=', оператор или вызов функции. Известный пробел
// эвристики: объявление через typedef-имя в середине выражения не
// распознаётся — лучше пропустить, чем испортить умножение.
func checkPointerSpacing(file *source.File, segs []lexer.Segment, r diag.Reporter) {
	content := file.Content
	declLine := -1 // начало строки последней декларационной группы

	for _, seg := range segs {
		if seg.Kind != lexer.KindCode {
			continue
		}
		low, high := int(seg.Span.Start), int(seg.Span.End)
		for i := low; i < high; i++ {
			if content[i] != '*' {
				continue
			}
			g, ok := readStarGroup(content, i, high)
			if !ok {
				continue
			}

			ls := lineStartAt(content, i)
			prev := skipSpacesBack(content, low, i-1)
			if prev < low || content[prev] == '\n' {
				i = g.identStart - 1
				continue
			}

			var canonical string
			isDecl := false
			c := content[prev]
			switch {
			case lexer.IsIdentContinue(c):
				ws := wordStartBefore(content, low, prev)
				word := string(content[ws : prev+1])
				if lexer.IsIdentStart(content[ws]) && isDeclaration(content, low, high, ws, word, g) {
					isDecl = true
					canonical = " " + strings.Repeat("*", g.stars)
				}
			case c == '(':
				// function-pointer declarator: (*fp)(...)
				if funcPtrTail(content, g.identEnd, high) {
					isDecl = true
					canonical = strings.Repeat("*", g.stars)
				}
			case c == ',':
				// второй и последующие декларторы: int *a, *b;
				if declLine == ls {
					isDecl = true
					canonical = " " + strings.Repeat("*", g.stars)
				}
			}

			if isDecl {
				declLine = ls
				prevEnd := prev + 1
				current := string(content[prevEnd:g.identStart])
				if current != canonical {
					reportPointer(file, r, prevEnd, g, current, canonical)
				}
			}
			i = g.identStart - 1
		}
	}
}

// isDeclaration решает: "word * ident" — объявление или умножение.
// Объявление, если word — имя типа, либо word стоит в начале оператора
// (или в списке параметров прототипа) и хвост после ident выглядит как
// деклартор (заканчивается на ';' ',' '=' ')' с учётом '[...]').
func isDeclaration(content []byte, low, high, wordStart int, word string, g starGroup) bool {
	if typeKeywords[word] {
		return true
	}
	if controlKeywords[word] {
		return false
	}

	q := skipSpacesBack(content, low, wordStart-1)
	atStmtStart := false
	switch {
	case q < low || content[q] == '\n':
		atStmtStart = true
	case content[q] == ';' || content[q] == '{' || content[q] == '}':
		atStmtStart = true
	case content[q] == '(':
		atStmtStart = parenDeclContext(content, low, q)
	case lexer.IsIdentContinue(content[q]):
		prefixStart := wordStartBefore(content, low, q)
		atStmtStart = declPrefixKeywords[string(content[prefixStart:q+1])]
	}
	if !atStmtStart {
		return false
	}
	return declaratorTail(content, g.identEnd, high)
}

// declaratorTail проверяет, что после имени идёт завершение деклартора:
// опциональные '[...]', затем ';' ',' '=' или ')'.
func declaratorTail(content []byte, from, high int) bool {
	k := skipSpacesForward(content, from, high)
	for k < high && content[k] == '[' {
		for k < high && content[k] != ']' {
			k++
		}
		if k >= high {
			return false
		}
		k = skipSpacesForward(content, k+1, high)
	}
	if k >= high {
		return false
	}
	switch content[k] {
	case ';', ',', '=', ')':
		return true
	}
	return false
}

// funcPtrTail: после имени — опциональные '[...]', затем ')' и '('.
func funcPtrTail(content []byte, from, high int) bool {
	k := skipSpacesForward(content, from, high)
	for k < high && content[k] == '[' {
		for k < high && content[k] != ']' {
			k++
		}
		if k >= high {
			return false
		}
		k = skipSpacesForward(content, k+1, high)
	}
	if k >= high || content[k] != ')' {
		return false
	}
	k = skipSpacesForward(content, k+1, high)
	return k < high && content[k] == '('
}

// parenDeclContext: '(' открывает список параметров прототипа/определения,
// если перед ним имя функции, а перед именем — тип или '*'.
func parenDeclContext(content []byte, low, paren int) bool {
	r := skipSpacesBack(content, low, paren-1)
	if r < low || !lexer.IsIdentContinue(content[r]) {
		return false
	}
	nameStart := wordStartBefore(content, low, r)
	name := string(content[nameStart : r+1])
	if controlKeywords[name] || !lexer.IsIdentStart(content[nameStart]) {
		return false
	}
	t := skipSpacesBack(content, low, nameStart-1)
	if t < low || content[t] == '\n' {
		// голый вызов в начале строки — не прототип
		return false
	}
	if content[t] == '*' {
		return true
	}
	if lexer.IsIdentContinue(content[t]) {
		retStart := wordStartBefore(content, low, t)
		ret := string(content[retStart : t+1])
		return typeKeywords[ret] || declPrefixKeywords[ret]
	}
	return false
}

func reportPointer(file *source.File, r diag.Reporter, prevEnd int, g starGroup, current, canonical string) {
	span := source.Span{File: file.ID, Start: uint32(prevEnd), End: uint32(g.identStart)}
	name := string(file.Content[g.identStart:g.identEnd])
	msg := fmt.Sprintf("put '*' next to '%s'", name)
	fix := diag.Fix{
		Title:         "attach '*' to the declared name",
		Applicability: diag.FixApplicabilityAlwaysSafe,
		Edits: []diag.TextEdit{{
			Span:    span,
			NewText: canonical,
			OldText: current,
		}},
	}
	diag.ReportWarning(r, diag.StylePointerSpacing, span, msg).
		WithFixSuggestion(fix).
		Emit()
}
