package lexer

import (
	"clint/internal/source"
)

// Kind classifies a contiguous region of C source text.
type Kind uint8

const (
	// KindCode is ordinary code: everything outside literals and comments.
	KindCode Kind = iota
	// KindString is a double-quoted string literal, quotes included.
	KindString
	// KindChar is a single-quoted character literal, quotes included.
	KindChar
	// KindLineComment is a // comment up to (not including) the newline.
	KindLineComment
	// KindBlockComment is a /* ... */ comment, delimiters included.
	KindBlockComment
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindString:
		return "string"
	case KindChar:
		return "char"
	case KindLineComment:
		return "line-comment"
	case KindBlockComment:
		return "block-comment"
	}
	return "unknown"
}

// Comment reports whether the kind is one of the comment kinds.
func (k Kind) Comment() bool {
	return k == KindLineComment || k == KindBlockComment
}

// Segment is a maximal run of source text with a single classification.
// Segments produced by Classify are ordered, non-overlapping, and partition
// the file: concatenating their texts reproduces the input byte-for-byte.
type Segment struct {
	Kind Kind
	Span source.Span
}

// Text returns the segment's bytes from the owning file.
func (s Segment) Text(f *source.File) []byte {
	return f.Content[s.Span.Start:s.Span.End]
}
