package lexer

import (
	"testing"

	"clint/internal/source"
)

func newTestCursor(t *testing.T, content string) Cursor {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursor_PeekAndBump(t *testing.T) {
	cur := newTestCursor(t, "ab")

	if got := cur.Peek(); got != 'a' {
		t.Errorf("Peek() = %q, want 'a'", got)
	}
	if got := cur.Bump(); got != 'a' {
		t.Errorf("Bump() = %q, want 'a'", got)
	}
	if got := cur.Peek(); got != 'b' {
		t.Errorf("Peek() after Bump = %q, want 'b'", got)
	}
	cur.Bump()
	if !cur.EOF() {
		t.Errorf("expected EOF after consuming all bytes")
	}
}

func TestCursor_Peek2(t *testing.T) {
	cur := newTestCursor(t, "/*x")

	b0, b1, ok := cur.Peek2()
	if !ok || b0 != '/' || b1 != '*' {
		t.Errorf("Peek2() = %q %q %v, want '/' '*' true", b0, b1, ok)
	}

	cur.Bump()
	cur.Bump()
	if _, _, ok := cur.Peek2(); ok {
		t.Errorf("Peek2() near EOF reported ok")
	}
}

func TestCursor_SpanFrom(t *testing.T) {
	cur := newTestCursor(t, "hello")

	cur.Bump()
	m := cur.Mark()
	cur.Bump()
	cur.Bump()
	span := cur.SpanFrom(m)

	if span.Start != 1 || span.End != 3 {
		t.Errorf("SpanFrom = %d..%d, want 1..3", span.Start, span.End)
	}
}

func TestCursor_Eat(t *testing.T) {
	cur := newTestCursor(t, "ab")

	if !cur.Eat('a') {
		t.Errorf("Eat('a') = false, want true")
	}
	if cur.Eat('x') {
		t.Errorf("Eat('x') = true, want false")
	}
	if got := cur.Peek(); got != 'b' {
		t.Errorf("Peek() = %q, want 'b'", got)
	}
}
