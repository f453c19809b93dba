package lexer

import (
	"testing"

	"quill/internal/source"
)

func newTestCursor(content string) Cursor {
	fs := source.NewFileSet()
	id := fs.AddVirtual("cursor.ql", []byte(content))
	return NewCursor(fs.Get(id))
}

func TestCursorPeekAndBump(t *testing.T) {
	c := newTestCursor("ab")

	if got := c.Peek(); got != 'a' {
		t.Fatalf("Peek() = %q, want 'a'", got)
	}
	if got := c.Bump(); got != 'a' {
		t.Fatalf("Bump() = %q, want 'a'", got)
	}
	if got := c.Bump(); got != 'b' {
		t.Fatalf("Bump() = %q, want 'b'", got)
	}
	if !c.EOF() {
		t.Fatal("expected EOF after consuming all bytes")
	}
	if got := c.Bump(); got != 0 {
		t.Fatalf("Bump() at EOF = %q, want 0", got)
	}
	if c.Off != 2 {
		t.Fatalf("Bump at EOF moved offset to %d", c.Off)
	}
}

func TestCursorPeek2(t *testing.T) {
	c := newTestCursor("==")
	b0, b1, ok := c.Peek2()
	if !ok || b0 != '=' || b1 != '=' {
		t.Fatalf("Peek2() = %q %q %v", b0, b1, ok)
	}
	c.Bump()
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 must fail with a single byte left")
	}
}

func TestCursorMarkSpanReset(t *testing.T) {
	c := newTestCursor("hello")
	c.Bump()
	m := c.Mark()
	c.Advance(3)

	sp := c.SpanFrom(m)
	if sp.Start != 1 || sp.End != 4 {
		t.Fatalf("SpanFrom = %d-%d, want 1-4", sp.Start, sp.End)
	}

	c.Reset(m)
	if c.Off != 1 {
		t.Fatalf("Reset left offset at %d, want 1", c.Off)
	}

	c.Advance(100)
	if c.Off != 5 {
		t.Fatalf("Advance past end: offset %d, want 5", c.Off)
	}
}

func TestCursorEat(t *testing.T) {
	c := newTestCursor("=x")
	if c.Eat('x') {
		t.Fatal("Eat must not consume a mismatching byte")
	}
	if !c.Eat('=') {
		t.Fatal("Eat('=') failed")
	}
	if !c.Eat('x') || c.Eat('x') {
		t.Fatal("Eat must consume exactly once and stop at EOF")
	}
}
