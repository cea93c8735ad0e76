package kestrel

import "testing"

func TestCursorPeekAdvance(t *testing.T) {
	c := newCursor([]byte("ab"))

	b, ok := c.peek()
	if !ok || b != 'a' {
		t.Fatalf("peek() = %q, %v; want 'a', true", b, ok)
	}
	if c.offset() != 0 {
		t.Fatalf("offset() = %d; want 0 before advance", c.offset())
	}

	b, ok = c.next()
	if !ok || b != 'a' {
		t.Fatalf("next() = %q, %v; want 'a', true", b, ok)
	}
	if c.offset() != 1 {
		t.Fatalf("offset() = %d; want 1", c.offset())
	}

	b, ok = c.next()
	if !ok || b != 'b' {
		t.Fatalf("next() = %q, %v; want 'b', true", b, ok)
	}

	if _, ok := c.next(); ok {
		t.Fatalf("next() at end of input reported ok=true")
	}
	if !c.atEnd() {
		t.Fatalf("atEnd() = false after consuming all bytes")
	}
}

func TestCursorPeekNOutOfRange(t *testing.T) {
	c := newCursor([]byte("x"))
	if _, ok := c.peekN(5); ok {
		t.Fatalf("peekN(5) reported ok=true past end of input")
	}
	if _, ok := c.peekN(-1); ok {
		t.Fatalf("peekN(-1) reported ok=true before start of input")
	}
}

func TestCursorAdvanceNClampsToEnd(t *testing.T) {
	c := newCursor([]byte("abc"))
	c.advanceN(100)
	if c.offset() != 3 {
		t.Fatalf("offset() = %d; want 3 (clamped)", c.offset())
	}
	if !c.atEnd() {
		t.Fatalf("atEnd() = false after clamped advanceN")
	}
}

func TestCursorNextLFNNormalizesCRLF(t *testing.T) {
	c := newCursor([]byte("\r\n\r\n"))

	b, ok := c.nextLFN()
	if !ok || b != '\n' {
		t.Fatalf("nextLFN() = %q, %v; want '\\n', true", b, ok)
	}
	if c.offset() != 2 {
		t.Fatalf("offset() = %d after CRLF; want 2 (both bytes consumed)", c.offset())
	}

	b, ok = c.nextLFN()
	if !ok || b != '\n' {
		t.Fatalf("second nextLFN() = %q, %v; want '\\n', true", b, ok)
	}
	if c.offset() != 4 {
		t.Fatalf("offset() = %d; want 4", c.offset())
	}
}

func TestCursorNextLFNLoneCR(t *testing.T) {
	c := newCursor([]byte("\rx"))
	b, ok := c.nextLFN()
	if !ok || b != '\n' {
		t.Fatalf("nextLFN() = %q, %v; want '\\n', true", b, ok)
	}
	if c.offset() != 1 {
		t.Fatalf("offset() = %d; want 1 (lone CR consumes only itself)", c.offset())
	}
}

func TestCursorSkipASCIIWhitespace(t *testing.T) {
	c := newCursor([]byte("  \t\n x"))
	c.skipASCIIWhitespace()
	b, ok := c.peek()
	if !ok || b != 'x' {
		t.Fatalf("peek() after skipASCIIWhitespace = %q, %v; want 'x', true", b, ok)
	}
}

func TestCursorAdvanceCharValidASCII(t *testing.T) {
	c := newCursor([]byte("a"))
	if err := c.advanceChar(); err != nil {
		t.Fatalf("advanceChar() on ASCII byte returned error: %v", err)
	}
	if c.offset() != 1 {
		t.Fatalf("offset() = %d; want 1", c.offset())
	}
}

func TestCursorAdvanceCharMultiByte(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"2-byte", "é"},   // é
		{"3-byte", "中"},   // 中
		{"4-byte", "\U0001F600"}, // emoji
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor([]byte(tt.src))
			if err := c.advanceChar(); err != nil {
				t.Fatalf("advanceChar() returned error: %v", err)
			}
			if c.offset() != len(tt.src) {
				t.Fatalf("offset() = %d; want %d", c.offset(), len(tt.src))
			}
		})
	}
}

func TestCursorAdvanceCharInvalidFirstByte(t *testing.T) {
	c := newCursor([]byte{0xFF})
	err := c.advanceChar()
	if err == nil {
		t.Fatalf("advanceChar() on invalid first byte returned nil error")
	}
	kerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("advanceChar() error is %T; want *Error", err)
	}
	if kerr.Code != ErrInvalidFirstByte {
		t.Fatalf("error code = %v; want ErrInvalidFirstByte", kerr.Code)
	}
}

func TestCursorAdvanceCharMissingContinuation(t *testing.T) {
	// 0xC3 starts a 2-byte sequence but the input ends immediately.
	c := newCursor([]byte{0xC3})
	err := c.advanceChar()
	kerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("advanceChar() error is %T; want *Error", err)
	}
	if kerr.Code != ErrMissingContinuation2Of2 {
		t.Fatalf("error code = %v; want ErrMissingContinuation2Of2", kerr.Code)
	}
}

func TestCursorAdvanceCharInvalidContinuation(t *testing.T) {
	// 0xC3 starts a 2-byte sequence; 0x20 is not a continuation byte.
	c := newCursor([]byte{0xC3, 0x20})
	err := c.advanceChar()
	kerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("advanceChar() error is %T; want *Error", err)
	}
	if kerr.Code != ErrInvalidContinuation2Of2 {
		t.Fatalf("error code = %v; want ErrInvalidContinuation2Of2", kerr.Code)
	}
}

func TestCursorAdvanceCharAtEndOfInputIsNoop(t *testing.T) {
	c := newCursor(nil)
	if err := c.advanceChar(); err != nil {
		t.Fatalf("advanceChar() at end of input returned error: %v", err)
	}
}
