package kestrel

// Span is a half-open byte interval [Start, End) into the original source
// buffer. Every token and every AST node carries one. Line/column
// information is never stored alongside a Span; it is derived on demand
// from a byte offset by LineColumn.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Slice returns the textual extent of the span within src.
func (s Span) Slice(src []byte) []byte { return src[s.Start:s.End] }

// Join returns the smallest span covering both s and other. Used when a
// parent AST node's range is computed from its first and last child.
func (s Span) Join(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Spanned pairs a value with the source range it was produced from. Tokens
// are Spanned[Token]; AST nodes do not use it and carry their own Span
// field instead.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// NewSpanned builds a Spanned value from explicit byte offsets.
func NewSpanned[T any](value T, start, end int) Spanned[T] {
	return Spanned[T]{Value: value, Span: Span{Start: start, End: end}}
}

// LineColumn walks src counting normalized line terminators (CR, CRLF and
// LF all count as one line break) up to offset, and returns a 1-based
// (line, column) pair. This is the only place line/column numbers are
// computed; every other part of the front end carries raw byte offsets.
func LineColumn(src []byte, offset int) (line, column int) {
	line, column = 1, 1
	if offset > len(src) {
		offset = len(src)
	}
	i := 0
	for i < offset {
		c := src[i]
		switch c {
		case '\r':
			line++
			column = 1
			i++
			if i < offset && src[i] == '\n' {
				i++
			}
			continue
		case '\n':
			line++
			column = 1
			i++
			continue
		default:
			// Column counts bytes of the line, not runes; this matches the
			// byte-offset-oriented contract of Span (§6.6 of the spec this
			// package implements treats column as derived-for-display only).
			column++
			i++
		}
	}
	return line, column
}
