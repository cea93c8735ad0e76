package kestrel

import "testing"

// BenchmarkLexer measures lexer tokenization performance across a spread of
// representative source shapes.
func BenchmarkLexer(b *testing.B) {
	cases := []struct {
		name  string
		input string
	}{
		{"keyword_for", "for mut x in xs { x = x + 1 }"},
		{"keyword_if_else", "if a { 1 } else if b { 2 } else { 3 }"},
		{"no_keywords", "a.b.c.d"},
		{"mixed", "if x > 0 && y < 10 { f(x, y) } else { g() }"},
		{"many_identifiers", "a.b.c.d.e.f.g.h.i.j"},
		{"markup", `<div class="a" count={n + 1}>hi <b/></div>`},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lexAllBench(b, tc.input)
			}
		})
	}
}

// BenchmarkLexerStrings measures string escape handling performance.
func BenchmarkLexerStrings(b *testing.B) {
	cases := []struct {
		name  string
		input string
	}{
		{"simple_string", `"hello world"`},
		{"escaped_string", `"hello \"world\" with \\backslash"`},
		{"newline_string", `"line1\nline2\ttab"`},
		{"multiple_strings", `"one" "two" "three"`},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				lexAllBench(b, tc.input)
			}
		})
	}
}

func lexAllBench(b *testing.B, src string) {
	lexer := NewLexer([]byte(src), nil)
	for {
		tok, err := lexer.Next()
		if err != nil {
			b.Fatal(err)
		}
		if tok.Value.Kind == TokenEndOfInput {
			return
		}
	}
}
