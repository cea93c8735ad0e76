package kestrel

import "testing"

// FuzzParseExpression fuzzes expression parsing (via a full module body) to
// surface cases where the parser panics or loops instead of returning a
// located *Error.
func FuzzParseExpression(f *testing.F) {
	seeds := []string{
		"1 + 1", "10 - 5", "3 * 4", "10 / 2", "2 ** 3",
		"-1", "--1", "1 + -1",
		"1.5 + 1.5", "0.1 + 0.2",
		"1 == 1", "1 != 2", "1 < 2 && 2 < 3", "a || b && c",
		"a = b = c", "x += 1", "1 = 2",
		"f(1, 2)", "f(x = 1)", "a.b().c", "a?.b",
		"if a { 1 } else if b { 2 } else { 3 }",
		"if a { 1 } else 2",
		"while a { b }",
		"for mut x in xs { x = x + 1 }",
		"[1, 2, 3]", "[1, 2, 3,]",
		"(x = 1, y = 2)", "(x: int = 1)", "(x: int)",
		"fn(x: int) -> int { x }",
		"!a", "return", "return 1", "break", "continue",
		"<a/>", `<a x="y">t</a>`, "<a x={<b/>}>t</a>",
		"@route(\"/x\", 1)\nfn h() {}",
	}
	for _, s := range seeds {
		f.Add("fn fuzz() { " + s + " }")
	}

	f.Fuzz(func(t *testing.T, input string) {
		_, _, err := ParseSource([]byte(input), nil)
		if err != nil {
			// Malformed input is expected to produce a located error, not a
			// panic or an infinite loop.
			return
		}
	})
}
