package kestrel

import "testing"

func lexAll(t *testing.T, src string, config *Config) []Token {
	t.Helper()
	lexer := NewLexer([]byte(src), config)
	var toks []Token
	for {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("lexing %q: %v", src, err)
		}
		if tok.Value.Kind == TokenEndOfInput {
			return toks
		}
		toks = append(toks, tok.Value)
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	toks := lexAll(t, "foo let fn _bar9", nil)
	want := []Token{
		{Kind: TokenIdentifier, Text: "foo"},
		{Kind: TokenKeyword, Keyword: KwLet},
		{Kind: TokenKeyword, Keyword: KwFn},
		{Kind: TokenIdentifier, Text: "_bar9"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens; want %d: %+v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i].Kind != want[i].Kind || toks[i].Text != want[i].Text || toks[i].Keyword != want[i].Keyword {
			t.Fatalf("token %d = %+v; want %+v", i, toks[i], want[i])
		}
	}
}

func TestLexerLineBreakCoalescesBlankLines(t *testing.T) {
	toks := lexAll(t, "a\n\n\nb", nil)
	want := []TokenKind{TokenIdentifier, TokenLineBreak, TokenIdentifier}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens; want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d kind = %v; want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLexerLineCommentIsTrivia(t *testing.T) {
	toks := lexAll(t, "a // comment\nb", nil)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens; want 3 (ident, linebreak, ident): %+v", len(toks), toks)
	}
	if toks[0].Kind != TokenIdentifier || toks[2].Kind != TokenIdentifier {
		t.Fatalf("unexpected token kinds: %+v", toks)
	}
}

func TestLexerDocCommentIsNotTrivia(t *testing.T) {
	toks := lexAll(t, "/// hi there\nfn", nil)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens; want 3 (doccomment, linebreak, fn): %+v", len(toks), toks)
	}
	if toks[0].Kind != TokenDocComment || toks[0].Text != " hi there" {
		t.Fatalf("doc comment token = %+v", toks[0])
	}
}

func TestLexerMaximalMunchOperators(t *testing.T) {
	// Each operator follows an operand, so its '<' is in less-than position
	// rather than opening markup.
	toks := lexAll(t, "a <<= b << c < d <= e", nil)
	want := []SymbolKind{SymLessLessEquals, SymLessLess, SymLess, SymLessEquals}
	if len(toks) != 2*len(want)+1 {
		t.Fatalf("got %d tokens; want %d: %+v", len(toks), 2*len(want)+1, toks)
	}
	for i, s := range want {
		if toks[2*i+1].Kind != TokenSymbol || toks[2*i+1].Symbol != s {
			t.Fatalf("token %d = %+v; want Symbol(%v)", 2*i+1, toks[2*i+1], s)
		}
	}
}

func TestLexerPathSeparatorIsAnError(t *testing.T) {
	lexer := NewLexer([]byte("a::b"), nil)
	if _, err := lexer.Next(); err != nil {
		t.Fatalf("first token errored: %v", err)
	}
	_, err := lexer.Next()
	kerr, ok := err.(*Error)
	if !ok || kerr.Code != ErrPathSeparatorNotAllowed {
		t.Fatalf("error = %v; want ErrPathSeparatorNotAllowed", err)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	lexer := NewLexer([]byte("$"), nil)
	_, err := lexer.Next()
	kerr, ok := err.(*Error)
	if !ok || kerr.Code != ErrIllegalTopLevelCharacter {
		t.Fatalf("error = %v; want ErrIllegalTopLevelCharacter", err)
	}
}

func TestLexerNonASCIIIdentifierContinuation(t *testing.T) {
	lexer := NewLexer([]byte("fooé"), nil)
	_, err := lexer.Next()
	kerr, ok := err.(*Error)
	if !ok || kerr.Code != ErrNonASCIIIdentifierCharacter {
		t.Fatalf("error = %v; want ErrNonASCIIIdentifierCharacter", err)
	}
}

func TestLexerLessThanIsLessThanAfterAValue(t *testing.T) {
	// After an identifier (a value), `<` cannot open markup: potentialMarkup
	// is cleared, so `a < b` lexes as three tokens, not a markup start tag.
	toks := lexAll(t, "a < b", nil)
	want := []TokenKind{TokenIdentifier, TokenSymbol, TokenIdentifier}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens; want %d: %+v", len(toks), len(want), toks)
	}
	if toks[1].Kind != TokenSymbol || toks[1].Symbol != SymLess {
		t.Fatalf("middle token = %+v; want Symbol(<)", toks[1])
	}
}

func TestLexerLessThanOpensMarkupAtExpressionStart(t *testing.T) {
	// At the very start of input (an expression position), `<` opens markup.
	toks := lexAll(t, "<a/>", nil)
	if len(toks) == 0 || toks[0].Kind != TokenMarkupStartTag {
		t.Fatalf("first token = %+v; want MarkupStartTag", toks)
	}
}

func TestLexerEndOfInputIsRepeatable(t *testing.T) {
	lexer := NewLexer([]byte(""), nil)
	for i := 0; i < 3; i++ {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("Next() call %d error: %v", i, err)
		}
		if tok.Value.Kind != TokenEndOfInput {
			t.Fatalf("Next() call %d = %v; want EndOfInput", i, tok.Value.Kind)
		}
	}
}
