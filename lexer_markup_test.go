package kestrel

import "testing"

func TestLexerMarkupSelfClosing(t *testing.T) {
	toks := lexAll(t, "<br/>", nil)
	want := []TokenKind{TokenMarkupStartTag, TokenMarkupClose}
	requireTokenKinds(t, toks, want)
	if toks[0].Text != "br" {
		t.Fatalf("tag name = %q; want \"br\"", toks[0].Text)
	}
}

func TestLexerMarkupWithTextChild(t *testing.T) {
	toks := lexAll(t, "<p>hello</p>", nil)
	want := []TokenKind{TokenMarkupStartTag, TokenMarkupStartTagEnd, TokenMarkupText, TokenMarkupEndTag}
	requireTokenKinds(t, toks, want)
	if toks[2].Text != "hello" {
		t.Fatalf("text child = %q; want \"hello\"", toks[2].Text)
	}
	if toks[3].Text != "p" {
		t.Fatalf("end tag name = %q; want \"p\"", toks[3].Text)
	}
}

func TestLexerMarkupStringAttribute(t *testing.T) {
	toks := lexAll(t, `<a href="x">l</a>`, nil)
	want := []TokenKind{
		TokenMarkupStartTag, TokenMarkupKey, TokenString,
		TokenMarkupStartTagEnd, TokenMarkupText, TokenMarkupEndTag,
	}
	requireTokenKinds(t, toks, want)
	if toks[1].Text != "href" {
		t.Fatalf("attribute name = %q; want \"href\"", toks[1].Text)
	}
}

func TestLexerMarkupNestedSelfClosingAttributeInsert(t *testing.T) {
	// Testable property 9: an attribute value can itself be an insert
	// containing a nested self-closing markup element.
	toks := lexAll(t, "<a x={<b/>}>text</a>", nil)
	want := []TokenKind{
		TokenMarkupStartTag, // a
		TokenMarkupKey,      // x
		TokenSymbol,         // {
		TokenMarkupStartTag, // b
		TokenMarkupClose,    // b's self-close
		TokenSymbol,         // }
		TokenMarkupStartTagEnd,
		TokenMarkupText, // text
		TokenMarkupEndTag,
	}
	requireTokenKinds(t, toks, want)
	if toks[0].Text != "a" || toks[3].Text != "b" || toks[8].Text != "a" {
		t.Fatalf("tag names mismatched: %+v", toks)
	}
	if toks[2].Symbol != SymLBrace || toks[5].Symbol != SymRBrace {
		t.Fatalf("insert braces mismatched: %+v", toks)
	}
}

func TestLexerMarkupExpressionInsertChild(t *testing.T) {
	toks := lexAll(t, "<p>{x}</p>", nil)
	want := []TokenKind{
		TokenMarkupStartTag, TokenMarkupStartTagEnd,
		TokenSymbol, TokenIdentifier, TokenSymbol,
		TokenMarkupEndTag,
	}
	requireTokenKinds(t, toks, want)
}

func TestLexerMarkupNestedElementChild(t *testing.T) {
	toks := lexAll(t, "<p><b/></p>", nil)
	want := []TokenKind{
		TokenMarkupStartTag, TokenMarkupStartTagEnd,
		TokenMarkupStartTag, TokenMarkupClose,
		TokenMarkupEndTag,
	}
	requireTokenKinds(t, toks, want)
}

func TestLexerMarkupKeywordAsTagNameIsAnError(t *testing.T) {
	lexer := NewLexer([]byte("<if/>"), nil)
	_, err := lexer.Next()
	kerr, ok := err.(*Error)
	if !ok || kerr.Code != ErrMarkupKeywordAsTagName {
		t.Fatalf("error = %v; want ErrMarkupKeywordAsTagName", err)
	}
}

func TestLexerMarkupUnterminatedElement(t *testing.T) {
	lexer := NewLexer([]byte("<a>text"), nil)
	var lastErr error
	for i := 0; i < 10; i++ {
		_, err := lexer.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	kerr, ok := lastErr.(*Error)
	if !ok || kerr.Code != ErrMarkupUnterminatedElement {
		t.Fatalf("error = %v; want ErrMarkupUnterminatedElement", lastErr)
	}
}

func TestLexerMarkupEndTagMustBeIdentifier(t *testing.T) {
	lexer := NewLexer([]byte("<a></1>"), nil)
	var lastErr error
	for i := 0; i < 10; i++ {
		_, err := lexer.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil {
		t.Fatalf("expected an error lexing a malformed end tag")
	}
}

func requireTokenKinds(t *testing.T, toks []Token, want []TokenKind) {
	t.Helper()
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens; want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d kind = %v; want %v (full: %+v)", i, toks[i].Kind, k, toks)
		}
	}
}
