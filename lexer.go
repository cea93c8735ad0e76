package kestrel

import (
	"unicode"
	"unicode/utf8"
)

// Lexer is a layer-stacked tokenizer (§4.2). It wraps a cursor over the
// source bytes; textual token payloads (identifiers, doc comments, markup
// names and text, string contents) are copied out of the source into Go
// strings rather than borrowed from it. It is stateful: it holds a stack of markup layers
// and a one-bit potential-markup flag that together disambiguate `<` as
// either "less-than" or "start of a markup element" (§3.5, §9).
type Lexer struct {
	cur             *cursor
	src             []byte
	config          *Config
	layers          []layer
	potentialMarkup bool
}

// NewLexer creates a lexer over src. A nil config falls back to
// DefaultConfig (hex/octal literals and \u escapes stay reserved errors).
func NewLexer(src []byte, config *Config) *Lexer {
	if config == nil {
		config = DefaultConfig()
	}
	// A source starts where an expression could: the very first token is
	// eligible to open a markup element just as one following `=`, `(`, or
	// `return` would be.
	return &Lexer{cur: newCursor(src), src: src, config: config, potentialMarkup: true}
}

// Next produces the next token span. It is the lexer's single operation
// (§9); everything else is internal state-machine plumbing driven by the
// layer stack.
func (l *Lexer) Next() (Spanned[Token], error) {
	if len(l.layers) > 0 {
		return l.lexMarkup()
	}
	return l.lexDefault()
}

// lexDefault implements §4.2.1.
func (l *Lexer) lexDefault() (Spanned[Token], error) {
	start := l.cur.offset()
	sawLineBreak := false

trivia:
	for {
		if l.matchPrefix("///") {
			break trivia
		}
		if l.matchPrefix("//") {
			l.skipLineCommentContent()
			continue
		}
		b, ok := l.cur.peek()
		if !ok || !isASCIIWhitespace(b) {
			break trivia
		}
		if b == '\n' || b == '\r' {
			sawLineBreak = true
		}
		l.cur.advance()
	}

	if sawLineBreak {
		return NewSpanned(Token{Kind: TokenLineBreak}, start, l.cur.offset()), nil
	}

	if l.matchPrefix("///") {
		return l.lexDocComment()
	}

	if l.potentialMarkup {
		if b, ok := l.cur.peek(); ok && b == '<' {
			l.potentialMarkup = false
			l.cur.advance()
			return l.parseStartTag()
		}
	}

	b, ok := l.cur.peek()
	if !ok {
		return NewSpanned(Token{Kind: TokenEndOfInput}, l.cur.offset(), l.cur.offset()), nil
	}

	var tok Spanned[Token]
	var err error

	switch {
	case b == '0':
		tok, err = l.lexNumberLeadingZero()
	case b >= '1' && b <= '9':
		tok, err = l.lexDecimalNumber()
	case b == '\'':
		tok, err = l.lexChar()
	case b == '"':
		tok, err = l.lexString()
	case isIdentStart(b):
		tok, err = l.lexIdentifierOrKeyword()
	case b == ':' && l.peekByteAt(1) == ':':
		err = newLexError(ErrPathSeparatorNotAllowed, "while lexing a path separator", l.cur.offset())
	default:
		tok, err = l.lexSymbol()
	}
	if err != nil {
		return Spanned[Token]{}, err
	}

	l.updatePotentialMarkup(tok.Value)
	return tok, nil
}

// matchPrefix reports whether the upcoming bytes equal prefix, without
// consuming anything.
func (l *Lexer) matchPrefix(prefix string) bool {
	for i := 0; i < len(prefix); i++ {
		b, ok := l.cur.peekN(i)
		if !ok || b != prefix[i] {
			return false
		}
	}
	return true
}

func (l *Lexer) peekByteAt(n int) byte {
	b, ok := l.cur.peekN(n)
	if !ok {
		return 0
	}
	return b
}

// skipLineCommentContent consumes a `//` (non-doc) comment body up to, but
// not including, the next line terminator or end of input. The terminator
// itself is left for the trivia loop's whitespace handling so that runs of
// comment + blank lines still coalesce into one LineBreak.
func (l *Lexer) skipLineCommentContent() {
	l.cur.advanceN(2)
	for {
		b, ok := l.cur.peek()
		if !ok || b == '\n' || b == '\r' {
			return
		}
		l.cur.advance()
	}
}

func (l *Lexer) lexDocComment() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.advanceN(3)
	contentStart := l.cur.offset()
	for {
		b, ok := l.cur.peek()
		if !ok || b == '\n' || b == '\r' {
			break
		}
		l.cur.advance()
	}
	text := string(l.src[contentStart:l.cur.offset()])
	return NewSpanned(Token{Kind: TokenDocComment, Text: text}, start, l.cur.offset()), nil
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (l *Lexer) lexIdentifierOrKeyword() (Spanned[Token], error) {
	start := l.cur.offset()
	for {
		b, ok := l.cur.peek()
		if !ok || !isIdentCont(b) {
			break
		}
		l.cur.advance()
	}

	// §6.3: identifiers are ASCII-only. If the byte immediately following
	// what we just scanned decodes as a Unicode letter or digit, the
	// author was clearly trying to continue the identifier with a
	// non-ASCII character.
	if r, size := utf8.DecodeRune(l.src[l.cur.offset():]); r != utf8.RuneError && size > 1 {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return Spanned[Token]{}, newLexError(ErrNonASCIIIdentifierCharacter, "while lexing an identifier", l.cur.offset())
		}
	}

	text := string(l.src[start:l.cur.offset()])
	if kw, ok := lookupKeyword(text); ok {
		return NewSpanned(Token{Kind: TokenKeyword, Keyword: kw}, start, l.cur.offset()), nil
	}
	return NewSpanned(Token{Kind: TokenIdentifier, Text: text}, start, l.cur.offset()), nil
}

// lexNumberLeadingZero handles the `0` dispatch table of §4.2.2 / §9 Open
// Question (c): 0x/0o are reserved (error unless enabled by Config), 0b is
// binary, 0. is a decimal fraction, 0_ or a further digit continues as
// decimal, and a bare `0` followed by anything else yields Number(0) with
// the next call resuming dispatch on the following byte.
func (l *Lexer) lexNumberLeadingZero() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.advance() // consume '0'

	switch l.peekByteAtCursor() {
	case 'x':
		if !l.config.EnableHexLiterals {
			return Spanned[Token]{}, newLexError(ErrHexLiteralReserved, "while lexing a number literal", start)
		}
		return l.lexRadixNumber(start, 'x', 16, isHexDigit, hexDigitValueOrPanic)
	case 'o':
		if !l.config.EnableOctalLiterals {
			return Spanned[Token]{}, newLexError(ErrOctalLiteralReserved, "while lexing a number literal", start)
		}
		return l.lexRadixNumber(start, 'o', 8, isOctalDigit, octalDigitValue)
	case 'b':
		return l.lexRadixNumber(start, 'b', 2, isBinaryDigit, binaryDigitValue)
	case '.':
		return l.lexDecimalFractionFrom(start, 0)
	case '_':
		return l.lexDecimalIntegerContinuation(start, 0)
	default:
		b := l.peekByteAtCursor()
		if b >= '0' && b <= '9' {
			return l.lexDecimalIntegerContinuation(start, 0)
		}
		if isIdentStart(b) {
			return Spanned[Token]{}, newLexError(ErrInvalidDigitInDecimalNumber, "while lexing a decimal number literal", l.cur.offset())
		}
		return NewSpanned(Token{Kind: TokenNumber, Number: 0}, start, l.cur.offset()), nil
	}
}

func (l *Lexer) peekByteAtCursor() byte {
	b, ok := l.cur.peek()
	if !ok {
		return 0
	}
	return b
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isOctalDigit(b byte) bool  { return b >= '0' && b <= '7' }
func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }

func hexDigitValueOrPanic(b byte) uint64 {
	v, _ := hexDigitValue(rune(b))
	return uint64(v)
}
func octalDigitValue(b byte) uint64  { return uint64(b - '0') }
func binaryDigitValue(b byte) uint64 { return uint64(b - '0') }

// lexRadixNumber lexes the digit run after a `0x`/`0o`/`0b` prefix into a
// uint64 accumulator, converting to float64 at the end. Underscores are
// accepted and ignored, matching decimal's handling.
func (l *Lexer) lexRadixNumber(start int, _ byte, radix uint64, isDigit func(byte) bool, digitValue func(byte) uint64) (Spanned[Token], error) {
	l.cur.advance() // consume the radix letter
	var value uint64
	sawDigit := false
	for {
		b, ok := l.cur.peek()
		if !ok {
			break
		}
		if b == '_' {
			l.cur.advance()
			continue
		}
		if !isDigit(b) {
			break
		}
		value = value*radix + digitValue(b)
		sawDigit = true
		l.cur.advance()
	}
	if b, ok := l.cur.peek(); ok && (isIdentStart(b) || (b >= '0' && b <= '9')) {
		code := ErrInvalidDigitInBinaryNumber
		if radix != 2 {
			code = ErrInvalidDigitInDecimalNumber
		}
		return Spanned[Token]{}, newLexError(code, "while lexing a number literal", l.cur.offset())
	}
	_ = sawDigit
	return NewSpanned(Token{Kind: TokenNumber, Number: float64(value)}, start, l.cur.offset()), nil
}

// lexDecimalNumber handles a decimal literal starting with a nonzero
// digit (§4.2.2).
func (l *Lexer) lexDecimalNumber() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.advance()
	return l.lexDecimalIntegerContinuation(start, 0)
}

// lexDecimalIntegerContinuation accumulates the remaining digits of a
// decimal integer part (whose first digit's value is firstDigit), then
// hands off to the fractional tail on `.`.
func (l *Lexer) lexDecimalIntegerContinuation(start int, firstDigit float64) (Spanned[Token], error) {
	value := firstDigit
	for {
		b, ok := l.cur.peek()
		if !ok {
			break
		}
		if b == '_' {
			l.cur.advance()
			continue
		}
		if b >= '0' && b <= '9' {
			value = value*10 + float64(b-'0')
			l.cur.advance()
			continue
		}
		break
	}

	if b, ok := l.cur.peek(); ok {
		if b == '.' {
			return l.lexDecimalFractionFrom(start, value)
		}
		if isIdentStart(b) {
			return Spanned[Token]{}, newLexError(ErrInvalidDigitInDecimalNumber, "while lexing a decimal number literal", l.cur.offset())
		}
	}
	return NewSpanned(Token{Kind: TokenNumber, Number: value}, start, l.cur.offset()), nil
}

// lexDecimalFractionFrom lexes `.` followed by the fractional digits,
// per §4.2.2: the tenths digit adds value/10, each subsequent digit
// accumulates with a multiplier that divides by 10 each step.
func (l *Lexer) lexDecimalFractionFrom(start int, integerPart float64) (Spanned[Token], error) {
	l.cur.advance() // consume '.'
	value := integerPart
	multiplier := 0.1
	for {
		b, ok := l.cur.peek()
		if !ok {
			break
		}
		if b == '_' {
			l.cur.advance()
			continue
		}
		if b >= '0' && b <= '9' {
			value += float64(b-'0') * multiplier
			multiplier /= 10
			l.cur.advance()
			continue
		}
		break
	}
	if b, ok := l.cur.peek(); ok && isIdentStart(b) {
		return Spanned[Token]{}, newLexError(ErrInvalidDigitInDecimalFraction, "while lexing a decimal fraction", l.cur.offset())
	}
	return NewSpanned(Token{Kind: TokenNumber, Number: value}, start, l.cur.offset()), nil
}

// lexChar lexes a character literal: 'x' or an escape (§4.2.4).
func (l *Lexer) lexChar() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.advance() // opening '

	var value rune
	if b, ok := l.cur.peek(); ok && b == '\\' {
		l.cur.advance()
		r, err := l.lexEscapeRune()
		if err != nil {
			return Spanned[Token]{}, err
		}
		value = r
	} else {
		r, size := utf8.DecodeRune(l.src[l.cur.offset():])
		if size == 0 {
			return Spanned[Token]{}, newLexError(ErrUnterminatedChar, "while lexing a character literal", l.cur.offset())
		}
		value = r
		l.cur.advanceN(size)
	}

	b, ok := l.cur.peek()
	if !ok {
		return Spanned[Token]{}, newLexError(ErrUnterminatedChar, "while lexing a character literal", l.cur.offset())
	}
	if b != '\'' {
		return Spanned[Token]{}, newLexError(ErrCharLiteralTooLong, "while lexing a character literal", l.cur.offset())
	}
	l.cur.advance() // closing '

	return NewSpanned(Token{Kind: TokenChar, Char: value}, start, l.cur.offset()), nil
}

// lexEscapeRune lexes the escape body following a `\` inside a char or
// string literal (§4.2.4), with the cursor positioned just after the
// backslash.
func (l *Lexer) lexEscapeRune() (rune, error) {
	b, ok := l.cur.peek()
	if !ok {
		return 0, newLexError(ErrExpectedEscapeCharacter, "while lexing an escape sequence", l.cur.offset())
	}
	switch b {
	case '0':
		l.cur.advance()
		return 0, nil
	case '\\':
		l.cur.advance()
		return '\\', nil
	case 'f':
		l.cur.advance()
		return 0x0C, nil
	case 't':
		l.cur.advance()
		return '\t', nil
	case 'r':
		l.cur.advance()
		return '\r', nil
	case 'n':
		l.cur.advance()
		return '\n', nil
	case 'b':
		l.cur.advance()
		return 0x07, nil
	case 'v':
		l.cur.advance()
		return 0x0B, nil
	case '"':
		l.cur.advance()
		return '"', nil
	case '\'':
		l.cur.advance()
		return '\'', nil
	case '[':
		l.cur.advance()
		return 0x1B, nil
	case 'x':
		l.cur.advance()
		hi, ok1 := l.cur.peek()
		if !ok1 {
			return 0, newLexError(ErrHexEscapeFirstDigitMissing, "while lexing a \\x escape", l.cur.offset())
		}
		if !isHexDigit(hi) {
			return 0, newLexError(ErrHexEscapeFirstDigitInvalid, "while lexing a \\x escape", l.cur.offset())
		}
		l.cur.advance()
		lo, ok2 := l.cur.peek()
		if !ok2 {
			return 0, newLexError(ErrHexEscapeSecondDigitMissing, "while lexing a \\x escape", l.cur.offset())
		}
		if !isHexDigit(lo) {
			return 0, newLexError(ErrHexEscapeSecondDigitInvalid, "while lexing a \\x escape", l.cur.offset())
		}
		l.cur.advance()
		hiV, _ := hexDigitValue(rune(hi))
		loV, _ := hexDigitValue(rune(lo))
		value := hiV<<4 | loV
		if value > 0x7F {
			return 0, newLexError(ErrHexEscapeOutOfRange, "while lexing a \\x escape", l.cur.offset())
		}
		return rune(value), nil
	case 'u':
		return 0, newLexError(ErrUnicodeEscapeReserved, "while lexing a \\u escape", l.cur.offset())
	default:
		return 0, newLexError(ErrInvalidEscapeCharacter, "while lexing an escape sequence", l.cur.offset())
	}
}

// lexString lexes a string literal into an UnprocessedString: escapes are
// validated for shape but not expanded (§3.3, §4.2).
func (l *Lexer) lexString() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.advance() // opening "
	contentStart := l.cur.offset()
	for {
		b, ok := l.cur.peek()
		if !ok {
			return Spanned[Token]{}, newLexError(ErrUnterminatedString, "while lexing a string literal", l.cur.offset())
		}
		if b == '"' {
			break
		}
		if b == '\\' {
			l.cur.advance()
			if _, err := l.lexEscapeRune(); err != nil {
				return Spanned[Token]{}, err
			}
			continue
		}
		l.cur.advance()
	}
	content := l.src[contentStart:l.cur.offset()]
	l.cur.advance() // closing "
	return NewSpanned(Token{Kind: TokenString, String: UnprocessedString(content)}, start, l.cur.offset()), nil
}

// symbolEntry is one row of the maximal-munch operator table (§4.2.3).
type symbolEntry struct {
	text string
	kind SymbolKind
}

// symbolTable is ordered longest-prefix-first within each starting byte so
// the longest match always wins.
var symbolTable = []symbolEntry{
	{"<<=", SymLessLessEquals}, {">>=", SymGreaterGreaterEquals},
	{"**=", SymStarStarEquals}, {"||=", SymPipePipeEquals}, {"&&=", SymAmpAmpEquals},
	{"==", SymEqualsEquals}, {"!=", SymBangEquals},
	{"<=", SymLessEquals}, {"<<", SymLessLess},
	{">=", SymGreaterEquals}, {">>", SymGreaterGreater},
	{"+=", SymPlusEquals}, {"-=", SymMinusEquals}, {"->", SymArrow},
	{"*=", SymStarEquals}, {"**", SymStarStar},
	{"/=", SymSlashEquals},
	{"%=", SymPercentEquals},
	{"|=", SymPipeEquals}, {"||", SymPipePipe},
	{"&=", SymAmpEquals}, {"&&", SymAmpAmp},
	{"^=", SymCaretEquals},
	{"?.", SymQuestionDot},
	{"=", SymEquals}, {"!", SymBang}, {"<", SymLess}, {">", SymGreater},
	{"+", SymPlus}, {"-", SymMinus}, {"*", SymStar}, {"/", SymSlash}, {"%", SymPercent},
	{"|", SymPipe}, {"&", SymAmp}, {"^", SymCaret}, {"?", SymQuestion},
	{".", SymDot}, {",", SymComma}, {";", SymSemicolon}, {":", SymColon},
	{"(", SymLParen}, {")", SymRParen}, {"[", SymLBracket}, {"]", SymRBracket},
	{"{", SymLBrace}, {"}", SymRBrace}, {"@", SymAt},
}

func (l *Lexer) lexSymbol() (Spanned[Token], error) {
	start := l.cur.offset()
	for _, entry := range symbolTable {
		if l.matchPrefix(entry.text) {
			l.cur.advanceN(len(entry.text))
			return NewSpanned(Token{Kind: TokenSymbol, Symbol: entry.kind}, start, l.cur.offset()), nil
		}
	}
	return Spanned[Token]{}, newLexError(ErrIllegalTopLevelCharacter, "while lexing", l.cur.offset())
}

// updatePotentialMarkup implements §4.2.1 step 5: the flag is set after
// any token that can syntactically precede an expression start, and
// cleared after a token that is itself a complete value, a closing
// delimiter, or a declaration keyword (`fn`, `struct`, `enum`) whose
// optional `<…>` type-parameter list follows directly. LineBreak and DocComment tokens never reach here (lexDefault
// returns before this call for both), so the flag is left untouched across
// them by construction.
func (l *Lexer) updatePotentialMarkup(tok Token) {
	switch tok.Kind {
	case TokenNumber, TokenString, TokenChar, TokenIdentifier:
		l.potentialMarkup = false
		return
	case TokenKeyword:
		switch tok.Keyword {
		case KwThis, KwTrue, KwFalse, KwBreak, KwContinue:
			l.potentialMarkup = false
		case KwFn, KwStruct, KwEnum:
			l.potentialMarkup = false
		default:
			l.potentialMarkup = true
		}
		return
	case TokenSymbol:
		switch tok.Symbol {
		case SymRParen, SymRBracket, SymRBrace, SymDot:
			l.potentialMarkup = false
		default:
			l.potentialMarkup = true
		}
		return
	default:
		// Markup-internal tokens (MarkupClose, MarkupEndTag, ...) complete
		// a value; a following `<` is less-than.
		l.potentialMarkup = false
	}
}
