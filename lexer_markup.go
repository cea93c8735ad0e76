package kestrel

// layer names the lexer's markup-sublanguage state (§3.5). The lexer holds
// a stack of these; when the stack is empty the lexer is in "default"
// mode and `<` is ordinary less-than unless the potential-markup flag
// says otherwise.
type layer uint8

const (
	layerKeyOrStartTagEndOrSelfClose layer = iota
	layerValue
	layerTextOrInsert
	layerEndTag
	layerStartTag
	layerInsert
)

func (l *Lexer) pushLayer(ly layer) { l.layers = append(l.layers, ly) }

func (l *Lexer) popLayer() layer {
	top := l.layers[len(l.layers)-1]
	l.layers = l.layers[:len(l.layers)-1]
	return top
}

func (l *Lexer) topLayer() layer { return l.layers[len(l.layers)-1] }

// lexMarkup dispatches on the top of the layer stack (§4.2.5). Each branch
// either returns a token directly or performs stack surgery and recurses
// to actually produce one, since Next() must return exactly one token per
// call.
func (l *Lexer) lexMarkup() (Spanned[Token], error) {
	switch l.topLayer() {
	case layerKeyOrStartTagEndOrSelfClose:
		return l.lexKeyOrStartTagEndOrSelfClose()
	case layerValue:
		return l.lexValue()
	case layerTextOrInsert:
		return l.lexTextOrInsert()
	case layerEndTag:
		return l.lexEndTag()
	case layerStartTag:
		return l.lexStartTagLayer()
	case layerInsert:
		return l.lexInsert()
	default:
		panic("unreachable markup layer")
	}
}

// parseStartTag implements §4.2.5's "parseStartTag": consumes whitespace,
// reads the tag name, rejects a keyword used as a tag name, pushes
// KeyOrStartTagEndOrSelfClose and emits MarkupStartTag. The caller has
// already consumed the opening `<`.
func (l *Lexer) parseStartTag() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.skipASCIIWhitespace()

	nameStart := l.cur.offset()
	b, ok := l.cur.peek()
	if !ok || !isIdentStart(b) {
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedSlashOrIdentifier, "while lexing a markup start tag", l.cur.offset())
	}
	for {
		b, ok := l.cur.peek()
		if !ok || !isIdentCont(b) {
			break
		}
		l.cur.advance()
	}
	name := string(l.src[nameStart:l.cur.offset()])
	if _, isKeyword := lookupKeyword(name); isKeyword {
		return Spanned[Token]{}, newLexError(ErrMarkupKeywordAsTagName, "while lexing a markup start tag", nameStart)
	}

	l.pushLayer(layerKeyOrStartTagEndOrSelfClose)
	return NewSpanned(Token{Kind: TokenMarkupStartTag, Text: name}, start, l.cur.offset()), nil
}

func (l *Lexer) lexStartTagLayer() (Spanned[Token], error) {
	l.popLayer()
	l.cur.skipASCIIWhitespace()
	return l.parseStartTag()
}

func (l *Lexer) lexKeyOrStartTagEndOrSelfClose() (Spanned[Token], error) {
	l.cur.skipASCIIWhitespace()
	start := l.cur.offset()

	b, ok := l.cur.peek()
	if !ok {
		return Spanned[Token]{}, newLexError(ErrMarkupUnterminatedElement, "while lexing a markup start tag", l.cur.offset())
	}

	switch {
	case b == '>':
		l.cur.advance()
		l.popLayer()
		l.pushLayer(layerTextOrInsert)
		return NewSpanned(Token{Kind: TokenMarkupStartTagEnd}, start, l.cur.offset()), nil

	case b == '/':
		l.cur.advance()
		if nb, ok := l.cur.peek(); !ok || nb != '>' {
			return Spanned[Token]{}, newLexError(ErrMarkupExpectedTagEnd, "while lexing a self-closing markup tag", l.cur.offset())
		}
		l.cur.advance()
		l.popLayer()
		l.potentialMarkup = false
		return NewSpanned(Token{Kind: TokenMarkupClose}, start, l.cur.offset()), nil

	case isIdentStart(b):
		for {
			nb, ok := l.cur.peek()
			if !ok || !isIdentCont(nb) {
				break
			}
			l.cur.advance()
		}
		name := string(l.src[start:l.cur.offset()])
		l.popLayer()
		l.pushLayer(layerValue)
		return NewSpanned(Token{Kind: TokenMarkupKey, Text: name}, start, l.cur.offset()), nil

	default:
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedSlashOrIdentifier, "while lexing a markup start tag", l.cur.offset())
	}
}

func (l *Lexer) lexValue() (Spanned[Token], error) {
	l.cur.skipASCIIWhitespace()
	b, ok := l.cur.peek()
	if !ok || b != '=' {
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedEquals, "while lexing a markup attribute", l.cur.offset())
	}
	l.cur.advance()
	l.cur.skipASCIIWhitespace()

	b, ok = l.cur.peek()
	if !ok {
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedStringOrBrace, "while lexing a markup attribute", l.cur.offset())
	}

	switch b {
	case '"':
		tok, err := l.lexString()
		if err != nil {
			return Spanned[Token]{}, err
		}
		l.popLayer()
		l.pushLayer(layerKeyOrStartTagEndOrSelfClose)
		return tok, nil

	case '{':
		start := l.cur.offset()
		l.cur.advance()
		l.popLayer()
		l.pushLayer(layerKeyOrStartTagEndOrSelfClose)
		l.pushLayer(layerInsert)
		l.potentialMarkup = true
		return NewSpanned(Token{Kind: TokenSymbol, Symbol: SymLBrace}, start, l.cur.offset()), nil

	default:
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedStringOrBrace, "while lexing a markup attribute", l.cur.offset())
	}
}

func (l *Lexer) lexTextOrInsert() (Spanned[Token], error) {
	start := l.cur.offset()
	for {
		b, ok := l.cur.peek()
		if !ok || b == '<' || b == '{' {
			break
		}
		l.cur.advance()
	}
	if l.cur.offset() > start {
		text := string(l.src[start:l.cur.offset()])
		return NewSpanned(Token{Kind: TokenMarkupText, Text: text}, start, l.cur.offset()), nil
	}

	// Nothing accumulated: we're sitting right on the delimiter (or EOF).
	b, ok := l.cur.peek()
	if !ok {
		return Spanned[Token]{}, newLexError(ErrMarkupUnterminatedElement, "while lexing markup element content", l.cur.offset())
	}

	switch b {
	case '<':
		if l.matchPrefix("</") {
			l.popLayer()
			l.pushLayer(layerEndTag)
			return l.lexMarkup()
		}
		l.popLayer()
		l.pushLayer(layerTextOrInsert)
		l.pushLayer(layerStartTag)
		l.cur.advance() // consume '<'
		return l.lexMarkup()

	case '{':
		insertStart := l.cur.offset()
		l.cur.advance()
		l.popLayer()
		l.pushLayer(layerTextOrInsert)
		l.pushLayer(layerInsert)
		l.potentialMarkup = true
		return NewSpanned(Token{Kind: TokenSymbol, Symbol: SymLBrace}, insertStart, l.cur.offset()), nil

	default:
		panic("unreachable: TextOrInsert dispatch byte")
	}
}

func (l *Lexer) lexEndTag() (Spanned[Token], error) {
	start := l.cur.offset()
	l.cur.advanceN(2) // consume "</"
	l.cur.skipASCIIWhitespace()

	nameStart := l.cur.offset()
	b, ok := l.cur.peek()
	if !ok || !isIdentStart(b) {
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedSlashOrIdentifier, "while lexing a markup end tag", l.cur.offset())
	}
	for {
		nb, ok := l.cur.peek()
		if !ok || !isIdentCont(nb) {
			break
		}
		l.cur.advance()
	}
	name := string(l.src[nameStart:l.cur.offset()])
	if _, isKeyword := lookupKeyword(name); isKeyword {
		return Spanned[Token]{}, newLexError(ErrMarkupKeywordAsTagName, "while lexing a markup end tag", nameStart)
	}

	l.cur.skipASCIIWhitespace()
	b, ok = l.cur.peek()
	if !ok || b != '>' {
		return Spanned[Token]{}, newLexError(ErrMarkupExpectedTagEnd, "while lexing a markup end tag", l.cur.offset())
	}
	l.cur.advance()

	l.popLayer()
	l.potentialMarkup = false
	return NewSpanned(Token{Kind: TokenMarkupEndTag, Text: name}, start, l.cur.offset()), nil
}

// lexInsert delegates to default-mode lexing, tracking brace depth by
// pushing an additional Insert layer for every `{` it lexes and popping
// one for every `}` (§4.2.5). Leaving the outermost Insert returns control
// to the enclosing markup layer already beneath it on the stack.
func (l *Lexer) lexInsert() (Spanned[Token], error) {
	tok, err := l.lexDefault()
	if err != nil {
		return Spanned[Token]{}, err
	}
	switch {
	case tok.Value.Kind == TokenEndOfInput:
		return Spanned[Token]{}, newLexError(ErrMarkupUnterminatedElement, "while lexing a markup insert", tok.Span.Start)
	case tok.Value.IsSymbol(SymLBrace):
		l.pushLayer(layerInsert)
	case tok.Value.IsSymbol(SymRBrace):
		l.popLayer()
	}
	return tok, nil
}
