package kestrel

import "fmt"

// Parser is a recursive-descent parser with Pratt-style expression parsing
// (§4.4). It consumes a lookahead buffer, allocates Expression and Type
// nodes from their own arenas, and accumulates warnings rather than
// failing on them.
type Parser struct {
	lb  *lookahead
	src []byte

	// Expression and Type nodes dominate node count in deeply nested
	// expression trees, so they're bump-allocated. Statement and UseTree
	// nodes are constructed once per declaration — rare enough that an
	// ordinary heap allocation per node is simpler and just as cheap.
	expressions *Arena[Expression]
	types       *Arena[Type]

	warnings WarningList
}

// NewParser builds a parser over an already-constructed lookahead buffer.
func NewParser(lb *lookahead, src []byte) *Parser {
	return &Parser{
		lb:          lb,
		src:         src,
		expressions: NewArena[Expression](128),
		types:       NewArena[Type](64),
	}
}

func (p *Parser) allocExpr(e Expression) *Expression { return p.expressions.Alloc(e) }
func (p *Parser) allocType(t Type) *Type             { return p.types.Alloc(t) }

func (p *Parser) peek() (Spanned[Token], error)            { return p.lb.peek() }
func (p *Parser) peekN(n int) (Spanned[Token], error)      { return p.lb.peekN(n) }
func (p *Parser) advance() error                           { return p.lb.advance() }
func (p *Parser) next() (Spanned[Token], error)            { return p.lb.next() }
func (p *Parser) peekNonLB() (Spanned[Token], bool, error) { return p.lb.peekNonLB(0) }

// ParseModule parses a whole module body. nested is true when called for a
// `mod name { … }` body, in which case input ends on `}`; otherwise input
// must end on EndOfInput (§4.4.1).
func (p *Parser) ParseModule(nested bool) (*ModuleContent, error) {
	var items []TopLevelItem

	for {
		if err := p.skipItemSeparators(); err != nil {
			return nil, err
		}

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Value.Kind == TokenEndOfInput {
			break
		}
		if nested && tok.Value.IsSymbol(SymRBrace) {
			break
		}

		itemStart := tok.Span.Start
		public := false
		if tok.Value.IsKeyword(KwPub) {
			public = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		stmt, err := p.tryParseStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			tok, _ := p.peek()
			return nil, newParseError(ErrExpectedStatementKeyword,
				fmt.Sprintf("expected a top-level item, found %s", tok.Value), "", tok.Span.Start)
		}

		items = append(items, TopLevelItem{Public: public, Statement: stmt, Span: Span{Start: itemStart, End: stmt.Span.End}})
	}

	if nested {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		if !tok.Value.IsSymbol(SymRBrace) {
			return nil, newParseError(ErrExpectedClosingBrace, "expected '}' to close the module body", "", tok.Span.Start)
		}
	}

	return &ModuleContent{Items: items}, nil
}

// skipItemSeparators consumes line breaks and stray semicolons between
// top-level items, warning on the latter (§4.4.1).
func (p *Parser) skipItemSeparators() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		switch {
		case tok.Value.Kind == TokenLineBreak:
			if err := p.advance(); err != nil {
				return err
			}
		case tok.Value.IsSymbol(SymSemicolon):
			p.warnings.Add(WarnUnnecessarySemicolon, tok.Span)
			if err := p.advance(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// tryParseStatement is the single entry point for statement-level parsing
// (§4.4.2). It returns (nil, nil) when the next tokens are not a
// statement, so the caller can fall back to expression parsing.
func (p *Parser) tryParseStatement() (*Statement, error) {
	start, err := p.peek()
	if err != nil {
		return nil, err
	}
	startOffset := start.Span.Start

	var docComments []string
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		// The line break ending a doc comment does not detach it from the
		// item on the next line.
		if tok.Value.Kind == TokenLineBreak && len(docComments) > 0 {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if tok.Value.Kind != TokenDocComment {
			break
		}
		docComments = append(docComments, tok.Value.Text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	var annotations []Annotation
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Value.Kind == TokenLineBreak && (len(docComments) > 0 || len(annotations) > 0) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if !tok.Value.IsSymbol(SymAt) {
			break
		}
		ann, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, ann)
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var stmt *Statement
	switch {
	case tok.Value.IsKeyword(KwFn):
		stmt, err = p.parseFunctionStatement()
	case tok.Value.IsKeyword(KwMod):
		stmt, err = p.parseModuleStatement()
	case tok.Value.IsKeyword(KwStruct):
		stmt, err = p.parseStructStatement()
	case tok.Value.IsKeyword(KwEnum):
		stmt, err = p.parseEnumStatement()
	case tok.Value.IsKeyword(KwType):
		stmt, err = p.parseTypeAliasStatement()
	case tok.Value.IsKeyword(KwLet):
		stmt, err = p.parseLetStatement()
	case tok.Value.IsKeyword(KwUse):
		stmt, err = p.parseUseStatement()
	default:
		if len(docComments) > 0 {
			return nil, newParseError(ErrUnattachedDocComments, "doc comment is not attached to a statement", "", startOffset)
		}
		if len(annotations) > 0 {
			return nil, newParseError(ErrUnattachedAnnotations, "annotation is not attached to a statement", "", startOffset)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if stmt.Kind == StmtUse && len(docComments) > 0 {
		return nil, newParseError(ErrDocCommentsOnUse, "doc comments are not permitted on a use statement", "", startOffset)
	}

	stmt.DocComments = docComments
	stmt.Annotations = annotations
	stmt.Span.Start = startOffset
	return stmt, nil
}

// parseAnnotation parses `@path(args…)` (the completed argument grammar
// matches a positional call argument list, §4.4.6).
func (p *Parser) parseAnnotation() (Annotation, error) {
	at, err := p.next() // consume '@'
	if err != nil {
		return Annotation{}, err
	}
	path, err := p.parseItemPath()
	if err != nil {
		return Annotation{}, err
	}

	var args []*Expression
	tok, err := p.peek()
	if err != nil {
		return Annotation{}, err
	}
	end := path.Span.End
	if tok.Value.IsSymbol(SymLParen) {
		args, end, err = p.parseParenthesizedExpressionList()
		if err != nil {
			return Annotation{}, err
		}
	}

	return Annotation{Path: path, Arguments: args, Span: Span{Start: at.Span.Start, End: end}}, nil
}

// parseItemPath parses a dot-separated identifier chain.
func (p *Parser) parseItemPath() (ItemPath, error) {
	first, err := p.expectIdentifier()
	if err != nil {
		return ItemPath{}, err
	}
	path := ItemPath{Name: first.Value, Span: first.Span}
	for {
		tok, err := p.peek()
		if err != nil {
			return ItemPath{}, err
		}
		if !tok.Value.IsSymbol(SymDot) {
			break
		}
		if err := p.advance(); err != nil {
			return ItemPath{}, err
		}
		next, err := p.expectIdentifier()
		if err != nil {
			return ItemPath{}, err
		}
		path.Parents = append(path.Parents, path.Name)
		path.Name = next.Value
		path.Span.End = next.Span.End
	}
	return path, nil
}

// parseParenthesizedExpressionList parses `( expr, … )` with trailing
// commas tolerated and warned, returning the arguments and the end offset
// of the closing paren. The opening paren has already been peeked but not
// consumed.
func (p *Parser) parseParenthesizedExpressionList() ([]*Expression, int, error) {
	if _, err := p.next(); err != nil { // consume '('
		return nil, 0, err
	}

	var args []*Expression
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, 0, err
		}
		if tok.Value.IsSymbol(SymRParen) {
			break
		}
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, 0, err
		}
		args = append(args, expr)

		tok, _, err = p.peekNonLB()
		if err != nil {
			return nil, 0, err
		}
		if tok.Value.IsSymbol(SymComma) {
			if err := p.consumeNonLB(); err != nil {
				return nil, 0, err
			}
			trailing, _, err := p.peekNonLB()
			if err != nil {
				return nil, 0, err
			}
			if trailing.Value.IsSymbol(SymRParen) {
				p.warnings.Add(WarnUnnecessaryComma, tok.Span)
			}
			continue
		}
		break
	}

	close, err := p.expectSymbolSkippingLB(SymRParen, ErrExpectedClosingParen)
	if err != nil {
		return nil, 0, err
	}
	return args, close.Span.End, nil
}

// consumeNonLB advances past any line breaks and then consumes exactly one
// real token; used after peekNonLB has already decided the real token
// should be consumed.
func (p *Parser) consumeNonLB() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Value.Kind == TokenLineBreak {
			if err := p.advance(); err != nil {
				return err
			}
			continue
		}
		return p.advance()
	}
}

func (p *Parser) expectSymbolSkippingLB(sym SymbolKind, code ErrorCode) (Spanned[Token], error) {
	for {
		tok, err := p.peek()
		if err != nil {
			return Spanned[Token]{}, err
		}
		if tok.Value.Kind == TokenLineBreak {
			if err := p.advance(); err != nil {
				return Spanned[Token]{}, err
			}
			continue
		}
		if !tok.Value.IsSymbol(sym) {
			return Spanned[Token]{}, newParseError(code, fmt.Sprintf("expected '%s', found %s", sym, tok.Value), "", tok.Span.Start)
		}
		return p.next()
	}
}

func (p *Parser) expectSymbol(sym SymbolKind, code ErrorCode) (Spanned[Token], error) {
	tok, err := p.peek()
	if err != nil {
		return Spanned[Token]{}, err
	}
	if !tok.Value.IsSymbol(sym) {
		return Spanned[Token]{}, newParseError(code, fmt.Sprintf("expected '%s', found %s", sym, tok.Value), "", tok.Span.Start)
	}
	return p.next()
}

func (p *Parser) expectKeyword(kw KeywordKind) (Spanned[Token], error) {
	tok, err := p.peek()
	if err != nil {
		return Spanned[Token]{}, err
	}
	if !tok.Value.IsKeyword(kw) {
		return Spanned[Token]{}, newParseError(ErrExpectedStatementKeyword, fmt.Sprintf("expected '%s', found %s", kw, tok.Value), "", tok.Span.Start)
	}
	return p.next()
}

func (p *Parser) expectIdentifier() (Spanned[string], error) {
	tok, err := p.peek()
	if err != nil {
		return Spanned[string]{}, err
	}
	if tok.Value.Kind != TokenIdentifier {
		return Spanned[string]{}, newParseError(ErrExpectedIdentifier, fmt.Sprintf("expected an identifier, found %s", tok.Value), "", tok.Span.Start)
	}
	if _, err := p.next(); err != nil {
		return Spanned[string]{}, err
	}
	return NewSpanned(tok.Value.Text, tok.Span.Start, tok.Span.End), nil
}

// parseOptionalTypeParameters parses an optional `<T: Trait, …>` list.
func (p *Parser) parseOptionalTypeParameters() ([]TypeParameter, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.Value.IsSymbol(SymLess) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var tps []TypeParameter
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymGreater) {
			break
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		tp := TypeParameter{Name: name.Value, Span: name.Span}

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymColon) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			for {
				path, err := p.parseItemPath()
				if err != nil {
					return nil, err
				}
				tp.Traits = append(tp.Traits, path)
				tok, err = p.peek()
				if err != nil {
					return nil, err
				}
				if tok.Value.IsSymbol(SymPlus) {
					if err := p.advance(); err != nil {
						return nil, err
					}
					continue
				}
				break
			}
		}
		tps = append(tps, tp)

		tok, _, err = p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymComma) {
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if _, err := p.expectSymbolSkippingLB(SymGreater, ErrExpectedClosingAngle); err != nil {
		return nil, err
	}
	return tps, nil
}

func (p *Parser) parseFunctionStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwFn); err != nil {
		return nil, err
	}
	tps, err := p.parseOptionalTypeParameters()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	sig, err := p.parseFunctionSignature()
	if err != nil {
		return nil, err
	}
	sig.TypeParameters = tps

	if _, err := p.expectSymbol(SymLBrace, ErrExpectedClosingBrace); err != nil {
		return nil, err
	}
	body, end, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}

	return &Statement{
		Kind:           StmtFunction,
		Name:           name.Value,
		TypeParameters: tps,
		Signature:      sig,
		FunctionBody:   body,
		Span:           Span{End: end},
	}, nil
}

// parseFunctionSignature parses `( [this|mut this,] [[mut] name: type]… ) [-> type]`.
func (p *Parser) parseFunctionSignature() (*FunctionSignature, error) {
	open, err := p.expectSymbol(SymLParen, ErrExpectedClosingParen)
	if err != nil {
		return nil, err
	}
	sig := &FunctionSignature{Span: Span{Start: open.Span.Start}}

	first := true
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymRParen) {
			break
		}

		consumedReceiver := false
		if first {
			if tok.Value.IsKeyword(KwThis) {
				sig.HasThis = true
				if err := p.consumeNonLB(); err != nil {
					return nil, err
				}
				consumedReceiver = true
			} else if tok.Value.IsKeyword(KwMut) {
				nextTok, err := p.peekN(1)
				if err == nil && nextTok.Value.IsKeyword(KwThis) {
					sig.HasThis = true
					sig.ThisMutable = true
					if err := p.consumeNonLB(); err != nil {
						return nil, err
					}
					if err := p.advance(); err != nil {
						return nil, err
					}
					consumedReceiver = true
				}
			}
		}
		first = false

		if !consumedReceiver {
			param := Parameter{}
			tok, _, err := p.peekNonLB()
			if err != nil {
				return nil, err
			}
			if tok.Value.IsKeyword(KwMut) {
				param.Mutable = true
				if err := p.consumeNonLB(); err != nil {
					return nil, err
				}
			}
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			param.Name = name.Value
			param.Span.Start = name.Span.Start
			if _, err := p.expectSymbol(SymColon, ErrExpectedType); err != nil {
				return nil, err
			}
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			param.Type = ty
			param.Span.End = ty.Span.End
			sig.Parameters = append(sig.Parameters, param)
		}

		tok, _, err = p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymComma) {
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			trailing, _, err := p.peekNonLB()
			if err != nil {
				return nil, err
			}
			if trailing.Value.IsSymbol(SymRParen) {
				p.warnings.Add(WarnUnnecessaryComma, tok.Span)
			}
			continue
		}
		break
	}

	close, err := p.expectSymbolSkippingLB(SymRParen, ErrExpectedClosingParen)
	if err != nil {
		return nil, err
	}
	sig.Span.End = close.Span.End

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsSymbol(SymArrow) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		sig.ReturnType = ret
		sig.Span.End = ret.Span.End
	}

	return sig, nil
}

// parseBlockItems parses the contents of an already-opened `{` up to and
// including the matching `}` (§4.4.9). It returns the items and the end
// offset of the closing brace.
func (p *Parser) parseBlockItems() ([]BlockItem, int, error) {
	var items []BlockItem
	for {
		if err := p.skipItemSeparators(); err != nil {
			return nil, 0, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, 0, err
		}
		if tok.Value.IsSymbol(SymRBrace) {
			break
		}
		if tok.Value.Kind == TokenEndOfInput {
			return nil, 0, newParseError(ErrUnexpectedEndOfInput, "expected '}' to close a block", "", tok.Span.Start)
		}

		itemStart := tok.Span.Start
		stmt, err := p.tryParseStatement()
		if err != nil {
			return nil, 0, err
		}
		if stmt != nil {
			items = append(items, BlockItem{Statement: stmt, Span: Span{Start: itemStart, End: stmt.Span.End}})
			continue
		}
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, BlockItem{Expression: expr, Span: Span{Start: itemStart, End: expr.Span.End}})
	}

	close, err := p.next()
	if err != nil {
		return nil, 0, err
	}
	return items, close.Span.End, nil
}

func (p *Parser) parseModuleStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwMod); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.Value.IsSymbol(SymLBrace) {
		// External module: terminated by ';', line break, or EOF, none of
		// which are consumed here — the enclosing loop handles them.
		return &Statement{Kind: StmtModule, Name: name.Value, Span: Span{End: name.Span.End}}, nil
	}

	if err := p.advance(); err != nil {
		return nil, err
	}
	content, err := p.ParseModule(true)
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtModule, Name: name.Value, HasBody: true, ModuleBody: content}, nil
}

func (p *Parser) parseStructStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwStruct); err != nil {
		return nil, err
	}
	tps, err := p.parseOptionalTypeParameters()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	stmt := &Statement{Kind: StmtStruct, Name: name.Value, TypeParameters: tps}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.Value.IsSymbol(SymLParen) {
		stmt.Span.End = name.Span.End
		return stmt, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymRParen) {
			break
		}

		field := StructField{}
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		if t.Value.IsKeyword(KwPub) {
			field.Public = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		t, err = p.peek()
		if err != nil {
			return nil, err
		}
		if t.Value.IsKeyword(KwMut) {
			field.Mutable = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		fname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		field.Name = fname.Value
		field.Span.Start = fname.Span.Start
		if _, err := p.expectSymbol(SymColon, ErrExpectedType); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		field.Type = ty
		field.Span.End = ty.Span.End
		stmt.StructFields = append(stmt.StructFields, field)

		tok, _, err = p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymComma) {
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			trailing, _, err := p.peekNonLB()
			if err != nil {
				return nil, err
			}
			if trailing.Value.IsSymbol(SymRParen) {
				p.warnings.Add(WarnUnnecessaryComma, tok.Span)
			}
			continue
		}
		break
	}

	close, err := p.expectSymbolSkippingLB(SymRParen, ErrExpectedClosingParen)
	if err != nil {
		return nil, err
	}
	stmt.Span.End = close.Span.End
	return stmt, nil
}

func (p *Parser) parseEnumStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwEnum); err != nil {
		return nil, err
	}
	tps, err := p.parseOptionalTypeParameters()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(SymLBrace, ErrExpectedClosingBrace); err != nil {
		return nil, err
	}

	stmt := &Statement{Kind: StmtEnum, Name: name.Value, TypeParameters: tps}
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymRBrace) {
			break
		}
		vname, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		variant := EnumVariant{Name: vname.Value, Span: vname.Span}

		tok, err = p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymEquals) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			value, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			variant.Discriminant = value
			variant.HasDiscrimant = true
			variant.Span.End = value.Span.End
		}
		stmt.Variants = append(stmt.Variants, variant)

		tok, _, err = p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymComma) {
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			trailing, _, err := p.peekNonLB()
			if err != nil {
				return nil, err
			}
			if trailing.Value.IsSymbol(SymRBrace) {
				p.warnings.Add(WarnUnnecessaryComma, tok.Span)
			}
			continue
		}
		if tok.Value.Kind == TokenLineBreak {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	close, err := p.expectSymbolSkippingLB(SymRBrace, ErrExpectedClosingBrace)
	if err != nil {
		return nil, err
	}
	stmt.Span.End = close.Span.End
	return stmt, nil
}

func (p *Parser) parseTypeAliasStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwType); err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	tps, err := p.parseOptionalTypeParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(SymEquals, ErrExpectedType); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtTypeAlias, Name: name.Value, TypeParameters: tps, AliasedType: ty, Span: Span{End: ty.Span.End}}, nil
}

func (p *Parser) parseLetStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwLet); err != nil {
		return nil, err
	}
	stmt := &Statement{Kind: StmtLet}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsKeyword(KwMut) {
		stmt.LetMutable = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	stmt.Name = name.Value
	end := name.Span.End

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsSymbol(SymColon) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		stmt.LetType = ty
		end = ty.Span.End
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsSymbol(SymEquals) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		stmt.LetValue = value
		end = value.Span.End
	}

	stmt.Span.End = end
	return stmt, nil
}

func (p *Parser) parseUseStatement() (*Statement, error) {
	if _, err := p.expectKeyword(KwUse); err != nil {
		return nil, err
	}
	tree, err := p.parseUseTree()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtUse, Use: tree, Span: tree.Span}, nil
}

// parseUseTree implements §4.4.3: an identifier followed by an optional
// `.` child of shape All, Multiple, or Single.
func (p *Parser) parseUseTree() (*UseTree, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	tree := &UseTree{Name: name.Value, Span: name.Span}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !tok.Value.IsSymbol(SymDot) {
		return tree, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.Value.IsSymbol(SymStar):
		if err := p.advance(); err != nil {
			return nil, err
		}
		tree.HasChild = true
		tree.ChildKind = UseAll
		tree.Span.End = tok.Span.End

	case tok.Value.IsSymbol(SymLParen):
		if err := p.advance(); err != nil {
			return nil, err
		}
		for {
			inner, _, err := p.peekNonLB()
			if err != nil {
				return nil, err
			}
			if inner.Value.IsSymbol(SymRParen) {
				break
			}
			child, err := p.parseUseTree()
			if err != nil {
				return nil, err
			}
			tree.Multiple = append(tree.Multiple, *child)

			sep, _, err := p.peekNonLB()
			if err != nil {
				return nil, err
			}
			if sep.Value.IsSymbol(SymComma) {
				if err := p.consumeNonLB(); err != nil {
					return nil, err
				}
				trailing, _, err := p.peekNonLB()
				if err != nil {
					return nil, err
				}
				if trailing.Value.IsSymbol(SymRParen) {
					p.warnings.Add(WarnUnnecessaryComma, sep.Span)
				}
				continue
			}
			if sep.Value.Kind == TokenLineBreak {
				if err := p.advance(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		close, err := p.expectSymbolSkippingLB(SymRParen, ErrExpectedClosingParen)
		if err != nil {
			return nil, err
		}
		tree.HasChild = true
		tree.ChildKind = UseMultiple
		tree.Span.End = close.Span.End

	default:
		child, err := p.parseUseTree()
		if err != nil {
			return nil, err
		}
		tree.HasChild = true
		tree.ChildKind = UseSingle
		tree.Single = child
		tree.Span.End = child.Span.End
	}

	return tree, nil
}
