package kestrel

// parseMarkupExpression implements §4.4.7: a MarkupStartTag begins a
// markup expression. Attributes are read until MarkupClose
// (self-closing) or MarkupStartTagEnd followed by children and a matching
// MarkupEndTag. Start and end tag names must match.
func (p *Parser) parseMarkupExpression() (*Expression, error) {
	startTag, err := p.next()
	if err != nil {
		return nil, err
	}
	tagName := startTag.Value.Text

	var attributes []MarkupAttribute
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Value.Kind != TokenMarkupKey {
			break
		}
		if _, err := p.next(); err != nil {
			return nil, err
		}
		keyName := tok.Value.Text

		valueTok, err := p.peek()
		if err != nil {
			return nil, err
		}
		var value *Expression
		switch {
		case valueTok.Value.Kind == TokenString:
			if _, err := p.next(); err != nil {
				return nil, err
			}
			str, err := valueTok.Value.String.Process()
			if err != nil {
				return nil, err
			}
			value = p.allocExpr(Expression{Kind: ExprString, String: str, Span: valueTok.Span})
		case valueTok.Value.IsSymbol(SymLBrace):
			if _, err := p.next(); err != nil {
				return nil, err
			}
			value, err = p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol(SymRBrace, ErrExpectedClosingBrace); err != nil {
				return nil, err
			}
		default:
			return nil, newParseError(ErrExpectedExpressionStart, "expected a string literal or '{' after a markup attribute", "", valueTok.Span.Start)
		}

		attributes = append(attributes, MarkupAttribute{Name: keyName, Value: value, Span: Span{Start: tok.Span.Start, End: value.Span.End}})
	}

	closeTok, err := p.next()
	if err != nil {
		return nil, err
	}

	var children []MarkupChild
	end := closeTok.Span.End
	if closeTok.Value.Kind == TokenMarkupStartTagEnd {
		children, end, err = p.parseMarkupChildren(tagName, startTag.Span.Start)
		if err != nil {
			return nil, err
		}
	} else if closeTok.Value.Kind != TokenMarkupClose {
		return nil, newParseError(ErrExpectedExpressionContinuation, "expected a markup attribute, '/>' or '>'", "", closeTok.Span.Start)
	}

	element := &MarkupElement{
		TagName:    tagName,
		Attributes: attributes,
		Children:   children,
		Span:       Span{Start: startTag.Span.Start, End: end},
	}

	return p.allocExpr(Expression{Kind: ExprMarkup, Markup: element, Span: element.Span}), nil
}

// parseMarkupChildren parses the body of an open markup element up to and
// including its matching end tag, verifying the tag names match.
func (p *Parser) parseMarkupChildren(tagName string, startOffset int) ([]MarkupChild, int, error) {
	var children []MarkupChild
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, 0, err
		}
		switch tok.Value.Kind {
		case TokenMarkupText:
			if _, err := p.next(); err != nil {
				return nil, 0, err
			}
			children = append(children, MarkupChild{Text: tok.Value.Text, Span: tok.Span})

		case TokenMarkupStartTag:
			nested, err := p.parseMarkupExpression()
			if err != nil {
				return nil, 0, err
			}
			children = append(children, MarkupChild{Element: nested.Markup, Span: nested.Span})

		case TokenSymbol:
			if !tok.Value.IsSymbol(SymLBrace) {
				return nil, 0, newParseError(ErrExpectedExpressionContinuation, "expected markup text, a nested element, an insert or an end tag", "", tok.Span.Start)
			}
			if _, err := p.next(); err != nil {
				return nil, 0, err
			}
			insert, err := p.parseExpression(0)
			if err != nil {
				return nil, 0, err
			}
			if _, err := p.expectSymbol(SymRBrace, ErrExpectedClosingBrace); err != nil {
				return nil, 0, err
			}
			children = append(children, MarkupChild{Insert: insert, Span: insert.Span})

		case TokenMarkupEndTag:
			if tok.Value.Text != tagName {
				return nil, 0, newParseError(ErrMarkupTagNameMismatch, "markup end tag name does not match its start tag", "", tok.Span.Start)
			}
			if _, err := p.next(); err != nil {
				return nil, 0, err
			}
			return children, tok.Span.End, nil

		default:
			return nil, 0, newParseError(ErrExpectedExpressionContinuation, "expected markup content or an end tag", "", tok.Span.Start)
		}
	}
}
