package kestrel

import "fmt"

// bindingPower gives the (left, right) binding power of an infix/postfix
// operator per the table in §4.4.5. The second return value reports
// whether sym is a binary/postfix operator at all.
func bindingPower(sym SymbolKind) (left, right int, ok bool) {
	switch sym {
	case SymPipePipe:
		return 4, 5, true
	case SymAmpAmp:
		return 6, 7, true
	case SymPipe:
		return 8, 9, true
	case SymAmp:
		return 10, 11, true
	case SymCaret:
		return 12, 13, true
	case SymEqualsEquals, SymBangEquals, SymLess, SymLessEquals, SymGreater, SymGreaterEquals:
		return 14, 15, true
	case SymLessLess, SymGreaterGreater:
		return 18, 19, true
	case SymPlus, SymMinus:
		return 20, 21, true
	case SymStar, SymSlash, SymPercent:
		return 22, 23, true
	case SymStarStar:
		// Right-associative: right binding power is lower than left so a
		// further ** at the same level recurses instead of stopping.
		return 25, 24, true
	default:
		return 0, 0, false
	}
}

// compoundAssignOperator maps a compound-assignment symbol to the
// underlying binary operator carried in Expression.Operator, and reports
// whether sym is a compound-assignment symbol at all.
func compoundAssignOperator(sym SymbolKind) (SymbolKind, bool) {
	switch sym {
	case SymPlusEquals:
		return SymPlus, true
	case SymMinusEquals:
		return SymMinus, true
	case SymStarEquals:
		return SymStar, true
	case SymSlashEquals:
		return SymSlash, true
	case SymPercentEquals:
		return SymPercent, true
	case SymStarStarEquals:
		return SymStarStar, true
	case SymPipeEquals:
		return SymPipe, true
	case SymAmpEquals:
		return SymAmp, true
	case SymCaretEquals:
		return SymCaret, true
	case SymPipePipeEquals:
		return SymPipePipe, true
	case SymAmpAmpEquals:
		return SymAmpAmp, true
	case SymLessLessEquals:
		return SymLessLess, true
	case SymGreaterGreaterEquals:
		return SymGreaterGreater, true
	default:
		return 0, false
	}
}

// parseExpression is the Pratt/precedence-climbing entry point (§4.4.5):
// parse a primary term, then repeatedly fold in infix/postfix operators
// whose left binding power is at least minBP.
func (p *Parser) parseExpression(minBP int) (*Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		tok, skippedLB, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		_ = skippedLB

		if tok.Value.IsSymbol(SymLParen) {
			left, err = p.parseCall(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		if tok.Value.IsSymbol(SymDot) || tok.Value.IsSymbol(SymQuestionDot) {
			optional := tok.Value.IsSymbol(SymQuestionDot)
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			prop, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			kind := ExprAccess
			if optional {
				kind = ExprOptionalAccess
			}
			left = p.allocExpr(Expression{
				Kind:           kind,
				AccessTarget:   left,
				AccessProperty: prop.Value,
				Span:           Span{Start: left.Span.Start, End: prop.Span.End},
			})
			continue
		}

		if tok.Value.Kind != TokenSymbol {
			break
		}

		if tok.Value.IsSymbol(SymEquals) {
			if 1 < minBP {
				break
			}
			if !isAssignmentTarget(left) {
				return nil, newParseError(ErrInvalidAssignmentTarget, "left-hand side of '=' is not an assignment target", "", left.Span.Start)
			}
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			value, err := p.parseExpression(1)
			if err != nil {
				return nil, err
			}
			left = p.allocExpr(Expression{
				Kind:   ExprAssignment,
				Target: left,
				Value:  value,
				Span:   Span{Start: left.Span.Start, End: value.Span.End},
			})
			continue
		}

		if op, isCompound := compoundAssignOperator(tok.Value.Symbol); isCompound {
			if 1 < minBP {
				break
			}
			if !isAssignmentTarget(left) {
				return nil, newParseError(ErrInvalidAssignmentTarget, "left-hand side of a compound assignment is not an assignment target", "", left.Span.Start)
			}
			if err := p.consumeNonLB(); err != nil {
				return nil, err
			}
			value, err := p.parseExpression(1)
			if err != nil {
				return nil, err
			}
			left = p.allocExpr(Expression{
				Kind:                ExprAssignment,
				Target:              left,
				Value:               value,
				Operator:            op,
				HasCompoundOperator: true,
				Span:                Span{Start: left.Span.Start, End: value.Span.End},
			})
			continue
		}

		lbp, rbp, isOperator := bindingPower(tok.Value.Symbol)
		if !isOperator || lbp < minBP {
			break
		}
		if err := p.consumeNonLB(); err != nil {
			return nil, err
		}
		right, err := p.parseExpression(rbp)
		if err != nil {
			return nil, err
		}
		left = p.allocExpr(Expression{
			Kind:     ExprBinary,
			Operator: tok.Value.Symbol,
			Left:     left,
			Right:    right,
			Span:     Span{Start: left.Span.Start, End: right.Span.End},
		})
	}

	return left, nil
}

// isAssignmentTarget restricts assignment targets to {identifier, field
// access} (§4.4.5).
func isAssignmentTarget(expr *Expression) bool {
	return expr.Kind == ExprIdentifier || expr.Kind == ExprAccess
}

// parsePrimary parses the first term of an expression (§4.4.5).
func (p *Parser) parsePrimary() (*Expression, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Value.Kind {
	case TokenNumber:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprNumber, Number: tok.Value.Number, Span: tok.Span}), nil

	case TokenString:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		value, err := tok.Value.String.Process()
		if err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprString, String: value, Span: tok.Span}), nil

	case TokenIdentifier:
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprIdentifier, Identifier: tok.Value.Text, Span: tok.Span}), nil

	case TokenMarkupStartTag:
		return p.parseMarkupExpression()
	}

	switch {
	case tok.Value.IsKeyword(KwTrue):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprTrue, Span: tok.Span}), nil
	case tok.Value.IsKeyword(KwFalse):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprFalse, Span: tok.Span}), nil
	case tok.Value.IsKeyword(KwThis):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprThis, Span: tok.Span}), nil
	case tok.Value.IsKeyword(KwReturn):
		return p.parseReturnExpression()
	case tok.Value.IsKeyword(KwBreak):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprBreak, Span: tok.Span}), nil
	case tok.Value.IsKeyword(KwContinue):
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprContinue, Span: tok.Span}), nil
	case tok.Value.IsKeyword(KwIf):
		return p.parseIfExpression()
	case tok.Value.IsKeyword(KwWhile):
		return p.parseWhileExpression()
	case tok.Value.IsKeyword(KwFor):
		return p.parseForExpression()
	case tok.Value.IsKeyword(KwFn):
		return p.parseFunctionLiteral()
	case tok.Value.IsSymbol(SymBang):
		return p.parseNotExpression()
	case tok.Value.IsSymbol(SymLParen):
		return p.parseInstanceExpression()
	case tok.Value.IsSymbol(SymLBracket):
		return p.parseArrayExpression()
	case tok.Value.IsSymbol(SymLBrace):
		return p.parseBlockExpression()
	}

	return nil, newParseError(ErrExpectedExpressionStart, fmt.Sprintf("expected an expression, found %s", tok.Value), "", tok.Span.Start)
}

func (p *Parser) parseNotExpression() (*Expression, error) {
	bang, err := p.next()
	if err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(24)
	if err != nil {
		return nil, err
	}
	return p.allocExpr(Expression{Kind: ExprNot, Right: operand, Span: Span{Start: bang.Span.Start, End: operand.Span.End}}), nil
}

func (p *Parser) parseReturnExpression() (*Expression, error) {
	kw, err := p.next()
	if err != nil {
		return nil, err
	}
	end := kw.Span.End

	var value *Expression
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if canStartExpression(tok.Value) {
		value, err = p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		end = value.Span.End
	}
	return p.allocExpr(Expression{Kind: ExprReturn, Right: value, Span: Span{Start: kw.Span.Start, End: end}}), nil
}

// canStartExpression reports whether tok can begin a primary expression,
// used to decide whether a bare `return` has a trailing value.
func canStartExpression(tok Token) bool {
	switch tok.Kind {
	case TokenNumber, TokenString, TokenIdentifier, TokenMarkupStartTag:
		return true
	case TokenLineBreak, TokenEndOfInput:
		return false
	}
	if tok.Kind != TokenSymbol && tok.Kind != TokenKeyword {
		return false
	}
	if tok.Kind == TokenSymbol {
		switch tok.Symbol {
		case SymBang, SymLParen, SymLBracket, SymLBrace:
			return true
		}
		return false
	}
	switch tok.Keyword {
	case KwTrue, KwFalse, KwThis, KwReturn, KwBreak, KwContinue, KwIf, KwWhile, KwFor, KwFn:
		return true
	}
	return false
}

func (p *Parser) parseIfExpression() (*Expression, error) {
	base, err := p.parseIfClause()
	if err != nil {
		return nil, err
	}
	expr := &Expression{Kind: ExprIf, Condition: base.Condition, Then: base.Body, Span: base.Span}

	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !tok.Value.IsKeyword(KwElse) {
			break
		}
		nextTok, err := p.peekN(1)
		if err != nil {
			return nil, err
		}
		if nextTok.Value.IsKeyword(KwIf) {
			if err := p.advance(); err != nil { // else
				return nil, err
			}
			clause, err := p.parseIfClause()
			if err != nil {
				return nil, err
			}
			expr.ElseIfs = append(expr.ElseIfs, clause)
			expr.Span.End = clause.Span.End
			continue
		}
		if nextTok.Value.IsSymbol(SymLBrace) {
			if err := p.advance(); err != nil { // else
				return nil, err
			}
			if _, err := p.next(); err != nil { // '{'
				return nil, err
			}
			body, end, err := p.parseBlockItems()
			if err != nil {
				return nil, err
			}
			expr.Else = body
			expr.HasElse = true
			expr.Span.End = end
			break
		}
		return nil, newParseError(ErrElseChainMissingIfOrBrace, "expected 'if' or '{' after 'else'", "", nextTok.Span.Start)
	}

	return p.allocExpr(*expr), nil
}

func (p *Parser) parseIfClause() (IfClause, error) {
	kw, err := p.expectKeyword(KwIf)
	if err != nil {
		return IfClause{}, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return IfClause{}, err
	}
	if _, err := p.expectSymbol(SymLBrace, ErrExpectedClosingBrace); err != nil {
		return IfClause{}, err
	}
	body, end, err := p.parseBlockItems()
	if err != nil {
		return IfClause{}, err
	}
	return IfClause{Condition: cond, Body: body, Span: Span{Start: kw.Span.Start, End: end}}, nil
}

func (p *Parser) parseWhileExpression() (*Expression, error) {
	kw, err := p.expectKeyword(KwWhile)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(SymLBrace, ErrExpectedClosingBrace); err != nil {
		return nil, err
	}
	body, end, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	return p.allocExpr(Expression{Kind: ExprWhile, Condition: cond, Then: body, Span: Span{Start: kw.Span.Start, End: end}}), nil
}

// parseForExpression parses `for [mut] name in iterable { body }`. The
// body field has no counterpart in the reference grammar's `for` variant;
// it is modeled here on `while`'s, since a for-loop that can't run
// statements in its body would be useless as a control-flow expression.
func (p *Parser) parseForExpression() (*Expression, error) {
	kw, err := p.expectKeyword(KwFor)
	if err != nil {
		return nil, err
	}

	mutable := false
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsKeyword(KwMut) {
		mutable = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(KwIn); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(SymLBrace, ErrExpectedClosingBrace); err != nil {
		return nil, err
	}
	body, end, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}

	return p.allocExpr(Expression{
		Kind:        ExprFor,
		ForMutable:  mutable,
		ForVariable: name.Value,
		ForIterable: iter,
		ForBody:     body,
		Span:        Span{Start: kw.Span.Start, End: end},
	}), nil
}

func (p *Parser) parseBlockExpression() (*Expression, error) {
	open, err := p.next() // '{'
	if err != nil {
		return nil, err
	}
	items, end, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	return p.allocExpr(Expression{Kind: ExprBlock, Block: items, Span: Span{Start: open.Span.Start, End: end}}), nil
}

func (p *Parser) parseArrayExpression() (*Expression, error) {
	open, err := p.next() // '['
	if err != nil {
		return nil, err
	}
	var elements []*Expression
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymRBracket) {
			break
		}
		elem, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)

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
			if trailing.Value.IsSymbol(SymRBracket) {
				p.warnings.Add(WarnUnnecessaryComma, tok.Span)
			}
			continue
		}
		break
	}
	close, err := p.expectSymbolSkippingLB(SymRBracket, ErrExpectedClosingBracket)
	if err != nil {
		return nil, err
	}
	return p.allocExpr(Expression{Kind: ExprArray, Elements: elements, Span: Span{Start: open.Span.Start, End: close.Span.End}}), nil
}

// parseInstanceExpression parses a parenthesized struct/record instance
// literal `( [mut] name [: type] = value, … )`.
func (p *Parser) parseInstanceExpression() (*Expression, error) {
	open, err := p.next() // '('
	if err != nil {
		return nil, err
	}
	var fields []InstanceFieldInit
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymRParen) {
			break
		}

		field := InstanceFieldInit{}
		t, err := p.peek()
		if err != nil {
			return nil, err
		}
		start := t.Span.Start
		if t.Value.IsKeyword(KwMut) {
			field.Mutable = true
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		field.Name = name.Value

		t, err = p.peek()
		if err != nil {
			return nil, err
		}
		if t.Value.IsSymbol(SymColon) {
			saveIdx := t
			_ = saveIdx
			if err := p.advance(); err != nil {
				return nil, err
			}
			// After ':' a type is required and must be followed by '=';
			// there is no `name: value` form (a value-only field is
			// written `name = value`).
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			eq, err := p.peek()
			if err != nil {
				return nil, err
			}
			if eq.Value.IsSymbol(SymEquals) {
				field.Type = ty
				if err := p.advance(); err != nil {
					return nil, err
				}
			} else {
				return nil, newParseError(ErrExpectedType, "expected '=' after a typed instance field", "", eq.Span.Start)
			}
		} else if t.Value.IsSymbol(SymEquals) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else {
			return nil, newParseError(ErrExpectedExpressionContinuation, "expected ':' or '=' in an instance field", "", t.Span.Start)
		}

		value, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		field.Value = value
		field.Span = Span{Start: start, End: value.Span.End}
		fields = append(fields, field)

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
	return p.allocExpr(Expression{Kind: ExprInstance, Fields: fields, Span: Span{Start: open.Span.Start, End: close.Span.End}}), nil
}

func (p *Parser) parseFunctionLiteral() (*Expression, error) {
	kw, err := p.expectKeyword(KwFn)
	if err != nil {
		return nil, err
	}
	sig, err := p.parseFunctionSignature()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectSymbol(SymLBrace, ErrExpectedClosingBrace); err != nil {
		return nil, err
	}
	body, end, err := p.parseBlockItems()
	if err != nil {
		return nil, err
	}
	bodyExpr := p.allocExpr(Expression{Kind: ExprBlock, Block: body, Span: Span{Start: sig.Span.End, End: end}})
	return p.allocExpr(Expression{Kind: ExprFunction, Signature: sig, FunctionBody: bodyExpr, Span: Span{Start: kw.Span.Start, End: end}}), nil
}

// parseCall parses the argument list of a postfix `(` (§4.4.6): an
// all-named list if the first parseable content is `identifier =`,
// otherwise a positional list.
func (p *Parser) parseCall(target *Expression) (*Expression, error) {
	open, err := p.next() // '('
	if err != nil {
		return nil, err
	}

	first, skippedLB, err := p.peekNonLB()
	if err != nil {
		return nil, err
	}
	_ = skippedLB
	if first.Value.IsSymbol(SymRParen) {
		if _, err := p.next(); err != nil {
			return nil, err
		}
		return p.allocExpr(Expression{Kind: ExprCall, CallTarget: target, Span: Span{Start: target.Span.Start, End: first.Span.End}}), nil
	}

	named := false
	if first.Value.Kind == TokenIdentifier {
		second, err := p.peekN(1)
		if err == nil && second.Value.IsSymbol(SymEquals) {
			named = true
		}
	}

	args := CallArguments{}
	for {
		tok, _, err := p.peekNonLB()
		if err != nil {
			return nil, err
		}
		if tok.Value.IsSymbol(SymRParen) {
			break
		}

		if named {
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectSymbol(SymEquals, ErrExpectedExpressionContinuation); err != nil {
				return nil, err
			}
			value, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			args.Named = append(args.Named, NamedArgument{Name: name.Value, Value: value, Span: Span{Start: name.Span.Start, End: value.Span.End}})
		} else {
			value, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			args.Positional = append(args.Positional, value)
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
	_ = open
	return p.allocExpr(Expression{Kind: ExprCall, CallTarget: target, CallArguments: args, Span: Span{Start: target.Span.Start, End: close.Span.End}}), nil
}
