package kestrel

// parseType implements §4.4.8: a type is either `!` (never) or a raw type.
// Per Open Question (d), a non-first union arm is reserved syntax: seeing
// `|` after the first raw type is an error, not the start of a second arm.
func (p *Parser) parseType() (*Type, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsSymbol(SymBang) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.allocType(Type{Kind: TypeNever, Span: tok.Span}), nil
	}

	first, err := p.parseRawType()
	if err != nil {
		return nil, err
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Value.IsSymbol(SymPipe) {
		return nil, newParseError(ErrNonFirstUnionArmUnsupported, "union types with more than one arm are reserved syntax", "", tok.Span.Start)
	}

	return p.allocType(Type{Kind: TypeUnion, Members: []RawType{first}, Span: first.Span}), nil
}

// parseRawType parses either a function signature type `(params) -> ret`
// or an item reference `path<T1,…,Tn>`.
func (p *Parser) parseRawType() (RawType, error) {
	tok, err := p.peek()
	if err != nil {
		return RawType{}, err
	}
	if tok.Value.IsSymbol(SymLParen) {
		sig, err := p.parseFunctionSignature()
		if err != nil {
			return RawType{}, err
		}
		return RawType{Kind: RawTypeFunction, Signature: sig, Span: sig.Span}, nil
	}

	path, err := p.parseItemPath()
	if err != nil {
		return RawType{}, err
	}
	raw := RawType{Kind: RawTypeItem, Path: path, Span: path.Span}

	tok, err = p.peek()
	if err != nil {
		return RawType{}, err
	}
	if !tok.Value.IsSymbol(SymLess) {
		return raw, nil
	}

	if err := p.advance(); err != nil {
		return RawType{}, err
	}
	for {
		t, _, err := p.peekNonLB()
		if err != nil {
			return RawType{}, err
		}
		if t.Value.IsSymbol(SymGreater) {
			break
		}
		arg, err := p.parseType()
		if err != nil {
			return RawType{}, err
		}
		raw.TypeArgs = append(raw.TypeArgs, *arg)

		sep, _, err := p.peekNonLB()
		if err != nil {
			return RawType{}, err
		}
		if sep.Value.IsSymbol(SymComma) {
			if err := p.consumeNonLB(); err != nil {
				return RawType{}, err
			}
			trailing, _, err := p.peekNonLB()
			if err != nil {
				return RawType{}, err
			}
			if trailing.Value.IsSymbol(SymGreater) {
				p.warnings.Add(WarnUnnecessaryComma, sep.Span)
			}
			continue
		}
		break
	}
	// A nested list closed by `>>` arrives as one token: its first `>`
	// closes this list and a single `>` is left for the enclosing one.
	end, _, err := p.peekNonLB()
	if err != nil {
		return RawType{}, err
	}
	if end.Value.IsSymbol(SymGreaterGreater) {
		for p.lb.queue[0].Value.Kind == TokenLineBreak {
			p.lb.queue = p.lb.queue[1:]
		}
		p.lb.queue[0].Value.Symbol = SymGreater
		p.lb.queue[0].Span.Start++
		raw.Span.End = end.Span.Start + 1
		return raw, nil
	}
	close, err := p.expectSymbolSkippingLB(SymGreater, ErrExpectedClosingAngle)
	if err != nil {
		return RawType{}, err
	}
	raw.Span.End = close.Span.End
	return raw, nil
}
