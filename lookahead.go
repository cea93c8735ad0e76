package kestrel

// tokenSource is anything that can produce one Spanned[Token] at a time and
// fail doing it. *Lexer satisfies this.
type tokenSource interface {
	Next() (Spanned[Token], error)
}

// lookahead wraps a tokenSource in a FIFO queue so the parser can peek
// arbitrarily far ahead without consuming (§4.3). Every method that needs a
// token beyond what's buffered pulls from the source exactly once per slot,
// so peek_n(i) is idempotent: repeated calls with the same i, with no
// intervening advance, return the same token (testable property 6).
type lookahead struct {
	source tokenSource
	queue  []Spanned[Token]
}

func newLookahead(source tokenSource) *lookahead {
	return &lookahead{source: source}
}

// fill pulls from the source until the queue holds at least n+1 tokens.
func (lb *lookahead) fill(n int) error {
	for len(lb.queue) <= n {
		tok, err := lb.source.Next()
		if err != nil {
			return err
		}
		lb.queue = append(lb.queue, tok)
		if tok.Value.Kind == TokenEndOfInput {
			// Once EndOfInput is queued, every further peek index just
			// keeps seeing it; there is nothing left to pull.
			for len(lb.queue) <= n {
				lb.queue = append(lb.queue, tok)
			}
			break
		}
	}
	return nil
}

// peek returns the next token without consuming it.
func (lb *lookahead) peek() (Spanned[Token], error) {
	return lb.peekN(0)
}

// peekN returns the n-th token (0-indexed) without consuming anything.
func (lb *lookahead) peekN(n int) (Spanned[Token], error) {
	if err := lb.fill(n); err != nil {
		return Spanned[Token]{}, err
	}
	return lb.queue[n], nil
}

// peekNonLB is like peekN but skips over LineBreak tokens while counting,
// and reports whether any were skipped.
func (lb *lookahead) peekNonLB(n int) (Spanned[Token], bool, error) {
	skipped := false
	seen := 0
	for i := 0; ; i++ {
		tok, err := lb.peekN(i)
		if err != nil {
			return Spanned[Token]{}, false, err
		}
		if tok.Value.Kind == TokenLineBreak {
			skipped = true
			continue
		}
		if seen == n {
			return tok, skipped, nil
		}
		seen++
	}
}

// advance pops the front token, pulling from the source first if the queue
// is empty.
func (lb *lookahead) advance() error {
	_, err := lb.next()
	return err
}

// next pops and returns the front token.
func (lb *lookahead) next() (Spanned[Token], error) {
	if err := lb.fill(0); err != nil {
		return Spanned[Token]{}, err
	}
	tok := lb.queue[0]
	lb.queue = lb.queue[1:]
	return tok, nil
}

// skipLB advances past a single LineBreak at the front of the queue. It
// reports true (without advancing) at EndOfInput, since a missing trailing
// linebreak there is never an error.
func (lb *lookahead) skipLB() (bool, error) {
	tok, err := lb.peek()
	if err != nil {
		return false, err
	}
	if tok.Value.Kind == TokenEndOfInput {
		return true, nil
	}
	if tok.Value.Kind == TokenLineBreak {
		if err := lb.advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
