package kestrel

// ParseSource is the public entry point (§6.1): it wires a Cursor, Lexer,
// Lookahead Buffer and Parser together over src and returns the parsed
// module content together with every warning collected along the way. A
// nil config falls back to DefaultConfig.
func ParseSource(src []byte, config *Config) (*ModuleContent, []WarningSpan, error) {
	lexer := NewLexer(src, config)
	lb := newLookahead(lexer)
	parser := NewParser(lb, src)

	content, err := parser.ParseModule(false)
	if err != nil {
		return nil, parser.warnings.All(), err
	}
	return content, parser.warnings.All(), nil
}
