package kestrel

import (
	"github.com/juju/loggo"
)

// logger is the package-level logger. The core stays silent by default;
// Pipeline is the only thing that ever writes to it.
var logger = loggo.GetLogger("kestrel")

// SetLogLevel configures the root kestrel logger, letting a caller (such as
// cmd/kestrelfront) turn on Debug/Trace output without threading a logger
// through every call.
func SetLogLevel(level loggo.Level) {
	logger.SetLogLevel(level)
}

// Pipeline wires a Cursor, Lexer, Lookahead Buffer and Parser together and
// narrates each stage boundary to loggo at Debug/Trace level (§5
// "Scheduling model": Parser → LookaheadBuffer → Lexer → Cursor). Unlike
// ParseSource, it reports token and warning counts as it goes, which is
// useful for a CLI but not something the hot-path core should pay for by
// default.
type Pipeline struct {
	config *Config
}

// NewPipeline builds a Pipeline. A nil config falls back to DefaultConfig.
func NewPipeline(config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pipeline{config: config}
}

// Run parses src, logging stage boundaries as it goes, and returns the same
// result ParseSource would.
func (pl *Pipeline) Run(src []byte) (*ModuleContent, []WarningSpan, error) {
	logger.Debugf("pipeline starting, %d bytes of source", len(src))

	lexer := NewLexer(src, pl.config)
	countingLexer := &countingTokenSource{inner: lexer}
	lb := newLookahead(countingLexer)
	parser := NewParser(lb, src)

	content, err := parser.ParseModule(false)
	if err != nil {
		logger.Debugf("pipeline failed after %d tokens: %v", countingLexer.count, err)
		return nil, parser.warnings.All(), err
	}

	warnings := parser.warnings.All()
	logger.Debugf("pipeline finished: %d tokens, %d top-level items, %d warnings",
		countingLexer.count, len(content.Items), len(warnings))
	for _, w := range warnings {
		logger.Tracef("warning %s at [%d,%d)", w.Kind, w.Span.Start, w.Span.End)
	}

	return content, warnings, nil
}

// countingTokenSource wraps a tokenSource to count tokens pulled through
// it, purely for the pipeline's own Debugf summary.
type countingTokenSource struct {
	inner tokenSource
	count int
}

func (c *countingTokenSource) Next() (Spanned[Token], error) {
	tok, err := c.inner.Next()
	if err == nil {
		c.count++
		logger.Tracef("token %s at [%d,%d)", tok.Value, tok.Span.Start, tok.Span.End)
	}
	return tok, err
}
