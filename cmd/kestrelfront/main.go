// Command kestrelfront drives the kestrel lexer and parser over a source
// file and reports what they found. It never evaluates anything: there is
// no interpreter here, only the front end (lexing, parsing, warnings).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/chzyer/readline"
	"github.com/juju/loggo"

	kestrel "github.com/kestrel-lang/kestrel"
)

type CLI struct {
	Config  string `help:"Path to a YAML config file (hex/octal literals, unicode escapes)." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging of pipeline stage boundaries."`
	Trace   bool   `help:"Enable trace logging (token-by-token)."`

	Summary  SummaryCmd  `cmd:"" help:"Parse a file and print a summary of its top-level items."`
	Tokens   TokensCmd   `cmd:"" help:"Print (or interactively explore) the token stream."`
	Warnings WarningsCmd `cmd:"" help:"Parse a file and print every recorded warning."`
}

type SummaryCmd struct {
	File string `arg:"" help:"Source file to parse." type:"existingfile"`
}

type TokensCmd struct {
	File string `arg:"" optional:"" help:"Source file to tokenize. Omit to start an interactive prompt."`
}

type WarningsCmd struct {
	File string `arg:"" help:"Source file to parse." type:"existingfile"`
}

func loadConfig(path string) (*kestrel.Config, error) {
	if path == "" {
		return kestrel.DefaultConfig(), nil
	}
	return kestrel.LoadConfig(path)
}

func (c *SummaryCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	pipeline := kestrel.NewPipeline(cfg)
	content, warnings, err := pipeline.Run(src)
	if err != nil {
		return err
	}

	printModuleSummary(os.Stdout, content, "")
	fmt.Printf("%d warning(s)\n", len(warnings))
	return nil
}

func printModuleSummary(w *os.File, content *kestrel.ModuleContent, indent string) {
	for _, item := range content.Items {
		stmt := item.Statement
		visibility := ""
		if item.Public {
			visibility = "pub "
		}
		switch stmt.Kind {
		case kestrel.StmtFunction:
			fmt.Fprintf(w, "%s%sfn %s\n", indent, visibility, stmt.Name)
		case kestrel.StmtModule:
			fmt.Fprintf(w, "%s%smod %s\n", indent, visibility, stmt.Name)
			if stmt.HasBody && stmt.ModuleBody != nil {
				printModuleSummary(w, stmt.ModuleBody, indent+"  ")
			}
		case kestrel.StmtStruct:
			fmt.Fprintf(w, "%s%sstruct %s (%d field(s))\n", indent, visibility, stmt.Name, len(stmt.StructFields))
		case kestrel.StmtEnum:
			fmt.Fprintf(w, "%s%senum %s (%d variant(s))\n", indent, visibility, stmt.Name, len(stmt.Variants))
		case kestrel.StmtTypeAlias:
			fmt.Fprintf(w, "%s%stype %s\n", indent, visibility, stmt.Name)
		case kestrel.StmtLet:
			fmt.Fprintf(w, "%s%slet\n", indent, visibility)
		case kestrel.StmtUse, kestrel.StmtRootUse:
			fmt.Fprintf(w, "%s%suse\n", indent, visibility)
		}
	}
}

func (c *WarningsCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	pipeline := kestrel.NewPipeline(cfg)
	_, warnings, err := pipeline.Run(src)
	if err != nil {
		return err
	}

	if len(warnings) == 0 {
		fmt.Println("no warnings")
		return nil
	}
	for _, w := range warnings {
		fmt.Printf("[%d,%d) %s\n", w.Span.Start, w.Span.End, w.Kind)
	}
	return nil
}

func (c *TokensCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}

	if c.File != "" {
		src, err := os.ReadFile(c.File)
		if err != nil {
			return err
		}
		return printTokens(os.Stdout, src, cfg)
	}

	return runTokenREPL(cfg)
}

// printTokens runs the lexer alone (no parser) over src and prints every
// token it produces, stopping at the first lexing error if any.
func printTokens(w *os.File, src []byte, cfg *kestrel.Config) error {
	lexer := kestrel.NewLexer(src, cfg)
	for {
		tok, err := lexer.Next()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "[%d,%d) %s\n", tok.Span.Start, tok.Span.End, tok.Value)
		if tok.Value.Kind == kestrel.TokenEndOfInput {
			return nil
		}
	}
}

// runTokenREPL is a REPL-shaped smoke test for the lexer: it reads one
// line at a time and prints its token stream, without parsing it. It never
// evaluates anything, matching the front end's scope.
func runTokenREPL(cfg *kestrel.Config) error {
	rl, err := readline.New("kestrel> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("kestrel token REPL. Type an expression or statement; '.exit' or Ctrl-D to quit.")
	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Println()
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}
		rl.SaveHistory(line)

		if err := printTokens(os.Stdout, []byte(line), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("kestrelfront"),
		kong.Description("Lex and parse kestrel source, reporting tokens, structure and warnings."),
		kong.UsageOnError(),
	)

	switch {
	case cli.Trace:
		kestrel.SetLogLevel(loggo.TRACE)
	case cli.Verbose:
		kestrel.SetLogLevel(loggo.DEBUG)
	}

	err := ctx.Run(cli)
	ctx.FatalIfErrorf(err)
}
