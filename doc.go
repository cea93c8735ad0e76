// Package kestrel is the front end of a compiler for an expression-oriented,
// brace-delimited source language with embedded JSX-like markup literals,
// type parameters, module hierarchies and `use` imports.
//
// The package turns a raw byte buffer into a fully parsed module (an AST)
// plus a list of non-fatal warnings, or a precisely located *Error. It
// covers exactly two stages: lexing (Lexer) and parsing (Parser). Name
// resolution, type checking, bytecode emission and file discovery are left
// to other packages.
//
// A minimal example:
//
//	src := []byte(`
//	    pub fn greet(name: str) -> str {
//	        name
//	    }
//	`)
//	mod, warnings, err := kestrel.ParseSource(src, nil)
//	if err != nil {
//	    var kerr *kestrel.Error
//	    if errors.As(err, &kerr) {
//	        line, col := kestrel.LineColumn(src, kerr.Offset)
//	        fmt.Printf("%d:%d: %s\n", line, col, kerr.Message)
//	    }
//	    return
//	}
//	for _, w := range warnings {
//	    fmt.Println(w)
//	}
package kestrel
