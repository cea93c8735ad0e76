package kestrel

import "fmt"

// TokenKind identifies which variant of the token union a Token holds. See
// §3.2 of the design notes for the full tagged-union description this
// mirrors; Go represents it as one struct with a Kind discriminator plus
// kind-specific payload fields, rather than a sum type.
type TokenKind uint8

const (
	TokenChar TokenKind = iota
	TokenIdentifier
	TokenNumber
	TokenDocComment
	TokenSymbol
	TokenKeyword
	TokenString
	TokenMarkupStartTag
	TokenMarkupKey
	TokenMarkupStartTagEnd
	TokenMarkupClose
	TokenMarkupText
	TokenMarkupEndTag
	TokenLineBreak
	TokenEndOfInput
)

func (k TokenKind) String() string {
	switch k {
	case TokenChar:
		return "Char"
	case TokenIdentifier:
		return "Identifier"
	case TokenNumber:
		return "Number"
	case TokenDocComment:
		return "DocComment"
	case TokenSymbol:
		return "Symbol"
	case TokenKeyword:
		return "Keyword"
	case TokenString:
		return "String"
	case TokenMarkupStartTag:
		return "MarkupStartTag"
	case TokenMarkupKey:
		return "MarkupKey"
	case TokenMarkupStartTagEnd:
		return "MarkupStartTagEnd"
	case TokenMarkupClose:
		return "MarkupClose"
	case TokenMarkupText:
		return "MarkupText"
	case TokenMarkupEndTag:
		return "MarkupEndTag"
	case TokenLineBreak:
		return "LineBreak"
	case TokenEndOfInput:
		return "EndOfInput"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

// SymbolKind enumerates the punctuation/operator vocabulary of §4.2.3,
// produced via maximal munch.
type SymbolKind uint8

const (
	SymEquals SymbolKind = iota
	SymEqualsEquals
	SymBang
	SymBangEquals
	SymLess
	SymLessEquals
	SymLessLess
	SymLessLessEquals
	SymGreater
	SymGreaterEquals
	SymGreaterGreater
	SymGreaterGreaterEquals
	SymPlus
	SymPlusEquals
	SymMinus
	SymMinusEquals
	SymArrow // ->
	SymStar
	SymStarEquals
	SymStarStar
	SymStarStarEquals
	SymSlash
	SymSlashEquals
	SymPercent
	SymPercentEquals
	SymPipe
	SymPipeEquals
	SymPipePipe
	SymPipePipeEquals
	SymAmp
	SymAmpEquals
	SymAmpAmp
	SymAmpAmpEquals
	SymCaret
	SymCaretEquals
	SymQuestion
	SymQuestionDot
	SymDot
	SymComma
	SymSemicolon
	SymColon
	SymLParen
	SymRParen
	SymLBracket
	SymRBracket
	SymLBrace
	SymRBrace
	SymAt
)

// symbolText is the canonical spelling of every symbol, used for error
// messages and for re-deriving a symbol from its text when needed.
var symbolText = map[SymbolKind]string{
	SymEquals: "=", SymEqualsEquals: "==",
	SymBang: "!", SymBangEquals: "!=",
	SymLess: "<", SymLessEquals: "<=", SymLessLess: "<<", SymLessLessEquals: "<<=",
	SymGreater: ">", SymGreaterEquals: ">=", SymGreaterGreater: ">>", SymGreaterGreaterEquals: ">>=",
	SymPlus: "+", SymPlusEquals: "+=",
	SymMinus: "-", SymMinusEquals: "-=", SymArrow: "->",
	SymStar: "*", SymStarEquals: "*=", SymStarStar: "**", SymStarStarEquals: "**=",
	SymSlash: "/", SymSlashEquals: "/=",
	SymPercent: "%", SymPercentEquals: "%=",
	SymPipe: "|", SymPipeEquals: "|=", SymPipePipe: "||", SymPipePipeEquals: "||=",
	SymAmp: "&", SymAmpEquals: "&=", SymAmpAmp: "&&", SymAmpAmpEquals: "&&=",
	SymCaret: "^", SymCaretEquals: "^=",
	SymQuestion: "?", SymQuestionDot: "?.",
	SymDot: ".", SymComma: ",", SymSemicolon: ";", SymColon: ":",
	SymLParen: "(", SymRParen: ")", SymLBracket: "[", SymRBracket: "]",
	SymLBrace: "{", SymRBrace: "}", SymAt: "@",
}

func (s SymbolKind) String() string { return symbolText[s] }

// KeywordKind enumerates the reserved identifiers of §6.3.
type KeywordKind uint8

const (
	KwAs KeywordKind = iota
	KwBreak
	KwContinue
	KwElse
	KwEnum
	KwExtern
	KwFalse
	KwFn
	KwFor
	KwIf
	KwIn
	KwLet
	KwMod
	KwMut
	KwMatch
	KwPub
	KwReturn
	KwStruct
	KwThis
	KwTrait
	KwTrue
	KwType
	KwWhile
	KwUnderscore
	KwUse
)

var keywordText = map[KeywordKind]string{
	KwAs: "as", KwBreak: "break", KwContinue: "continue", KwElse: "else",
	KwEnum: "enum", KwExtern: "extern", KwFalse: "false", KwFn: "fn",
	KwFor: "for", KwIf: "if", KwIn: "in", KwLet: "let", KwMod: "mod",
	KwMut: "mut", KwMatch: "match", KwPub: "pub", KwReturn: "return",
	KwStruct: "struct", KwThis: "this", KwTrait: "trait", KwTrue: "true",
	KwType: "type", KwWhile: "while", KwUnderscore: "_", KwUse: "use",
}

func (k KeywordKind) String() string { return keywordText[k] }

// keywordTable maps reserved spellings back to their KeywordKind. Built
// once from keywordText so the two stay in sync.
var keywordTable = func() map[string]KeywordKind {
	m := make(map[string]KeywordKind, len(keywordText))
	for k, v := range keywordText {
		m[v] = k
	}
	return m
}()

// lookupKeyword reports whether ident is a reserved word.
func lookupKeyword(ident string) (KeywordKind, bool) {
	k, ok := keywordTable[ident]
	return k, ok
}

// Token is the tagged union described in §3.2. Exactly one payload field is
// meaningful for a given Kind; Text holds a copy of the source text for
// every variant whose payload is textual (Identifier, DocComment,
// MarkupStartTag, MarkupKey, MarkupText, MarkupEndTag). A String token
// carries its content in the String field instead.
type Token struct {
	Kind TokenKind

	Text    string // Identifier, DocComment, MarkupStartTag/Key/EndTag/Text
	Char    rune
	Number  float64
	Symbol  SymbolKind
	Keyword KeywordKind
	String  UnprocessedString
}

func (t Token) String() string {
	switch t.Kind {
	case TokenIdentifier, TokenDocComment, TokenMarkupStartTag, TokenMarkupKey, TokenMarkupText, TokenMarkupEndTag:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case TokenChar:
		return fmt.Sprintf("Char(%q)", t.Char)
	case TokenNumber:
		return fmt.Sprintf("Number(%v)", t.Number)
	case TokenSymbol:
		return fmt.Sprintf("Symbol(%s)", t.Symbol)
	case TokenKeyword:
		return fmt.Sprintf("Keyword(%s)", t.Keyword)
	case TokenString:
		return fmt.Sprintf("String(%q)", string(t.String))
	default:
		return t.Kind.String()
	}
}

// IsSymbol reports whether the token is the given symbol.
func (t Token) IsSymbol(s SymbolKind) bool { return t.Kind == TokenSymbol && t.Symbol == s }

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(k KeywordKind) bool { return t.Kind == TokenKeyword && t.Keyword == k }
