package kestrel

import (
	"fmt"

	jujuerrors "github.com/juju/errors"
)

// ErrorSource names which subsystem produced an Error (§7).
type ErrorSource uint8

const (
	SourceUTF8 ErrorSource = iota
	SourceLexer
	SourceParser
)

func (s ErrorSource) String() string {
	switch s {
	case SourceUTF8:
		return "utf8"
	case SourceLexer:
		return "lexer"
	case SourceParser:
		return "parser"
	default:
		return "unknown"
	}
}

// ErrorCode enumerates every distinct failure kind from §7. Codes are
// grouped by subsystem in the ranges below purely for readability; nothing
// in the front end switches on the numeric ranges, only on the named
// constants.
type ErrorCode uint16

const (
	// UTF-8 errors (13 distinct invalid-byte-position kinds, §4.1).
	ErrInvalidFirstByte ErrorCode = 100 + iota
	ErrMissingContinuation2Of2
	ErrInvalidContinuation2Of2
	ErrMissingContinuation2Of3
	ErrInvalidContinuation2Of3
	ErrMissingContinuation3Of3
	ErrInvalidContinuation3Of3
	ErrMissingContinuation2Of4
	ErrInvalidContinuation2Of4
	ErrMissingContinuation3Of4
	ErrInvalidContinuation3Of4
	ErrMissingContinuation4Of4
	ErrInvalidContinuation4Of4
)

const (
	// Lexer errors.
	ErrInvalidEscapeCharacter ErrorCode = 200 + iota
	ErrExpectedEscapeCharacter
	ErrHexEscapeFirstDigitMissing
	ErrHexEscapeFirstDigitInvalid
	ErrHexEscapeSecondDigitMissing
	ErrHexEscapeSecondDigitInvalid
	ErrHexEscapeOutOfRange
	ErrUnicodeEscapeReserved
	ErrInvalidDigitInDecimalNumber
	ErrInvalidDigitInDecimalFraction
	ErrInvalidDigitInBinaryNumber
	ErrNonASCIIIdentifierCharacter
	ErrUnterminatedString
	ErrUnterminatedChar
	ErrCharLiteralTooLong
	ErrIllegalTopLevelCharacter
	ErrPathSeparatorNotAllowed
	ErrMarkupKeywordAsTagName
	ErrMarkupExpectedTagEnd
	ErrMarkupExpectedSlashOrIdentifier
	ErrMarkupExpectedEquals
	ErrMarkupExpectedStringOrBrace
	ErrMarkupUnterminatedElement
	ErrHexLiteralReserved
	ErrOctalLiteralReserved
)

const (
	// Parser errors.
	ErrExpectedIdentifier ErrorCode = 300 + iota
	ErrExpectedStatementKeyword
	ErrExpectedType
	ErrExpectedExpressionStart
	ErrExpectedExpressionContinuation
	ErrExpectedClosingParen
	ErrExpectedClosingBracket
	ErrExpectedClosingBrace
	ErrExpectedClosingAngle
	ErrInvalidAssignmentTarget
	ErrMarkupTagNameMismatch
	ErrDocCommentsOnUse
	ErrUnattachedAnnotations
	ErrUnattachedDocComments
	ErrMisplacedTypeParameters
	ErrBodylessFunctionAfterArrow
	ErrElseChainMissingIfOrBrace
	ErrUnexpectedEndOfInput
	ErrNonFirstUnionArmUnsupported
)

// Error is the single exported failure type returned across the public
// surface of the package (§7). Its Unwrap method exposes the juju/errors
// chain that produced it so callers who want the full trace can reach it
// through errors.Is / errors.As or by formatting the unwrapped cause;
// formatting the *Error itself, with %v or %+v alike, prints only the
// one-line Error() text. Callers who just want the
// stable fields (Code, Source, Message, Offset) never need to know
// juju/errors is involved at all.
type Error struct {
	Code    ErrorCode
	Source  ErrorSource
	Message string
	Context string
	Offset  int

	cause error
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s error at byte %d: %s (%s)", e.Source, e.Offset, e.Message, e.Context)
	}
	return fmt.Sprintf("%s error at byte %d: %s", e.Source, e.Offset, e.Message)
}

// Unwrap exposes the juju/errors-wrapped cause so errors.Is/As keep working
// through this type.
func (e *Error) Unwrap() error { return e.cause }

// newError builds an Error whose cause is a juju/errors value annotated
// with the context sentence, so that errors.ErrorStack on the cause that
// Unwrap returns prints the annotation chain during development, without
// changing the exported type seen by callers.
func newError(source ErrorSource, code ErrorCode, message string, context string, offset int) *Error {
	base := jujuerrors.Errorf("%s", message)
	if context != "" {
		base = jujuerrors.Annotate(base, context)
	}
	return &Error{
		Code:    code,
		Source:  source,
		Message: message,
		Context: context,
		Offset:  offset,
		cause:   jujuerrors.Trace(base),
	}
}

func newUTF8Error(code ErrorCode, message string, offset int) *Error {
	return newError(SourceUTF8, code, message, "while validating UTF-8", offset)
}

func newLexError(code ErrorCode, context string, offset int) *Error {
	return newError(SourceLexer, code, lexErrorMessage(code), context, offset)
}

func newParseError(code ErrorCode, message, context string, offset int) *Error {
	return newError(SourceParser, code, message, context, offset)
}

// lexErrorMessage gives each lexer ErrorCode a stable, human-readable
// message independent of call site, matching §7's "human-readable message"
// requirement.
func lexErrorMessage(code ErrorCode) string {
	switch code {
	case ErrInvalidEscapeCharacter:
		return "invalid escape character"
	case ErrExpectedEscapeCharacter:
		return "expected an escape character after '\\'"
	case ErrHexEscapeFirstDigitMissing:
		return "hex escape is missing its first digit"
	case ErrHexEscapeFirstDigitInvalid:
		return "hex escape's first digit is not a hex digit"
	case ErrHexEscapeSecondDigitMissing:
		return "hex escape is missing its second digit"
	case ErrHexEscapeSecondDigitInvalid:
		return "hex escape's second digit is not a hex digit"
	case ErrHexEscapeOutOfRange:
		return "hex escape value is greater than 0x7F"
	case ErrUnicodeEscapeReserved:
		return "\\u escapes are reserved and not yet implemented"
	case ErrInvalidDigitInDecimalNumber:
		return "invalid digit in decimal number literal"
	case ErrInvalidDigitInDecimalFraction:
		return "invalid digit in decimal fraction"
	case ErrInvalidDigitInBinaryNumber:
		return "invalid digit in binary number literal"
	case ErrNonASCIIIdentifierCharacter:
		return "identifiers may only contain ASCII letters, digits and underscores"
	case ErrUnterminatedString:
		return "unexpected end of input, string literal not closed"
	case ErrUnterminatedChar:
		return "unexpected end of input, character literal not closed"
	case ErrCharLiteralTooLong:
		return "character literal contains more than one scalar value"
	case ErrIllegalTopLevelCharacter:
		return "illegal character"
	case ErrPathSeparatorNotAllowed:
		return "'::' is not a valid path separator; use '.' instead"
	case ErrMarkupKeywordAsTagName:
		return "a keyword cannot be used as a markup tag name"
	case ErrMarkupExpectedTagEnd:
		return "expected '>' or '/>' "
	case ErrMarkupExpectedSlashOrIdentifier:
		return "expected '/' or an attribute name"
	case ErrMarkupExpectedEquals:
		return "expected '=' after a markup attribute name"
	case ErrMarkupExpectedStringOrBrace:
		return "expected a string literal or '{' after '='"
	case ErrMarkupUnterminatedElement:
		return "unexpected end of input, markup element not closed"
	case ErrHexLiteralReserved:
		return "hexadecimal literals are reserved and not yet implemented"
	case ErrOctalLiteralReserved:
		return "octal literals are reserved and not yet implemented"
	default:
		return "lexer error"
	}
}
