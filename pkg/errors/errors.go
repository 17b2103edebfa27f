package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/nooga/lexkit/pkg/token"
)

// ErrUnexpectedEndOfInput matches, via errors.Is, every tokenizing or parsing
// error raised because the input ran out.
var ErrUnexpectedEndOfInput = stderrors.New("unexpected end of input")

// Phase tells which half of a lex-then-parse pipeline failed.
type Phase uint8

const (
	PhaseTokenize Phase = iota
	PhaseParse
)

func (p Phase) String() string {
	switch p {
	case PhaseTokenize:
		return "Tokenize"
	case PhaseParse:
		return "Parse"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Diagnostic is implemented by every error raised by a cursor.
type Diagnostic interface {
	error
	Phase() Phase
	// Offset is the byte offset the error refers to, if it has one.
	Offset() (uint32, bool)
	// Message returns the error text without phase or offset.
	Message() string
	// Where returns the call site that raised the error. It is the zero
	// Location unless built with -tags debug.
	Where() Location
}

// --- Tokenizing errors ---

type TokenizeErrorKind uint8

const (
	ExpectedChar TokenizeErrorKind = iota
	UnexpectedChar
	UnexpectedEndOfInput
	Custom
)

func (k TokenizeErrorKind) String() string {
	switch k {
	case ExpectedChar:
		return "ExpectedChar"
	case UnexpectedChar:
		return "UnexpectedChar"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case Custom:
		return "Custom"
	default:
		return fmt.Sprintf("TokenizeErrorKind(%d)", uint8(k))
	}
}

// TokenizeError is raised by the character cursor. Only the fields that
// belong to Kind are set:
//
//	ExpectedChar          Expected, Got
//	UnexpectedChar        Got
//	UnexpectedEndOfInput  -
//	Custom                Msg
type TokenizeError struct {
	Kind     TokenizeErrorKind
	Index    uint32
	Expected rune
	Got      rune
	Msg      string
	Location Location
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error at offset %d: %s", e.Index, e.Message())
}

func (e *TokenizeError) Message() string {
	switch e.Kind {
	case ExpectedChar:
		return fmt.Sprintf("expected %q, got %q", e.Expected, e.Got)
	case UnexpectedChar:
		return fmt.Sprintf("unexpected character %q", e.Got)
	case UnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput.Error()
	default:
		return e.Msg
	}
}

func (e *TokenizeError) Phase() Phase           { return PhaseTokenize }
func (e *TokenizeError) Offset() (uint32, bool) { return e.Index, true }
func (e *TokenizeError) Where() Location        { return e.Location }

// Is compares every field but Location, and matches ErrUnexpectedEndOfInput.
func (e *TokenizeError) Is(target error) bool {
	if target == ErrUnexpectedEndOfInput {
		return e.Kind == UnexpectedEndOfInput
	}
	t, ok := target.(*TokenizeError)
	if !ok || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Index == t.Index && e.Expected == t.Expected &&
		e.Got == t.Got && e.Msg == t.Msg
}

// --- Parsing errors ---

type ParseErrorKind uint8

const (
	UnexpectedToken ParseErrorKind = iota
	ExpectedToken
	ExpectedString
	UnexpectedEnd
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExpectedToken:
		return "ExpectedToken"
	case ExpectedString:
		return "ExpectedString"
	case UnexpectedEnd:
		return "UnexpectedEndOfInput"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", uint8(k))
	}
}

// ParseError is raised by the token cursor. Only the fields that belong to
// Kind are set:
//
//	UnexpectedToken  Token
//	ExpectedToken    Expected, Token (the token found instead)
//	ExpectedString   ExpectedText, GotText, Token
//	UnexpectedEnd    -
type ParseError[K comparable] struct {
	Kind         ParseErrorKind
	Token        token.Token[K]
	Expected     K
	ExpectedText string
	GotText      string
	Location     Location
}

func (e *ParseError[K]) Error() string {
	if off, ok := e.Offset(); ok {
		return fmt.Sprintf("parse error at offset %d: %s", off, e.Message())
	}
	return "parse error: " + e.Message()
}

func (e *ParseError[K]) Message() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("unexpected token %v", e.Token.Kind)
	case ExpectedToken:
		return fmt.Sprintf("expected token %v, got %v", e.Expected, e.Token.Kind)
	case ExpectedString:
		return fmt.Sprintf("expected %q, got %q", e.ExpectedText, e.GotText)
	default:
		return ErrUnexpectedEndOfInput.Error()
	}
}

func (e *ParseError[K]) Phase() Phase    { return PhaseParse }
func (e *ParseError[K]) Where() Location { return e.Location }

// Offset returns the offset of the offending token. End-of-input errors
// carry no token.
func (e *ParseError[K]) Offset() (uint32, bool) {
	if e.Kind == UnexpectedEnd {
		return 0, false
	}
	return e.Token.Index, true
}

// Is compares every field but Location, and matches ErrUnexpectedEndOfInput.
func (e *ParseError[K]) Is(target error) bool {
	if target == ErrUnexpectedEndOfInput {
		return e.Kind == UnexpectedEnd
	}
	t, ok := target.(*ParseError[K])
	if !ok || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Token == t.Token && e.Expected == t.Expected &&
		e.ExpectedText == t.ExpectedText && e.GotText == t.GotText
}

// --- Combined ---

// Error carries either a tokenizing or a parsing failure, for callers that
// run both phases and want a single failure channel.
type Error[K comparable] struct {
	Phase Phase
	Err   Diagnostic
}

// Tokenizing wraps a tokenizing failure.
func Tokenizing[K comparable](err *TokenizeError) *Error[K] {
	return &Error[K]{Phase: PhaseTokenize, Err: err}
}

// Parsing wraps a parsing failure.
func Parsing[K comparable](err *ParseError[K]) *Error[K] {
	return &Error[K]{Phase: PhaseParse, Err: err}
}

func (e *Error[K]) Error() string { return e.Err.Error() }
func (e *Error[K]) Unwrap() error { return e.Err }

// Tokenizer returns the wrapped tokenizing error.
func (e *Error[K]) Tokenizer() (*TokenizeError, bool) {
	t, ok := e.Err.(*TokenizeError)
	return t, ok
}

// Parser returns the wrapped parsing error.
func (e *Error[K]) Parser() (*ParseError[K], bool) {
	p, ok := e.Err.(*ParseError[K])
	return p, ok
}
