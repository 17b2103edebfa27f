// Package parser provides Cursor, a token-stream cursor for recursive-descent
// parsers. It reads a token.List built by a lexer and offers lookahead,
// consumption and expectation checks. Failed lookahead never moves the
// cursor, so callers can implement their own recovery and backtracking with
// Index and SetPosition.
package parser

import (
	"go.uber.org/zap"

	"github.com/nooga/lexkit/pkg/errors"
	"github.com/nooga/lexkit/pkg/token"
)

// Cursor reads a borrowed token list together with the text the tokens were
// scanned from. 0 <= index <= tokens.Len() always holds.
type Cursor[K comparable] struct {
	source string
	tokens *token.List[K]
	index  int
	log    *zap.Logger
}

// New creates a cursor positioned at the first token. A nil tokens is read as
// an empty list.
func New[K comparable](source string, tokens *token.List[K], opts ...Option) *Cursor[K] {
	if tokens == nil {
		tokens = token.NewList[K]()
	}
	cfg := newConfig(opts)
	return &Cursor[K]{
		source: source,
		tokens: tokens,
		log:    cfg.logger,
	}
}

// Source returns the text the tokens refer to.
func (c *Cursor[K]) Source() string {
	return c.source
}

// Tokens returns the list being read.
func (c *Cursor[K]) Tokens() *token.List[K] {
	return c.tokens
}

// Peek returns the current token without consuming it.
func (c *Cursor[K]) Peek() (token.Token[K], error) {
	tok, ok := c.tokens.At(c.index)
	if !ok {
		return tok, c.fail(c.endOfInput(errors.Caller(1)))
	}
	return tok, nil
}

// PeekN looks offset tokens away from the current one; negative offsets look
// back. It reports false when that position is out of range.
func (c *Cursor[K]) PeekN(offset int) (token.Token[K], bool) {
	return c.tokens.At(c.index + offset)
}

// Take consumes and returns the current token.
func (c *Cursor[K]) Take() (token.Token[K], error) {
	tok, ok := c.tokens.At(c.index)
	if !ok {
		return tok, c.fail(c.endOfInput(errors.Caller(1)))
	}
	c.index++
	return tok, nil
}

// Expect consumes the current token if its kind is kind. Otherwise the token
// stays unconsumed and the error is ExpectedToken carrying it.
func (c *Cursor[K]) Expect(kind K) (token.Token[K], error) {
	return c.expect(kind, errors.Caller(1))
}

func (c *Cursor[K]) expect(kind K, loc errors.Location) (token.Token[K], error) {
	tok, ok := c.tokens.At(c.index)
	if !ok {
		return tok, c.fail(c.endOfInput(loc))
	}
	if tok.Kind != kind {
		return tok, c.fail(&errors.ParseError[K]{
			Kind:     errors.ExpectedToken,
			Expected: kind,
			Token:    tok,
			Location: loc,
		})
	}
	c.index++
	return tok, nil
}

// Content returns the source text of tok.
func (c *Cursor[K]) Content(tok token.Token[K]) (string, bool) {
	return tok.Text(c.source)
}

// ContentTake consumes the current token and returns its text.
func (c *Cursor[K]) ContentTake() (string, error) {
	tok, ok := c.tokens.At(c.index)
	if !ok {
		return "", c.fail(c.endOfInput(errors.Caller(1)))
	}
	c.index++
	return c.mustContent(tok), nil
}

// ContentExpect is Expect returning the token's text.
func (c *Cursor[K]) ContentExpect(kind K) (string, error) {
	tok, err := c.expect(kind, errors.Caller(1))
	if err != nil {
		return "", err
	}
	return c.mustContent(tok), nil
}

// ContentMatches checks the current token's text against text without
// consuming it.
func (c *Cursor[K]) ContentMatches(text string) (string, error) {
	tok, ok := c.tokens.At(c.index)
	if !ok {
		return "", c.fail(c.endOfInput(errors.Caller(1)))
	}
	got := c.mustContent(tok)
	if got != text {
		return "", c.fail(&errors.ParseError[K]{
			Kind:         errors.ExpectedString,
			ExpectedText: text,
			GotText:      got,
			Token:        tok,
			Location:     errors.Caller(1),
		})
	}
	return got, nil
}

// Matches reports whether the current token has kind.
func (c *Cursor[K]) Matches(kind K) bool {
	tok, ok := c.tokens.At(c.index)
	return ok && tok.Kind == kind
}

// MatchAndTake consumes the current token if it has kind.
func (c *Cursor[K]) MatchAndTake(kind K) bool {
	if !c.Matches(kind) {
		return false
	}
	c.index++
	return true
}

// HasMoreTokens reports whether any token is left.
func (c *Cursor[K]) HasMoreTokens() bool {
	return c.index < c.tokens.Len()
}

// Index returns the current position in tokens.
func (c *Cursor[K]) Index() int {
	return c.index
}

// SetPosition moves to idx, which may equal the token count (the end). It
// reports false and stays put when idx is out of range.
func (c *Cursor[K]) SetPosition(idx int) bool {
	if idx < 0 || idx > c.tokens.Len() {
		return false
	}
	c.index = idx
	return true
}

// Unexpected builds an UnexpectedToken error for a grammar violation the
// caller detected.
func (c *Cursor[K]) Unexpected(tok token.Token[K]) *errors.ParseError[K] {
	return c.fail(&errors.ParseError[K]{
		Kind:     errors.UnexpectedToken,
		Token:    tok,
		Location: errors.Caller(1),
	})
}

// UnexpectedEnd builds an UnexpectedEndOfInput error.
func (c *Cursor[K]) UnexpectedEnd() *errors.ParseError[K] {
	return c.fail(c.endOfInput(errors.Caller(1)))
}

func (c *Cursor[K]) mustContent(tok token.Token[K]) string {
	text, ok := tok.Text(c.source)
	if !ok {
		panic("parser: token content not in source")
	}
	return text
}

func (c *Cursor[K]) endOfInput(loc errors.Location) *errors.ParseError[K] {
	return &errors.ParseError[K]{Kind: errors.UnexpectedEnd, Location: loc}
}

func (c *Cursor[K]) fail(err *errors.ParseError[K]) *errors.ParseError[K] {
	if ce := c.log.Check(zap.DebugLevel, "parse error"); ce != nil {
		fields := []zap.Field{
			zap.Stringer("kind", err.Kind),
			zap.Int("position", c.index),
			zap.Stringer("at", err.Location),
		}
		if off, ok := err.Offset(); ok {
			fields = append(fields, zap.Uint32("index", off))
		}
		ce.Write(fields...)
	}
	return err
}
