package parser_test

import (
	stderrors "errors"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/nooga/lexkit/pkg/errors"
	"github.com/nooga/lexkit/pkg/lexer"
	"github.com/nooga/lexkit/pkg/parser"
	"github.com/nooga/lexkit/pkg/token"
)

type kind int

const (
	Number kind = iota
	Plus
	Minus
	Ident
)

func (k kind) String() string {
	return [...]string{"Number", "Plus", "Minus", "Ident"}[k]
}

func scan(c *lexer.Cursor[kind]) (token.Token[kind], error) {
	c.TakeWhile(unicode.IsSpace)
	if !c.HasMoreChars() {
		return token.Token[kind]{}, lexer.Done
	}
	c.BeginToken()
	switch {
	case c.MatchAndTake('+'):
		return c.EndToken(Plus), nil
	case c.MatchAndTake('-'):
		return c.EndToken(Minus), nil
	}
	if _, ok := c.TakeWhile(unicode.IsDigit); ok {
		return c.EndToken(Number), nil
	}
	if _, ok := c.TakeWhile(unicode.IsLetter); ok {
		return c.EndToken(Ident), nil
	}
	r, _ := c.Peek()
	return token.Token[kind]{}, c.Unexpected(r)
}

func newCursor(t *testing.T, src string, opts ...parser.Option) *parser.Cursor[kind] {
	t.Helper()
	list, err := token.Collect(lexer.Scan(lexer.New[kind](src), scan))
	require.NoError(t, err)
	return parser.New(src, list, opts...)
}

func requireParseError(t *testing.T, err error) *errors.ParseError[kind] {
	t.Helper()
	var pe *errors.ParseError[kind]
	require.True(t, stderrors.As(err, &pe), "expected *errors.ParseError, got %T", err)
	return pe
}

func TestExpectSequence(t *testing.T) {
	c := newCursor(t, "12+34")

	for i, want := range []kind{Number, Plus, Number} {
		_, err := c.Expect(want)
		require.NoError(t, err, "expect[%d]", i)
	}
	assert.False(t, c.HasMoreTokens())
	assert.Equal(t, 3, c.Index())
}

func TestExpectMismatchDoesNotConsume(t *testing.T) {
	c := newCursor(t, "+ 1")

	_, err := c.Expect(Number)
	pe := requireParseError(t, err)
	assert.Equal(t, errors.ExpectedToken, pe.Kind)
	assert.Equal(t, Number, pe.Expected)
	assert.Equal(t, token.Token[kind]{Kind: Plus, Index: 0, Len: 1}, pe.Token)
	assert.Equal(t, "parse error at offset 0: expected token Number, got Plus", pe.Error())

	tok, err := c.Peek()
	require.NoError(t, err)
	assert.Equal(t, pe.Token, tok)
	assert.Equal(t, 0, c.Index())
}

func TestPeekAndTakeAtEnd(t *testing.T) {
	c := newCursor(t, "")

	_, err := c.Peek()
	pe := requireParseError(t, err)
	assert.Equal(t, errors.UnexpectedEnd, pe.Kind)
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)

	_, err = c.Take()
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)
	_, err = c.Expect(Number)
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)
	_, err = c.ContentTake()
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)
	_, err = c.ContentMatches("x")
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)
	assert.Equal(t, 0, c.Index())
}

func TestTake(t *testing.T) {
	c := newCursor(t, "a 1")

	tok, err := c.Take()
	require.NoError(t, err)
	assert.Equal(t, Ident, tok.Kind)
	assert.Equal(t, 1, c.Index())

	text, err := c.ContentTake()
	require.NoError(t, err)
	assert.Equal(t, "1", text)
	assert.False(t, c.HasMoreTokens())
}

func TestPeekN(t *testing.T) {
	c := newCursor(t, "a + b")
	require.True(t, c.MatchAndTake(Ident))

	tests := []struct {
		offset int
		kind   kind
		ok     bool
	}{
		{-1, Ident, true},
		{0, Plus, true},
		{1, Ident, true},
		{2, 0, false},
		{-2, 0, false},
	}

	for i, tt := range tests {
		tok, ok := c.PeekN(tt.offset)
		if ok != tt.ok || (ok && tok.Kind != tt.kind) {
			t.Errorf("tests[%d] - PeekN(%d) wrong. expected=(%v, %v), got=(%v, %v)", i, tt.offset, tt.kind, tt.ok, tok.Kind, ok)
		}
	}
	assert.Equal(t, 1, c.Index(), "PeekN must not move the cursor")
}

func TestMatchAndTakeEqualsExpect(t *testing.T) {
	for _, k := range []kind{Number, Plus, Ident} {
		a := newCursor(t, "1 + x")
		b := newCursor(t, "1 + x")

		matched := a.MatchAndTake(k)
		_, err := b.Expect(k)

		assert.Equal(t, err == nil, matched, "kind %v", k)
		assert.Equal(t, b.Index(), a.Index(), "kind %v", k)
		if !matched {
			assert.Equal(t, 0, a.Index())
		} else {
			assert.Equal(t, 1, a.Index())
		}
	}
}

func TestContent(t *testing.T) {
	src := "foo - 42"
	c := newCursor(t, src)

	for _, tok := range c.Tokens().All() {
		text, ok := c.Content(tok)
		require.True(t, ok)
		assert.Equal(t, src[tok.Index:tok.Index+tok.Len], text)
	}

	name, err := c.ContentExpect(Ident)
	require.NoError(t, err)
	assert.Equal(t, "foo", name)

	_, err = c.ContentExpect(Number)
	pe := requireParseError(t, err)
	assert.Equal(t, Minus, pe.Token.Kind)
	assert.Equal(t, 1, c.Index())
}

func TestContentMatches(t *testing.T) {
	c := newCursor(t, "let x")

	text, err := c.ContentMatches("let")
	require.NoError(t, err)
	assert.Equal(t, "let", text)
	assert.Equal(t, 0, c.Index(), "ContentMatches must not consume")

	_, err = c.ContentMatches("const")
	pe := requireParseError(t, err)
	assert.Equal(t, errors.ExpectedString, pe.Kind)
	assert.Equal(t, "const", pe.ExpectedText)
	assert.Equal(t, "let", pe.GotText)
	assert.Equal(t, uint32(0), pe.Token.Index)
	assert.Equal(t, 0, c.Index())
}

func TestContentNotInSourcePanics(t *testing.T) {
	list := token.NewList(token.Token[kind]{Kind: Ident, Index: 0, Len: 10})
	c := parser.New("short", list)

	assert.PanicsWithValue(t, "parser: token content not in source", func() {
		_, _ = c.ContentTake()
	})
}

func TestSetPosition(t *testing.T) {
	c := newCursor(t, "a + b")

	assert.False(t, c.SetPosition(4))
	assert.False(t, c.SetPosition(-1))
	assert.Equal(t, 0, c.Index())

	assert.True(t, c.SetPosition(2))
	assert.Equal(t, 2, c.Index())
	tok, err := c.Peek()
	require.NoError(t, err)
	assert.Equal(t, uint32(4), tok.Index)

	// The end itself is a valid snapshot to restore.
	assert.True(t, c.SetPosition(3))
	assert.False(t, c.HasMoreTokens())
}

func TestBacktracking(t *testing.T) {
	c := newCursor(t, "a - 1")

	mark := c.Index()
	_, _ = c.Take()
	if !c.MatchAndTake(Plus) {
		require.True(t, c.SetPosition(mark))
	}
	assert.Equal(t, mark, c.Index())
	assert.True(t, c.Matches(Ident))
}

func TestUnexpected(t *testing.T) {
	c := newCursor(t, "a b")
	tok, _ := c.Peek()

	pe := c.Unexpected(tok)
	assert.Equal(t, errors.UnexpectedToken, pe.Kind)
	assert.Equal(t, "parse error at offset 0: unexpected token Ident", pe.Error())

	end := c.UnexpectedEnd()
	assert.ErrorIs(t, end, errors.ErrUnexpectedEndOfInput)
	_, ok := end.Offset()
	assert.False(t, ok)
}

func TestErrorPosition(t *testing.T) {
	src := "a\n+ b"
	c := newCursor(t, src)
	require.True(t, c.MatchAndTake(Ident))

	_, err := c.Expect(Ident)
	pe := requireParseError(t, err)
	pos, ok := pe.Position(c.Source())
	require.True(t, ok)
	assert.Equal(t, uint32(2), pos.Line)
	assert.Equal(t, uint32(0), pos.Column)
}

func TestErrorsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := newCursor(t, "1", parser.WithLogger(zap.New(core)))

	_, err := c.Expect(Plus)
	require.Error(t, err)

	entries := logs.FilterMessage("parse error").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ExpectedToken", fields["kind"])
	assert.Equal(t, int64(0), fields["position"])
	assert.Equal(t, uint32(0), fields["index"])
}

func TestContentOverInvalidUTF8(t *testing.T) {
	src := "\xe6\x97"
	perChar := func(c *lexer.Cursor[kind]) (token.Token[kind], error) {
		c.BeginToken()
		if _, err := c.Take(); err != nil {
			return token.Token[kind]{}, err
		}
		return c.EndToken(Ident), nil
	}
	lc := lexer.New[kind](src)
	list, err := token.Collect(lexer.Scan(lc, perChar))
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())

	for _, tok := range list.All() {
		text, ok := lc.Content(tok)
		require.True(t, ok, "lexer content of %v", tok)
		assert.Equal(t, src[tok.Index:tok.Index+tok.Len], text)
	}

	c := parser.New(src, list)
	for i, want := range []string{"\xe6", "\x97"} {
		got, err := c.ContentTake()
		require.NoError(t, err)
		if got != want {
			t.Errorf("tests[%d] - ContentTake() wrong. expected=%q, got=%q", i, want, got)
		}
	}
	assert.False(t, c.HasMoreTokens())
}

func TestNilTokenList(t *testing.T) {
	c := parser.New[kind]("", nil)

	assert.False(t, c.HasMoreTokens())
	assert.Equal(t, 0, c.Tokens().Len())
	_, err := c.Peek()
	assert.ErrorIs(t, err, errors.ErrUnexpectedEndOfInput)
	assert.True(t, c.SetPosition(0))
}
