// Package token defines the classified spans produced by a lexer and the
// container a parser reads them from.
package token

import (
	"fmt"
	"iter"
	"slices"
)

// Token is a classified span of source text. Kind is supplied by the caller;
// Index is the byte offset of the first byte and Len the byte length.
// 4+4 bytes of position keep a token of a small Kind at 12 bytes.
type Token[K any] struct {
	Kind  K
	Index uint32
	Len   uint32
}

// Start returns the byte offset where the token begins.
func (t Token[K]) Start() int {
	return int(t.Index)
}

// End returns the byte offset just past the token.
func (t Token[K]) End() int {
	return int(t.Index) + int(t.Len)
}

// Text returns the token's text in src. It reports false when the span does
// not fit src, which only happens when a token is paired with a text it was
// not scanned from. Spans are byte ranges, so a token over invalid UTF-8
// yields those bytes unchanged.
func (t Token[K]) Text(src string) (string, bool) {
	start, end := t.Start(), t.End()
	if end < start || end > len(src) {
		return "", false
	}
	return src[start:end], true
}

func (t Token[K]) String() string {
	return fmt.Sprintf("%v[%d,%d)", t.Kind, t.Index, t.Len)
}

// List is an ordered sequence of tokens from one complete tokenizing pass.
// It is built once and read-only afterwards.
type List[K any] struct {
	tokens []Token[K]
}

// NewList returns a list holding a copy of toks.
func NewList[K any](toks ...Token[K]) *List[K] {
	return &List[K]{tokens: slices.Clone(toks)}
}

// Collect drains seq into a List. The first error stops collection and is
// returned without a list.
func Collect[K any](seq iter.Seq2[Token[K], error]) (*List[K], error) {
	l := &List[K]{}
	for tok, err := range seq {
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
	}
	return l, nil
}

// Len returns the number of tokens.
func (l *List[K]) Len() int {
	return len(l.tokens)
}

// At returns the token at i, or false when i is out of range.
func (l *List[K]) At(i int) (Token[K], bool) {
	if i < 0 || i >= len(l.tokens) {
		var zero Token[K]
		return zero, false
	}
	return l.tokens[i], true
}

// All iterates over the tokens in order.
func (l *List[K]) All() iter.Seq2[int, Token[K]] {
	return slices.All(l.tokens)
}

// Tokens returns a copy of the underlying tokens.
func (l *List[K]) Tokens() []Token[K] {
	return slices.Clone(l.tokens)
}
