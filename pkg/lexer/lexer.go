// Package lexer provides Cursor, a character-level scanning cursor for
// hand-written lexers. The caller decides which characters belong to which
// token; the cursor only tracks where the current token started and where
// scanning is now.
package lexer

import (
	"math"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/nooga/lexkit/pkg/errors"
	"github.com/nooga/lexkit/pkg/token"
)

// Cursor scans a borrowed UTF-8 text. It holds two byte offsets: start, the
// beginning of the token being assembled, and index, the scan position.
// start <= index <= len(source) always holds.
//
// Offsets are exposed as uint32; texts longer than 4GiB are a usage error
// and make the cursor panic. Malformed input never does: invalid UTF-8 is
// read as utf8.RuneError one byte at a time.
type Cursor[K any] struct {
	source string
	index  int
	start  int
	log    *zap.Logger
}

// New creates a cursor at the beginning of source.
func New[K any](source string, opts ...Option) *Cursor[K] {
	cfg := newConfig(opts)
	c := &Cursor[K]{log: cfg.logger}
	c.Reset(source)
	return c
}

// Reset re-initializes the cursor with new source for reuse.
func (c *Cursor[K]) Reset(source string) {
	offset(len(source))
	c.source = source
	c.index = 0
	c.start = 0
}

// Source returns the text being scanned.
func (c *Cursor[K]) Source() string {
	return c.source
}

// BeginToken marks the current position as the start of the next token.
func (c *Cursor[K]) BeginToken() {
	c.start = c.index
}

// SetIndex moves the scan position, for re-scanning or backtracking. Moving
// below the token start pulls the start down with it.
func (c *Cursor[K]) SetIndex(i uint32) {
	idx := int(i)
	if idx > len(c.source) {
		idx = len(c.source)
	}
	if c.start > idx {
		c.start = idx
	}
	c.index = idx
}

// Start returns the offset where the current token begins.
func (c *Cursor[K]) Start() uint32 {
	return offset(c.start)
}

// Index returns the current scan offset.
func (c *Cursor[K]) Index() uint32 {
	return offset(c.index)
}

// Slice returns the raw text between two offsets. Keeping the range inside
// the text and on character boundaries is the caller's job.
func (c *Cursor[K]) Slice(start, end uint32) string {
	return c.source[start:end]
}

// HasMoreChars reports whether any input is left.
func (c *Cursor[K]) HasMoreChars() bool {
	return c.index < len(c.source)
}

// next decodes the character at index without moving.
func (c *Cursor[K]) next() (rune, int, bool) {
	if c.index >= len(c.source) {
		return 0, 0, false
	}
	r, w := utf8.DecodeRuneInString(c.source[c.index:])
	return r, w, true
}

// Peek returns the next character without consuming it.
func (c *Cursor[K]) Peek() (rune, error) {
	r, _, ok := c.next()
	if !ok {
		return 0, c.fail(c.endOfInput(errors.Caller(1)))
	}
	return r, nil
}

// Take consumes the next character and advances by its UTF-8 width.
func (c *Cursor[K]) Take() (rune, error) {
	r, w, ok := c.next()
	if !ok {
		return 0, c.fail(c.endOfInput(errors.Caller(1)))
	}
	c.index += w
	return r, nil
}

// TakeWhile consumes characters as long as pred accepts them and returns the
// consumed text. It reports false, leaving the cursor where it was, when the
// first character is rejected or no input is left.
func (c *Cursor[K]) TakeWhile(pred func(rune) bool) (string, bool) {
	from := c.index
	for {
		r, w, ok := c.next()
		if !ok || !pred(r) {
			break
		}
		c.index += w
	}
	if from == c.index {
		return "", false
	}
	return c.source[from:c.index], true
}

// Expect consumes the next character if it is want. Otherwise nothing is
// consumed and the error is ExpectedChar, or UnexpectedEndOfInput when the
// input is exhausted.
func (c *Cursor[K]) Expect(want rune) error {
	r, w, ok := c.next()
	if !ok {
		return c.fail(c.endOfInput(errors.Caller(1)))
	}
	if r != want {
		return c.fail(&errors.TokenizeError{
			Kind:     errors.ExpectedChar,
			Index:    offset(c.index),
			Expected: want,
			Got:      r,
			Location: errors.Caller(1),
		})
	}
	c.index += w
	return nil
}

// Matches reports whether the next character is want.
func (c *Cursor[K]) Matches(want rune) bool {
	r, _, ok := c.next()
	return ok && r == want
}

// MatchAndTake consumes the next character if it is want.
func (c *Cursor[K]) MatchAndTake(want rune) bool {
	r, w, ok := c.next()
	if !ok || r != want {
		return false
	}
	c.index += w
	return true
}

// MatchString reports whether the remaining input starts with s.
func (c *Cursor[K]) MatchString(s string) bool {
	return strings.HasPrefix(c.source[c.index:], s)
}

// TakeString consumes s if the remaining input starts with it. Scanning a
// multi-character operator such as "=>" or "!==" is a single call.
func (c *Cursor[K]) TakeString(s string) bool {
	if !c.MatchString(s) {
		return false
	}
	c.index += len(s)
	return true
}

// EndToken returns the token spanning [start, index) and closes it: the next
// token starts at the current index.
func (c *Cursor[K]) EndToken(kind K) token.Token[K] {
	tok := token.Token[K]{
		Kind:  kind,
		Index: offset(c.start),
		Len:   offset(c.index - c.start),
	}
	c.start = c.index
	return tok
}

// Content returns the text of a token scanned from this cursor's source.
func (c *Cursor[K]) Content(tok token.Token[K]) (string, bool) {
	return tok.Text(c.source)
}

// Unexpected builds an UnexpectedChar error at the current index, for
// failures the caller detects itself.
func (c *Cursor[K]) Unexpected(got rune) *errors.TokenizeError {
	return c.fail(&errors.TokenizeError{
		Kind:     errors.UnexpectedChar,
		Index:    offset(c.index),
		Got:      got,
		Location: errors.Caller(1),
	})
}

// Custom builds an error with a caller-supplied message at the current index.
func (c *Cursor[K]) Custom(msg string) *errors.TokenizeError {
	return c.fail(&errors.TokenizeError{
		Kind:     errors.Custom,
		Index:    offset(c.index),
		Msg:      msg,
		Location: errors.Caller(1),
	})
}

func (c *Cursor[K]) endOfInput(loc errors.Location) *errors.TokenizeError {
	return &errors.TokenizeError{
		Kind:     errors.UnexpectedEndOfInput,
		Index:    offset(c.index),
		Location: loc,
	}
}

func (c *Cursor[K]) fail(err *errors.TokenizeError) *errors.TokenizeError {
	if ce := c.log.Check(zap.DebugLevel, "tokenize error"); ce != nil {
		ce.Write(
			zap.Stringer("kind", err.Kind),
			zap.Uint32("index", err.Index),
			zap.Stringer("at", err.Location),
		)
	}
	return err
}

// offset converts a byte offset to the 32-bit form tokens and errors use.
func offset(i int) uint32 {
	if i < 0 || uint64(i) > math.MaxUint32 {
		panic("lexer: input too big")
	}
	return uint32(i)
}
