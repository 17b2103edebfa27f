package lexer

import (
	stderrors "errors"
	"iter"

	"github.com/nooga/lexkit/pkg/errors"
	"github.com/nooga/lexkit/pkg/token"
)

// Done is returned by a ScanFunc when no token is left, for example after
// skipping trailing whitespace. Scan treats it as a clean end, like io.EOF.
var Done = stderrors.New("lexer: no more tokens")

// ScanFunc scans one token starting at the cursor's current index.
type ScanFunc[K any] func(c *Cursor[K]) (token.Token[K], error)

// Scan returns the lazy sequence of tokens produced by calling next until the
// input is exhausted. The first error other than Done is yielded and ends the
// sequence. A ScanFunc that returns a token without consuming input is
// reported as an error rather than looping forever.
func Scan[K any](c *Cursor[K], next ScanFunc[K]) iter.Seq2[token.Token[K], error] {
	return func(yield func(token.Token[K], error) bool) {
		var zero token.Token[K]
		for c.HasMoreChars() {
			from := c.index
			tok, err := next(c)
			if stderrors.Is(err, Done) {
				return
			}
			if err != nil {
				yield(zero, err)
				return
			}
			if c.index == from {
				yield(zero, c.fail(&errors.TokenizeError{
					Kind:     errors.Custom,
					Index:    offset(c.index),
					Msg:      "scan function made no progress",
					Location: errors.Caller(0),
				}))
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}
