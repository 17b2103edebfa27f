// Package driver runs a scan function and a parse function over one source
// text and reports failures from either phase through a single error type.
package driver

import (
	"go.uber.org/zap"

	"github.com/nooga/lexkit/pkg/errors"
	"github.com/nooga/lexkit/pkg/lexer"
	"github.com/nooga/lexkit/pkg/parser"
	"github.com/nooga/lexkit/pkg/token"
)

// Tokenize scans src to the end and collects the tokens. It stops at the
// first error scan returns.
func Tokenize[K any](src string, scan lexer.ScanFunc[K], opts ...Option) (*token.List[K], error) {
	return tokenize(src, scan, newConfig(opts))
}

func tokenize[K any](src string, scan lexer.ScanFunc[K], cfg config) (*token.List[K], error) {
	c := lexer.New[K](src, lexer.WithLogger(cfg.logger))
	list, err := token.Collect(lexer.Scan(c, scan))
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("phase done",
		zap.Stringer("phase", errors.PhaseTokenize),
		zap.Int("tokens", list.Len()),
	)
	return list, nil
}

// Parse tokenizes src and hands the tokens to parse. Cursor errors from
// either phase come back as *errors.Error; any other error parse returns is
// passed through untouched.
//
// parse must consume every token unless AllowTrailing is given.
func Parse[K comparable, T any](
	src string,
	scan lexer.ScanFunc[K],
	parse func(*parser.Cursor[K]) (T, error),
	opts ...Option,
) (T, error) {
	var zero T
	cfg := newConfig(opts)

	list, err := tokenize(src, scan, cfg)
	if err != nil {
		if te, ok := err.(*errors.TokenizeError); ok {
			return zero, errors.Tokenizing[K](te)
		}
		return zero, err
	}

	p := parser.New(src, list, parser.WithLogger(cfg.logger))
	result, err := parse(p)
	if err != nil {
		if pe, ok := err.(*errors.ParseError[K]); ok {
			return zero, errors.Parsing(pe)
		}
		return zero, err
	}

	if !cfg.allowTrailing && p.HasMoreTokens() {
		tok, _ := p.Peek()
		return zero, errors.Parsing(p.Unexpected(tok))
	}

	cfg.logger.Debug("phase done",
		zap.Stringer("phase", errors.PhaseParse),
		zap.Int("tokens", p.Index()),
	)
	return result, nil
}
