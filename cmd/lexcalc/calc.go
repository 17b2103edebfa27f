package main

import (
	"fmt"
	"math"
	"strconv"
	"unicode"

	"go.uber.org/zap"

	"github.com/nooga/lexkit/pkg/driver"
	"github.com/nooga/lexkit/pkg/lexer"
	"github.com/nooga/lexkit/pkg/parser"
	"github.com/nooga/lexkit/pkg/source"
	"github.com/nooga/lexkit/pkg/token"
)

type kind uint8

const (
	Number kind = iota
	Ident
	Newline
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	LParen
	RParen
)

func (k kind) String() string {
	return [...]string{
		"Number", "Ident", "Newline", "Plus", "Minus", "Star", "Slash",
		"Percent", "Assign", "LParen", "RParen",
	}[k]
}

var operators = map[rune]kind{
	'+': Plus,
	'-': Minus,
	'*': Star,
	'/': Slash,
	'%': Percent,
	'=': Assign,
	'(': LParen,
	')': RParen,
}

func isBlank(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || isDigit(r)
}

// scan produces one token. Newlines are tokens since they end statements;
// other whitespace and '#' comments are skipped.
func scan(c *lexer.Cursor[kind]) (token.Token[kind], error) {
	for {
		c.TakeWhile(isBlank)
		if !c.MatchAndTake('#') {
			break
		}
		c.TakeWhile(func(r rune) bool { return r != '\n' })
	}
	if !c.HasMoreChars() {
		return token.Token[kind]{}, lexer.Done
	}

	c.BeginToken()
	r, err := c.Peek()
	if err != nil {
		return token.Token[kind]{}, err
	}

	switch {
	case r == '\n':
		c.Take()
		return c.EndToken(Newline), nil
	case isDigit(r):
		c.TakeWhile(isDigit)
		if c.MatchAndTake('.') {
			if _, ok := c.TakeWhile(isDigit); !ok {
				return token.Token[kind]{}, c.Custom("expected digits after '.'")
			}
		}
		return c.EndToken(Number), nil
	case r == '_' || unicode.IsLetter(r):
		c.TakeWhile(isIdentChar)
		return c.EndToken(Ident), nil
	}

	if k, ok := operators[r]; ok {
		c.Take()
		return c.EndToken(k), nil
	}
	return token.Token[kind]{}, c.Unexpected(r)
}

// calc evaluates statements while parsing them. Variables persist across
// calls to run.
type calc struct {
	vars map[string]float64
	log  *zap.Logger
}

func newCalc(log *zap.Logger) *calc {
	return &calc{vars: map[string]float64{}, log: log}
}

// run evaluates every statement in src and returns their values in order.
func (c *calc) run(src string) ([]float64, error) {
	return driver.Parse(src, scan, c.parseProgram, driver.WithLogger(c.log))
}

func (c *calc) parseProgram(p *parser.Cursor[kind]) ([]float64, error) {
	var values []float64
	for p.HasMoreTokens() {
		if p.MatchAndTake(Newline) {
			continue
		}
		v, err := c.parseStatement(p)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		if p.HasMoreTokens() {
			if _, err := p.Expect(Newline); err != nil {
				return nil, err
			}
		}
	}
	return values, nil
}

// statement := Ident '=' expr | expr
func (c *calc) parseStatement(p *parser.Cursor[kind]) (float64, error) {
	if next, ok := p.PeekN(1); ok && next.Kind == Assign && p.Matches(Ident) {
		name, err := p.ContentTake()
		if err != nil {
			return 0, err
		}
		p.Take()
		v, err := c.parseExpr(p)
		if err != nil {
			return 0, err
		}
		c.vars[name] = v
		return v, nil
	}
	return c.parseExpr(p)
}

// expr := term (('+' | '-') term)*
func (c *calc) parseExpr(p *parser.Cursor[kind]) (float64, error) {
	left, err := c.parseTerm(p)
	if err != nil {
		return 0, err
	}
	for {
		var sign float64
		switch {
		case p.MatchAndTake(Plus):
			sign = 1
		case p.MatchAndTake(Minus):
			sign = -1
		default:
			return left, nil
		}
		right, err := c.parseTerm(p)
		if err != nil {
			return 0, err
		}
		left += sign * right
	}
}

// term := unary (('*' | '/' | '%') unary)*
func (c *calc) parseTerm(p *parser.Cursor[kind]) (float64, error) {
	left, err := c.parseUnary(p)
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.PeekN(0)
		if !ok || (op.Kind != Star && op.Kind != Slash && op.Kind != Percent) {
			return left, nil
		}
		p.Take()
		right, err := c.parseUnary(p)
		if err != nil {
			return 0, err
		}
		switch op.Kind {
		case Star:
			left *= right
		case Slash, Percent:
			if right == 0 {
				return 0, evalError(p.Source(), op, "division by zero")
			}
			if op.Kind == Slash {
				left /= right
			} else {
				left = math.Mod(left, right)
			}
		}
	}
}

// unary := '-' unary | primary
func (c *calc) parseUnary(p *parser.Cursor[kind]) (float64, error) {
	if p.MatchAndTake(Minus) {
		v, err := c.parseUnary(p)
		return -v, err
	}
	return c.parsePrimary(p)
}

// primary := Number | Ident | '(' expr ')'
func (c *calc) parsePrimary(p *parser.Cursor[kind]) (float64, error) {
	tok, err := p.Take()
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case Number:
		text, _ := p.Content(tok)
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, evalError(p.Source(), tok, fmt.Sprintf("invalid number %q", text))
		}
		return v, nil
	case Ident:
		name, _ := p.Content(tok)
		v, ok := c.vars[name]
		if !ok {
			return 0, evalError(p.Source(), tok, fmt.Sprintf("undefined variable %q", name))
		}
		return v, nil
	case LParen:
		v, err := c.parseExpr(p)
		if err != nil {
			return 0, err
		}
		if _, err := p.Expect(RParen); err != nil {
			return 0, err
		}
		return v, nil
	}
	return 0, p.Unexpected(tok)
}

func evalError(src string, tok token.Token[kind], msg string) error {
	pos := source.Resolve(src, int(tok.Index))
	return fmt.Errorf("%d:%d: %s", pos.Line, pos.Column+1, msg)
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
