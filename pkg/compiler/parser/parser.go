package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"fortio.org/log"

	"github.com/agenthands/tib/pkg/compiler/lexer"
	"github.com/agenthands/tib/pkg/config"
	"github.com/agenthands/tib/pkg/core/value"
	"github.com/agenthands/tib/pkg/core/variable"
	"github.com/agenthands/tib/pkg/stdlib"
)

// Parser evaluates a token sequence while it recognises it. There is no
// syntax tree: every grammar rule returns the value it computed.
//
// Binary rules recurse into themselves for the right operand, so
// 10-3-2 is 10-(3-2) and a<b<c is a<(b<c).
type Parser struct {
	tokens []lexer.Token
	pos    int
	curTok lexer.Token

	cfg  config.Config
	vars *variable.Store
	out  io.Writer
}

// New prepares a parser over tokens. Results are printed to out and
// variables live in vars, which may be shared between parsers.
func New(tokens []lexer.Token, cfg config.Config, vars *variable.Store, out io.Writer) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.KindEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, lexer.NewToken(lexer.KindEOF, "", line))
	}
	return &Parser{
		tokens: tokens,
		curTok: tokens[0],
		cfg:    cfg,
		vars:   vars,
		out:    out,
	}
}

// Run evaluates every statement in order. The first error aborts the rest.
func (p *Parser) Run() error {
	for !p.Done() {
		if _, _, err := p.Statement(); err != nil {
			return err
		}
	}
	return nil
}

// Done reports whether the cursor reached EOF.
func (p *Parser) Done() bool {
	return p.curTok.Kind == lexer.KindEOF
}

// Statement evaluates one statement and its terminator. The boolean is
// false when the statement produced no result: an empty line, a Disp, or
// EOF.
func (p *Parser) Statement() (value.Value, bool, error) {
	switch p.curTok.Kind {
	case lexer.KindEOF:
		return nil, false, nil
	case lexer.KindEOL, lexer.KindColon:
		p.nextToken()
		return nil, false, nil
	case lexer.KindDisp:
		if err := p.parseDisp(); err != nil {
			return nil, false, err
		}
		return nil, false, p.endStatement()
	case lexer.KindIf, lexer.KindThen, lexer.KindElse, lexer.KindEnd, lexer.KindWhile,
		lexer.KindRepeat, lexer.KindFor, lexer.KindLbl, lexer.KindGoto:
		return nil, false, &Error{
			Token: p.curTok,
			Err:   fmt.Errorf("%w: %s is not supported", ErrSyntax, p.curTok.Kind),
		}
	}

	v, err := p.parseOr()
	if err != nil {
		return nil, false, err
	}
	if p.curTok.Kind == lexer.KindStore {
		if err := p.parseStore(v); err != nil {
			return nil, false, err
		}
	}
	if err := p.endStatement(); err != nil {
		return nil, false, err
	}

	p.vars.SetAns(v)
	if err := p.print(v); err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (p *Parser) endStatement() error {
	switch p.curTok.Kind {
	case lexer.KindEOF:
		return nil
	case lexer.KindEOL, lexer.KindColon:
		p.nextToken()
		return nil
	}
	return p.expected("EOL")
}

// parseDisp handles Disp expr {, expr}, one printed line per value.
func (p *Parser) parseDisp() error {
	p.nextToken()
	for {
		v, err := p.parseOr()
		if err != nil {
			return err
		}
		if err := p.print(v); err != nil {
			return err
		}
		if !p.matchIfIs(lexer.KindComma) {
			return nil
		}
	}
}

func (p *Parser) parseStore(v value.Value) error {
	p.nextToken()
	target := p.curTok
	if err := p.match(lexer.KindVar); err != nil {
		return err
	}
	if target.Text == variable.AnsName {
		return &Error{Token: target, Err: fmt.Errorf("%w: Ans cannot be stored to", ErrSyntax)}
	}
	p.vars.Set(target.Text, v)
	return nil
}

func (p *Parser) print(v value.Value) error {
	_, err := fmt.Fprintln(p.out, v.String())
	return err
}

// parseOr: and-expr [(or | xor) or-expr]
func (p *Parser) parseOr() (value.Value, error) {
	p.trace("or")
	v1, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	switch p.curTok.Kind {
	case lexer.KindOr:
		p.nextToken()
		v2, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return value.Or(v1, v2), nil
	case lexer.KindXor:
		p.nextToken()
		v2, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return value.Xor(v1, v2), nil
	}
	return v1, nil
}

// parseAnd: not-expr [and and-expr]
func (p *Parser) parseAnd() (value.Value, error) {
	p.trace("and")
	v1, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	if !p.matchIfIs(lexer.KindAnd) {
		return v1, nil
	}
	v2, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	return value.And(v1, v2), nil
}

// parseNot: not( or-expr [)] | comparison
func (p *Parser) parseNot() (value.Value, error) {
	p.trace("not")
	if !p.matchIfIs(lexer.KindNot) {
		return p.parseComparison()
	}
	v, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if err := p.closing(lexer.KindRParen); err != nil {
		return nil, err
	}
	return value.Not(v), nil
}

var comparisons = map[lexer.Kind]value.CompareOp{
	lexer.KindEqual:     value.OpEqual,
	lexer.KindNotEqual:  value.OpNotEqual,
	lexer.KindGreater:   value.OpGreater,
	lexer.KindGreaterEq: value.OpGreaterEq,
	lexer.KindLess:      value.OpLess,
	lexer.KindLessEq:    value.OpLessEq,
}

// parseComparison: additive [cmp comparison]
func (p *Parser) parseComparison() (value.Value, error) {
	p.trace("comparison")
	v1, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	op, ok := comparisons[p.curTok.Kind]
	if !ok {
		return v1, nil
	}
	opTok := p.curTok
	p.nextToken()
	v2, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	return p.eval(opTok)(value.Compare(op, v1, v2))
}

// parseAdditive: multiplicative [(+ | -) additive]
func (p *Parser) parseAdditive() (value.Value, error) {
	p.trace("additive")
	v1, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	opTok := p.curTok
	var op func(a, b value.Value) (value.Value, error)
	switch opTok.Kind {
	case lexer.KindPlus:
		op = value.Add
	case lexer.KindMinus:
		op = value.Sub
	default:
		return v1, nil
	}
	p.nextToken()
	v2, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return p.eval(opTok)(op(v1, v2))
}

// parseMultiplicative: unary [(* | /) multiplicative | multiplicative]
//
// A value or function token right after an operand multiplies implicitly,
// so 2(3), 2 3 and 2A all mean 2*...
func (p *Parser) parseMultiplicative() (value.Value, error) {
	p.trace("multiplicative")
	v1, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	opTok := p.curTok
	op := value.Mul
	switch {
	case opTok.Kind == lexer.KindTimes:
		p.nextToken()
	case opTok.Kind == lexer.KindDivide:
		op = value.Div
		p.nextToken()
	case opTok.Class == lexer.ClassValue || opTok.Class == lexer.ClassFunction:
	default:
		return v1, nil
	}
	v2, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	return p.eval(opTok)(op(v1, v2))
}

// parseUnary: - unary | power
func (p *Parser) parseUnary() (value.Value, error) {
	p.trace("unary")
	opTok := p.curTok
	if !p.matchIfIs(lexer.KindMinus) {
		return p.parsePower()
	}
	v, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.eval(opTok)(value.Neg(v))
}

// parsePower: primary [^ unary]
func (p *Parser) parsePower() (value.Value, error) {
	p.trace("power")
	v1, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	opTok := p.curTok
	if !p.matchIfIs(lexer.KindPow) {
		return v1, nil
	}
	v2, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.eval(opTok)(value.Pow(v1, v2))
}

func (p *Parser) parsePrimary() (value.Value, error) {
	p.trace("primary")
	tok := p.curTok
	switch tok.Kind {
	case lexer.KindLParen:
		p.nextToken()
		v, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return v, p.closing(lexer.KindRParen)
	case lexer.KindLCurly:
		p.nextToken()
		return p.parseList(tok)
	case lexer.KindNum:
		p.nextToken()
		return p.number(tok)
	case lexer.KindString:
		p.nextToken()
		return value.Str(tok.Text), nil
	case lexer.KindVar:
		p.nextToken()
		return p.vars.Get(tok.Text), nil
	case lexer.KindFunc:
		p.nextToken()
		return p.parseCall(tok)
	}
	return nil, p.expected("expression")
}

// parseList reads the elements after {. In emulate mode every append
// after the first re-checks the first element, which is how the calculator
// rejects {"a",1} but not {1,"a"}.
func (p *Parser) parseList(open lexer.Token) (value.Value, error) {
	elems := value.List{}
	if p.matchIfIs(lexer.KindRCurly) {
		return elems, nil
	}
	for {
		v, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		if p.cfg.Emulate && len(elems) > 1 && !value.IsNumeric(elems[0]) {
			return nil, &Error{
				Token: open,
				Err:   fmt.Errorf("%w: list element %s is not a number", value.ErrDataType, elems[0].Kind()),
			}
		}
		if !p.matchIfIs(lexer.KindComma) {
			break
		}
	}
	return elems, p.closing(lexer.KindRCurly)
}

func (p *Parser) parseCall(fn lexer.Token) (value.Value, error) {
	b, ok := stdlib.Lookup(fn.Text)
	if !ok {
		return nil, &Error{Token: fn, Err: fmt.Errorf("%w: unknown function %s", ErrSyntax, fn.Text)}
	}

	var args []value.Value
	if !p.matchIfIs(lexer.KindRParen) {
		for {
			v, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			args = append(args, v)
			if !p.matchIfIs(lexer.KindComma) {
				break
			}
		}
		if err := p.closing(lexer.KindRParen); err != nil {
			return nil, err
		}
	}
	return p.eval(fn)(b.Call(args))
}

// number converts a NUM literal. Literals are never normalized, so 2.0
// stays a float.
func (p *Parser) number(tok lexer.Token) (value.Value, error) {
	lit := tok.Literal()
	if !tok.IsFloat() {
		n, err := strconv.ParseInt(lit, 10, 64)
		if err == nil {
			return value.Int(n), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return nil, &Error{Token: tok, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, &Error{Token: tok, Err: fmt.Errorf("%w: %v", value.ErrOverflow, err)}
	}
	return value.Float(f), nil
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
		p.curTok = p.tokens[p.pos]
	}
}

func (p *Parser) match(kind lexer.Kind) error {
	if p.curTok.Kind != kind {
		return p.expected(kind.String())
	}
	p.nextToken()
	return nil
}

// matchIfIs consumes the current token only when it has the given kind.
func (p *Parser) matchIfIs(kind lexer.Kind) bool {
	if p.curTok.Kind != kind {
		return false
	}
	p.nextToken()
	return true
}

// closing consumes a ) or }. Outside strict mode a missing one is accepted.
func (p *Parser) closing(kind lexer.Kind) error {
	if p.matchIfIs(kind) || !p.cfg.Strict {
		return nil
	}
	return p.expected(kind.String())
}

func (p *Parser) expected(what string) error {
	return &Error{Token: p.curTok, Expected: what, Err: ErrSyntax}
}

// eval attaches tok to a failed operation.
func (p *Parser) eval(tok lexer.Token) func(value.Value, error) (value.Value, error) {
	return func(v value.Value, err error) (value.Value, error) {
		if err != nil {
			return nil, &Error{Token: tok, Err: err}
		}
		return v, nil
	}
}

func (p *Parser) trace(level string) {
	if p.cfg.Debug {
		log.LogVf("%s: %s", level, p.curTok)
	}
}
