package parser

import (
	"fmt"
	"strconv"

	"sonc/internal/graph"
	"sonc/internal/ops"
	"sonc/internal/sonerr"
	"sonc/internal/token"
)

// parseExpr parses a full expression via Shunting-Yard precedence
// climbing driven by ops.Priority/ops.HasPrecedence (§4.1).
func (p *Parser) parseExpr() *graph.Node {
	return p.parseBinary(p.parseUnary(), 0)
}

func (p *Parser) parseBinary(lhs *graph.Node, minPriority uint8) *graph.Node {
	for {
		t := p.cur()
		if t.Type != token.Op || !ops.IsBinary(safeBinary(t.Lexeme)) {
			return lhs
		}
		op := ops.Binary(t.Lexeme)
		prio := ops.Priority(op)
		if prio < minPriority {
			return lhs
		}
		p.advance()
		rhs := p.parseUnary()

		for {
			next := p.cur()
			if next.Type != token.Op || !ops.IsBinary(safeBinary(next.Lexeme)) {
				break
			}
			nextOp := ops.Binary(next.Lexeme)
			if ops.HasPrecedence(op, nextOp) {
				break
			}
			rhs = p.parseBinary(rhs, ops.Priority(nextOp))
		}

		lhs = p.g.Peephole(p.g.NewBinOp(nil, op, lhs, rhs))
	}
}

// safeBinary reports the Op a lexeme would resolve to without panicking
// on lexemes ops.Binary doesn't recognize (e.g. "=", which the grammar
// handles itself, never as an expression operator).
func safeBinary(lexeme string) ops.Op {
	switch lexeme {
	case "+", "-", "*", "/", "%", "||", "&&", "|", "&", "^", "==", "<", ">", "<=", ">=":
		return ops.Binary(lexeme)
	default:
		return ops.Undefined
	}
}

func (p *Parser) parseUnary() *graph.Node {
	if p.checkOp("-") {
		p.advance()
		operand := p.parseUnary()
		return p.g.Peephole(p.g.NewNeg(nil, operand))
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() *graph.Node {
	t := p.cur()
	switch t.Type {
	case token.Int:
		v, convErr := strconv.ParseInt(t.Lexeme, 10, 64)
		if convErr != nil {
			p.fail(sonerr.UnexpectedToken, fmt.Sprintf("malformed integer literal %q", t.Lexeme))
		}
		p.advance()
		return p.g.Peephole(p.g.NewConst(&t, p.g.Pool.IntConst(v)))

	case token.Float:
		v, convErr := strconv.ParseFloat(t.Lexeme, 64)
		if convErr != nil {
			p.fail(sonerr.UnexpectedToken, fmt.Sprintf("malformed float literal %q", t.Lexeme))
		}
		p.advance()
		return p.g.Peephole(p.g.NewConst(&t, p.g.Pool.FloatConst(v)))

	case token.Ident:
		idx, ok := p.g.Scope.Find(t.Lexeme)
		if !ok {
			p.fail(sonerr.UndefinedIdentifier, fmt.Sprintf("undefined identifier %q", t.Lexeme))
		}
		p.advance()
		return p.g.Scope.Input[idx]

	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, sonerr.MissingCloseParen, "')'")
		return inner

	default:
		p.fail(sonerr.UnexpectedToken, fmt.Sprintf("unexpected token %q in expression", t.Lexeme))
		return nil
	}
}
