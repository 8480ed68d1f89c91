package parser

import (
	"fmt"

	"sonc/internal/graph"
	"sonc/internal/sonerr"
	"sonc/internal/token"
)

// parseStatements consumes statements until EOF or a closing '}', honoring
// the grammar's one restriction beyond the original design: "return" is
// only legal directly in the outermost function body, never inside an
// if/else arm or a nested block, so a function has exactly one exit node
// and Parse never has to reconcile two live Ret nodes. It returns the
// function's Ret node the moment one is parsed, leaving any statements
// after it unconsumed (dead code, matching §3's "peephole reaches
// everything reachable from Start" model -- unreachable statements simply
// never get parsed into nodes).
func (p *Parser) parseStatements(allowReturn bool) *graph.Node {
	for {
		if p.check(token.EOF) || p.check(token.RBrace) {
			return nil
		}
		if ret := p.parseStatement(allowReturn); ret != nil {
			return ret
		}
	}
}

func (p *Parser) parseStatement(allowReturn bool) *graph.Node {
	switch {
	case p.check(token.Return):
		if !allowReturn {
			p.fail(sonerr.UnexpectedToken, "return is only allowed at the end of the function body")
		}
		p.advance()
		val := p.parseExpr()
		p.expect(token.Semi, sonerr.MissingTerminator, "';'")
		ctrl := p.g.Scope.Input[0]
		return p.g.Peephole(p.g.NewRet(nil, ctrl, val))

	case p.check(token.Let):
		p.advance()
		nameTok := p.expect(token.Ident, sonerr.MalformedVarDecl, "identifier")
		p.expectOp("=", sonerr.MalformedVarDecl)
		val := p.parseExpr()
		p.expect(token.Semi, sonerr.MissingTerminator, "';'")
		p.g.Scope.Define(nameTok.Lexeme, val)
		return nil

	case p.check(token.If):
		p.advance()
		p.parseIf()
		return nil

	case p.check(token.LBrace):
		p.advance()
		p.g.Scope.PushScope()
		p.parseStatements(false)
		p.g.Scope.PopScope()
		p.expect(token.RBrace, sonerr.MissingCloseBrace, "'}'")
		return nil

	case p.check(token.Ident):
		if _, ok := p.g.Scope.Find(p.cur().Lexeme); !ok {
			p.fail(sonerr.AssignUndeclaredName, fmt.Sprintf("assignment to undeclared name %q", p.cur().Lexeme))
		}
		nameTok := p.advance()
		p.expectOp("=", sonerr.UnexpectedToken)
		val := p.parseExpr()
		p.expect(token.Semi, sonerr.MissingTerminator, "';'")
		p.g.Scope.Update(nameTok.Lexeme, val)
		return nil

	default:
		p.fail(sonerr.UnexpectedToken, fmt.Sprintf("unexpected token %q", p.cur().Lexeme))
		return nil
	}
}

// parseIf implements the If/Region/Phi fork-join protocol of §3.3/§4.4:
// duplicate the live scope into two independent copies, parse each arm
// against its own copy (rooted at that arm's Proj), then Merge the two
// back together at a fresh Region, inserting a Phi anywhere the two arms
// disagree on a variable's value.
func (p *Parser) parseIf() {
	p.expect(token.LParen, sonerr.UnexpectedToken, "'('")
	pred := p.parseExpr()
	p.expect(token.RParen, sonerr.MissingCloseParen, "')'")

	ctrl := p.g.Scope.Input[0]
	_, tProj, fProj := p.g.NewIf(nil, ctrl, pred)

	saved := p.g.Scope

	trueScope := p.g.Duplicate(saved)
	trueScope.SetInput(0, tProj)
	p.g.Scope = trueScope
	p.parseBlock()
	trueOut := p.g.Scope

	falseScope := p.g.Duplicate(saved)
	falseScope.SetInput(0, fProj)
	p.g.Scope = falseScope
	if p.check(token.Else) {
		p.advance()
		if p.check(token.If) {
			p.advance()
			p.parseIf()
		} else {
			p.parseBlock()
		}
	}
	falseOut := p.g.Scope

	region := p.g.Peephole(p.g.NewRegion(nil, trueOut.Input[0], falseOut.Input[0]))
	merged := p.g.Merge(region, trueOut, falseOut)
	merged.SetInput(0, region)
	p.g.Scope = merged
}

func (p *Parser) parseBlock() {
	p.expect(token.LBrace, sonerr.UnexpectedToken, "'{'")
	p.g.Scope.PushScope()
	p.parseStatements(false)
	p.g.Scope.PopScope()
	p.expect(token.RBrace, sonerr.MissingCloseBrace, "'}'")
}
