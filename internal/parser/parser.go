// Package parser builds a Sea-of-Nodes graph directly from source text --
// there is no intermediate AST (§4.1's "no separate AST stage" design
// decision). Expression parsing uses a Shunting-Yard precedence climb
// driven by the ops package's priority table; statement parsing is plain
// recursive descent over the block/if/let/assign/return grammar.
//
// Grounded on original_source/src/son/parser.h, with lexing supplied by
// internal/token and operator semantics by internal/ops.
package parser

import (
	"fmt"

	"sonc/internal/graph"
	"sonc/internal/sonerr"
	"sonc/internal/token"
	"sonc/internal/types"
)

// Parser drives one compilation unit's worth of tokens against a fresh
// Graph. Parsing stops at the first recoverable error (§7 tier 1): fail
// panics with a *sonerr.ParseError, and Parse recovers it and returns it.
// The Parser itself has no error field.
type Parser struct {
	file   string
	lines  []string
	toks   []token.Token
	pos    int

	g *graph.Graph
}

// New tokenizes source and prepares a parser over a fresh graph. file is
// used only for diagnostics. The program is compiled as a single function
// over one implicit int64 argument named "arg", matching every scenario
// in §8.
func New(file, source string) *Parser {
	return &Parser{
		file:  file,
		lines: splitLines(source),
		toks:  token.NewScanner(source).ScanTokens(),
		g:     graph.NewGraph(argTupleType()),
	}
}

// argTupleType builds the argument-tuple type for the program's sole
// implicit parameter, "arg": a full-range int64. It uses a throwaway pool
// since Start.Args is only ever read back as a pointer, never re-interned
// against the unit's real type pool.
func argTupleType() *types.Type {
	p := types.NewPool()
	return p.GetTuple(types.Known, []*types.Type{p.IntSized(8)})
}

func splitLines(source string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	return append(lines, source[start:])
}

// Parse runs the full program grammar and returns the finished graph
// together with the function's Ret node, or the first recoverable parse
// error encountered (§7 tier 1).
func (p *Parser) Parse() (g *graph.Graph, ret *graph.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*sonerr.ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	p.g.Scope.Define("arg", p.g.Arg(0))

	ret = p.parseStatements(true)
	if ret == nil {
		p.fail(sonerr.MissingTerminator, "function body must end in a return statement")
	}
	return p.g, ret, nil
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) check(tt token.Type) bool {
	return p.cur().Type == tt
}

func (p *Parser) checkOp(lexeme string) bool {
	return p.cur().Type == token.Op && p.cur().Lexeme == lexeme
}

func (p *Parser) match(tt token.Type) (token.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) matchOp(lexeme string) bool {
	if p.checkOp(lexeme) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(tt token.Type, cat sonerr.Category, what string) token.Token {
	t, ok := p.match(tt)
	if !ok {
		p.fail(cat, fmt.Sprintf("expected %s, found %q", what, p.cur().Lexeme))
	}
	return t
}

func (p *Parser) expectOp(lexeme string, cat sonerr.Category) {
	if !p.matchOp(lexeme) {
		p.fail(cat, fmt.Sprintf("expected %q, found %q", lexeme, p.cur().Lexeme))
	}
}

func (p *Parser) fail(cat sonerr.Category, message string) {
	t := p.cur()
	pe := sonerr.New(cat, message, t.Line, t.Column)
	if t.Line >= 1 && t.Line <= len(p.lines) {
		pe = pe.WithSource(p.lines[t.Line-1])
	}
	panic(pe)
}
