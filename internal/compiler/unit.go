// Package compiler ties the lexer, parser, and printer together into one
// compilation unit per source file (§5: "one arena, one type pool, one
// parser instance per unit; never shared across files"). A Unit is tagged
// with a github.com/google/uuid so multi-file runs and logs can
// correlate diagnostics back to a specific file without relying on path
// strings alone, the way a build system gives every compilation action
// an opaque id.
package compiler

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"

	"sonc/internal/graph"
	"sonc/internal/parser"
	"sonc/internal/printer"
)

// Unit is the result of compiling one source file: its finished graph,
// its Ret node, and the rendered text form, or the error that stopped it.
type Unit struct {
	ID     uuid.UUID
	File   string
	Source string

	Graph  *graph.Graph
	Ret    *graph.Node
	Output string

	Err error
}

// Compile runs one file through Scanner -> Parser -> Printer, never
// letting a fatal invariant panic escape past this boundary uncaught:
// callers (the CLI, the REPL) see it surfaced as Unit.Err alongside
// everything a recoverable parse error would have produced, but it is
// the caller's job to distinguish the two (sonerr.ParseError vs anything
// else) if it needs to render them differently (§7).
func Compile(file, source string) (u *Unit) {
	u = &Unit{ID: uuid.New(), File: file, Source: source}
	defer func() {
		if r := recover(); r != nil {
			u.Err = fmt.Errorf("%s: fatal: %+v", file, r)
		}
	}()

	p := parser.New(file, source)
	g, ret, err := p.Parse()
	if err != nil {
		u.Err = fmt.Errorf("%s: %w", file, err)
		return u
	}
	u.Graph = g
	u.Ret = ret

	var buf bytes.Buffer
	printer.Print(&buf, g, ret)
	u.Output = buf.String()
	return u
}
