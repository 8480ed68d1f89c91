// Package printer renders a finished graph as human-readable text: one
// line per node reachable from Start or the Ret node, ordered by uid,
// showing each node's kind, uid, inputs, and inferred type. This is the
// textual form §6.3 asks the CLI to emit and §8's golden scenarios
// compare against.
//
// Grounded on original_source/src/son/node/debug.h and
// src/son/type/debug.h's node/type rendering conventions, adapted to
// Go's fmt.Stringer idiom rather than the original's stream-operator
// overloads.
package printer

import (
	"fmt"
	"io"
	"sort"

	"sonc/internal/graph"
	"sonc/internal/ops"
	"sonc/internal/types"
)

// Print writes every node reachable from g.Start or ret (following both
// input and output edges) to w, ordered by uid for determinism, followed
// by the function's return
// expression in infix form.
func Print(w io.Writer, g *graph.Graph, ret *graph.Node) {
	seen := map[*graph.Node]bool{}
	var nodes []*graph.Node
	var walk func(n *graph.Node)
	walk = func(n *graph.Node) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		nodes = append(nodes, n)
		for _, in := range n.Input {
			walk(in)
		}
		for _, out := range n.Output {
			walk(out)
		}
	}
	walk(g.Start)
	walk(ret)

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].UID < nodes[j].UID })

	for _, n := range nodes {
		fmt.Fprintf(w, "%s\n", describe(n))
	}
	fmt.Fprintf(w, "return %s;\n", Expr(ret.Input[1]))
}

// describe renders one node's header line: #uid Kind label[#in ...] : type,
// where label is the operator symbol for arithmetic nodes and the kind
// name otherwise.
func describe(n *graph.Node) string {
	ins := make([]string, len(n.Input))
	for i, in := range n.Input {
		if in == nil {
			ins[i] = "_"
		} else {
			ins[i] = fmt.Sprintf("#%d", in.UID)
		}
	}
	label := n.Kind.String()
	if n.Kind >= graph.Add && n.Kind <= graph.Neg {
		label = ops.Symbol(n.Op)
	}
	ty := "<dead>"
	if n.Type != nil {
		ty = TypeString(n.Type)
	}
	return fmt.Sprintf("#%-3d %-8s %-24v : %s", n.UID, n.Kind, fmt.Sprintf("%s%v", label, ins), ty)
}

// TypeString renders a lattice element the way §6.3 expects: Top/Bottom
// by name, a singleton range as its value, a wide range as [lo,hi].
func TypeString(t *types.Type) string {
	switch t.Level {
	case types.Top:
		return t.Kind.String() + ":Top"
	case types.Bottom:
		return t.Kind.String() + ":Bottom"
	}
	switch t.Kind {
	case types.Int, types.Bool:
		if t.IntMin == t.IntMax {
			return fmt.Sprintf("%d", t.IntMin)
		}
		return fmt.Sprintf("[%d,%d]", t.IntMin, t.IntMax)
	case types.Float:
		if t.FloatMin == t.FloatMax {
			return fmt.Sprintf("%g", t.FloatMin)
		}
		return fmt.Sprintf("[%g,%g]", t.FloatMin, t.FloatMax)
	case types.Tuple:
		out := "("
		for i, e := range t.Elems {
			if i > 0 {
				out += ", "
			}
			out += TypeString(e)
		}
		return out + ")"
	default:
		return t.Kind.String()
	}
}

// Expr renders a value node as an infix expression, recursing through
// arithmetic but stopping at named variables and constants -- it never
// tries to reconstruct source-level let bindings, only the value DAG.
func Expr(n *graph.Node) string {
	switch n.Kind {
	case graph.Const:
		return TypeString(n.Val)
	case graph.Neg:
		return fmt.Sprintf("-%s", Expr(n.Input[0]))
	case graph.Add, graph.Sub, graph.Mul, graph.Div, graph.Mod:
		return fmt.Sprintf("(%s %s %s)", Expr(n.Input[0]), ops.Symbol(n.Op), Expr(n.Input[1]))
	case graph.Proj:
		return fmt.Sprintf("arg%d", n.Index)
	case graph.Phi:
		return fmt.Sprintf("phi(%s, %s)", Expr(n.Input[1]), Expr(n.Input[2]))
	default:
		return fmt.Sprintf("#%d", n.UID)
	}
}
