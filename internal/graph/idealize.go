package graph

import (
	"sonc/internal/ops"
	"sonc/internal/types"
)

// Idealize performs the local algebraic-rewrite half of peephole (§4.4):
// given n with its Compute'd type already assigned, it returns a
// replacement node if some rewrite applies, or nil if n is already in
// canonical form. Peephole re-runs both halves on whatever Idealize
// returns, so a rewrite need only make local progress -- it does not have
// to reach a fixed point itself. Grounded on
// original_source/src/son/node/idealize.h.
func (g *Graph) Idealize(n *Node) *Node {
	switch n.Kind {
	case Add:
		return g.idealizeAdd(n)
	case Sub:
		return g.idealizeSub(n)
	case Mul:
		return g.idealizeMul(n)
	case Div:
		return g.idealizeDiv(n)
	case Mod:
		return g.idealizeMod(n)
	case Neg:
		return g.idealizeNeg(n)
	case Proj:
		return g.idealizeProj(n)
	default:
		return nil
	}
}

func isIntConst(t *types.Type, v int64) bool {
	return t.Kind == types.Int && types.Constant(t) && t.IntValue() == v
}

// shouldSwap imposes the total order §4.4 needs to canonicalize
// commutative operand order: constants sort after non-constants, and
// ties within a category break on node uid. Repeatedly applying this rule
// across every Add/Mul in a graph is what makes the "combine constants
// across chained adds" rewrite (below) always find its constant on the
// right.
func shouldSwap(lhs, rhs *Node) bool {
	lc, rc := lhs.Kind == Const, rhs.Kind == Const
	if lc != rc {
		return lc // a bare constant on the left always swaps right
	}
	return lhs.UID > rhs.UID
}

// idealizeAdd implements the Add canonicalization sequence: constant
// folding, additive identity, the x+x strength reduction, commutative
// canonicalization, then two constant-reassociation rules that keep a
// chain of adds normalized as "expression + single combined constant",
// which is what lets later folds recognize the constant half without
// walking the whole chain.
func (g *Graph) idealizeAdd(n *Node) *Node {
	lhs, rhs := n.Input[0], n.Input[1]

	// 1. both operands constant: fold entirely.
	if types.Constant(lhs.Type) && types.Constant(rhs.Type) {
		return g.NewConst(n.Token, n.Type)
	}
	// 2. x + 0 = x.
	if isIntConst(rhs.Type, 0) {
		return lhs
	}
	// 3. 0 + x = x.
	if isIntConst(lhs.Type, 0) {
		return rhs
	}
	// 4. x + x = x * 2 (same def, not merely equal value).
	if lhs == rhs {
		two := g.Peephole(g.NewConst(n.Token, g.Pool.IntConst(2)))
		return g.Peephole(g.NewBinOp(n.Token, ops.Mul, lhs, two))
	}
	// 5. canonical operand order. Both defs stay inputs of n, so swapping
	//    the slots directly leaves every Output multiset unchanged.
	if shouldSwap(lhs, rhs) {
		n.Input[0], n.Input[1] = rhs, lhs
		return n
	}
	// 6. (x + c1) + c2 = x + (c1 + c2).
	if lhs.Kind == Add && types.Constant(lhs.Input[1].Type) && types.Constant(rhs.Type) {
		combined := g.Peephole(g.NewConst(n.Token, g.Pool.IntConst(lhs.Input[1].Type.IntValue()+rhs.Type.IntValue())))
		return g.Peephole(g.NewBinOp(n.Token, ops.Add, lhs.Input[0], combined))
	}
	// 7. (x + c) + y = (x + y) + c, for non-constant y: keeps the combined
	//    constant pinned to the outermost Add so rule 6 can always find it.
	if lhs.Kind == Add && types.Constant(lhs.Input[1].Type) && !types.Constant(rhs.Type) {
		inner := g.Peephole(g.NewBinOp(n.Token, ops.Add, lhs.Input[0], rhs))
		return g.Peephole(g.NewBinOp(n.Token, ops.Add, inner, lhs.Input[1]))
	}
	// 8. already canonical.
	return nil
}

func (g *Graph) idealizeSub(n *Node) *Node {
	lhs, rhs := n.Input[0], n.Input[1]
	if types.Constant(lhs.Type) && types.Constant(rhs.Type) {
		return g.NewConst(n.Token, n.Type)
	}
	// x - 0 = x.
	if isIntConst(rhs.Type, 0) {
		return lhs
	}
	// x - x = 0 (same def, not merely equal value).
	if lhs == rhs {
		return g.NewConst(n.Token, g.Pool.IntConst(0))
	}
	return nil
}

func (g *Graph) idealizeMul(n *Node) *Node {
	lhs, rhs := n.Input[0], n.Input[1]
	if types.Constant(lhs.Type) && types.Constant(rhs.Type) {
		return g.NewConst(n.Token, n.Type)
	}
	// x * 0 = 0.
	if isIntConst(rhs.Type, 0) || isIntConst(lhs.Type, 0) {
		return g.NewConst(n.Token, g.Pool.IntConst(0))
	}
	// x * 1 = x.
	if isIntConst(rhs.Type, 1) {
		return lhs
	}
	if isIntConst(lhs.Type, 1) {
		return rhs
	}
	if shouldSwap(lhs, rhs) {
		n.Input[0], n.Input[1] = rhs, lhs
		return n
	}
	return nil
}

func (g *Graph) idealizeDiv(n *Node) *Node {
	lhs, rhs := n.Input[0], n.Input[1]
	if types.Constant(lhs.Type) && types.Constant(rhs.Type) {
		return g.NewConst(n.Token, n.Type)
	}
	// x / 1 = x.
	if isIntConst(rhs.Type, 1) {
		return lhs
	}
	return nil
}

func (g *Graph) idealizeMod(n *Node) *Node {
	lhs, rhs := n.Input[0], n.Input[1]
	if types.Constant(lhs.Type) && types.Constant(rhs.Type) {
		return g.NewConst(n.Token, n.Type)
	}
	return nil
}

func (g *Graph) idealizeNeg(n *Node) *Node {
	x := n.Input[0]
	if types.Constant(x.Type) {
		return g.NewConst(n.Token, n.Type)
	}
	// -(-x) = x.
	if x.Kind == Neg {
		return x.Input[0]
	}
	return nil
}

// idealizeProj never rewrites a Proj. A Proj reading the dead arm of a
// constant-predicate If already has type Top from If's Compute; neither
// Region's Compute nor Merge looks at that type, so the dead arm is still
// merged like a live one.
func (g *Graph) idealizeProj(n *Node) *Node {
	return nil
}
