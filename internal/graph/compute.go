package graph

import (
	"sonc/internal/ops"
	"sonc/internal/sonerr"
	"sonc/internal/types"
)

// Compute performs the bottom-up abstract-interpretation half of
// peephole (§4.4): given n's current inputs, it returns n's best-known
// type in the lattice, assuming every input already carries its own
// best-known type. It never mutates the graph's shape -- only Idealize
// rewrites edges. Grounded on original_source/src/son/node/compute.h.
func (g *Graph) Compute(n *Node) *types.Type {
	p := g.Pool
	switch n.Kind {
	case Start:
		return n.Args

	case Const:
		return n.Val

	case Ret:
		return p.Ctrl()

	case Region:
		return p.Ctrl()

	case If:
		// An If's type is a Tuple of the two arm control tokens, gated by
		// whether the predicate is a known constant: a constant predicate
		// collapses the untaken arm to Top, which the Proj reading that arm
		// then carries as its type. No rewrite removes the arm; it is still
		// parsed and merged at the Region.
		pred := n.Input[1].Type
		trueArm, falseArm := p.Ctrl(), p.Ctrl()
		if types.Constant(pred) && pred.Kind != types.Tuple {
			if pred.IntValue() != 0 {
				falseArm = p.TopOf(types.Ctrl)
			} else {
				trueArm = p.TopOf(types.Ctrl)
			}
		}
		return p.GetTuple(types.Known, []*types.Type{trueArm, falseArm})

	case Proj:
		ctrlType := n.Input[0].Type
		if ctrlType.Kind != types.Tuple || n.Index >= len(ctrlType.Elems) {
			sonerr.Fatal("graph: Proj %d read out of range of tuple with %d elements", n.Index, len(ctrlType.Elems))
		}
		return ctrlType.Elems[n.Index]

	case Phi:
		// Pure:Bottom is a sound but imprecise placeholder -- Phi never
		// meets its arm types here, matching the compute table exactly
		// rather than strengthening it.
		return p.Bottom()

	case Add, Sub, Mul, Div, Mod:
		return computeArith(p, n)

	case Neg:
		return computeNeg(p, n.Input[0].Type)

	case Scope:
		return p.Ctrl()

	default:
		sonerr.Fatal("graph: Compute has no case for kind %v", n.Kind)
		return nil
	}
}

func computeArith(p *types.Pool, n *Node) *types.Type {
	a, b := n.Input[0].Type, n.Input[1].Type
	if a.Kind != b.Kind || (a.Kind != types.Int && a.Kind != types.Float) {
		return p.BottomOf(types.Int)
	}
	if a.Level == types.Top || b.Level == types.Top {
		return p.TopOf(a.Kind)
	}
	if types.Constant(a) && types.Constant(b) {
		if a.Kind == types.Float {
			return p.FloatConst(applyFloat(n.Op, a.FloatValue(), b.FloatValue()))
		}
		return p.IntConst(ops.Apply(n.Op, a.IntValue(), b.IntValue()))
	}
	return p.BottomOf(a.Kind)
}

func applyFloat(op ops.Op, a, b float64) float64 {
	switch op {
	case ops.Add:
		return a + b
	case ops.Sub:
		return a - b
	case ops.Mul:
		return a * b
	case ops.Div:
		if b == 0 {
			return 0
		}
		return a / b
	default:
		sonerr.Fatal("graph: applyFloat called on unimplemented operator %v", op)
		return 0
	}
}

func computeNeg(p *types.Pool, x *types.Type) *types.Type {
	switch {
	case x.Level == types.Top:
		return p.TopOf(x.Kind)
	case x.Kind == types.Int && types.Constant(x):
		return p.IntConst(-x.IntValue())
	case x.Kind == types.Float && types.Constant(x):
		return p.FloatConst(-x.FloatValue())
	case x.Kind == types.Int || x.Kind == types.Float:
		return p.BottomOf(x.Kind)
	default:
		return p.BottomOf(types.Int)
	}
}
