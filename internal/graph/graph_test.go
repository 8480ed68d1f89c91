package graph

import (
	"testing"

	"sonc/internal/ops"
	"sonc/internal/types"
)

// oneArgTuple mirrors the parser's real "one implicit int64 argument"
// convention, without importing the parser package (which would cycle
// back into graph).
func oneArgTuple() *types.Type {
	p := types.NewPool()
	return p.GetTuple(types.Known, []*types.Type{p.IntSized(8)})
}

func addOp() ops.Op { return ops.Add }
func subOp() ops.Op { return ops.Sub }
func mulOp() ops.Op { return ops.Mul }

func TestConstantFold(t *testing.T) {
	g := NewGraph(oneArgTuple())
	five := g.Peephole(g.NewConst(nil, g.Pool.IntConst(5)))
	three := g.Peephole(g.NewConst(nil, g.Pool.IntConst(3)))
	sum := g.Peephole(g.NewBinOp(nil, addOp(), five, three))

	if sum.Kind != Const {
		t.Fatalf("5+3 should fold to a Const node, got %v", sum.Kind)
	}
	if sum.Type.IntValue() != 8 {
		t.Fatalf("5+3 folded to %d, want 8", sum.Type.IntValue())
	}
}

func TestAddIdentity(t *testing.T) {
	g := NewGraph(oneArgTuple())
	arg := g.Arg(0)
	zero := g.Peephole(g.NewConst(nil, g.Pool.IntConst(0)))
	sum := g.Peephole(g.NewBinOp(nil, addOp(), arg, zero))

	if sum != arg {
		t.Fatalf("arg+0 should idealize straight back to arg, got a distinct node (%v)", sum.Kind)
	}
}

func TestSubSelfIsZero(t *testing.T) {
	g := NewGraph(oneArgTuple())
	arg := g.Arg(0)
	diff := g.Peephole(g.NewBinOp(nil, subOp(), arg, arg))

	if diff.Kind != Const || diff.Type.IntValue() != 0 {
		t.Fatalf("arg-arg should fold to constant 0, got %v", diff.Kind)
	}
}

func TestAddSelfBecomesMulByTwo(t *testing.T) {
	g := NewGraph(oneArgTuple())
	arg := g.Arg(0)
	sum := g.Peephole(g.NewBinOp(nil, addOp(), arg, arg))

	if sum.Kind != Mul {
		t.Fatalf("arg+arg should idealize to a Mul node, got %v", sum.Kind)
	}
	if sum.Input[0] != arg || sum.Input[1].Kind != Const || sum.Input[1].Type.IntValue() != 2 {
		t.Fatalf("arg+arg should idealize to arg*2, got inputs %v", sum.Input)
	}
}

func TestMulByOneIsIdentity(t *testing.T) {
	g := NewGraph(oneArgTuple())
	arg := g.Arg(0)
	one := g.Peephole(g.NewConst(nil, g.Pool.IntConst(1)))
	prod := g.Peephole(g.NewBinOp(nil, mulOp(), arg, one))

	if prod != arg {
		t.Fatalf("arg*1 should idealize to arg, got %v", prod.Kind)
	}
}

func TestDoubleNegIsIdentity(t *testing.T) {
	g := NewGraph(oneArgTuple())
	arg := g.Arg(0)
	neg := g.Peephole(g.NewNeg(nil, arg))
	negneg := g.Peephole(g.NewNeg(nil, neg))

	if negneg != arg {
		t.Fatalf("-(-arg) should idealize to arg, got %v", negneg.Kind)
	}
}

func TestKillCascades(t *testing.T) {
	g := NewGraph(oneArgTuple())
	five := g.Peephole(g.NewConst(nil, g.Pool.IntConst(5)))
	neg := g.Peephole(g.NewNeg(nil, five))
	if neg.Unused() {
		t.Fatalf("neg should have a user (itself built from five) before being dropped")
	}

	// Dropping the only use of neg should cascade-kill it and its const
	// input, matching §4.3's dead-code invariant.
	holder := g.newNode(Ret, nil)
	holder.PushInput(neg)
	holder.PopInput()
	if !neg.Dead() {
		t.Fatalf("neg should be dead after its last user popped it")
	}
}

func TestScopeDefineFindUpdate(t *testing.T) {
	g := NewGraph(oneArgTuple())
	arg := g.Arg(0)
	g.Scope.Define("x", arg)

	idx, ok := g.Scope.Find("x")
	if !ok {
		t.Fatalf("x should be found after Define")
	}
	if g.Scope.Input[idx] != arg {
		t.Fatalf("x should resolve to the value passed to Define")
	}

	five := g.Peephole(g.NewConst(nil, g.Pool.IntConst(5)))
	g.Scope.Update("x", five)
	if g.Scope.Input[idx] != five {
		t.Fatalf("x should resolve to the updated value after Update")
	}
}

func TestPhiComputeIsBottomPlaceholder(t *testing.T) {
	g := NewGraph(oneArgTuple())
	ctrl := g.Scope.Input[0]
	one := g.Peephole(g.NewConst(nil, g.Pool.IntConst(1)))
	two := g.Peephole(g.NewConst(nil, g.Pool.IntConst(2)))
	region := g.Peephole(g.NewRegion(nil, ctrl, ctrl))
	phi := g.Peephole(g.NewPhi(region, one, two))

	if phi.Kind != Phi {
		t.Fatalf("Phi merging two distinct constants should stay a Phi node, got %v", phi.Kind)
	}
	bottom := g.Pool.Bottom()
	if phi.Type != bottom {
		t.Fatalf("Phi's type should be the Pure:Bottom placeholder, not a narrowed meet, got %v", phi.Type)
	}
}

func TestScopePushPopDropsInnerFrame(t *testing.T) {
	g := NewGraph(oneArgTuple())
	g.Scope.PushScope()
	five := g.Peephole(g.NewConst(nil, g.Pool.IntConst(5)))
	g.Scope.Define("y", five)
	if _, ok := g.Scope.Find("y"); !ok {
		t.Fatalf("y should be visible inside its own frame")
	}
	g.Scope.PopScope()
	if _, ok := g.Scope.Find("y"); ok {
		t.Fatalf("y should not be visible after its frame is popped")
	}
}
