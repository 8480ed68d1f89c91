package graph

import (
	"sonc/internal/ops"
	"sonc/internal/token"
	"sonc/internal/types"
)

// Arg returns the peepholed Proj reading argument index out of Start's
// argument tuple (§3.2: a function's parameters are read off Start via
// Proj exactly like an If's two control arms).
func (g *Graph) Arg(index int) *Node {
	return g.Peephole(g.newProj(g.Start, index))
}

// NewConst creates a constant node carrying val, with Start's control as
// its sole input (§3.2: Const nodes float on control for scheduling
// purposes only, never consume it as data).
func (g *Graph) NewConst(tok *token.Token, val *types.Type) *Node {
	n := g.newNode(Const, tok)
	n.Val = val
	n.PushInput(g.Start)
	return n
}

// NewBinOp creates an arithmetic node of the kind matching op (KindOfOp is
// fatal for comparison and logical operators),
// with lhs/rhs as its two data inputs (§3.2's input-shape table: BinOp =
// [lhs, rhs], no control input).
func (g *Graph) NewBinOp(tok *token.Token, op ops.Op, lhs, rhs *Node) *Node {
	n := g.newNode(KindOfOp(op), tok)
	n.Op = op
	n.PushInput(lhs)
	n.PushInput(rhs)
	return n
}

// NewNeg creates a unary negation node over x.
func (g *Graph) NewNeg(tok *token.Token, x *Node) *Node {
	n := g.newNode(Neg, tok)
	n.Op = ops.Neg
	n.PushInput(x)
	return n
}

// NewRet creates the function return node: inputs are [ctrl, value]
// (§3.2).
func (g *Graph) NewRet(tok *token.Token, ctrl, value *Node) *Node {
	n := g.newNode(Ret, tok)
	n.PushInput(ctrl)
	n.PushInput(value)
	return n
}

// NewIf creates a two-way control split: inputs are [ctrl, predicate]
// (§3.2). Its two Proj children (index 0 = true arm, 1 = false arm) are
// created immediately and returned alongside it, since an If is useless
// without them.
func (g *Graph) NewIf(tok *token.Token, ctrl, pred *Node) (ifNode, trueProj, falseProj *Node) {
	ifNode = g.newNode(If, tok)
	ifNode.PushInput(ctrl)
	ifNode.PushInput(pred)
	ifNode = g.Peephole(ifNode)
	trueProj = g.Peephole(g.newProj(ifNode, 0))
	falseProj = g.Peephole(g.newProj(ifNode, 1))
	return ifNode, trueProj, falseProj
}

func (g *Graph) newProj(ctrl *Node, index int) *Node {
	n := g.newNode(Proj, nil)
	n.Index = index
	n.PushInput(ctrl)
	return n
}

// NewRegion creates a control-merge node joining the two arms of an If
// (§3.2: Region's inputs are the two incoming control edges in arm
// order).
func (g *Graph) NewRegion(tok *token.Token, trueCtrl, falseCtrl *Node) *Node {
	n := g.newNode(Region, tok)
	n.PushInput(trueCtrl)
	n.PushInput(falseCtrl)
	return n
}

// NewPhi creates a value-merge node at region selecting between a (the
// true-arm value) and b (the false-arm value); inputs are [region, a, b]
// (§3.2).
func (g *Graph) NewPhi(region, a, b *Node) *Node {
	n := g.newNode(Phi, nil)
	n.PushInput(region)
	n.PushInput(a)
	n.PushInput(b)
	return n
}
