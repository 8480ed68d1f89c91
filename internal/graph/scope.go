package graph

import "sonc/internal/sonerr"

// VariableScope is the Scope node's payload: a stack of lexical frames,
// each mapping a variable name to its slot index in the Scope node's
// Input list. A Scope node's inputs literally ARE the live SSA values
// (§3.3) -- this is the defining trick of the scope-node design, grounded
// on original_source/src/son/node/scope.h.
type VariableScope struct {
	frames []frame
}

type frame struct {
	names []string // parallel to a slice of the owning Scope node's Input indices
	base  int       // first Input index belonging to this frame
}

// newScopeNode creates a fresh Scope node with ctrl as its sole initial
// input (slot 0, the implicit control/memory thread) and one empty frame.
func (g *Graph) newScopeNode(ctrl *Node) *Node {
	n := g.newNode(Scope, nil)
	n.scope = &VariableScope{}
	n.PushInput(ctrl)
	n.scope.frames = append(n.scope.frames, frame{base: 1})
	return n
}

// PushScope opens a new lexical frame (entering a block).
func (n *Node) PushScope() {
	n.scope.frames = append(n.scope.frames, frame{base: len(n.Input)})
}

// PopScope closes the innermost lexical frame, discarding its slots. Any
// value that became unused as a result is killed by PopInput's cascade.
func (n *Node) PopScope() {
	top := len(n.scope.frames) - 1
	f := n.scope.frames[top]
	n.PopInputs(len(n.Input) - f.base)
	n.scope.frames = n.scope.frames[:top]
}

// Define introduces a new name in the innermost frame bound to val.
// Fatal if the name is already declared in that frame (§7 tier 2: the
// parser must reject shadowing before calling Define, via
// MalformedVarDecl).
func (n *Node) Define(name string, val *Node) {
	top := len(n.scope.frames) - 1
	f := &n.scope.frames[top]
	for _, existing := range f.names {
		if existing == name {
			sonerr.Fatal("graph: Define called for already-declared name %q", name)
		}
	}
	f.names = append(f.names, name)
	n.PushInput(val)
}

// Find looks up name from the innermost frame outward, returning its
// Input index and true, or (0, false) if undeclared.
func (n *Node) Find(name string) (int, bool) {
	for i := len(n.scope.frames) - 1; i >= 0; i-- {
		f := n.scope.frames[i]
		for j := len(f.names) - 1; j >= 0; j-- {
			if f.names[j] == name {
				return f.base + j, true
			}
		}
	}
	return 0, false
}

// Update rewires the binding for name to val, wherever in the frame stack
// it lives. Fatal if name is undeclared -- the parser must check Find
// first and raise AssignUndeclaredName to the user otherwise.
func (n *Node) Update(name string, val *Node) {
	idx, ok := n.Find(name)
	if !ok {
		sonerr.Fatal("graph: Update called for undeclared name %q", name)
	}
	n.SetInput(idx, val)
}

// Duplicate makes an independent copy of a Scope node sharing the same
// current bindings, used to fork the live-value set across an If's two
// arms (§3.3, §4.4's If/Region/Phi protocol). The copy's Input slice is
// freshly allocated but points at the same def nodes, so each arm can
// diverge via SetInput/Update without disturbing the other or the
// original.
func (g *Graph) Duplicate(s *Node) *Node {
	dup := g.newNode(Scope, nil)
	cp := &VariableScope{frames: make([]frame, len(s.scope.frames))}
	for i, f := range s.scope.frames {
		cp.frames[i] = frame{base: f.base, names: append([]string(nil), f.names...)}
	}
	dup.scope = cp
	for _, in := range s.Input {
		dup.PushInput(in)
	}
	return dup
}

// Merge reconciles two forked Scope nodes (the live-out state of an If's
// true and false arms) at a Region, replacing each differing slot with a
// Phi selecting between the two arms (§3.3, §4.4). other is killed once
// its slots have been folded into n; n is mutated and returned in place,
// matching the original's in-place merge.
func (g *Graph) Merge(region, n, other *Node) *Node {
	if len(n.Input) != len(other.Input) {
		sonerr.Fatal("graph: Merge called on scopes with divergent frame shape (%d vs %d slots)", len(n.Input), len(other.Input))
	}
	for i := 1; i < len(n.Input); i++ {
		a, b := n.Input[i], other.Input[i]
		if a == b {
			continue
		}
		phi := g.NewPhi(region, a, b)
		n.SetInput(i, g.Peephole(phi))
	}
	other.PopInputs(len(other.Input))
	return n
}
