// Package graph implements the Sea-of-Nodes IR of §3.2/§4.3: uniquely
// identified nodes with ordered input (use-def) edges and unordered
// output (def-use) edges maintained as duals, plus the scope node (§3.3),
// the peephole engine (§4.4), and dead-code collection via kill.
//
// Grounded directly on original_source/src/son/node/{node_def,node}.h:
// Node there is a tagged variant with per-kind payload structs
// (NodeConst, NodeBinOp, NodeProj, ...) layered over a common header; Go
// has no struct inheritance, so this implementation follows Design Note
// §9's suggestion literally -- one Node struct with a common header and
// kind-specific payload fields, dispatched by an exhaustive switch on Kind.
package graph

import (
	"sonc/internal/arena"
	"sonc/internal/ops"
	"sonc/internal/sonerr"
	"sonc/internal/token"
	"sonc/internal/types"
)

// Kind identifies what a Node computes and how its inputs are shaped
// (§3.2's input-shape table).
type Kind uint8

const (
	Undefined Kind = iota
	Scope
	Proj
	Start
	Ret
	If
	Region
	Const
	Add
	Sub
	Mul
	Div
	Mod
	Neg
	Phi
)

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "Undefined"
	case Scope:
		return "Scope"
	case Proj:
		return "Proj"
	case Start:
		return "Start"
	case Ret:
		return "Ret"
	case If:
		return "If"
	case Region:
		return "Region"
	case Const:
		return "Const"
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Mod:
		return "Mod"
	case Neg:
		return "Neg"
	case Phi:
		return "Phi"
	default:
		return "Kind(?)"
	}
}

// KindOfOp maps a binary/unary Op to the Node Kind that implements it.
// Panics on an operator this core doesn't implement (§7 tier 2) --
// matches node::type_of_op in node_def.h.
func KindOfOp(op ops.Op) Kind {
	switch op {
	case ops.Neg:
		return Neg
	case ops.Add:
		return Add
	case ops.Sub:
		return Sub
	case ops.Mul:
		return Mul
	case ops.Div:
		return Div
	case ops.Mod:
		return Mod
	default:
		sonerr.Fatal("graph: no Node kind implements operator %v", op)
		return Undefined
	}
}

// Node is the tagged-variant IR node of §3.2. Every node carries:
//   - UID: a unique monotonic identifier (process-or-run-scoped, §3.2),
//   - Kind: its tag,
//   - Token: provenance only, never semantics,
//   - Input: ordered use-def edges (some kinds allow null placeholders),
//   - Output: unordered def-use edges, the dual of every non-nil Input,
//   - Type: best-known lattice position, or nil iff the node is dead.
//
// Kind-specific payload (Index for Proj, Op for Add/Sub/.../Neg, Val for
// Const, Args for Start, the variable scope for Scope) lives alongside the
// header rather than behind an interface, so compute/idealize/peephole can
// dispatch with a single exhaustive switch per Design Note §9.
type Node struct {
	UID   uint32
	Kind  Kind
	Token *token.Token // nil when generated rather than sourced from a token

	Input  []*Node
	Output []*Node
	Type   *types.Type

	// Kind-specific payload.
	Index int         // Proj
	Op    ops.Op      // Add, Sub, Mul, Div, Mod, Neg
	Val   *types.Type // Const
	Args  *types.Type // Start: the argument Tuple type

	scope *VariableScope // Scope only
}

// Graph owns the node arena, uid counter, and type pool for one
// compilation unit (§5's "one triple per unit"). It is the context object
// Design Note §9 asks for in place of the C++ original's process-wide
// Node::uid_counter / Node::node_arena globals.
type Graph struct {
	Pool   *types.Pool
	arena  *arena.Arena[Node]
	nextID uint32

	Start *Node
	Scope *Node // the current top-level Scope node; reassigned across If merges
}

// NewGraph creates an empty compilation-unit graph: a fresh arena, a
// fresh type pool, and a Start node with the given argument tuple type.
func NewGraph(args *types.Type) *Graph {
	g := &Graph{
		Pool:  types.NewPool(),
		arena: arena.New[Node](256),
	}
	g.Start = g.newNode(Start, nil)
	g.Start.Args = args
	g.Start = g.Peephole(g.Start)
	g.Scope = g.newScopeNode(g.Start)
	return g
}

// ArenaBytes reports the live size of the graph's node arena, for -stats.
func (g *Graph) ArenaBytes() uint64 {
	return g.arena.Bytes()
}

// NodeCount reports how many nodes have been allocated (live or dead).
func (g *Graph) NodeCount() int {
	return g.arena.Len()
}

// newNode allocates a fresh Node on the graph's arena with the next uid
// and no inputs/outputs/type yet.
func (g *Graph) newNode(kind Kind, tok *token.Token) *Node {
	g.nextID++
	n := g.arena.Push(Node{UID: g.nextID, Kind: kind, Token: tok})
	return n
}

// PushInput appends def to n's Input list, establishing the dual Output
// edge on def if def is non-nil (§4.3).
func (n *Node) PushInput(def *Node) {
	n.Input = append(n.Input, def)
	if def != nil {
		def.Output = append(def.Output, n)
	}
}

// PopInput drops the last Input, removing the dual Output membership and
// recursively killing def if that was its last use (§4.3).
func (n *Node) PopInput() {
	last := len(n.Input) - 1
	def := n.Input[last]
	n.Input = n.Input[:last]
	if def != nil {
		def.removeOneOutput(n)
		if def.Unused() {
			def.Kill()
		}
	}
}

// PopInputs pops count inputs in reverse order.
func (n *Node) PopInputs(count int) {
	for i := 0; i < count; i++ {
		n.PopInput()
	}
}

// SetInput rewires index to point at newDef, routing dual edges and
// killing the displaced def if it becomes unused (§4.3). A no-op when
// newDef is already the current input.
func (n *Node) SetInput(index int, newDef *Node) *Node {
	oldDef := n.Input[index]
	if oldDef == newDef {
		return n
	}
	if newDef != nil {
		newDef.Output = append(newDef.Output, n)
	}
	if oldDef != nil {
		oldDef.removeOneOutput(n)
		if oldDef.Unused() {
			oldDef.Kill()
		}
	}
	n.Input[index] = newDef
	return newDef
}

// removeOneOutput removes a single occurrence of user from n's Output
// multiset (Output may contain the same user more than once, e.g. x+x,
// §3.2's dual-edge invariant).
func (n *Node) removeOneOutput(user *Node) {
	for i, out := range n.Output {
		if out == user {
			n.Output = append(n.Output[:i], n.Output[i+1:]...)
			return
		}
	}
}

// Unused reports whether n currently has no users.
func (n *Node) Unused() bool {
	return len(n.Output) == 0
}

// Dead reports whether n is fully reclaimed: no users, no inputs, no type
// (§3.2).
func (n *Node) Dead() bool {
	return n.Unused() && len(n.Input) == 0 && n.Type == nil
}

// Kill detaches all of n's inputs (recursively killing any input that
// thereby loses its last user) and marks n dead by nil-ing its Type. Kill
// asserts n is currently unused -- killing a node with remaining users is
// a fatal invariant violation (§3.2, §7 tier 2).
func (n *Node) Kill() {
	if !n.Unused() {
		sonerr.Fatal("graph: Kill called on node %d (%s) with %d remaining users", n.UID, n.Kind, len(n.Output))
	}
	n.PopInputs(len(n.Input))
	n.Type = nil
	if !n.Dead() {
		sonerr.Fatal("graph: node %d (%s) failed to reach dead state after Kill", n.UID, n.Kind)
	}
}
