package graph

// Peephole is the optimizer entry point every freshly constructed node
// must pass through before it is wired into anything else (§4.4): it
// assigns n's type via Compute, then asks Idealize for a local rewrite.
// If Idealize returns a replacement, Peephole recurses on it (the
// replacement may itself be freshly built and need its own Compute pass)
// and returns that instead of n, so callers always end up holding the
// fully-peepholed node regardless of how many rewrite steps fired.
func (g *Graph) Peephole(n *Node) *Node {
	n.Type = g.Compute(n)

	if replacement := g.Idealize(n); replacement != nil {
		return g.Peephole(replacement)
	}
	return n
}
