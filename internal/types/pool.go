package types

// Pool is the hash-cons interning table of §4.2: one canonical *Type per
// distinct structural key, so pointer equality implies structural
// equality. A Pool belongs to exactly one compilation unit (§5): it is
// never a process-wide global in this implementation, unlike the C++
// original's `static TypePool pool`, per Design Note §9's "re-architect as
// an explicit compilation context" guidance.
//
// The four interning sets of original_source/src/son/type/type_pool.h
// (plain Type, TypeInt, TypeFloat, TypeTuple) collapse to one map here,
// since Go's single Type struct already carries every kind's payload.
type Pool struct {
	interned map[key]*Type
}

// NewPool creates an empty type pool.
func NewPool() *Pool {
	return &Pool{interned: make(map[key]*Type)}
}

// Request returns the canonical handle for t, interning it if this is the
// first time this structural key has been seen. Tuple payloads are
// deep-copied into pool-owned storage on first insert, so a caller's
// borrowed Elems slice can be reused/mutated afterwards (§3.1's lifecycle
// invariant, §4.2's get_tuple contract).
func (p *Pool) Request(t Type) *Type {
	k := keyOf(t)
	if existing, ok := p.interned[k]; ok {
		return existing
	}
	if t.Kind == Tuple && t.Level == Known {
		t.Elems = append([]*Type(nil), t.Elems...)
	}
	canon := &t
	p.interned[k] = canon
	return canon
}

// Bottom returns Pure:Bottom, the universal "fully uncertain" type.
func (p *Pool) Bottom() *Type {
	return p.Request(Type{Kind: Pure, Level: Bottom})
}

// Top returns Pure:Top, the universal "nothing known yet" type.
func (p *Pool) Top() *Type {
	return p.Request(Type{Kind: Pure, Level: Top})
}

// Ctrl returns the control-flow token type.
func (p *Pool) Ctrl() *Type {
	return p.Request(Type{Kind: Ctrl, Level: Bottom})
}

// BottomOf returns Bottom at the given kind.
func (p *Pool) BottomOf(k Kind) *Type {
	if k > Tuple {
		panic("types: BottomOf called with unreachable kind")
	}
	return p.Request(Type{Kind: k, Level: Bottom})
}

// TopOf returns Top at the given kind.
func (p *Pool) TopOf(k Kind) *Type {
	if k > Tuple {
		panic("types: TopOf called with unreachable kind")
	}
	return p.Request(Type{Kind: k, Level: Top})
}

// BoolAny returns the Bool range [0,1]: unconstrained boolean.
func (p *Pool) BoolAny() *Type {
	return p.Request(Type{Kind: Bool, Level: Known, IntMin: 0, IntMax: 1})
}

// BoolFalse returns the constant Bool false.
func (p *Pool) BoolFalse() *Type {
	return p.Request(Type{Kind: Bool, Level: Known, IntMin: 0, IntMax: 0})
}

// BoolTrue returns the constant Bool true.
func (p *Pool) BoolTrue() *Type {
	return p.Request(Type{Kind: Bool, Level: Known, IntMin: 1, IntMax: 1})
}

// IntSized returns the full-range Int type for a given byte width (1, 2,
// 4, or 8). Panics on any other width.
func (p *Pool) IntSized(bytes int) *Type {
	var min, max int64
	switch bytes {
	case 1:
		min, max = -1<<7, 1<<7-1
	case 2:
		min, max = -1<<15, 1<<15-1
	case 4:
		min, max = -1<<31, 1<<31-1
	case 8:
		min, max = I64Min, I64Max
	default:
		panic("types: IntSized called with unsupported byte width")
	}
	return p.Request(Type{Kind: Int, Level: Known, IntMin: min, IntMax: max})
}

// IntConst returns the constant Int type for a single value.
func (p *Pool) IntConst(v int64) *Type {
	return p.Request(Type{Kind: Int, Level: Known, IntMin: v, IntMax: v})
}

// FloatConst returns the constant Float type for a single value.
func (p *Pool) FloatConst(v float64) *Type {
	return p.Request(Type{Kind: Float, Level: Known, FloatMin: v, FloatMax: v})
}

// GetTuple interns a Tuple type over the given element handles.
func (p *Pool) GetTuple(level Level, elems []*Type) *Type {
	return p.Request(Type{Kind: Tuple, Level: level, Elems: elems})
}

// Len reports how many distinct types have been interned, used by -stats.
func (p *Pool) Len() int {
	return len(p.interned)
}
