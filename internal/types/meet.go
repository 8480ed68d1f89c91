package types

// Meet computes the greatest lower bound of a and b in the lattice,
// per §4.2's seven-rule table. Grounded directly on
// original_source/src/son/type/meet.h.
func (p *Pool) Meet(a, b *Type) *Type {
	if a == nil || b == nil {
		panic("types: Meet called with nil type")
	}

	// Rule 1: different kinds meet to Pure:Bottom.
	if a.Kind != b.Kind {
		return p.Request(Type{Kind: Pure, Level: Bottom})
	}

	// Rule 2: Top meet anything = anything.
	if a.Level == Top {
		return b
	}
	if b.Level == Top {
		return a
	}
	// Rule 3: Bottom meet anything = Bottom.
	if a.Level == Bottom {
		return a
	}
	if b.Level == Bottom {
		return b
	}

	// Both are Known at this point.
	switch a.Kind {
	case Pure, Ctrl:
		// Rule 4: nominal, pick either.
		return a

	case Bool, Int:
		// Rule 5: interval intersection.
		lo := max(a.IntMin, b.IntMin)
		hi := min(a.IntMax, b.IntMax)
		if lo > hi {
			return p.Request(Type{Kind: a.Kind, Level: Bottom})
		}
		return p.Request(Type{Kind: a.Kind, Level: Known, IntMin: lo, IntMax: hi})

	case Float:
		// Rule 6: interval intersection over reals.
		lo := max(a.FloatMin, b.FloatMin)
		hi := min(a.FloatMax, b.FloatMax)
		if lo > hi {
			return p.Request(Type{Kind: Float, Level: Bottom})
		}
		return p.Request(Type{Kind: Float, Level: Known, FloatMin: lo, FloatMax: hi})

	case Tuple:
		// Rule 7: pairwise meet over equal-length payloads; mismatched
		// lengths (including one side empty) meet to Pure:Bottom.
		if len(a.Elems) != len(b.Elems) || len(a.Elems) == 0 {
			return p.Request(Type{Kind: Pure, Level: Bottom})
		}
		elems := make([]*Type, len(a.Elems))
		for i := range elems {
			elems[i] = p.Meet(a.Elems[i], b.Elems[i])
		}
		return p.GetTuple(Known, elems)

	default:
		panic("types: Meet reached unreachable kind")
	}
}
