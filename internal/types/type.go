// Package types implements the type lattice of §3.1: Kind x Level, the
// Bool/Int/Float range payloads, Tuple, hash-cons interning (§4.2), meet
// (§4.2), and the constant predicate (§3.1). Grounded directly on
// original_source/src/son/type/{type_def,type_pool,meet,const}.h.
package types

import (
	"fmt"
	"math"
	"strings"

	"sonc/internal/sonerr"
)

// Kind is the type's structural tag.
type Kind uint8

const (
	Pure Kind = iota
	Ctrl
	Bool
	Int
	Float
	Tuple
)

func (k Kind) String() string {
	switch k {
	case Pure:
		return "Pure"
	case Ctrl:
		return "Ctrl"
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Tuple:
		return "Tuple"
	default:
		return "Kind(?)"
	}
}

// Level is the type's position in the three-level lattice Top ⊑ Known ⊑
// Bottom.
type Level uint8

const (
	Top Level = iota
	Known
	Bottom
)

func (l Level) String() string {
	switch l {
	case Top:
		return "Top"
	case Known:
		return "Known"
	case Bottom:
		return "Bottom"
	default:
		return "Level(?)"
	}
}

// Type is an immutable, hash-consed lattice element. Pure and Ctrl carry
// no payload; Bool and Int carry an inclusive i64 range in IntMin/IntMax;
// Float carries an inclusive real range in FloatMin/FloatMax; Tuple
// carries an ordered sequence of child Type handles in Elems.
//
// Structural equality implies pointer equality once a Type has been
// interned through a Pool -- never construct a Type literal and compare
// it against an interned handle; always go through Pool.Request (or one
// of its specializations).
type Type struct {
	Kind  Kind
	Level Level

	IntMin, IntMax     int64
	FloatMin, FloatMax float64
	Elems              []*Type
}

// key is the structural identity used for hash-consing: two Types with
// equal keys are the same Type. Top and Bottom levels ignore payload
// (§3.1's invariant), so the key zeroes payload fields at those levels.
type key struct {
	kind  Kind
	level Level

	intMin, intMax     int64
	floatMin, floatMax float64
	elemsKey           string
}

func keyOf(t Type) key {
	k := key{kind: t.Kind, level: t.Level}
	if t.Level != Known {
		return k
	}
	switch t.Kind {
	case Bool, Int:
		k.intMin, k.intMax = t.IntMin, t.IntMax
	case Float:
		k.floatMin, k.floatMax = t.FloatMin, t.FloatMax
	case Tuple:
		k.elemsKey = tupleKey(t.Elems)
	}
	return k
}

func tupleKey(elems []*Type) string {
	// Each element is itself an interned handle, so its pointer identity
	// is already canonical; fold the addresses into a delimiter-separated
	// key rather than re-hashing structurally.
	var sb strings.Builder
	for _, e := range elems {
		fmt.Fprintf(&sb, "%p|", e)
	}
	return sb.String()
}

// Constant reports whether t is a fully-known scalar per §3.1's precise
// rule: Ctrl is always a constant; a Known Int/Bool/Float with min==max is
// a constant; a Tuple is a constant iff it sits at Top. This exact, odd
// rule (not "all Tuple elements are constant") is preserved per §9's Open
// Question resolution -- it is the contract the peephole engine relies on.
func Constant(t *Type) bool {
	if t == nil {
		sonerr.Fatal("types: Constant called on nil type")
	}
	switch t.Kind {
	case Pure:
		return false
	case Ctrl:
		return true
	case Bool, Int:
		return t.Level == Known && t.IntMin == t.IntMax
	case Float:
		return t.Level == Known && t.FloatMin == t.FloatMax
	case Tuple:
		return t.Level == Top
	default:
		sonerr.Fatal("types: Constant called on unreachable kind %v", t.Kind)
		return false
	}
}

// IntValue returns the single value of a constant Int/Bool type. Panics
// if the type is not a constant -- callers must check Constant first.
func (t *Type) IntValue() int64 {
	if t.IntMin != t.IntMax {
		sonerr.Fatal("types: IntValue called on non-constant range [%d,%d]", t.IntMin, t.IntMax)
	}
	return t.IntMin
}

// FloatValue returns the single value of a constant Float type.
func (t *Type) FloatValue() float64 {
	if t.FloatMin != t.FloatMax {
		sonerr.Fatal("types: FloatValue called on non-constant range [%g,%g]", t.FloatMin, t.FloatMax)
	}
	return t.FloatMin
}

const (
	I64Max = math.MaxInt64
	I64Min = math.MinInt64
)
