package types

import "testing"

func TestRequestInterns(t *testing.T) {
	p := NewPool()
	a := p.IntConst(5)
	b := p.IntConst(5)
	if a != b {
		t.Fatalf("IntConst(5) returned distinct pointers, want hash-consed identity")
	}
	c := p.IntConst(6)
	if a == c {
		t.Fatalf("IntConst(5) and IntConst(6) share a pointer")
	}
}

func TestConstant(t *testing.T) {
	p := NewPool()
	tests := []struct {
		name string
		typ  *Type
		want bool
	}{
		{"pure bottom", p.Bottom(), false},
		{"ctrl", p.Ctrl(), true},
		{"int const", p.IntConst(3), true},
		{"int range", p.IntSized(1), false},
		{"bool true", p.BoolTrue(), true},
		{"bool any", p.BoolAny(), false},
		{"float const", p.FloatConst(1.5), true},
		{"tuple top", p.TopOf(Tuple), true},
		{"tuple known", p.GetTuple(Known, []*Type{p.IntConst(1)}), false},
	}
	for _, tt := range tests {
		if got := Constant(tt.typ); got != tt.want {
			t.Errorf("%s: Constant() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMeetIdentityWithTop(t *testing.T) {
	p := NewPool()
	i8 := p.IntSized(1)
	top := p.TopOf(Int)
	if got := p.Meet(top, i8); got != i8 {
		t.Fatalf("Meet(Top, x) = %v, want x itself", got)
	}
}

func TestMeetIntervalIntersection(t *testing.T) {
	p := NewPool()
	a := p.Request(Type{Kind: Int, Level: Known, IntMin: 0, IntMax: 10})
	b := p.Request(Type{Kind: Int, Level: Known, IntMin: 5, IntMax: 15})
	got := p.Meet(a, b)
	if got.IntMin != 5 || got.IntMax != 10 {
		t.Fatalf("Meet interval = [%d,%d], want [5,10]", got.IntMin, got.IntMax)
	}
}

func TestMeetEmptyIntervalGoesBottom(t *testing.T) {
	p := NewPool()
	a := p.IntConst(1)
	b := p.IntConst(2)
	got := p.Meet(a, b)
	if got.Level != Bottom {
		t.Fatalf("Meet of disjoint constants = %v, want Bottom", got.Level)
	}
}

func TestMeetDifferentKindsGoBottom(t *testing.T) {
	p := NewPool()
	got := p.Meet(p.IntConst(1), p.FloatConst(1))
	if got.Kind != Pure || got.Level != Bottom {
		t.Fatalf("Meet(Int, Float) = %v:%v, want Pure:Bottom", got.Kind, got.Level)
	}
}

func TestMeetTuplePairwise(t *testing.T) {
	p := NewPool()
	a := p.GetTuple(Known, []*Type{p.IntConst(1), p.IntConst(2)})
	b := p.GetTuple(Known, []*Type{p.IntConst(1), p.IntConst(3)})
	got := p.Meet(a, b)
	if got.Elems[0] != p.IntConst(1) {
		t.Fatalf("first tuple element should stay the shared constant 1")
	}
	if got.Elems[1].Level != Bottom {
		t.Fatalf("second tuple element should meet to Bottom (2 vs 3 disjoint)")
	}
}

func TestIntValuePanicsOnNonConstant(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("IntValue on a non-constant range should panic")
		}
	}()
	p := NewPool()
	p.IntSized(1).IntValue()
}
