package arena

import "testing"

func TestPushReturnsStableAddresses(t *testing.T) {
	a := New[int](2) // force multiple chunks quickly
	var ptrs []*int
	for i := 0; i < 10; i++ {
		ptrs = append(ptrs, a.Push(i))
	}
	for i, p := range ptrs {
		if *p != i {
			t.Fatalf("pointer %d now reads %d, want %d -- a later Push invalidated it", i, *p, i)
		}
	}
}

func TestLenAndCap(t *testing.T) {
	a := New[string](4)
	for i := 0; i < 9; i++ {
		a.Push("x")
	}
	if got := a.Len(); got != 9 {
		t.Fatalf("Len() = %d, want 9", got)
	}
	if a.Cap() < 9 {
		t.Fatalf("Cap() = %d, want at least 9", a.Cap())
	}
}

func TestReallocAtCursorGrowsInPlace(t *testing.T) {
	a := New[int](8)
	p := a.Push(1)
	grown := a.Realloc(p, 2)
	if grown != p {
		t.Fatalf("Realloc at cursor should return the same base address")
	}
	if a.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after reallocating by 2", a.Len())
	}
}

func TestReallocNotAtCursorCopies(t *testing.T) {
	a := New[int](8)
	first := a.Push(1)
	a.Push(2) // first is no longer at the cursor
	grown := a.Realloc(first, 1)
	if grown == first {
		t.Fatalf("Realloc on a non-cursor pointer must not mutate in place")
	}
	if *grown != 1 {
		t.Fatalf("Realloc copy lost the original value: got %d, want 1", *grown)
	}
}

func TestReset(t *testing.T) {
	a := New[int](4)
	a.Push(1)
	a.Push(2)
	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", a.Len())
	}
	p := a.Push(9)
	if *p != 9 {
		t.Fatalf("Push after Reset returned wrong value")
	}
}
