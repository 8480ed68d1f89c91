package compiler

import (
	"strings"
	"testing"
)

func TestCompileSimpleReturn(t *testing.T) {
	u := Compile("add.son", "return arg + 1;")
	if u.Err != nil {
		t.Fatalf("unexpected error: %v", u.Err)
	}
	if u.Ret == nil {
		t.Fatalf("expected a Ret node")
	}
	if !strings.Contains(u.Output, "return") {
		t.Fatalf("output should contain a rendered return statement, got %q", u.Output)
	}
}

func TestCompileEachUnitGetsItsOwnGraph(t *testing.T) {
	a := Compile("a.son", "return 1;")
	b := Compile("b.son", "return 2;")
	if a.Graph == b.Graph {
		t.Fatalf("two units must not share a graph")
	}
	if a.ID == b.ID {
		t.Fatalf("two units must have distinct ids")
	}
}

func TestCompileSurfacesParseError(t *testing.T) {
	u := Compile("bad.son", "return ;")
	if u.Err == nil {
		t.Fatalf("expected a parse error for an empty return expression")
	}
}
