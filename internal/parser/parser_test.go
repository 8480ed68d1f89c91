package parser

import (
	"strings"
	"testing"

	"sonc/internal/graph"
)

func TestParseReturnConstant(t *testing.T) {
	_, ret, err := New("t.son", "return 1 + 2;").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	val := ret.Input[1]
	if val.Kind != graph.Const || val.Type.IntValue() != 3 {
		t.Fatalf("return 1+2 should fold to constant 3, got kind=%v", val.Kind)
	}
}

func TestParseLetAndArg(t *testing.T) {
	_, ret, err := New("t.son", "let x = arg + 1; return x;").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	val := ret.Input[1]
	if val.Kind != graph.Add {
		t.Fatalf("return x should read the arg+1 Add node, got %v", val.Kind)
	}
}

func TestParseIfElseMerge(t *testing.T) {
	src := `
let x = 0;
if (arg) {
	x = 1;
} else {
	x = 2;
}
return x;
`
	_, ret, err := New("t.son", src).Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	val := ret.Input[1]
	if val.Kind != graph.Phi {
		t.Fatalf("x should resolve to a Phi after the diverging if/else, got %v", val.Kind)
	}
}

func TestParseUndefinedIdentifier(t *testing.T) {
	_, _, err := New("t.son", "return y;").Parse()
	if err == nil {
		t.Fatalf("expected a parse error for undefined identifier")
	}
	if !strings.Contains(err.Error(), "undefined identifier") {
		t.Fatalf("error = %q, want it to mention 'undefined identifier'", err.Error())
	}
}

func TestParseAssignUndeclared(t *testing.T) {
	_, _, err := New("t.son", "z = 1; return z;").Parse()
	if err == nil {
		t.Fatalf("expected a parse error for assignment to undeclared name")
	}
}

func TestParseMissingSemicolon(t *testing.T) {
	_, _, err := New("t.son", "return 1").Parse()
	if err == nil {
		t.Fatalf("expected a parse error for missing terminator")
	}
}
