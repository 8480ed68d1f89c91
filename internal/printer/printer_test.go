package printer_test

import (
	"bytes"
	"strings"
	"testing"

	"sonc/internal/parser"
	"sonc/internal/printer"
)

func TestPrintIncludesReturnExpression(t *testing.T) {
	g, ret, err := parser.New("t.son", "return arg + 2;").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	var buf bytes.Buffer
	printer.Print(&buf, g, ret)
	out := buf.String()
	if !strings.Contains(out, "return") {
		t.Fatalf("printed output should contain a return line, got %q", out)
	}
}

func TestExprRendersArithmeticInfix(t *testing.T) {
	g, ret, err := parser.New("t.son", "return (arg + 1) * 2;").Parse()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	got := printer.Expr(ret.Input[1])
	if !strings.Contains(got, "*") {
		t.Fatalf("Expr() = %q, want it to contain the multiplication", got)
	}
	_ = g
}
