// Package sonerr implements the two error tiers of §7.
//
// ParseError is the recoverable tier (§7 tier 1): reported as a single
// value on the parser, carrying source position the way
// sentra/internal/errors.SentraError does (Type + SourceLocation +
// Source line), trimmed to this system's smaller error vocabulary.
//
// Fatal invariant violations (§7 tier 2) are not a type in this package --
// they are bugs in the compiler, not the input, and are raised by calling
// Fatal, which panics with a github.com/pkg/errors-wrapped value carrying
// a stack trace. compiler.Compile recovers it into Unit.Err, and cmd/sonc
// prints it to stderr and exits with status 1, matching §6.1's "non-zero
// on fatal invariant failure".
package sonerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Category enumerates the recoverable parse-error kinds named in §7.
type Category string

const (
	UnexpectedToken      Category = "unexpected token"
	MissingTerminator    Category = "missing terminator"
	MissingCloseParen    Category = "missing )"
	MissingCloseBrace    Category = "missing }"
	UndefinedIdentifier  Category = "undefined identifier"
	EmptyBlock           Category = "empty block"
	AssignUndeclaredName Category = "assignment to undeclared name"
	MalformedVarDecl     Category = "malformed variable declaration"
)

// Location pinpoints a recoverable error in source text.
type Location struct {
	File   string
	Line   int
	Column int
}

// ParseError is the parser's single, current recoverable error (§7 tier
// 1: "reported as a single string on the parser object"). It is a Go
// error so the parser driver can return it normally; parsing stops at the
// first one, so Parse returns exactly one.
type ParseError struct {
	Category Category
	Message  string
	Loc      Location
	Source   string // the source line where the error occurred, if known
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Category, e.Message)
	if e.Loc.Line > 0 {
		fmt.Fprintf(&sb, " (at %d:%d)", e.Loc.Line, e.Loc.Column)
	}
	if e.Source != "" {
		fmt.Fprintf(&sb, "\n  %d | %s\n  %s^", e.Loc.Line, e.Source,
			strings.Repeat(" ", len(fmt.Sprintf("%d | ", e.Loc.Line))+max(0, e.Loc.Column-1)))
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// New constructs a ParseError at the given location.
func New(cat Category, message string, line, col int) *ParseError {
	return &ParseError{Category: cat, Message: message, Loc: Location{Line: line, Column: col}}
}

// WithSource attaches the offending source line for caret rendering.
func (e *ParseError) WithSource(source string) *ParseError {
	e.Source = source
	return e
}

// Fatal raises a tier-2 fatal invariant violation (§7): a bug in the
// compiler, never a consequence of malformed input. The panic value is
// wrapped with a stack trace via github.com/pkg/errors so the recover in
// compiler.Compile can render it with %+v.
func Fatal(format string, args ...any) {
	panic(errors.WithStack(fmt.Errorf(format, args...)))
}
