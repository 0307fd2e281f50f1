// Package ast is the reduced PHP syntax tree the named-argument rewrite
// works on: calls, their arguments and array literals. Every node keeps the
// byte range it covers in the original source so that unchanged expressions
// are printed verbatim.
package ast

import "github.com/phobologic/argwrap/internal/model"

// Span is a byte range [Start, End) in the source.
type Span struct {
	Start int
	End   int
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// Expr is an expression node.
type Expr interface {
	Span() Span
	exprNode()
}

// ArrayLit is an array literal, short ([...]) or long (array(...)).
type ArrayLit struct {
	Pos       Span
	Items     []*ArrayItem
	StartLine int
	EndLine   int
	// Comments is set when a comment sits between or inside entries outside
	// any key or value expression.
	Comments bool
}

// ArrayItem is one entry of an array literal. Key is nil for positional
// entries.
type ArrayItem struct {
	Pos    Span
	Key    Expr
	Value  Expr
	ByRef  bool
	Spread bool
}

// StringLit is a string literal whose value is statically known.
type StringLit struct {
	Pos   Span
	Value string
}

// NumberLit is an integer or float literal.
type NumberLit struct {
	Pos Span
}

// Raw is any other expression. It is only ever printed verbatim.
type Raw struct {
	Pos Span
}

func (e *ArrayLit) Span() Span  { return e.Pos }
func (e *StringLit) Span() Span { return e.Pos }
func (e *NumberLit) Span() Span { return e.Pos }
func (e *Raw) Span() Span       { return e.Pos }

func (*ArrayLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*NumberLit) exprNode() {}
func (*Raw) exprNode()       {}

// Multiline reports whether the literal spans more than one source line.
func (e *ArrayLit) Multiline() bool {
	return e.StartLine > 0 && e.EndLine > e.StartLine
}

// Arg is one call argument. Name is set for named arguments.
type Arg struct {
	Name   string
	Value  Expr
	Spread bool
}

// Layout is a printing preference attached to a rewritten call.
type Layout int

const (
	// LayoutInline prints all arguments on the call's line.
	LayoutInline Layout = iota
	// LayoutMultiline prints one argument per line.
	LayoutMultiline
)

// CallExpr is a function, instance method or static method call.
type CallExpr struct {
	Kind   model.CallKind
	Name   string // callee or member name; empty for dynamic callees
	Scope  string // static scope, StaticCall only
	Pos    Span
	Lparen int // byte offset of "("
	Rparen int // byte offset of ")"
	Line   int
	Args   []*Arg
	// Comments is set when a comment sits in the argument list outside any
	// argument value.
	Comments bool

	// Layout is advisory. It is only consulted when the call is printed.
	Layout Layout
}

// ArgsSpan returns the byte range strictly between the parentheses.
func (c *CallExpr) ArgsSpan() Span {
	return Span{Start: c.Lparen + 1, End: c.Rparen}
}

// Clone returns a copy of c with its own argument slice. Argument values are
// shared.
func (c *CallExpr) Clone() *CallExpr {
	clone := *c
	clone.Args = make([]*Arg, len(c.Args))
	for i, a := range c.Args {
		arg := *a
		clone.Args[i] = &arg
	}
	return &clone
}

// File is a parsed source file. Calls are listed in source order of their
// start offset, enclosing calls before the calls nested in them.
type File struct {
	Source []byte
	Calls  []*CallExpr
}
