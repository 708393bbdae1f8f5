// Package ast defines the abstract syntax tree node types produced by the
// parser and consumed by the resolver and interpreter.
package ast

import (
	"bytes"

	"github.com/josharian/intern"

	"github.com/klox-lang/klox/internal/token"
)

// Expr is the interface implemented by every expression node.
type Expr interface {
	exprNode()
	String() string
}

// Stmt is the interface implemented by every statement node.
type Stmt interface {
	stmtNode()
	String() string
}

// nextID hands out monotonically increasing node identities for Variable,
// Assign, and Call nodes. The resolver keys its scope-depth side table by
// this id rather than by pointer, so the table stays valid even if a node
// is copied (see spec §9's note on node identity).
var nextID int

// NewID returns the next node identity and advances the counter. Call
// exposes this so the parser (the only caller) controls exactly when an
// id-bearing node is minted.
func NewID() int {
	nextID++
	return nextID
}

// ResetIDs restarts the id counter. The parser calls this at the start of a
// new parse so ids stay small and stable across runs (useful for
// deterministic snapshot tests).
func ResetIDs() {
	nextID = 0
}

// Program is the root of the tree: an ordered list of statements. Slots may
// be nil where a statement failed to parse and the parser recovered — later
// passes must skip those.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		if s == nil {
			continue
		}
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Literal is a literal value: nil, a bool, a number, or a string.
type Literal struct {
	Token token.Token
	Value any // nil | bool | float64 | string
}

func (l *Literal) exprNode() {}
func (l *Literal) String() string {
	if l.Value == nil {
		return "nil"
	}
	return l.Token.Lexeme
}

// Unary is a prefix operator expression: !right or -right.
type Unary struct {
	Operator token.Token
	Right    Expr
}

func (u *Unary) exprNode() {}
func (u *Unary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(u.Operator.Lexeme)
	out.WriteString(u.Right.String())
	out.WriteString(")")
	return out.String()
}

// Binary is an infix arithmetic/comparison expression.
type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (b *Binary) exprNode() {}
func (b *Binary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Operator.Lexeme + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// Logical is `and`/`or`; unlike Binary it short-circuits, so the
// interpreter must not evaluate Right unconditionally.
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (l *Logical) exprNode() {}
func (l *Logical) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(l.Left.String())
	out.WriteString(" " + l.Operator.Lexeme + " ")
	out.WriteString(l.Right.String())
	out.WriteString(")")
	return out.String()
}

// Ternary is `cond ? then : else`.
type Ternary struct {
	Question token.Token // the '?' token, for error-line reporting
	Cond     Expr
	Then     Expr
	Else     Expr
}

func (t *Ternary) exprNode() {}
func (t *Ternary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(t.Cond.String())
	out.WriteString(" ? ")
	out.WriteString(t.Then.String())
	out.WriteString(" : ")
	out.WriteString(t.Else.String())
	out.WriteString(")")
	return out.String()
}

// Grouping is a parenthesized expression, kept as its own node so that
// Parenthesization-is-semantically-transparent (spec §8) is a property of
// evaluation rather than of parsing away the parens.
type Grouping struct {
	Inner Expr
}

func (g *Grouping) exprNode() {}
func (g *Grouping) String() string {
	return "(" + g.Inner.String() + ")"
}

// Variable is a reference to a named binding. ID is the resolver side-table
// key (see NewID).
type Variable struct {
	ID   int
	Name token.Token
}

func (v *Variable) exprNode() {}
func (v *Variable) String() string { return v.Name.Lexeme }

// Assign is `name = value`. ID is the resolver side-table key.
type Assign struct {
	ID    int
	Name  token.Token
	Value Expr
}

func (a *Assign) exprNode() {}
func (a *Assign) String() string {
	return "(" + a.Name.Lexeme + " = " + a.Value.String() + ")"
}

// Call is a function invocation. Paren retains the closing ')' token so
// arity/type errors can report the call's line per spec §3.
type Call struct {
	ID     int
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (c *Call) exprNode() {}
func (c *Call) String() string {
	var out bytes.Buffer
	out.WriteString(c.Callee.String())
	out.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteString(")")
	return out.String()
}

// Ident interns an identifier lexeme. Parser call sites use this instead of
// storing the raw scanned string so that repeated identifiers across a long
// REPL session share one backing string.
func Ident(s string) string {
	return intern.String(s)
}
