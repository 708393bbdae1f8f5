// Package resolver performs the static scope-resolution pass described in
// spec §4.2: a single walk of the AST that computes, for every Variable and
// Assign node, how many enclosing scopes separate the reference from the
// scope that declares it. The interpreter consults this "depth" table
// instead of walking its own environment chain looking for a binding, which
// is what makes closures over shadowed names resolve consistently.
package resolver

import (
	"github.com/hashicorp/go-multierror"

	"github.com/klox-lang/klox/internal/ast"
	"github.com/klox-lang/klox/internal/errors"
	"github.com/klox-lang/klox/internal/token"
)

// functionType tracks what kind of function, if any, the resolver is
// currently walking inside of, so a bare `return` at the top level can be
// rejected (spec §4.2).
type functionType int

const (
	functionNone functionType = iota
	functionFunction
)

// Depths maps an ast node id (Variable.ID or Assign.ID) to the number of
// enclosing scopes between the reference and its declaring scope. A name
// absent from Depths is resolved in the global environment at runtime.
type Depths map[int]int

// Resolver walks a parsed Program once and publishes a Depths table.
type Resolver struct {
	scopes          []map[string]bool // innermost scope last; true once a name's initializer has finished
	depths          Depths
	currentFunction functionType
	loopDepth       int
	reporter        *errors.Reporter
}

// New creates a Resolver ready to walk a single Program.
func New() *Resolver {
	return &Resolver{depths: make(Depths), reporter: errors.NewReporter()}
}

// Resolve walks program and returns the computed Depths table. Check
// HadError()/Errors() afterward — a Depths table is still returned even when
// resolution found static errors.
func (r *Resolver) Resolve(program *ast.Program) Depths {
	r.resolveStmts(program.Statements)
	return r.depths
}

func (r *Resolver) HadError() bool       { return r.reporter.HadError() }
func (r *Resolver) Errors() []error      { return r.reporter.Errors() }
func (r *Resolver) ErrorList() *multierror.Error { return r.reporter.ErrorList() }

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	if stmt == nil {
		return // a slot where the parser recovered from an error
	}

	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)
	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)
	case *ast.VarStmt:
		r.resolveVarStmt(s)
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.loopDepth++
		r.resolveStmt(s.Body)
		r.loopDepth--
	case *ast.ReturnStmt:
		if r.currentFunction == functionNone {
			r.reporter.Token(s.Keyword, "Can't return from top-level.")
		}
		if s.Value != nil {
			r.resolveExpr(s.Value)
		}
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.reporter.Token(s.Keyword, "Can't use 'break' outside of a loop.")
		}
	case *ast.ContinueStmt:
		if r.loopDepth == 0 {
			r.reporter.Token(s.Keyword, "Can't use 'continue' outside of a loop.")
		}
	default:
		// Unreachable for a well-formed tree produced by internal/parser: a
		// new Stmt type must add a case above.
	}
}

func (r *Resolver) resolveVarStmt(s *ast.VarStmt) {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// no sub-expressions, no name to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	case *ast.Variable:
		r.resolveVariable(e)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ID, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	default:
		// Unreachable for a well-formed tree; see resolveStmt's default case.
	}
}

func (r *Resolver) resolveVariable(v *ast.Variable) {
	if len(r.scopes) > 0 {
		if ready, declared := r.scopes[len(r.scopes)-1][v.Name.Lexeme]; declared && !ready {
			r.reporter.Token(v.Name, "Can't read variable in its own initializer.")
		}
	}
	r.resolveLocal(v.ID, v.Name)
}

// resolveLocal walks the scope stack from innermost to outermost looking for
// name, and records how many scopes out it was found at. Finding nothing
// leaves the node absent from Depths, meaning "resolve globally" at runtime.
func (r *Resolver) resolveLocal(id int, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.depths[id] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare adds name to the innermost scope as not-yet-ready, catching
// duplicate declarations in the same block (spec §4.2).
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.reporter.Token(name, "Variable with this name already exists in this scope.")
	}
	scope[name.Lexeme] = false
}

// define marks name as ready in the innermost scope, once its initializer
// (if any) has been fully resolved.
func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}
