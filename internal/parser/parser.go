// Package parser implements a recursive-descent parser for klox, following
// the grammar and precedence cascade in spec §4.1: assignment -> ternary ->
// or -> and -> equality -> comparison -> term -> factor -> unary -> call ->
// primary. A parse error never aborts the whole parse — each failed
// statement synchronizes at the next likely boundary and leaves a nil slot
// in the returned statement list (panic-mode synchronization, spec §4.1).
package parser

import (
	"github.com/hashicorp/go-multierror"

	"github.com/klox-lang/klox/internal/ast"
	"github.com/klox-lang/klox/internal/errors"
	"github.com/klox-lang/klox/internal/token"
)

// Parser consumes a token slice terminated by EOF and produces an AST.
type Parser struct {
	tokens    []token.Token
	current   int
	loopLevel int // nesting depth of while/for, for break/continue validation
	reporter  *errors.Reporter
}

// New creates a Parser over tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, reporter: errors.NewReporter()}
}

// ParseProgram parses the entire token stream into a Program. The returned
// statement slice may contain nil entries where a statement failed to
// parse; downstream passes must skip them. Check Errors() to see whether
// any statement failed.
func (p *Parser) ParseProgram() *ast.Program {
	ast.ResetIDs()

	var statements []ast.Stmt
	for !p.isAtEnd() {
		statements = append(statements, p.declaration())
	}

	return &ast.Program{Statements: statements}
}

// HadError reports whether any parse error was recorded.
func (p *Parser) HadError() bool {
	return p.reporter.HadError()
}

// Errors returns every recorded parse error, in the order they were found.
func (p *Parser) Errors() []error {
	return p.reporter.Errors()
}

// ErrorList returns the accumulated *multierror.Error, or nil if parsing
// found nothing to report.
func (p *Parser) ErrorList() *multierror.Error {
	return p.reporter.ErrorList()
}
