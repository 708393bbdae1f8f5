// Package errors centralizes diagnostic formatting and accumulation for
// every stage of the pipeline (scan, parse, static resolution, runtime).
// It is the one formatting authority consumed by the CLI, the REPL, and the
// pkg/klox embedding API, mirroring the role the teacher's own
// internal/errors package plays for its richer diagnostic format.
package errors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/klox-lang/klox/internal/token"
)

// Reporter accumulates scan/parse/static diagnostics as they're found,
// rather than aborting on the first one, so a single run can surface every
// independent problem at once (spec §7's "accumulated" propagation policy).
type Reporter struct {
	errs *multierror.Error
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Token records a diagnostic at the position of tok, formatted per spec §6:
// "[line N] Error<where>: <message>", where <where> is " at end" for EOF and
// " at '<lexeme>'" otherwise.
func (r *Reporter) Token(tok token.Token, message string) {
	r.errs = multierror.Append(r.errs, &TokenError{Tok: tok, Message: message})
}

// Line records a diagnostic with no associated token, formatted as
// "[line N] Error: <message>".
func (r *Reporter) Line(line int, message string) {
	r.errs = multierror.Append(r.errs, &TokenError{Tok: token.Token{Line: line, Type: token.EOF}, Message: message, noWhere: true})
}

// HadError reports whether any diagnostic has been recorded.
func (r *Reporter) HadError() bool {
	return r.errs != nil && r.errs.Len() > 0
}

// Errors returns every recorded diagnostic, in recording order.
func (r *Reporter) Errors() []error {
	if r.errs == nil {
		return nil
	}
	return r.errs.Errors
}

// ErrorList returns the accumulated *multierror.Error, or nil if nothing
// was recorded. Callers that want WrappedErrors()/Unwrap() behavior use
// this instead of Errors().
func (r *Reporter) ErrorList() *multierror.Error {
	return r.errs
}

// Reset clears every recorded diagnostic so the Reporter can be reused
// without carrying earlier errors forward.
func (r *Reporter) Reset() {
	r.errs = nil
}

// TokenError is a single scan/parse/static diagnostic tied to a token
// position.
type TokenError struct {
	Tok     token.Token
	Message string
	noWhere bool
}

func (e *TokenError) Error() string {
	if e.noWhere {
		return fmt.Sprintf("[line %d] Error: %s", e.Tok.Line, e.Message)
	}
	where := " at '" + e.Tok.Lexeme + "'"
	if e.Tok.Type == token.EOF {
		where = " at end"
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Tok.Line, where, e.Message)
}

// RuntimeError carries the token whose line should be reported (spec §4.3's
// "Failure semantics") and unwinds to the top-level interpret call.
type RuntimeError struct {
	Tok     token.Token
	Message string
}

func NewRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Tok: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Tok.Line, e.Message)
}
