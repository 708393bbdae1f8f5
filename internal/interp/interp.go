// Package interp is the tree-walking evaluator described in spec §4.3: it
// maintains a stack of lexical environments, evaluates expressions, executes
// statements, implements calls with closure capture, and provides non-local
// control transfer for return/break/continue via explicit outcome values
// (see signal.go) rather than panics.
package interp

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/klox-lang/klox/internal/ast"
	"github.com/klox-lang/klox/internal/errors"
	"github.com/klox-lang/klox/internal/resolver"
	"github.com/klox-lang/klox/internal/token"
)

// Interpreter holds the state of a single run: the globals environment, the
// Resolver's depth annotations, the currently active environment, and where
// print output goes.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      resolver.Depths
	stdout      io.Writer
	logger      *logrus.Logger

	// replMode makes a bare expression statement also print its stringified
	// result, matching the REPL behavior spec §4.3 calls out.
	replMode bool
}

// New creates an Interpreter whose globals are pre-populated with clock()
// (spec §6) and whose print output goes to stdout.
func New(stdout io.Writer, logger *logrus.Logger) *Interpreter {
	globals := NewEnvironment()
	i := &Interpreter{globals: globals, environment: globals, stdout: stdout, logger: logger}
	registerBuiltins(globals)
	return i
}

// SetReplMode toggles whether a bare expression statement also prints its
// value, as the REPL driver wants (spec §4.3).
func (i *Interpreter) SetReplMode(repl bool) { i.replMode = repl }

// SetLocals installs the Resolver's published depth table for this run. It
// must be called once per program, after resolution and before execution.
func (i *Interpreter) SetLocals(locals resolver.Depths) { i.locals = locals }

// Interpret executes every statement in program in order. It stops and
// returns the first runtime error encountered (spec §7: a runtime error
// aborts the current statement and the run). A nil Stmt slot (the parser's
// recovery placeholder) is skipped — callers should not invoke Interpret on
// a program that still has parse/static errors outstanding.
func (i *Interpreter) Interpret(program *ast.Program) *RuntimeError {
	if i.logger != nil {
		i.logger.WithField("statements", len(program.Statements)).Debug("interpret: starting run")
	}
	for _, stmt := range program.Statements {
		if stmt == nil {
			continue
		}
		result := i.execute(stmt)
		if result.err != nil {
			return result.err
		}
		// A Break/Continue/Return reaching the top level means a
		// badly-formed program slipped past resolution (spec §4.3 calls this
		// undefined behavior); there is nothing sensible to unwind to, so
		// just stop here rather than let it propagate further.
		if result.kind != signalNone {
			return nil
		}
	}
	return nil
}

// execute runs a single statement and returns its outcome.
func (i *Interpreter) execute(stmt ast.Stmt) outcome {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return errOutcome(err)
		}
		if i.replMode {
			i.printLine(stringify(value))
		}
		return normalOutcome

	case *ast.PrintStmt:
		value, err := i.evaluate(s.Expression)
		if err != nil {
			return errOutcome(err)
		}
		i.printLine(stringify(value))
		return normalOutcome

	case *ast.VarStmt:
		var value Value
		if s.Initializer != nil {
			v, err := i.evaluate(s.Initializer)
			if err != nil {
				return errOutcome(err)
			}
			value = v
		}
		i.environment.Define(s.Name.Lexeme, value)
		return normalOutcome

	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, NewEnclosedEnvironment(i.environment))

	case *ast.IfStmt:
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return errOutcome(err)
		}
		if isTruthy(cond) {
			return i.execute(s.Then)
		}
		if s.Else != nil {
			return i.execute(s.Else)
		}
		return normalOutcome

	case *ast.WhileStmt:
		return i.executeWhile(s)

	case *ast.FunctionStmt:
		i.environment.Define(s.Name.Lexeme, &UserFunction{declaration: s, closure: i.environment})
		return normalOutcome

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := i.evaluate(s.Value)
			if err != nil {
				return errOutcome(err)
			}
			value = v
		}
		return returnOutcome(value)

	case *ast.BreakStmt:
		return outcome{kind: signalBreak}

	case *ast.ContinueStmt:
		return outcome{kind: signalContinue}
	}

	return normalOutcome
}

// executeBlock runs statements in env, restoring the interpreter's previous
// environment on every exit path — including a runtime error or a control
// signal (spec §4.3's "restore must run on any unwinding path").
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) outcome {
	previous := i.environment
	i.environment = env
	defer func() { i.environment = previous }()

	for _, stmt := range statements {
		if stmt == nil {
			continue
		}
		result := i.execute(stmt)
		if result.isAbrupt() {
			return result
		}
	}
	return normalOutcome
}

// executeWhile loops while Cond is truthy, consuming Break/Continue signals
// from the body (spec §4.3) and propagating everything else (a runtime
// error, or a Return headed for an enclosing Call).
func (i *Interpreter) executeWhile(s *ast.WhileStmt) outcome {
	for {
		cond, err := i.evaluate(s.Cond)
		if err != nil {
			return errOutcome(err)
		}
		if !isTruthy(cond) {
			return normalOutcome
		}

		result := i.execute(s.Body)
		switch {
		case result.err != nil:
			return result
		case result.kind == signalBreak:
			return normalOutcome
		case result.kind == signalContinue:
			continue
		case result.kind == signalReturn:
			return result
		}
	}
}

func (i *Interpreter) printLine(s string) {
	if i.stdout != nil {
		io.WriteString(i.stdout, s+"\n")
	}
}

// evaluate computes the Value of expr, or a runtime error.
func (i *Interpreter) evaluate(expr ast.Expr) (Value, *RuntimeError) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil
	case *ast.Grouping:
		return i.evaluate(e.Inner)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Ternary:
		return i.evalTernary(e)
	case *ast.Variable:
		return i.lookupVariable(e.Name, e.ID)
	case *ast.Assign:
		return i.evalAssign(e)
	case *ast.Call:
		return i.evalCall(e)
	}
	return nil, nil
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, *RuntimeError) {
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.BANG:
		return !isTruthy(right), nil
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, errors.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, errors.NewRuntimeError(e.Operator, "Unknown unary operator.")
}

func (i *Interpreter) evalBinary(e *ast.Binary) (Value, *RuntimeError) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.PLUS:
		return i.evalPlus(e.Operator, left, right)
	case token.MINUS:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.STAR:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.SLASH:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			return nil, errors.NewRuntimeError(e.Operator,
				"It looks like you tried division by 0. Yeah better don't try this at home.")
		}
		return l / r, nil
	case token.GREATER:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GREATER_EQUAL:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.LESS:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LESS_EQUAL:
		l, r, err := i.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	case token.BANG_EQUAL:
		return !isEqual(left, right), nil
	}

	return nil, errors.NewRuntimeError(e.Operator, "Unknown binary operator.")
}

// evalPlus implements spec §4.3's overloaded `+`: number+number adds;
// string+anything coerces the right side via stringify and concatenates;
// anything else is a type error.
func (i *Interpreter) evalPlus(operator token.Token, left, right Value) (Value, *RuntimeError) {
	if ls, ok := left.(string); ok {
		return ls + stringify(right), nil
	}
	if lf, ok := left.(float64); ok {
		if rf, ok := right.(float64); ok {
			return lf + rf, nil
		}
	}
	return nil, errors.NewRuntimeError(operator, "Operands must be two strings or two numbers.")
}

func (i *Interpreter) numberOperands(operator token.Token, left, right Value) (float64, float64, *RuntimeError) {
	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, errors.NewRuntimeError(operator, "Operands must be numbers.")
	}
	return lf, rf, nil
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, *RuntimeError) {
	left, err := i.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return i.evaluate(e.Right)
}

func (i *Interpreter) evalTernary(e *ast.Ternary) (Value, *RuntimeError) {
	cond, err := i.evaluate(e.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return i.evaluate(e.Then)
	}
	return i.evaluate(e.Else)
}

// lookupVariable reads name via the Resolver's published depth for id, or
// falls back to a globals lookup if the Resolver found no local binding
// (spec §4.3).
func (i *Interpreter) lookupVariable(name token.Token, id int) (Value, *RuntimeError) {
	if distance, ok := i.locals[id]; ok {
		return i.environment.GetAt(distance, name.Lexeme), nil
	}

	if value, ok := i.globals.GetGlobal(name.Lexeme); ok {
		return value, nil
	}

	return nil, errors.NewRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

func (i *Interpreter) evalAssign(e *ast.Assign) (Value, *RuntimeError) {
	value, err := i.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[e.ID]; ok {
		i.environment.AssignAt(distance, e.Name.Lexeme, value)
		return value, nil
	}

	if !i.globals.AssignGlobal(e.Name.Lexeme, value) {
		return nil, errors.NewRuntimeError(e.Name, "Undefined variable '"+e.Name.Lexeme+"'.")
	}
	return value, nil
}

func (i *Interpreter) evalCall(e *ast.Call) (Value, *RuntimeError) {
	callee, err := i.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for idx, argExpr := range e.Args {
		v, err := i.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, errors.NewRuntimeError(e.Paren, "Can only call functions and classes.")
	}

	if len(args) != callable.Arity() {
		return nil, errors.NewRuntimeError(e.Paren, fmt.Sprintf(
			"Expected %d arguments but got %d.", callable.Arity(), len(args)))
	}

	if i.logger != nil {
		i.logger.WithField("callee", callable.Display()).Trace("interp: calling")
	}

	return callable.Call(i, args)
}
