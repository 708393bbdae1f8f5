package interp

import "github.com/klox-lang/klox/internal/ast"

// NativeFunction wraps a Go function as a Callable — the only one klox ships
// is clock() (spec §6), but the shape generalizes to more if the language
// ever grows a bigger builtin surface.
type NativeFunction struct {
	name  string
	arity int
	fn    func(i *Interpreter, args []Value) (Value, *RuntimeError)
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(i *Interpreter, args []Value) (Value, *RuntimeError) {
	return n.fn(i, args)
}

// Display renders a native function the way spec §6's stringify rule
// requires: "<native fn>" regardless of name.
func (n *NativeFunction) Display() string { return "<native fn>" }

// UserFunction is a function value created by executing a FunctionStmt: it
// captures the defining environment as its closure (spec §4.3), giving
// standard lexical closure semantics.
type UserFunction struct {
	declaration *ast.FunctionStmt
	closure     *Environment
}

func (f *UserFunction) Arity() int { return len(f.declaration.Params) }

// Call binds each parameter in a fresh environment enclosed by the closure,
// then executes the body as a block in that environment. A Return outcome is
// consumed here and its value returned; falling off the end returns Nil.
// Break/Continue must never reach this far — the grammar prevents it.
func (f *UserFunction) Call(i *Interpreter, args []Value) (Value, *RuntimeError) {
	callEnv := NewEnclosedEnvironment(f.closure)
	for idx, param := range f.declaration.Params {
		callEnv.Define(param.Lexeme, args[idx])
	}

	result := i.executeBlock(f.declaration.Body, callEnv)
	if result.err != nil {
		return nil, result.err
	}
	if result.kind == signalReturn {
		return result.value, nil
	}
	return nil, nil
}

// Display renders a user function the way spec §6's stringify rule
// requires: "<fn NAME>".
func (f *UserFunction) Display() string { return "<fn " + f.declaration.Name.Lexeme + ">" }
