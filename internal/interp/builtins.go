package interp

import "time"

// registerBuiltins binds every native function into globals at construction
// time (spec §4.3). clock() is the language's entire builtin surface
// (spec §6) — klox has no I/O beyond print and clock.
func registerBuiltins(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(i *Interpreter, args []Value) (Value, *RuntimeError) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}
