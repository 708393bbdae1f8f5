package interp

import "strconv"

// Value is the runtime tagged union from spec §3: Nil | Bool | Number |
// String | Callable. Go's `any` plays the union's role; the concrete
// dynamic types held are nil, bool, float64, string, and Callable.
type Value any

// Callable is a value that can appear as the callee of a Call expression:
// a native builtin (clock) or a user function capturing a closure.
type Callable interface {
	Arity() int
	Call(i *Interpreter, args []Value) (Value, *RuntimeError)
	Display() string
}

// isTruthy is the single centralized truthiness predicate (spec §9): only
// Nil and Bool(false) are falsey, everything else — including 0 and "" — is
// truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual is the single centralized equality predicate (spec §4.3):
// structural, with Nil equal only to Nil and callables compared by identity.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case Callable:
		bv, ok := b.(Callable)
		return ok && av == bv // compared by identity: a is a pointer type
	}
	return false
}

// stringify renders a Value the way `print` and string-concatenation
// coercion do (spec §6).
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case Callable:
		return val.Display()
	}

	return "nil"
}

// formatNumber renders a float the way spec §6 requires: integral values
// print without a decimal point. 'f' format with shortest-round-trip
// precision already omits the trailing ".0" (unlike the source's buggy
// strip-then-drop path noted in spec §9), so no further stripping is needed.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
