package interp

import "github.com/klox-lang/klox/internal/errors"

// RuntimeError is the runtime diagnostic type shared with internal/errors —
// aliased here so the rest of this package can refer to it as a local name.
type RuntimeError = errors.RuntimeError

// signalKind distinguishes the non-Normal outcomes a statement can produce.
// Modeling execution this way — an explicit outcome returned up the call
// stack — is the systems-language approach spec §9 recommends in place of
// the source's throwable-based control transfer; internal/parser's
// panic/recover is reserved for synchronization only, never for Return,
// Break, or Continue.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

// outcome is what executing a statement produces: either Normal (signalNone,
// err nil) or one of Break/Continue/Return(value), or a RuntimeError. Every
// statement executor returns one; callers propagate a non-Normal outcome
// immediately instead of continuing the current block.
type outcome struct {
	kind  signalKind
	value Value        // populated only for signalReturn
	err   *RuntimeError // populated only on a runtime error
}

var normalOutcome = outcome{kind: signalNone}

func errOutcome(err *RuntimeError) outcome {
	return outcome{kind: signalNone, err: err}
}

func returnOutcome(v Value) outcome {
	return outcome{kind: signalReturn, value: v}
}

// isAbrupt reports whether this outcome should stop normal statement
// sequencing in the current block (a runtime error, or any control signal).
func (o outcome) isAbrupt() bool {
	return o.err != nil || o.kind != signalNone
}
