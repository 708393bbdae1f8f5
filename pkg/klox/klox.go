// Package klox is the embeddable public API for running klox source: the
// stable surface cmd/klox's CLI is built on top of, and the one other Go
// programs should import to run klox scripts without reaching into
// internal/.
package klox

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	formatter "github.com/t-tomalak/logrus-easy-formatter"

	"github.com/klox-lang/klox/internal/interp"
	"github.com/klox-lang/klox/internal/lexer"
	"github.com/klox-lang/klox/internal/parser"
	"github.com/klox-lang/klox/internal/resolver"
)

// Sentinel errors embedders can match with errors.Is to tell which pipeline
// stage rejected a program, without depending on internal/ diagnostic types.
var (
	// ErrParse means scanning or parsing found one or more errors; the run
	// never reached resolution or execution.
	ErrParse = errors.New("klox: parse error")
	// ErrStatic means the Resolver found one or more static errors; the run
	// never reached execution.
	ErrStatic = errors.New("klox: static error")
	// ErrRuntime means the program ran and failed partway through.
	ErrRuntime = errors.New("klox: runtime error")
)

// Options configures a Run/RunFile/NewInterpreter call. The zero value is
// valid: Stdout/Stderr default to os.Stdout/os.Stderr, and tracing is off.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer

	// Trace enables verbose logrus-based diagnostic logging of the
	// interpreter's run start and function calls; individual statements
	// are not logged. This is ambient
	// instrumentation (spec.md §7's error sink is unaffected either way).
	Trace bool

	// Repl makes a bare expression statement also print its stringified
	// result, as the CLI's REPL wants (spec.md §4.3).
	Repl bool
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

func (o Options) logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(o.stderr())
	logger.SetFormatter(&formatter.Formatter{
		LogFormat: "[%lvl%] %msg%\n",
	})
	if o.Trace {
		logger.SetLevel(logrus.TraceLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// Interpreter is a reusable klox execution context: one globals environment
// that persists across calls to Exec, exactly the way the CLI's REPL wants
// (each line extends the same environment).
type Interpreter struct {
	runtime *interp.Interpreter
	opts    Options
}

// NewInterpreter creates an Interpreter whose globals persist across
// repeated Exec calls.
func NewInterpreter(opts Options) *Interpreter {
	runtime := interp.New(opts.stdout(), opts.logger())
	runtime.SetReplMode(opts.Repl)
	return &Interpreter{runtime: runtime, opts: opts}
}

// Exec scans, parses, resolves, and executes source against this
// Interpreter's persistent environment. A parse or static error does not
// poison future Exec calls (the REPL's "clear the error flag between
// lines" behavior, spec.md §7).
func (in *Interpreter) Exec(source string) error {
	tokens, lexErrs := lexer.ScanTokens(source)
	for _, e := range lexErrs {
		fmt.Fprintf(in.opts.stderr(), "[line %d] Error: %s\n", e.Line, e.Message)
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if len(lexErrs) > 0 || p.HadError() {
		for _, e := range p.Errors() {
			fmt.Fprintln(in.opts.stderr(), e.Error())
		}
		return ErrParse
	}

	r := resolver.New()
	locals := r.Resolve(program)
	if r.HadError() {
		for _, e := range r.Errors() {
			fmt.Fprintln(in.opts.stderr(), e.Error())
		}
		return ErrStatic
	}

	in.runtime.SetLocals(locals)
	if rtErr := in.runtime.Interpret(program); rtErr != nil {
		fmt.Fprintln(in.opts.stderr(), rtErr.Error())
		return ErrRuntime
	}
	return nil
}

// Run scans, parses, resolves, and executes source once, using a fresh
// Interpreter. Use NewInterpreter directly instead when a program needs to
// persist state across multiple calls (e.g. a REPL).
func Run(source string, opts Options) error {
	return NewInterpreter(opts).Exec(source)
}

// RunFile reads path and runs its contents. A file that cannot be read is
// not written to Stderr; the *os.PathError from reading it is returned as
// is, so os.IsNotExist can tell a missing file apart.
func RunFile(path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return Run(string(data), opts)
}
