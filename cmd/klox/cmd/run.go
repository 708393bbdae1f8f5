package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/klox-lang/klox/internal/lexer"
	"github.com/klox-lang/klox/internal/parser"
	"github.com/klox-lang/klox/pkg/klox"
)

// errorColor renders a diagnostic line in red when stderr is a TTY; fatih/color
// auto-detects this and degrades to plain text otherwise (spec.md's error
// format itself is unaffected — this is presentation only).
var errorColor = color.New(color.FgRed)

func runFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			errorColor.Fprintf(os.Stderr, "klox: can't open file '%s'.\n", path)
			os.Exit(exitNoInput)
		}
		return err
	}
	source := string(data)

	if dumpAST {
		dumpProgram(source)
	}

	err = klox.Run(source, klox.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Trace:  trace,
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, klox.ErrParse), errors.Is(err, klox.ErrStatic):
		os.Exit(exitDataError)
	case errors.Is(err, klox.ErrRuntime):
		os.Exit(exitSoftware)
	}
	return err
}

// dumpProgram prints the parsed AST's String() form ahead of execution, for
// --dump-ast debugging. Parse errors here are swallowed — klox.Run reports
// them properly and exits with the right code right after this returns.
func dumpProgram(source string) {
	tokens, _ := lexer.ScanTokens(source)
	p := parser.New(tokens)
	program := p.ParseProgram()
	if p.HadError() {
		return
	}
	fmt.Println("=== AST ===")
	fmt.Println(program.String())
	fmt.Println("=== end AST ===")
}
