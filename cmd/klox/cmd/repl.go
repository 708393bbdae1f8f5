package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/klox-lang/klox/pkg/klox"
)

// runREPL implements spec.md §6's REPL: print the banner, then loop reading
// one line at a time, running it against a persistent Interpreter, clearing
// the error flag between lines (spec.md §7) — which here just means each
// Exec call is independent and a prior line's error never poisons the next.
func runREPL() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("Klox REPL [ctrl+D to quit]")

	interp := klox.NewInterpreter(klox.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Trace:  trace,
		Repl:   true,
	})

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if line == "" {
			continue
		}

		_ = interp.Exec(line) // diagnostics already reported to Stderr by Exec
	}
}

// historyFilePath returns a best-effort location for REPL line history;
// an empty string (history disabled) if the home directory can't be found.
func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.klox_history"
}
