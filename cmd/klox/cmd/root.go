// Package cmd implements the klox command-line driver: a Cobra root command
// that launches the REPL with no arguments, runs a file given one argument,
// and rejects more than one with the usage error spec.md §6 specifies.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dumpAST bool
	trace   bool
)

// Exit codes from spec.md §6.
const (
	exitSuccess    = 0
	exitUsageError = 64
	exitDataError  = 65 // parse/static error
	exitNoInput    = 66 // file not found
	exitSoftware   = 70 // runtime error
)

var rootCmd = &cobra.Command{
	Use:   "klox [script]",
	Short: "klox is a tree-walking interpreter for the klox scripting language",
	Long: `klox runs klox source files, or launches an interactive REPL when
given no arguments.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(_ *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			return runREPL()
		case 1:
			return runFile(args[0])
		default:
			fmt.Fprintln(os.Stderr, "Usage: klox [script]")
			os.Exit(exitUsageError)
			return nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before running")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "enable verbose interpreter tracing")
}

// Execute runs the root command. runFile exits directly with the parse/
// static, file-not-found, or runtime code from spec.md §6; any error that
// still reaches here (a Cobra usage/flag-parsing error, or another failure
// returned by the REPL or runFile) exits 64.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsageError)
	}
}
