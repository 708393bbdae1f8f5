// Command klox runs klox source files and provides an interactive REPL.
package main

import "github.com/klox-lang/klox/cmd/klox/cmd"

func main() {
	cmd.Execute()
}
