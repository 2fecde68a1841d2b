// Command ibmicall is a thin demonstration wrapper over the ibmi
// package: it connects a Session and drives CallCommand/CallProgram
// from the shell. It carries no logic of its own beyond flag parsing
// and result formatting.
package main

import (
	"os"

	"github.com/ibmigo/ibmiconnector/cmd/ibmicall/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.Exit("%v", err)
	}
	os.Exit(0)
}
