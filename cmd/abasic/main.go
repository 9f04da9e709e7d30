// Abasic is an interpreter for line-numbered Applesoft BASIC programs. It
// runs a program file, or offers the "]" prompt where lines are typed,
// listed and run as on the machine.
package main

import (
	"os"

	"src.abasic.dev/pkg/buildinfo"
	"src.abasic.dev/pkg/lsp"
	"src.abasic.dev/pkg/prog"
	"src.abasic.dev/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, lsp.Program{}, shell.Program{})))
}
