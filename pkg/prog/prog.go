// Package prog provides the entry point to abasic. Its subprograms are the
// build information printer in pkg/buildinfo, the language server in pkg/lsp
// and the interpreter shell in pkg/shell.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"src.abasic.dev/pkg/logutil"
)

// Flags keeps command-line flags.
type Flags struct {
	Log string

	Help, Version, BuildInfo, JSON bool

	CodeInArg, CompileOnly, DumpAST bool

	LSP bool

	// Interpreter settings. They override the configuration file.
	Config, Tape, DB string
	Delay            time.Duration
	NoGraphics       bool
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("abasic", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.Version, "version", false, "show version and quit")
	fs.BoolVar(&f.BuildInfo, "buildinfo", false, "show build info and quit")
	fs.BoolVar(&f.JSON, "json", false, "show output in JSON; useful with -buildinfo and -compileonly")

	fs.BoolVar(&f.CodeInArg, "c", false, "take the first argument as a line to execute")
	fs.BoolVar(&f.CompileOnly, "compileonly", false, "check the program for syntax errors but do not run it")
	fs.BoolVar(&f.DumpAST, "dumpast", false, "print the parsed program but do not run it")

	fs.BoolVar(&f.LSP, "lsp", false, "run the language server on stdin and stdout")

	fs.StringVar(&f.Config, "config", "", "path to the configuration file")
	fs.StringVar(&f.Tape, "tape", "", "path to the tape file used by STORE and RECALL")
	fs.StringVar(&f.DB, "db", "", "path to the database of history and stored variables")
	fs.DurationVar(&f.Delay, "delay", 0, "pause after every statement")
	fs.BoolVar(&f.NoGraphics, "nographics", false, "disable graphics statements")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: abasic [flags] [program]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// -h is not defined; treat it like any unknown flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Log != "" {
		if err := logutil.SetOutputFile(f.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
