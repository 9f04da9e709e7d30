package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/goforj/godump"

	"src.abasic.dev/pkg/diag"
	"src.abasic.dev/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd     bool
	DumpAST bool
	JSON    bool
}

// script loads a program file and runs it, or enters the lines given with -c
// one by one. It returns the exit status.
func script(rt *runtime, fds [3]*os.File, arg0 string, cfg *scriptCfg) int {
	if cfg.Cmd {
		for _, line := range strings.Split(arg0, "\n") {
			if err := rt.enter(line); err != nil {
				return 2
			}
		}
		return 0
	}

	code, err := readFileUTF8(arg0)
	if err != nil {
		fmt.Fprintf(fds[2], "cannot read program %q: %v\n", arg0, err)
		return 2
	}
	// Lines that do not parse are kept and fail when they are reached.
	if err := rt.ev.Load(code); err != nil {
		logger.Println("load:", err)
	}
	if err := rt.enter("RUN"); err != nil {
		return 2
	}
	return 0
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// parsedLine is one line of a program checked by -compileonly or -dumpast.
type parsedLine struct {
	name  string
	stmts []parse.Stmt
	err   error
}

// check parses a program without running it, showing the parse errors or
// the parse trees. It returns the exit status.
func check(fds [3]*os.File, arg0 string, cfg *scriptCfg) int {
	code := arg0
	if !cfg.Cmd {
		var err error
		if code, err = readFileUTF8(arg0); err != nil {
			fmt.Fprintf(fds[2], "cannot read program %q: %v\n", arg0, err)
			return 2
		}
	}
	var lines []parsedLine
	for _, src := range strings.Split(code, "\n") {
		if n, rest, ok := parse.SplitLineNumber(src); ok {
			lines = append(lines, parseLine(fmt.Sprintf("line %d", n), rest))
		} else if cfg.Cmd && strings.TrimSpace(src) != "" {
			// A program file ignores unnumbered lines.
			lines = append(lines, parseLine("code from -c", src))
		}
	}

	var errs []*parse.Error
	for _, l := range lines {
		if pe, ok := l.err.(*parse.Error); ok {
			errs = append(errs, pe)
		} else if l.err != nil {
			fmt.Fprintln(fds[2], l.err)
			return 2
		}
	}

	if cfg.DumpAST && len(errs) == 0 {
		dumpAST(fds[1], lines)
		return 0
	}
	if cfg.JSON {
		fmt.Fprintf(fds[1], "%s\n", errorsToJSON(errs))
	} else {
		for _, e := range errs {
			diag.ShowError(fds[2], e)
		}
	}
	if len(errs) > 0 {
		return 2
	}
	return 0
}

func parseLine(name, src string) parsedLine {
	stmts, err := parse.Parse(name, src)
	return parsedLine{name, stmts, err}
}

// dumpAST prints the statements of each line.
func dumpAST(out *os.File, lines []parsedLine) {
	// godump writes to os.Stdout.
	stdout := os.Stdout
	os.Stdout = out
	defer func() { os.Stdout = stdout }()
	for _, l := range lines {
		fmt.Fprintf(out, "%s:\n", l.name)
		for _, stmt := range l.stmts {
			godump.Dump(stmt)
		}
	}
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Message  string `json:"message"`
}

// Converts parse errors into JSON.
func errorsToJSON(errs []*parse.Error) []byte {
	converted := []errorInJSON{}
	for _, e := range errs {
		converted = append(converted,
			errorInJSON{e.Context.Name, e.Context.From, e.Context.To, e.Message})
	}
	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
