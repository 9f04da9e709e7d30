// Package progtest contains utilities for testing subprograms in pkg/prog.
//
// Test cases are built with ThatABasic and checked with Test, which runs the
// program with pipes as its standard files.
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.abasic.dev/pkg/prog"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit           int
	stdout, stderr output
}

type output struct {
	content  string
	partial  bool
	nonEmpty bool
}

func (o output) check(t *testing.T, name, got string) {
	t.Helper()
	switch {
	case o.partial:
		if !strings.Contains(got, o.content) {
			t.Errorf("%s: got %q, want containing %q", name, got, o.content)
		}
	case o.nonEmpty:
		if got == "" {
			t.Errorf("%s: got empty, want some output", name)
		}
	default:
		if diff := cmp.Diff(o.content, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
}

// ThatABasic returns a Case that runs the program with the given arguments.
func ThatABasic(args ...string) Case {
	return Case{args: append([]string{"abasic"}, args...)}
}

// WithStdin returns a Case with the given standard input.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns a Case that requires the program to exit with 0 and
// write nothing.
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns a Case that requires the program to exit with the code.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns a Case that requires exactly s on stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns a Case that requires stdout to contain s.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStdoutSomething returns a Case that requires some output on stdout.
func (c Case) WritesStdoutSomething() Case {
	c.want.stdout = output{nonEmpty: true}
	return c
}

// WritesStderr returns a Case that requires exactly s on stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns a Case that requires stderr to contain s.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(t, p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit %v, want %v", r.exit, c.want.exit)
			}
			c.want.stdout.check(t, "stdout", r.stdout)
			c.want.stderr.check(t, "stderr", r.stderr)
		})
	}
}

type got struct {
	exit           int
	stdout, stderr string
}

// run runs the program with pipes as stdin, stdout and stderr. Output is read
// concurrently so that a program writing more than a pipe buffers does not
// block.
func run(t *testing.T, p prog.Program, args []string, stdin string) got {
	t.Helper()
	rIn, wIn := pipe(t)
	rOut, wOut := pipe(t)
	rErr, wErr := pipe(t)

	go func() {
		io.WriteString(wIn, stdin)
		wIn.Close()
	}()
	outCh := readAll(rOut)
	errCh := readAll(rErr)

	exit := prog.Run([3]*os.File{rIn, wOut, wErr}, args, p)
	wOut.Close()
	wErr.Close()
	rIn.Close()
	return got{exit, <-outCh, <-errCh}
}

func pipe(t *testing.T) (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	return r, w
}

func readAll(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, _ := io.ReadAll(r)
		r.Close()
		ch <- string(b)
	}()
	return ch
}
