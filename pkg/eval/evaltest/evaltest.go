// Package evaltest provides a framework for testing BASIC code.
//
// The entry point for the framework is the Test function, which accepts a
// *testing.T and any number of test cases.
//
// Test cases are constructed using the That function, followed by method calls
// that add additional information to it. Each argument of That is one line as
// typed at the prompt, so numbered lines build a program and other lines run
// immediately.
//
// Example:
//
//	Test(t,
//	    That("PRINT 1+2").Prints("3\n"),
//	    That("10 GOTO 20", "RUN").Throws(errs.UndefStatement))
//
// If some setup is needed, use the TestWithSetup function instead.
package evaltest

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.abasic.dev/pkg/eval"
	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

// Case is a test case that can be used in Test.
type Case struct {
	lines  []string
	input  string
	setup  func(ev *eval.Evaler)
	verify func(t *testing.T, ev *eval.Evaler)
	want   result
}

type result struct {
	output    *string
	err       errs.Kind
	checkErr  bool
	variables map[string]vals.Value
}

// That returns a new Case with the given lines.
func That(lines ...string) Case {
	return Case{lines: lines}
}

// Then returns a new Case that enters the given lines in addition.
func (c Case) Then(lines ...string) Case {
	c.lines = append(append([]string(nil), c.lines...), lines...)
	return c
}

// WithInput returns a new Case that reads INPUT and GET from s.
func (c Case) WithInput(s string) Case {
	c.input = s
	return c
}

// WithSetup returns a new Case with the given setup function executed on the
// Evaler before the lines are entered.
func (c Case) WithSetup(f func(*eval.Evaler)) Case {
	c.setup = f
	return c
}

// Passes returns a new Case that runs an additional verification function.
func (c Case) Passes(f func(t *testing.T, ev *eval.Evaler)) Case {
	c.verify = f
	return c
}

// Prints returns a new Case that requires the lines to produce exactly the
// given output, including any error message.
func (c Case) Prints(s string) Case {
	c.want.output = &s
	return c
}

// DoesNothing returns a new Case that requires the lines to produce no output
// and no error.
func (c Case) DoesNothing() Case {
	return c.Prints("")
}

// Throws returns a new Case that requires the last error returned while
// entering the lines to be of the given kind.
func (c Case) Throws(k errs.Kind) Case {
	c.want.err, c.want.checkErr = k, true
	return c
}

// Sets returns a new Case that requires the named scalar variable to hold v
// afterwards.
func (c Case) Sets(name string, v vals.Value) Case {
	m := make(map[string]vals.Value, len(c.want.variables)+1)
	for k, x := range c.want.variables {
		m[k] = x
	}
	m[name] = v
	c.want.variables = m
	return c
}

// Config returns the configuration of the Evalers created by Test: the
// default one with a fixed random seed.
func Config() eval.Config {
	cfg := eval.DefaultConfig()
	cfg.Seed = 1
	return cfg
}

// Test runs test cases. For each test case, a new Evaler is created with
// NewEvaler.
func Test(t *testing.T, tests ...Case) {
	t.Helper()
	TestWithSetup(t, func(*eval.Evaler) {}, tests...)
}

// TestWithSetup runs test cases. For each test case, a new Evaler is created
// with NewEvaler and passed to the setup function.
func TestWithSetup(t *testing.T, setup func(*eval.Evaler), tests ...Case) {
	t.Helper()
	for _, tc := range tests {
		t.Run(strings.Join(tc.lines, " / "), func(t *testing.T) {
			t.Helper()
			var out strings.Builder
			ev := eval.NewEvaler(Config(), strings.NewReader(tc.input), &out)
			setup(ev)
			if tc.setup != nil {
				tc.setup(ev)
			}

			var lastErr error
			for _, line := range tc.lines {
				if err := ev.Enter(context.Background(), line); err != nil {
					lastErr = err
				}
			}

			if tc.verify != nil {
				tc.verify(t, ev)
			}
			if tc.want.output != nil {
				if diff := cmp.Diff(*tc.want.output, out.String()); diff != "" {
					t.Errorf("output (-want +got):\n%s", diff)
				}
			}
			if tc.want.checkErr {
				if got := errs.KindOf(lastErr); got != tc.want.err {
					t.Errorf("got error %v, want kind %v", lastErr, tc.want.err)
				}
			} else if lastErr != nil {
				t.Errorf("got error %v, want none", lastErr)
			}
			for name, want := range tc.want.variables {
				if got := ev.Vars().Get(name); !matchValue(got, want) {
					t.Errorf("%s = %v, want %v", name, got, want)
				}
			}
		})
	}
}

func matchValue(got, want vals.Value) bool {
	if got.IsString() != want.IsString() {
		return false
	}
	if got.IsString() {
		return got.Text() == want.Text()
	}
	return vals.Equal(got, want)
}
