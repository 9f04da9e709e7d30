package prog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	. "src.abasic.dev/pkg/prog"
	"src.abasic.dev/pkg/prog/progtest"
)

var (
	Test       = progtest.Test
	ThatABasic = progtest.ThatABasic
)

func TestCommonFlagHandling(t *testing.T) {
	Test(t, testProgram{},
		ThatABasic("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatABasic("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),
		ThatABasic("-help").
			WritesStdoutContaining("Usage: abasic [flags] [program]"),
		ThatABasic("-delay", "soon").
			ExitsWith(2).
			WritesStderrContaining("invalid value \"soon\" for flag -delay"),
	)
}

func TestLogFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	Test(t, testProgram{}, ThatABasic("-log", path).DoesNothing())
	_, err := os.Stat(path)
	be.Equal(t, err, nil)
}

func TestFlagsReachProgram(t *testing.T) {
	var got *Flags
	Test(t, flagsProgram{&got},
		ThatABasic("-nographics", "-delay", "5ms", "-tape", "T", "prog.bas").DoesNothing())
	be.True(t, got.NoGraphics)
	be.Equal(t, got.Delay.String(), "5ms")
	be.Equal(t, got.Tape, "T")
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatABasic().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatABasic().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatABasic().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestSpecialErrors(t *testing.T) {
	Test(t, testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatABasic().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"))
	Test(t, testProgram{returnErr: Exit(3)},
		ThatABasic().ExitsWith(3))
	Test(t, testProgram{returnErr: Exit(0)},
		ThatABasic().DoesNothing())
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type flagsProgram struct{ got **Flags }

func (p flagsProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	*p.got = f
	return nil
}
