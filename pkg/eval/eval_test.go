package eval_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"

	"src.abasic.dev/pkg/eval"
	"src.abasic.dev/pkg/eval/errs"
	. "src.abasic.dev/pkg/eval/evaltest"
	"src.abasic.dev/pkg/parse"
)

func TestErrorMessages(t *testing.T) {
	Test(t,
		That(`PRINT "A": PRINT 1/0`).
			Prints("A\n?DIVISION BY ZERO ERROR\n").Throws(errs.DivisionByZero),
		That("10 PRINT (", "RUN").Prints("?SYNTAX ERROR IN 10\n").Throws(errs.Syntax),
		That("PRINT (").Prints("?SYNTAX ERROR\n").Throws(errs.Syntax),
		// A broken line does not stop the lines before it.
		That("10 PRINT 1", "20 FOR", "RUN").Prints("1\n?SYNTAX ERROR IN 20\n").Throws(errs.Syntax),
	)
}

func TestRunError(t *testing.T) {
	err := &eval.RunError{Line: 10, Err: errs.New(errs.OutOfData)}
	be.Equal(t, err.Error(), "?OUT OF DATA ERROR IN 10")
	be.Equal(t, err.Kind(), errs.OutOfData)
	be.True(t, errors.Is(err, errs.New(errs.OutOfData)))

	err = &eval.RunError{Line: parse.NoLine, Err: errs.New(errs.Break)}
	be.Equal(t, err.Error(), "BREAK")
}

func newEvaler(cfg eval.Config, input string) (*eval.Evaler, *strings.Builder) {
	var out strings.Builder
	return eval.NewEvaler(cfg, strings.NewReader(input), &out), &out
}

func TestProgramEditing(t *testing.T) {
	ev, _ := newEvaler(Config(), "")
	ctx := context.Background()

	be.Equal(t, ev.Enter(ctx, "30 END"), nil)
	be.Equal(t, ev.Enter(ctx, "10   PRINT 1  "), nil)
	be.Equal(t, ev.Enter(ctx, "20 GOTO 10"), nil)
	if diff := cmp.Diff([]int{10, 20, 30}, ev.Lines()); diff != "" {
		t.Errorf("Lines (-want +got):\n%s", diff)
	}
	be.Equal(t, ev.List(), "10 PRINT 1\n20 GOTO 10\n30 END\n")

	be.True(t, ev.DeleteLine(20))
	be.True(t, !ev.DeleteLine(20))
	be.Equal(t, ev.Enter(ctx, "30"), nil)
	be.Equal(t, ev.List(), "10 PRINT 1\n")

	// A line that does not parse is kept and reported.
	err := ev.AddLine(40, "PRINT (")
	be.Equal(t, errs.KindOf(err), errs.Syntax)
	be.Equal(t, len(ev.Lines()), 2)
}

func TestLoad(t *testing.T) {
	ev, out := newEvaler(Config(), "")
	err := ev.Load("20 PRINT \"B\"\n10 PRINT \"A\"\n\nnot a line\n30 PRINT (\n")
	be.Equal(t, errs.KindOf(err), errs.Syntax)
	be.Equal(t, ev.Run(context.Background()) != nil, true)
	be.Equal(t, out.String(), "A\nB\n?SYNTAX ERROR IN 30\n")
}

func TestCheck(t *testing.T) {
	found := eval.Check("10 PRINT 1\n20 PRINT (\nPRINT\n30 GOTO\n")
	be.Equal(t, len(found), 2)
	be.True(t, strings.Contains(found[0].Error(), "line 20"))
	be.Equal(t, len(eval.Check("10 END\n")), 0)
}

func TestInterrupt(t *testing.T) {
	ev, out := newEvaler(Config(), "")
	ev.Enter(context.Background(), "10 I = I + 1: GOTO 10")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := ev.Run(ctx)
	be.Equal(t, errs.KindOf(err), errs.Break)
	be.Equal(t, out.String(), "BREAK IN 10\n")
	n := ev.Vars().Get("I").Float()
	be.True(t, n > 0)

	// CONT picks up where the program was interrupted.
	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = ev.Exec(ctx, "CONT")
	be.Equal(t, errs.KindOf(err), errs.Break)
	be.True(t, ev.Vars().Get("I").Float() > n)
}

func TestWaitTimeout(t *testing.T) {
	cfg := Config()
	cfg.WaitTimeout = 30 * time.Millisecond
	ev, _ := newEvaler(cfg, "")
	start := time.Now()
	be.Equal(t, ev.Exec(context.Background(), "WAIT 768,1"), nil)
	be.True(t, time.Since(start) >= cfg.WaitTimeout)

	// A set bit ends the wait at once.
	be.Equal(t, ev.Exec(context.Background(), "POKE 768,3: WAIT 768,2"), nil)
	// With the xor value, WAIT waits for a bit to clear.
	be.Equal(t, ev.Exec(context.Background(), "POKE 768,0: WAIT 768,1,1"), nil)
}

func TestWaitInterrupted(t *testing.T) {
	ev, _ := newEvaler(Config(), "")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := ev.Exec(ctx, "WAIT 768,1")
	be.Equal(t, errs.KindOf(err), errs.Break)
}

func TestStatementDelay(t *testing.T) {
	cfg := Config()
	cfg.StatementDelay = 5 * time.Millisecond
	ev, out := newEvaler(cfg, "")
	start := time.Now()
	ev.Exec(context.Background(), "FOR I=1 TO 4: NEXT: PRINT I")
	be.True(t, time.Since(start) >= 4*cfg.StatementDelay)
	be.Equal(t, out.String(), "5\n")
}

func TestANSI(t *testing.T) {
	cfg := Config()
	cfg.ANSI = true
	ev, out := newEvaler(cfg, "")
	ev.Exec(context.Background(), `INVERSE: PRINT "A";: NORMAL`)
	be.Equal(t, out.String(), "\033[7mA\033[0m")
}

func TestGraphicsDisabledByConfig(t *testing.T) {
	cfg := Config()
	cfg.Graphics = false
	ev, _ := newEvaler(cfg, "")
	withCanvas(ev)
	be.Equal(t, errs.KindOf(ev.Exec(context.Background(), "GR")), errs.GraphicsNotEnabled)
}

type fakeKeys struct{ keys []byte }

func (k *fakeKeys) ReadKey() (byte, error) {
	if len(k.keys) == 0 {
		return 0, errors.New("no more keys")
	}
	c := k.keys[0]
	k.keys = k.keys[1:]
	return c, nil
}

func (k *fakeKeys) PollKey() (byte, bool) {
	c, err := k.ReadKey()
	return c, err == nil
}

func TestKeyboard(t *testing.T) {
	ev, out := newEvaler(Config(), "")
	ev.Keys = &fakeKeys{[]byte("AB\x03")}
	ctx := context.Background()

	// The latch keeps the key with the high bit set until the strobe is read.
	be.Equal(t, ev.Exec(ctx, "PRINT PEEK(49152);PEEK(49152): X=PEEK(49168): PRINT PEEK(49152)"), nil)
	be.Equal(t, out.String(), "193193\n194\n")

	be.Equal(t, errs.KindOf(ev.Exec(ctx, "GET A$")), errs.Break)
}
