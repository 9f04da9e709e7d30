package eval_test

import (
	"testing"

	"src.abasic.dev/pkg/eval/errs"
	. "src.abasic.dev/pkg/eval/evaltest"
)

func TestOnErr(t *testing.T) {
	Test(t,
		That(
			"10 ONERR GOTO 100",
			"20 X = 1/0",
			"30 END",
			"100 PRINT \"CAUGHT\"",
			"RUN").Prints("CAUGHT\n"),
		That(
			"10 ONERR GOTO 100",
			"20 X = 1/0",
			"100 PRINT PEEK(222);\" \";PEEK(218)+256*PEEK(219)",
			"RUN").Prints("133 20\n"),
		That(
			"10 ONERR GOTO 100",
			"20 PRINT (",
			"100 PRINT PEEK(222)",
			"RUN").Prints("16\n"),
		That(
			"10 ONERR GOTO 100",
			"20 GOTO 999",
			"100 PRINT PEEK(222)",
			"RUN").Prints("90\n"),
		// A handler line that does not exist stops the program.
		That("10 ONERR GOTO 100", "20 X = 1/0", "RUN").
			Prints("?UNDEF'D STATEMENT ERROR IN 20\n").Throws(errs.UndefStatement),
		// Errors in immediate mode are never trapped.
		That("10 ONERR GOTO 100", "100 PRINT \"NO\"", "RUN", "PRINT 1/0").
			Throws(errs.DivisionByZero),
		// POKE 216 disarms the trap.
		That(
			"10 ONERR GOTO 100",
			"20 POKE 216,0",
			"30 X = 1/0",
			"100 PRINT \"NO\"",
			"RUN").Prints("?DIVISION BY ZERO ERROR IN 30\n").Throws(errs.DivisionByZero),
		That("10 ONERR GOTO 100", "20 PRINT PEEK(216)", "100 END", "RUN").Prints("128\n"),
	)
}

func TestResume(t *testing.T) {
	Test(t,
		That(
			"10 ONERR GOTO 100",
			"20 D = 0",
			"30 PRINT 10/D",
			"40 END",
			"100 D = 2: RESUME",
			"RUN").Prints("5\n"),
		// The handler stays armed after RESUME.
		That(
			"10 ONERR GOTO 100",
			"20 N = 0",
			"30 PRINT 1/INT(N/2): END",
			"100 N = N + 1: PRINT \"E\";: RESUME",
			"RUN").Prints("EE1\n"),
		That("RESUME").Prints("?RESUME WITHOUT ERROR\n").Throws(errs.ResumeWithoutError),
	)
}
