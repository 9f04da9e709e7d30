package eval_test

import (
	"testing"

	"src.abasic.dev/pkg/eval/errs"
	. "src.abasic.dev/pkg/eval/evaltest"
	"src.abasic.dev/pkg/eval/vals"
)

var dataProgram = []string{
	"10 DATA 1,2,3",
	"20 DATA 4,5",
	"30 FOR I=1 TO 5: READ X: PRINT X;: NEXT",
	"40 PRINT",
}

func TestReadData(t *testing.T) {
	Test(t,
		That(dataProgram...).Then("RUN").Prints("12345\n"),
		That(dataProgram...).Then("50 READ X", "RUN").
			Prints("12345\n?OUT OF DATA ERROR IN 50\n").Throws(errs.OutOfData),
		// DATA is collected regardless of control flow.
		That("10 GOTO 30", "20 DATA 7", "30 READ A: PRINT A", "RUN").Prints("7\n"),
		That("10 IF 0 THEN DATA 8", "20 READ A: PRINT A", "RUN").Prints("8\n"),
		That(`10 DATA HELLO,"A,B",`, "20 READ A$,B$,C: PRINT A$;\"|\";B$;\"|\";C", "RUN").
			Prints("HELLO|A,B|0\n"),
		That(`10 DATA "X"`, "20 READ A", "RUN").Throws(errs.TypeMismatch),
		// RUN rewinds the pointer.
		That("10 DATA 1", "20 READ A: PRINT A", "RUN", "RUN").Prints("1\n1\n"),
	)
}

func TestRestore(t *testing.T) {
	Test(t,
		That("10 DATA 1,2,3", "20 DATA 4,5", "30 READ X: RESTORE 20: READ X: PRINT X", "RUN").
			Prints("4\n"),
		That("10 DATA 1,2", "20 READ X,Y: RESTORE: READ Z: PRINT X;Y;Z", "RUN").
			Prints("121\n"),
		That("10 DATA 1", "20 RESTORE 15", "RUN").Throws(errs.UndefStatement),
		// A line without DATA positions at the next line that has some.
		That("10 DATA 1", "20 REM", "30 DATA 2", "40 RESTORE 20: READ A: PRINT A", "RUN").
			Prints("2\n"),
	)
}

func TestImmediateData(t *testing.T) {
	Test(t,
		That("DATA 7,8", "READ A,B: PRINT A+B").Prints("15\n"),
		That("READ A").Throws(errs.OutOfData),
		That("10 DATA 1", "READ A").Sets("A", vals.Num(1)),
	)
}
