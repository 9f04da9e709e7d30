package eval_test

import (
	"strings"
	"testing"

	"src.abasic.dev/pkg/eval/errs"
	. "src.abasic.dev/pkg/eval/evaltest"
)

func TestPrint(t *testing.T) {
	Test(t,
		That("PRINT 1+2").Prints("3\n"),
		That("PRINT").Prints("\n"),
		That("PRINT \"A\";\"B\"").Prints("AB\n"),
		That("PRINT \"A\";").Prints("A"),
		That("PRINT 1,2").Prints("1" + strings.Repeat(" ", 13) + "2\n"),
		That("PRINT ,\"X\"").Prints(strings.Repeat(" ", 14) + "X\n"),
		That("PRINT TAB(5);\"X\"").Prints("    X\n"),
		// TAB never moves backwards.
		That("PRINT \"ABCDEF\";TAB(3);\"X\"").Prints("ABCDEFX\n"),
		That("PRINT \"A\";SPC(3);\"B\"").Prints("A   B\n"),
		That("PRINT TAB(256)").Throws(errs.IllegalQuantity),
		That("HTAB 10: PRINT \"X\"").Prints(strings.Repeat(" ", 9) + "X\n"),
		That("HTAB 0").Throws(errs.IllegalQuantity),
		That("VTAB 3: PRINT \"X\"").Prints("\n\nX\n"),
		That("VTAB 25").Throws(errs.IllegalQuantity),
		That("PRINT \"AB\";POS(0)").Prints("AB2\n"),
		That("PRINT -1;.5;1E9;1/3").Prints("-1.51E+09.333333333\n"),
		That("? \"SHORT\"").Prints("SHORT\n"),
	)
}

func TestTextAttributes(t *testing.T) {
	// Escape sequences are only written when ANSI output is configured.
	Test(t,
		That("INVERSE: PRINT \"A\": NORMAL").Prints("A\n"),
		That("HOME: PRINT \"A\"").Prints("A\n"),
		That("FLASH").DoesNothing(),
	)
}

func TestTrace(t *testing.T) {
	Test(t,
		That("10 PRINT 1", "20 PRINT 2", "TRACE", "RUN").Prints("#10 1\n#20 2\n"),
		That("10 PRINT 1", "TRACE", "NOTRACE", "RUN").Prints("1\n"),
	)
}

func TestList(t *testing.T) {
	Test(t,
		That("20 GOTO 10", "10 PRINT 1", "LIST").Prints("10 PRINT 1\n20 GOTO 10\n"),
		That("10 PRINT 1", "20 GOTO 10", "30 END", "LIST 20").Prints("20 GOTO 10\n"),
		That("10 PRINT 1", "20 GOTO 10", "30 END", "LIST 20-").Prints("20 GOTO 10\n30 END\n"),
		That("10 PRINT 1", "10", "LIST").DoesNothing(),
		That("10 PRINT 1", "NEW", "LIST").DoesNothing(),
		That("10 PRINT 1", "20 PRINT 2", "30 PRINT 3", "DEL 10,20", "LIST").Prints("30 PRINT 3\n"),
	)
}
