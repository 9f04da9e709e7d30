package eval_test

import (
	"testing"

	"src.abasic.dev/pkg/eval/errs"
	. "src.abasic.dev/pkg/eval/evaltest"
	"src.abasic.dev/pkg/eval/vals"
)

func TestInput(t *testing.T) {
	Test(t,
		That("INPUT A: PRINT A").WithInput("10\n").Prints("?10\n"),
		That("INPUT \"N\";A,B: PRINT A+B").WithInput("1\n2\n").Prints("N??3\n"),
		That("INPUT A,B$").WithInput("1,HELLO\n").
			Sets("A", vals.Num(1)).Sets("B$", vals.Str("HELLO")),
		That("INPUT A$").WithInput("\"  SPACED, \"\n").Sets("A$", vals.Str("  SPACED, ")),
		That("INPUT A: PRINT A").WithInput("X\n7\n").Prints("??REENTER\n?7\n"),
		That("INPUT A: PRINT A").WithInput("1,2\n").Prints("??EXTRA IGNORED\n1\n"),
		That("INPUT A: PRINT A").WithInput("\n").Prints("?0\n"),
		That("INPUT A").Prints("?\n?END OF DATA ERROR\n").Throws(errs.EndOfData),
		// The last line may lack a newline.
		That("INPUT A").WithInput("5").Sets("A", vals.Num(5)),
	)
}

func TestGet(t *testing.T) {
	Test(t,
		That("GET A$: PRINT A$").WithInput("Y").Prints("Y\n"),
		That("GET A").WithInput("7").Sets("A", vals.Num(7)),
		That("GET A").WithInput("Q").Sets("A", vals.Num(0)),
		That("GET A$").Throws(errs.EndOfData),
	)
}
