package errs

import (
	"errors"
	"fmt"
	"testing"

	"src.abasic.dev/pkg/tt"
)

func TestKind(t *testing.T) {
	tt.Test(t, tt.Fn("Kind.String", Kind.String), tt.Table{
		tt.Args(Syntax).Rets("SYNTAX"),
		tt.Args(UndefStatement).Rets("UNDEF'D STATEMENT"),
		tt.Args(OutOfData).Rets("OUT OF DATA"),
		tt.Args(DivisionByZero).Rets("DIVISION BY ZERO"),
		tt.Args(SqrtOfNegative).Rets("ILLEGAL QUANTITY"),
		tt.Args(NextWithoutFor).Rets("NEXT WITHOUT FOR"),
		tt.Args(Kind(999)).Rets("Kind(999)"),
	})
	tt.Test(t, tt.Fn("Kind.Code", Kind.Code), tt.Table{
		tt.Args(Syntax).Rets(16),
		tt.Args(UndefStatement).Rets(90),
		tt.Args(OutOfData).Rets(42),
		tt.Args(DivisionByZero).Rets(133),
		tt.Args(SqrtOfNegative).Rets(53),
		tt.Args(NextWithoutFor).Rets(0),
		tt.Args(Kind(999)).Rets(255),
	})
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Newf(BadSubscript, "A(11)"))
	if !errors.Is(err, New(BadSubscript)) {
		t.Errorf("errors.Is did not match the same kind")
	}
	if errors.Is(err, New(Syntax)) {
		t.Errorf("errors.Is matched a different kind")
	}
	if got := err.Error(); got != "wrapped: BAD SUBSCRIPT: A(11)" {
		t.Errorf("Error() -> %q", got)
	}
}

type syntaxish struct{}

func (syntaxish) Error() string { return "bad" }
func (syntaxish) SyntaxKind()   {}

func TestKindOf(t *testing.T) {
	if KindOf(nil) != -1 {
		t.Errorf("KindOf(nil) should be -1")
	}
	if KindOf(New(OutOfData)) != OutOfData {
		t.Errorf("KindOf(*Error) wrong")
	}
	if KindOf(syntaxish{}) != Syntax {
		t.Errorf("KindOf(parse error) should be Syntax")
	}
	if KindOf(errors.New("x")) != Internal {
		t.Errorf("KindOf(foreign) should be Internal")
	}
	if got := Message(New(DivisionByZero)); got != "?DIVISION BY ZERO ERROR" {
		t.Errorf("Message -> %q", got)
	}
}

func TestMessage(t *testing.T) {
	tt.Test(t, tt.Fn("Message", Message), tt.Table{
		tt.Args(New(DivisionByZero)).Rets("?DIVISION BY ZERO ERROR"),
		tt.Args(New(ResumeWithoutError)).Rets("?RESUME WITHOUT ERROR"),
		tt.Args(Newf(IOError, "disk full")).Rets("?I/O ERROR"),
		tt.Args(syntaxish{}).Rets("?SYNTAX ERROR"),
	})
}
