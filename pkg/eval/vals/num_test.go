package vals

import (
	"math"
	"testing"

	"src.abasic.dev/pkg/tt"
)

var round9Inputs = []float64{
	0, 1, -1, 1.0 / 3, 2.0 / 3, 123456789.4, 123456789.6, 1e-20, 1.23456789012e30,
	-98765.4321987, math.Pi, math.E, 0.1 + 0.2,
}

func TestRound9_Idempotent(t *testing.T) {
	for _, x := range round9Inputs {
		once := Round9(x)
		if twice := Round9(once); twice != once {
			t.Errorf("Round9(Round9(%v)) = %v, want %v", x, twice, once)
		}
	}
}

func TestRound9_Values(t *testing.T) {
	if got := Round9(1.0 / 3); got != 0.333333333 {
		t.Errorf("Round9(1/3) = %v", got)
	}
	if got := Round9(0.1 + 0.2); got != 0.3 {
		t.Errorf("Round9(0.1+0.2) = %v", got)
	}
	if got := Round9(math.Inf(1)); !math.IsInf(got, 1) {
		t.Errorf("Round9(+Inf) = %v", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tt.Test(t, tt.Fn("FormatNumber", FormatNumber), tt.Table{
		tt.Args(0.0).Rets("0"),
		tt.Args(1.0).Rets("1"),
		tt.Args(-1.0).Rets("-1"),
		tt.Args(0.5).Rets(".5"),
		tt.Args(-0.25).Rets("-.25"),
		tt.Args(1.5).Rets("1.5"),
		tt.Args(1.0 / 3).Rets(".333333333"),
		tt.Args(123456789.0).Rets("123456789"),
		tt.Args(1e9).Rets("1E+09"),
		tt.Args(1.5e10).Rets("1.5E+10"),
		tt.Args(0.01).Rets(".01"),
		tt.Args(0.001).Rets("1E-03"),
		tt.Args(-0.00012345).Rets("-1.2345E-04"),
	})
}

func TestParseNumber(t *testing.T) {
	tt.Test(t, tt.Fn("ParseNumber", ParseNumber), tt.Table{
		tt.Args("12").Rets(12.0, true),
		tt.Args("  -3.5").Rets(-3.5, true),
		tt.Args("12ABC").Rets(12.0, true),
		tt.Args(".5").Rets(0.5, true),
		tt.Args("1E3").Rets(1000.0, true),
		tt.Args("1E").Rets(1.0, true),
		tt.Args("2.5E-2X").Rets(0.025, true),
		tt.Args("ABC").Rets(0.0, false),
		tt.Args("").Rets(0.0, false),
		tt.Args("-").Rets(0.0, false),
	})
}

func TestParseNumberStrict(t *testing.T) {
	if f, ok := ParseNumberStrict(" 42 "); !ok || f != 42 {
		t.Errorf("ParseNumberStrict(\" 42 \") = (%v, %v)", f, ok)
	}
	if _, ok := ParseNumberStrict("42X"); ok {
		t.Errorf("ParseNumberStrict(\"42X\") should fail")
	}
	if f, ok := ParseNumberStrict(""); !ok || f != 0 {
		t.Errorf("empty response should be 0")
	}
}
