package vals

import "testing"

func TestValue(t *testing.T) {
	if Num(2).IsString() || !Str("x").IsString() {
		t.Errorf("IsString wrong")
	}
	if (Value{}) != Num(0) {
		t.Errorf("zero Value should be the number 0")
	}
	if Str("3.5X").Float() != 3.5 {
		t.Errorf("string coercion wrong")
	}
	if Str("HELLO").Float() != 0 {
		t.Errorf("unparsable string should be 0")
	}
	if Num(-2.5).Int() != -3 {
		t.Errorf("Int should floor")
	}
	if got := Num(0.5).Text(); got != ".5" {
		t.Errorf("Text() = %q", got)
	}
	if got := Str("A").String(); got != `"A"` {
		t.Errorf("String() = %q", got)
	}
	if Zero(true) != Str("") || Zero(false) != Num(0) {
		t.Errorf("Zero wrong")
	}
	if !Num(3).Truthy() || Num(0).Truthy() {
		t.Errorf("Truthy wrong")
	}
}
