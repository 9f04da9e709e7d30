// Package vals contains the value type of the interpreter and the
// fixed-precision numeric model.
//
// A Value is either a number or a string. Every number that enters a Value
// through Num is rounded to 9 significant decimal digits, emulating the 5-byte
// floating point of the original machine on top of float64.
package vals

import "strconv"

// Value is a tagged union of a number and a string. The zero Value is the
// number 0.
type Value struct {
	s     string
	n     float64
	isStr bool
}

// Num returns a numeric Value holding x rounded with Round9.
func Num(x float64) Value { return Value{n: Round9(x)} }

// Str returns a string Value.
func Str(s string) Value { return Value{s: s, isStr: true} }

// Bool returns 1 for true and 0 for false.
func Bool(b bool) Value {
	if b {
		return Value{n: 1}
	}
	return Value{}
}

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.isStr }

// Float returns the numeric value of v. Strings are converted with
// ParseNumber; text without a numeric prefix converts to 0.
func (v Value) Float() float64 {
	if v.isStr {
		f, _ := ParseNumber(v.s)
		return f
	}
	return v.n
}

// Int returns the numeric value of v truncated toward negative infinity.
func (v Value) Int() int {
	return int(floor(v.Float()))
}

// Truthy reports whether v is a true condition: nonzero after numeric
// conversion.
func (v Value) Truthy() bool { return v.Float() != 0 }

// Text returns the string held by v, or the formatted number.
func (v Value) Text() string {
	if v.isStr {
		return v.s
	}
	return FormatNumber(v.n)
}

// String implements fmt.Stringer. Strings are quoted so that they are
// distinguishable from numbers in test output and logs.
func (v Value) String() string {
	if v.isStr {
		return strconv.Quote(v.s)
	}
	return FormatNumber(v.n)
}

// Zero returns the default value of a variable: "" if str is true, 0
// otherwise.
func Zero(str bool) Value {
	if str {
		return Str("")
	}
	return Value{}
}

// FromText returns a numeric Value if s is entirely a number (blanks around it
// allowed), and a string Value otherwise. It is used for untyped literal text
// such as DATA items, so FromText("3") is the number 3 and FromText("AB") the
// string "AB".
func FromText(s string) Value {
	if f, ok := ParseNumberStrict(s); ok && s != "" {
		return Num(f)
	}
	return Str(s)
}
