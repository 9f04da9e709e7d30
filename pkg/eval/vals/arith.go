package vals

import (
	"math"

	"src.abasic.dev/pkg/eval/errs"
)

// MaxStringLen is the longest string a value may hold.
const MaxStringLen = 255

// Op is a binary operator.
type Op int

// Binary operators.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpMod
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

var opNames = [...]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^", OpMod: "MOD",
	OpEq: "=", OpNe: "<>", OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpAnd: "AND", OpOr: "OR",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return "?"
	}
	return opNames[op]
}

// IsRelational reports whether op is one of the six comparison operators.
func (op Op) IsRelational() bool { return OpEq <= op && op <= OpGe }

// Binary applies op to a and b.
//
// "+" concatenates when either operand is a string. Relational operators
// compare strings lexicographically when both operands are strings. All other
// combinations convert string operands to numbers.
func Binary(op Op, a, b Value) (Value, error) {
	if op == OpAdd && (a.isStr || b.isStr) {
		s := a.Text() + b.Text()
		if len(s) > MaxStringLen {
			return Value{}, errs.New(errs.StringTooLong)
		}
		return Str(s), nil
	}
	if op.IsRelational() {
		return Bool(Compare(op, a, b)), nil
	}
	x, y := a.Float(), b.Float()
	var r float64
	switch op {
	case OpAdd:
		r = x + y
	case OpSub:
		r = x - y
	case OpMul:
		r = x * y
	case OpDiv:
		if y == 0 {
			return Value{}, errs.New(errs.DivisionByZero)
		}
		r = x / y
	case OpMod:
		if y == 0 {
			return Value{}, errs.New(errs.DivisionByZero)
		}
		r = math.Mod(x, y)
	case OpPow:
		return Pow(x, y)
	case OpAnd:
		return Bool(x != 0 && y != 0), nil
	case OpOr:
		return Bool(x != 0 || y != 0), nil
	default:
		return Value{}, errs.Newf(errs.Internal, "unknown operator %d", int(op))
	}
	return Checked(r)
}

// Pow computes x^y with the machine's error behavior: 0 raised to a negative
// power divides by zero, and a negative base needs an integral exponent.
func Pow(x, y float64) (Value, error) {
	if x == 0 && y < 0 {
		return Value{}, errs.New(errs.DivisionByZero)
	}
	if x < 0 && y != math.Trunc(y) {
		return Value{}, errs.New(errs.IllegalQuantity)
	}
	return Checked(math.Pow(x, y))
}

// Checked wraps x in a Value after checking that it is representable.
func Checked(x float64) (Value, error) {
	if math.IsNaN(x) {
		return Value{}, errs.New(errs.IllegalQuantity)
	}
	if math.IsInf(x, 0) || math.Abs(x) > MaxNum {
		return Value{}, errs.New(errs.Overflow)
	}
	return Num(x), nil
}

// Neg negates v after numeric conversion.
func Neg(v Value) Value { return Num(-v.Float()) }

// Not returns 1 if v is false and 0 otherwise.
func Not(v Value) Value { return Bool(!v.Truthy()) }

// Tolerance is the relative tolerance used by numeric equality.
const Tolerance = 1e-9

// Equal reports whether a and b are equal. Two strings are compared exactly;
// otherwise both sides are compared as rounded numbers within Tolerance.
func Equal(a, b Value) bool {
	if a.isStr && b.isStr {
		return a.s == b.s
	}
	return numEqual(a.Float(), b.Float())
}

func numEqual(x, y float64) bool {
	x, y = Round9(x), Round9(y)
	if x == y {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
	return math.Abs(x-y) <= Tolerance*scale
}

// Compare evaluates a relational operator.
func Compare(op Op, a, b Value) bool {
	var c int
	if a.isStr && b.isStr {
		switch {
		case a.s < b.s:
			c = -1
		case a.s > b.s:
			c = 1
		}
	} else {
		x, y := a.Float(), b.Float()
		switch {
		case numEqual(x, y):
			c = 0
		case x < y:
			c = -1
		default:
			c = 1
		}
	}
	switch op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpLt:
		return c < 0
	case OpGt:
		return c > 0
	case OpLe:
		return c <= 0
	case OpGe:
		return c >= 0
	}
	return false
}
