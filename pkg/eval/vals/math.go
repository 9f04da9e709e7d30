package vals

import (
	"math"

	"src.abasic.dev/pkg/eval/errs"
)

// Sqr returns the square root of x.
func Sqr(x float64) (Value, error) {
	if x < 0 {
		return Value{}, errs.New(errs.SqrtOfNegative)
	}
	return Num(math.Sqrt(x)), nil
}

// Log returns the natural logarithm of x.
func Log(x float64) (Value, error) {
	if x <= 0 {
		return Value{}, errs.New(errs.LogOfNonPositive)
	}
	return Num(math.Log(x)), nil
}

// Exp returns e^x.
func Exp(x float64) (Value, error) { return Checked(math.Exp(x)) }

// Sgn returns -1, 0 or 1 according to the sign of x.
func Sgn(x float64) Value {
	switch {
	case x < 0:
		return Num(-1)
	case x > 0:
		return Num(1)
	}
	return Num(0)
}

// Int returns the largest integer not greater than x.
func Int(x float64) Value { return Num(math.Floor(x)) }

// Tan returns the tangent of x.
func Tan(x float64) (Value, error) {
	c := math.Cos(x)
	if c == 0 {
		return Value{}, errs.New(errs.DivisionByZero)
	}
	return Checked(math.Sin(x) / c)
}
