package vals

import (
	"math"
	"strconv"
	"strings"
)

// Precision is the number of significant decimal digits kept by every
// arithmetic result.
const Precision = 9

// MaxNum is the largest magnitude representable before OVERFLOW.
const MaxNum = 1.70141183e38

// Round9 rounds x to Precision significant decimal digits. Zero, infinities
// and NaN are returned unchanged. Round9 is idempotent.
func Round9(x float64) float64 {
	if x == 0 || math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(x, 'g', Precision, 64), 64)
	if err != nil {
		return x
	}
	return r
}

func floor(x float64) float64 { return math.Floor(x) }

// FormatNumber formats a number the way PRINT and STR$ show it: no leading
// zero before the decimal point, no trailing zeros, and exponent notation
// below .01 and at or above 1E+09.
func FormatNumber(x float64) string {
	x = Round9(x)
	if x == 0 {
		return "0"
	}
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strings.ToUpper(strconv.FormatFloat(x, 'g', -1, 64))
	}
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	if x >= 1e9 || x < 0.01 {
		s := strconv.FormatFloat(x, 'e', Precision-1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		if strings.Contains(mant, ".") {
			mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
		}
		return sign + mant + "E" + exp
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	s = strings.TrimPrefix(s, "0")
	return sign + s
}

// ParseNumber parses the longest numeric prefix of s, after leading blanks.
// It returns 0 and false if s has no numeric prefix.
func ParseNumber(s string) (float64, bool) {
	n := scanNumber(s)
	if n.end == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s[n.start:n.end], 64)
	if err != nil {
		// Out of range; ParseFloat returns ±Inf which is what we want.
		return f, true
	}
	return Round9(f), true
}

// ParseNumberStrict is like ParseNumber, but requires s to be a number with
// nothing but blanks around it. It is used by INPUT and READ.
func ParseNumberStrict(s string) (float64, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		// An empty response is 0 for numeric variables.
		return 0, true
	}
	n := scanNumber(t)
	if n.end != len(t) {
		return 0, false
	}
	return ParseNumber(t)
}

type numSpan struct{ start, end int }

// scanNumber finds the numeric prefix [start, end) of s; end is 0 if there is
// none.
func scanNumber(s string) numSpan {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return numSpan{}
	}
	if i < len(s) && (s[i] == 'E' || s[i] == 'e') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return numSpan{start, i}
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
