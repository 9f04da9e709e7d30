package eval

import (
	"math"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
)

// builtinFn implements a built-in function. The parser has checked the
// number of arguments.
type builtinFn func(fm *Frame, args []vals.Value) (vals.Value, error)

var builtinFns map[string]builtinFn

func init() {
	builtinFns = map[string]builtinFn{
		"ABS": numFn(func(x float64) (vals.Value, error) { return vals.Num(math.Abs(x)), nil }),
		"ATN": numFn(func(x float64) (vals.Value, error) { return vals.Num(math.Atan(x)), nil }),
		"COS": numFn(func(x float64) (vals.Value, error) { return vals.Num(math.Cos(x)), nil }),
		"SIN": numFn(func(x float64) (vals.Value, error) { return vals.Num(math.Sin(x)), nil }),
		"TAN": numFn(vals.Tan),
		"EXP": numFn(vals.Exp),
		"LOG": numFn(vals.Log),
		"SQR": numFn(vals.Sqr),
		"INT": numFn(func(x float64) (vals.Value, error) { return vals.Int(x), nil }),
		"SGN": numFn(func(x float64) (vals.Value, error) { return vals.Sgn(x), nil }),
		"USR": numFn(func(x float64) (vals.Value, error) { return vals.Num(x), nil }),

		"RND":   rnd,
		"PEEK":  peek,
		"POS":   posFn,
		"FRE":   fre,
		"PDL":   pdl,
		"SCRN":  scrn,
		"HSCRN": hscrn,

		"LEN":    length,
		"ASC":    asc,
		"VAL":    val,
		"STR$":   str,
		"CHR$":   chr,
		"LEFT$":  left,
		"RIGHT$": right,
		"MID$":   mid,
	}
}

type callOp struct {
	name string
	fn   builtinFn
	args []valueOp
}

func (op *callOp) eval(fm *Frame) (vals.Value, error) {
	args := make([]vals.Value, len(op.args))
	for i, a := range op.args {
		v, err := a.eval(fm)
		if err != nil {
			return vals.Value{}, err
		}
		args[i] = v
	}
	return op.fn(fm, args)
}

func numArg(args []vals.Value, i int) (float64, error) {
	if args[i].IsString() {
		return 0, errs.Newf(errs.TypeMismatch, "want number, got %v", args[i])
	}
	return args[i].Float(), nil
}

func intArg(args []vals.Value, i, lo, hi int) (int, error) {
	x, err := numArg(args, i)
	if err != nil {
		return 0, err
	}
	n := math.Floor(x)
	if n < float64(lo) || n > float64(hi) {
		return 0, errs.Newf(errs.IllegalQuantity, "%v not in [%d, %d]", x, lo, hi)
	}
	return int(n), nil
}

func strArg(args []vals.Value, i int) (string, error) {
	if !args[i].IsString() {
		return "", errs.Newf(errs.TypeMismatch, "want string, got %v", args[i])
	}
	return args[i].Text(), nil
}

func numFn(f func(float64) (vals.Value, error)) builtinFn {
	return func(_ *Frame, args []vals.Value) (vals.Value, error) {
		x, err := numArg(args, 0)
		if err != nil {
			return vals.Value{}, err
		}
		return f(x)
	}
}

func rnd(fm *Frame, args []vals.Value) (vals.Value, error) {
	x, err := numArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	return fm.rand.Next(x), nil
}

func peek(fm *Frame, args []vals.Value) (vals.Value, error) {
	addr, err := intArg(args, 0, -0xFFFF, 0xFFFF)
	if err != nil {
		return vals.Value{}, err
	}
	v, err := fm.mem.Peek(addr)
	return vals.Num(float64(v)), err
}

func posFn(fm *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Num(float64(fm.out.col)), nil
}

func fre(fm *Frame, args []vals.Value) (vals.Value, error) {
	return vals.Num(float64(fm.mem.High - fm.mem.Low)), nil
}

// Paddles read as centered.
func pdl(fm *Frame, args []vals.Value) (vals.Value, error) {
	if _, err := intArg(args, 0, 0, 3); err != nil {
		return vals.Value{}, err
	}
	return vals.Num(127), nil
}

func scrn(fm *Frame, args []vals.Value) (vals.Value, error) {
	g, err := fm.graphics()
	if err != nil {
		return vals.Value{}, err
	}
	x, err := intArg(args, 0, 0, loresWidth-1)
	if err != nil {
		return vals.Value{}, err
	}
	y, err := intArg(args, 1, 0, loresHeight-1)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Num(float64(g.Scrn(x, y))), nil
}

func hscrn(fm *Frame, args []vals.Value) (vals.Value, error) {
	g, err := fm.graphics()
	if err != nil {
		return vals.Value{}, err
	}
	x, err := intArg(args, 0, 0, hiresWidth-1)
	if err != nil {
		return vals.Value{}, err
	}
	y, err := intArg(args, 1, 0, hiresHeight-1)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Num(float64(g.HScrn(x, y))), nil
}

func length(_ *Frame, args []vals.Value) (vals.Value, error) {
	s, err := strArg(args, 0)
	return vals.Num(float64(len(s))), err
}

func asc(_ *Frame, args []vals.Value) (vals.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	if s == "" {
		return vals.Value{}, errs.Newf(errs.IllegalQuantity, "ASC of empty string")
	}
	return vals.Num(float64(s[0])), nil
}

// VAL converts the leading number of a string; other text is 0.
func val(_ *Frame, args []vals.Value) (vals.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	f, _ := vals.ParseNumber(s)
	return vals.Checked(f)
}

func str(_ *Frame, args []vals.Value) (vals.Value, error) {
	x, err := numArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Str(vals.FormatNumber(x)), nil
}

func chr(_ *Frame, args []vals.Value) (vals.Value, error) {
	n, err := intArg(args, 0, 0, 255)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Str(string([]byte{byte(n)})), nil
}

func left(_ *Frame, args []vals.Value) (vals.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	n, err := intArg(args, 1, 1, 255)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Str(s[:min(n, len(s))]), nil
}

func right(_ *Frame, args []vals.Value) (vals.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	n, err := intArg(args, 1, 1, 255)
	if err != nil {
		return vals.Value{}, err
	}
	return vals.Str(s[len(s)-min(n, len(s)):]), nil
}

// MID$(s, start[, n]) counts from 1; a start past the end gives "".
func mid(_ *Frame, args []vals.Value) (vals.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return vals.Value{}, err
	}
	start, err := intArg(args, 1, 1, 255)
	if err != nil {
		return vals.Value{}, err
	}
	n := 255
	if len(args) > 2 {
		if n, err = intArg(args, 2, 0, 255); err != nil {
			return vals.Value{}, err
		}
	}
	if start > len(s) {
		return vals.Str(""), nil
	}
	s = s[start-1:]
	return vals.Str(s[:min(n, len(s))]), nil
}
