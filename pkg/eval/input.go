package eval

import (
	"io"
	"strings"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/eval/vals"
	"src.abasic.dev/pkg/eval/vars"
	"src.abasic.dev/pkg/parse"
)

type inputOp struct {
	prompt    string
	hasPrompt bool
	targets   []lvalueOp
}

// INPUT reads comma-separated items until every target is filled, asking
// for more with "??". Text that does not fit a numeric target restarts the
// statement after "?REENTER"; surplus items are dropped with
// "?EXTRA IGNORED". Reading from a file prints no prompts.
func (op *inputOp) exec(fm *Frame) error {
	for {
		values, err := op.read(fm)
		if err != nil {
			return err
		}
		if values == nil {
			continue
		}
		for i, lv := range op.targets {
			if err := assign(fm, lv, values[i]); err != nil {
				return err
			}
		}
		return nil
	}
}

// read collects one value per target. It returns nil values when the input
// has to be reentered.
func (op *inputOp) read(fm *Frame) ([]vals.Value, error) {
	fromFile := fm.readFile != ""
	prompt := "?"
	if op.hasPrompt {
		prompt = op.prompt
	}
	var values []vals.Value
	for len(values) < len(op.targets) {
		if !fromFile {
			if err := fm.out.write(prompt); err != nil {
				return nil, err
			}
		}
		line, err := fm.readLine()
		if err != nil {
			return nil, err
		}
		extra := false
		for _, item := range parse.SplitData(line) {
			if len(values) == len(op.targets) {
				extra = true
				break
			}
			v, ok := inputValue(item, op.targets[len(values)].key())
			if !ok {
				if fromFile {
					return nil, errs.Newf(errs.TypeMismatch, "input %q", item.Text)
				}
				return nil, fm.out.write("?REENTER\n")
			}
			values = append(values, v)
		}
		if extra && !fromFile {
			if err := fm.out.write("?EXTRA IGNORED\n"); err != nil {
				return nil, err
			}
		}
		prompt = "??"
	}
	return values, nil
}

func inputValue(item parse.DataItem, key string) (vals.Value, bool) {
	if vars.IsString(key) {
		return vals.Str(item.Text), true
	}
	if item.Quoted {
		return vals.Value{}, false
	}
	text := strings.TrimSpace(item.Text)
	if text == "" {
		return vals.Num(0), true
	}
	f, ok := vals.ParseNumberStrict(text)
	if !ok {
		return vals.Value{}, false
	}
	return vals.Num(f), true
}

// readLine reads one line for INPUT from the file open for READ, or from the
// keyboard.
func (fm *Frame) readLine() (string, error) {
	if fm.readFile != "" {
		if fm.Files == nil {
			return "", errs.New(errs.FileNotOpen)
		}
		line, err := fm.Files.ReadLine(fm.readFile)
		if err == io.EOF {
			return "", errs.Newf(errs.EndOfData, "%s", fm.readFile)
		}
		return line, err
	}
	line, err := fm.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", errs.New(errs.EndOfData)
		}
		return "", errs.Newf(errs.IOError, "%v", err)
	}
	// The terminal echoed the line.
	fm.out.col = 0
	if fm.out.row < screenRows-1 {
		fm.out.row++
	}
	return strings.TrimRight(line, "\r\n"), nil
}

type getOp struct{ target lvalueOp }

// GET reads one key without echo. A numeric target takes the digit typed, and
// any other key is 0.
func (op *getOp) exec(fm *Frame) error {
	c, err := fm.readKey()
	if err != nil {
		return err
	}
	if c == '\n' {
		c = '\r'
	}
	var v vals.Value
	if vars.IsString(op.target.key()) {
		v = vals.Str(string([]byte{c}))
	} else if '0' <= c && c <= '9' {
		v = vals.Num(float64(c - '0'))
	} else {
		v = vals.Num(0)
	}
	return assign(fm, op.target, v)
}

func (fm *Frame) readKey() (byte, error) {
	if fm.Keys != nil {
		c, err := fm.Keys.ReadKey()
		if err != nil {
			return 0, errs.Newf(errs.IOError, "%v", err)
		}
		if c == 3 {
			return 0, errs.New(errs.Break)
		}
		return c, nil
	}
	c, err := fm.in.ReadByte()
	if err == io.EOF {
		return 0, errs.New(errs.EndOfData)
	} else if err != nil {
		return 0, errs.Newf(errs.IOError, "%v", err)
	}
	return c, nil
}
