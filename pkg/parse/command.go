package parse

import (
	"strconv"
	"strings"

	"src.abasic.dev/pkg/diag"
)

// File-system commands. They are statements in their own right (except READ,
// which is the DATA statement in programs) and can also be printed after
// CHR$(4).
var fileCommands = map[string]bool{
	"APPEND": true, "BLOAD": true, "BSAVE": true, "CATALOG": true,
	"CLOSE": true, "CREATE": true, "DELETE": true, "FLUSH": true,
	"LOAD": true, "OPEN": true, "POSITION": true, "PREFIX": true,
	"READ": true, "RENAME": true, "SAVE": true, "WRITE": true,
}

// Commands whose name may be omitted.
var optionalName = map[string]bool{
	"CATALOG": true, "CLOSE": true, "FLUSH": true, "PREFIX": true,
}

// Parameter letters accepted after a file name. S, D and V (slot, drive,
// volume) are accepted and ignored by the engine.
const paramLetters = "ABLR@SDV"

// fileStmt parses a file command inside a program, where the name is an
// expression and parameters are identifiers like L#128 or L128.
func (ps *parser) fileStmt(kw Token) Stmt {
	s := &FileCmd{Keyword: kw.Text, Params: map[byte]int{}}
	if ps.endOfStmt() {
		if !optionalName[kw.Text] {
			ps.errorf(ps.peek(), "expected file name, got %s", describe(ps.peek()))
		}
		s.Ranging = ps.span(kw)
		return s
	}
	s.Name = ps.expr()
	for ps.acceptOp(",") {
		t := ps.peek()
		if t.Type == Ident && endsParam(ps.peekN(1)) {
			if letter, n, ok := splitParam(t.Text); ok {
				ps.next()
				s.Params[letter] = n
				continue
			}
		}
		if kw.Text == "RENAME" && s.Name2 == nil {
			s.Name2 = ps.expr()
			continue
		}
		ps.errorf(t, "bad parameter %s", describe(t))
	}
	if kw.Text == "RENAME" && s.Name2 == nil {
		ps.errorf(ps.peek(), "expected new name")
	}
	s.Ranging = ps.span(kw)
	return s
}

func endsParam(t Token) bool { return endsStmt(t) || t.isOp(",") }

// splitParam splits a parameter such as "L#128", "L128", "A$2000" or "@#5"
// into its letter and value. A "$" introduces a hexadecimal value.
func splitParam(s string) (byte, int, bool) {
	if len(s) < 2 || strings.IndexByte(paramLetters, s[0]) < 0 {
		return 0, 0, false
	}
	letter, rest, base := s[0], s[1:], 10
	switch rest[0] {
	case '#':
		rest = rest[1:]
	case '$':
		rest, base = rest[1:], 16
	}
	n, err := strconv.ParseInt(rest, base, 32)
	if err != nil {
		return 0, 0, false
	}
	return letter, int(n), true
}

// ParseCommand parses a file-system command printed after CHR$(4). The name
// is taken verbatim up to the first comma; the remaining comma-separated
// fields are parameters. An empty command returns nil and no error.
func ParseCommand(text string) (*FileCmd, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return nil, nil
	}
	i := 0
	for i < len(src) && isLetter(src[i]) {
		i++
	}
	kw := strings.ToUpper(src[:i])
	whole := diag.Ranging{From: 0, To: len(src)}
	if !fileCommands[kw] {
		return nil, commandError(src, diag.Ranging{From: 0, To: i}, "unknown command "+strconv.Quote(src[:i]))
	}
	s := &FileCmd{stmtNode: stmtNode{whole}, Keyword: kw, Params: map[byte]int{}}

	fields := strings.Split(src[i:], ",")
	name := unquote(strings.TrimSpace(fields[0]))
	if name == "" {
		if !optionalName[kw] {
			return nil, commandError(src, whole, "expected file name")
		}
	} else {
		s.Name = &String{exprNode{whole}, name}
	}
	for _, f := range fields[1:] {
		f = strings.TrimSpace(f)
		if letter, n, ok := splitParam(strings.ToUpper(f)); ok {
			s.Params[letter] = n
			continue
		}
		if kw == "RENAME" && s.Name2 == nil {
			s.Name2 = &String{exprNode{whole}, unquote(f)}
			continue
		}
		return nil, commandError(src, whole, "bad parameter "+strconv.Quote(f))
	}
	if kw == "RENAME" && s.Name2 == nil {
		return nil, commandError(src, whole, "expected new name")
	}
	return s, nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func commandError(src string, r diag.Ranging, msg string) error {
	return &Error{
		Message: msg,
		Context: *diag.NewContext("command", src, r),
	}
}
