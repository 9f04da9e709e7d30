package testutil

import "strings"

// Dedent removes the indentation common to all non-blank lines of text, and
// the newline that starts it if present. It lets programs be written as
// indented raw strings:
//
//	Dedent(`
//	    10 PRINT "HI"
//	    20 GOTO 10
//	    `)
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin, first = indent, false
		} else {
			margin = commonPrefix(margin, indent)
		}
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		} else {
			lines[i] = line[len(margin):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}
