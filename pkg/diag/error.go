package diag

import (
	"fmt"
	"strings"
)

// Error represents an error with context that can be showed.
type Error struct {
	Type    string
	Message string
	Context Context
}

// Error returns a plain text representation of the error.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s:%d: %s",
		e.Type, e.Context.Name, e.Context.From+1, e.Message)
}

// Range returns the range of the error.
func (e *Error) Range() Ranging {
	return e.Context.Range()
}

var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error.
func (e *Error) Show(indent string) string {
	header := fmt.Sprintf("%s%s: %s%s%s\n",
		indent, title(e.Type), messageStart, e.Message, messageEnd)
	return header + e.Context.Show(indent+"  ")
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
