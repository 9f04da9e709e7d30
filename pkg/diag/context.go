package diag

import (
	"fmt"
	"strings"
)

// Context is a range of text in a single source line. It is attached to parse
// errors and runtime diagnostics that can be associated with part of a line.
type Context struct {
	// Name describes where the source comes from, like "line 20" or
	// "[immediate]".
	Name   string
	Source string
	Ranging
}

// NewContext creates a new Context.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{name, source, r.Range()}
}

// Variables controlling the style of the culprit.
var (
	culpritStart       = "\033[1;4m"
	culpritEnd         = "\033[m"
	culpritPlaceHolder = "^"
)

// Show shows the context on one line, with the culprit highlighted.
func (c *Context) Show(indent string) string {
	if err := c.checkPosition(); err != nil {
		return indent + err.Error()
	}
	culprit := c.Source[c.From:c.To]
	if culprit == "" {
		culprit = culpritPlaceHolder
	}
	return fmt.Sprintf("%s%s, col %d: %s%s%s%s%s", indent, c.Name, c.From+1,
		c.Source[:c.From], culpritStart, culprit, culpritEnd, c.Source[c.To:])
}

func (c *Context) checkPosition() error {
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

// Culprit returns the text covered by the context, with surrounding
// whitespace trimmed.
func (c *Context) Culprit() string {
	if c.checkPosition() != nil {
		return ""
	}
	return strings.TrimSpace(c.Source[c.From:c.To])
}
