package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"src.abasic.dev/pkg/parse"
	"src.abasic.dev/pkg/sys"
)

const prompt = "]"

// editor reads lines typed at the prompt.
type editor interface {
	ReadLine() (string, error)
	AddHistory(line string)
	Close() error
}

// newEditor returns a line editor when stdin and stderr are terminals and a
// minimal one otherwise.
func newEditor(in *bufio.Reader, fds [3]*os.File) editor {
	if sys.IsATTY(fds[0].Fd()) && sys.IsATTY(fds[2].Fd()) {
		return newLineEditor()
	}
	return &minEditor{in, fds[2]}
}

// lineEditor edits lines with history and keyword completion.
type lineEditor struct {
	st *liner.State
}

func newLineEditor() *lineEditor {
	st := liner.NewLiner()
	st.SetCtrlCAborts(true)
	st.SetCompleter(completeKeyword)
	return &lineEditor{st}
}

// ReadLine reads a line. Ctrl-C at the prompt discards the line being typed.
func (ed *lineEditor) ReadLine() (string, error) {
	for {
		line, err := ed.st.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		return line, err
	}
}

func (ed *lineEditor) AddHistory(line string) { ed.st.AppendHistory(line) }

func (ed *lineEditor) Close() error { return ed.st.Close() }

// completeKeyword completes the keyword being typed at the end of the line.
func completeKeyword(line string) []string {
	i := strings.LastIndexFunc(line, func(r rune) bool {
		return !('A' <= r && r <= 'Z' || 'a' <= r && r <= 'z' || r == '$')
	})
	head, word := line[:i+1], strings.ToUpper(line[i+1:])
	if word == "" {
		return nil
	}
	var cands []string
	for _, kw := range parse.Keywords() {
		if strings.HasPrefix(kw, word) {
			cands = append(cands, head+kw)
		}
	}
	return cands
}

// minEditor reads lines without editing support, for when stdin is not a
// terminal.
type minEditor struct {
	in  *bufio.Reader
	out io.Writer
}

func (ed *minEditor) ReadLine() (string, error) {
	fmt.Fprint(ed.out, prompt)
	line, err := ed.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return strings.TrimRight(line, "\r\n"), err
}

func (ed *minEditor) AddHistory(string) {}

func (ed *minEditor) Close() error { return nil }
