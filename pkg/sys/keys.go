package sys

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Keys reads single keystrokes from a terminal. The terminal is put in raw
// mode only while a key is read, so line input keeps working in between.
type Keys struct {
	f *os.File
}

// NewKeys returns a Keys reading from f.
func NewKeys(f *os.File) *Keys { return &Keys{f} }

// ReadKey blocks until a key is pressed and returns its byte. Keys that send
// escape sequences return the first byte only.
func (k *Keys) ReadKey() (byte, error) {
	fd := int(k.f.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return 0, err
		}
		defer term.Restore(fd, state)
	}
	var b [1]byte
	if _, err := io.ReadFull(k.f, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// PollKey returns a key if one is ready to be read.
func (k *Keys) PollKey() (byte, bool) {
	ready, err := WaitForRead(0, k.f)
	if err != nil || !ready {
		return 0, false
	}
	c, err := k.ReadKey()
	return c, err == nil
}
