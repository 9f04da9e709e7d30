//go:build !unix

package sys

import (
	"os"

	"golang.org/x/term"
)

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the size cannot be determined.
func WinSize(file *os.File) (row, col int) {
	col, row, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return -1, -1
	}
	return row, col
}
