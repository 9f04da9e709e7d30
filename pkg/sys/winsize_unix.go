//go:build unix

package sys

import (
	"os"

	"golang.org/x/sys/unix"
)

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the size cannot be determined.
func WinSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}
	return int(ws.Row), int(ws.Col)
}
