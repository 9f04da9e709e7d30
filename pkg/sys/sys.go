// Package sys provides the terminal utilities of the interactive shell with
// the same API across OSes.
package sys

import (
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
)

const sigsChanBufferSize = 16

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NotifyInterrupt returns a channel on which Ctrl-C is delivered, and a
// function that stops the delivery and closes the channel.
func NotifyInterrupt() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, sigsChanBufferSize)
	signal.Notify(ch, os.Interrupt)
	return ch, func() {
		signal.Stop(ch)
		close(ch)
	}
}
