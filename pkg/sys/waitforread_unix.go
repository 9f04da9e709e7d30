//go:build unix

package sys

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// WaitForRead blocks until f is ready to be read or the timeout elapses. A
// negative timeout means no timeout.
func WaitForRead(timeout time.Duration, f *os.File) (bool, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	fds := []unix.PollFd{{Fd: int32(f.Fd()), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
	}
}
