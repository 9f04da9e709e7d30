//go:build unix

package sys_test

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/nalgeon/be"

	"src.abasic.dev/pkg/eval"
	"src.abasic.dev/pkg/sys"
	"src.abasic.dev/pkg/testutil"
)

var _ eval.KeyReader = (*sys.Keys)(nil)

func openPty(t *testing.T) (ptmx, tty *os.File) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skip("no pty:", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	return ptmx, tty
}

func TestIsATTY(t *testing.T) {
	_, tty := openPty(t)
	be.True(t, sys.IsATTY(tty.Fd()))

	r, w, err := os.Pipe()
	be.Equal(t, err, nil)
	defer r.Close()
	defer w.Close()
	be.True(t, !sys.IsATTY(r.Fd()))
}

func TestWaitForRead(t *testing.T) {
	r, w, err := os.Pipe()
	be.Equal(t, err, nil)
	defer r.Close()
	defer w.Close()

	ready, err := sys.WaitForRead(0, r)
	be.Equal(t, err, nil)
	be.True(t, !ready)

	w.Write([]byte("x"))
	ready, err = sys.WaitForRead(testutil.Scaled(time.Second), r)
	be.Equal(t, err, nil)
	be.True(t, ready)
}

func TestKeys(t *testing.T) {
	ptmx, tty := openPty(t)
	keys := sys.NewKeys(tty)

	_, ok := keys.PollKey()
	be.True(t, !ok)

	ptmx.Write([]byte("k\n"))
	deadline := time.Now().Add(testutil.Scaled(time.Second))
	var c byte
	for time.Now().Before(deadline) {
		if c, ok = keys.PollKey(); ok {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	be.True(t, ok)
	be.Equal(t, c, byte('k'))
}

func TestKeysFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	be.Equal(t, err, nil)
	defer r.Close()
	w.Write([]byte("Z"))
	w.Close()

	keys := sys.NewKeys(r)
	c, err := keys.ReadKey()
	be.Equal(t, err, nil)
	be.Equal(t, c, byte('Z'))
	_, err = keys.ReadKey()
	be.True(t, err != nil)
}

func TestWinSize(t *testing.T) {
	_, tty := openPty(t)
	err := pty.Setsize(tty, &pty.Winsize{Rows: 24, Cols: 80})
	be.Equal(t, err, nil)
	row, col := sys.WinSize(tty)
	be.Equal(t, row, 24)
	be.Equal(t, col, 80)

	r, w, err := os.Pipe()
	be.Equal(t, err, nil)
	defer r.Close()
	defer w.Close()
	row, col = sys.WinSize(r)
	be.Equal(t, row, -1)
	be.Equal(t, col, -1)
}

func TestNotifyInterrupt(t *testing.T) {
	ch, stop := sys.NotifyInterrupt()
	be.Equal(t, syscall.Kill(os.Getpid(), syscall.SIGINT), nil)
	select {
	case sig := <-ch:
		be.Equal(t, sig, os.Signal(os.Interrupt))
	case <-time.After(testutil.Scaled(time.Second)):
		t.Fatal("no signal delivered")
	}
	stop()
	_, ok := <-ch
	be.True(t, !ok)
}
