package shell

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"src.abasic.dev/pkg/eval"
	"src.abasic.dev/pkg/fsys"
	"src.abasic.dev/pkg/gfx"
	"src.abasic.dev/pkg/store"
	"src.abasic.dev/pkg/sys"
	"src.abasic.dev/pkg/tape"
)

// runtime is an Evaler with its collaborators and the resources behind them.
type runtime struct {
	ev     *eval.Evaler
	in     *bufio.Reader
	stdout *os.File
	stderr *os.File

	canvas *gfx.Canvas
	files  *fsys.Dir
	tape   *tape.Tape
	store  store.DBStore

	intr        interrupter
	stopSignals func()
}

// newRuntime creates an Evaler reading from fds[0] and printing to fds[1]
// and attaches the collaborators that cfg asks for. Failing to set up one of
// them is reported as a warning and leaves the statements that need it
// disabled.
func newRuntime(fds [3]*os.File, cfg *Config, interactive bool) *runtime {
	rt := &runtime{in: bufio.NewReader(fds[0]), stdout: fds[1], stderr: fds[2]}
	evCfg := cfg.Eval
	if sys.IsATTY(fds[1].Fd()) {
		evCfg.ANSI = true
	}
	rt.ev = eval.NewEvaler(evCfg, rt.in, fds[1])

	if evCfg.Graphics {
		rt.canvas = gfx.NewCanvas()
		rt.ev.Graphics = rt.canvas
	}
	if wd, err := os.Getwd(); err != nil {
		rt.warn("cannot get working directory:", err)
	} else {
		rt.files = fsys.NewDir(wd)
		rt.ev.Files = rt.files
	}
	if cfg.Tape != "" {
		t, err := tape.Open(cfg.Tape)
		if err != nil {
			rt.warn("cannot open tape:", err)
		} else {
			rt.tape = t
			rt.ev.Tape = t
		}
	}
	if st, err := openStore(cfg.DB); err != nil {
		rt.warn("cannot open database:", err)
		if interactive {
			fmt.Fprintln(fds[2], "History and stored variables will not be kept.")
		}
	} else {
		rt.store = st
		rt.ev.VarStore = st
	}
	if sys.IsATTY(fds[0].Fd()) {
		rt.ev.Keys = sys.NewKeys(fds[0])
	}

	sigCh, stop := sys.NotifyInterrupt()
	rt.stopSignals = stop
	go func() {
		for sig := range sigCh {
			logger.Println("signal", sig)
			rt.intr.interrupt()
		}
	}()
	return rt
}

func openStore(path string) (store.DBStore, error) {
	if path == "" {
		var err error
		if path, err = dbPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return store.NewStore(path)
}

func (rt *runtime) warn(a ...any) {
	fmt.Fprintln(rt.stderr, append([]any{"Warning:"}, a...)...)
}

// enter passes one line to the Evaler. Ctrl-C while the line runs breaks it.
func (rt *runtime) enter(text string) error {
	ctx, done := rt.intr.context()
	defer done()
	err := rt.ev.Enter(ctx, text)
	rt.showScreen()
	return err
}

// showScreen writes the graphics screen to a terminal after it has changed,
// if the terminal is wide enough to hold it.
func (rt *runtime) showScreen() {
	if rt.canvas == nil || !rt.canvas.Changed() || rt.canvas.Width() == 0 {
		return
	}
	if !sys.IsATTY(rt.stdout.Fd()) {
		return
	}
	if _, cols := sys.WinSize(rt.stdout); cols < rt.canvas.Width() {
		logger.Printf("terminal has %d columns, screen needs %d", cols, rt.canvas.Width())
		return
	}
	if err := rt.canvas.Render(rt.stdout); err != nil {
		logger.Println("render:", err)
	}
}

func (rt *runtime) close() {
	rt.stopSignals()
	if rt.files != nil {
		if err := rt.files.Close(""); err != nil {
			rt.warn("cannot close files:", err)
		}
	}
	if rt.tape != nil {
		rt.tape.Close()
	}
	if rt.store != nil {
		rt.store.Close()
	}
}

// interrupter cancels the line being run when Ctrl-C is pressed.
type interrupter struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// context returns the context of a line about to run and a function to call
// once it has finished.
func (i *interrupter) context() (context.Context, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	i.mu.Lock()
	i.cancel = cancel
	i.mu.Unlock()
	return ctx, func() {
		i.mu.Lock()
		i.cancel = nil
		i.mu.Unlock()
		cancel()
	}
}

// interrupt cancels the running line. It reports whether a line was running.
func (i *interrupter) interrupt() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.cancel == nil {
		return false
	}
	i.cancel()
	return true
}
