package shell

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// interact runs the prompt until end of input.
func interact(rt *runtime, fds [3]*os.File, cfg *Config) {
	ed := newEditor(rt.in, fds)
	defer func() { ed.Close() }()
	loadHistory(rt, ed)

	cooldown := time.Second
	for {
		line, err := ed.ReadLine()
		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			if _, isMin := ed.(*minEditor); !isMin {
				fmt.Fprintln(fds[2], "Falling back to basic line editor")
				ed.Close()
				ed = &minEditor{rt.in, fds[2]}
			} else {
				fmt.Fprintln(fds[2], "Restarting editor in", cooldown)
				time.Sleep(cooldown)
				if cooldown < time.Minute {
					cooldown *= 2
				}
			}
			continue
		}
		cooldown = time.Second

		if strings.TrimSpace(line) == "" {
			continue
		}
		ed.AddHistory(line)
		addHistory(rt, line)
		// The Evaler has printed the error.
		if err := rt.enter(line); err != nil {
			logger.Println("line error:", err)
		}
	}

	if rt.store != nil && cfg.History > 0 {
		if err := rt.store.TrimCmds(cfg.History); err != nil {
			rt.warn("cannot trim history:", err)
		}
	}
}

func loadHistory(rt *runtime, ed editor) {
	if rt.store == nil {
		return
	}
	cmds, err := rt.store.CmdsWithSeq(0, -1)
	if err != nil {
		rt.warn("cannot load history:", err)
		return
	}
	for _, cmd := range cmds {
		ed.AddHistory(cmd.Text)
	}
}

func addHistory(rt *runtime, line string) {
	if rt.store == nil {
		return
	}
	if _, err := rt.store.AddCmd(line); err != nil {
		logger.Println("add history:", err)
	}
}
