// Package shell is the entry point for the terminal interface of abasic: the
// interactive prompt and the script mode.
package shell

import (
	"errors"
	"fmt"
	"os"

	"src.abasic.dev/pkg/logutil"
	"src.abasic.dev/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It runs a program file or the code given
// with -c when there are arguments, and the interactive prompt otherwise.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	cfgPath, explicit := f.Config, f.Config != ""
	if !explicit {
		var err error
		if cfgPath, err = configPath(); err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}
	cfg, err := loadConfig(cfgPath, explicit)
	if err != nil {
		return err
	}
	cfg.applyFlags(f)

	if f.CodeInArg && len(args) == 0 {
		return prog.BadUsage("-c needs an argument")
	}
	if len(args) > 1 {
		return prog.BadUsage("at most one program may be given")
	}
	if (f.CompileOnly || f.DumpAST) && len(args) == 0 {
		return prog.BadUsage(errNeedProgram.Error())
	}

	if len(args) > 0 {
		if f.CompileOnly || f.DumpAST {
			return prog.Exit(check(fds, args[0], &scriptCfg{
				Cmd: f.CodeInArg, DumpAST: f.DumpAST, JSON: f.JSON}))
		}
		rt := newRuntime(fds, cfg, false)
		defer rt.close()
		return prog.Exit(script(rt, fds, args[0], &scriptCfg{Cmd: f.CodeInArg}))
	}

	rt := newRuntime(fds, cfg, true)
	defer rt.close()
	interact(rt, fds, cfg)
	return nil
}

var errNeedProgram = errors.New("-compileonly and -dumpast need a program")
