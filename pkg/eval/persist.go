package eval

import (
	"errors"
	"io"

	"src.abasic.dev/pkg/eval/errs"
)

// files returns the file store, or I/O ERROR if there is none.
func (ev *Evaler) files() (FileStore, error) {
	if ev.Files == nil {
		return nil, errs.Newf(errs.IOError, "no file store")
	}
	return ev.Files, nil
}

// Without a tape, arrays are kept in files named after them.
func arrayFile(key string) string { return key + ".ARR" }

// Without a variable store, snapshots are kept in files.
func varsFile(name string) string { return name + ".VARS" }

type storeArrayOp struct{ key string }

// STORE writes an array to the tape.
func (op storeArrayOp) exec(fm *Frame) error {
	data, err := fm.vars.EncodeArray(op.key)
	if err != nil {
		return err
	}
	if fm.Tape != nil {
		return fm.Tape.WriteRecord(data)
	}
	files, err := fm.files()
	if err != nil {
		return err
	}
	return files.WriteAll(arrayFile(op.key), data)
}

type recallArrayOp struct{ key string }

// RECALL reads the next array from the tape into the named array.
func (op recallArrayOp) exec(fm *Frame) error {
	var data []byte
	if fm.Tape != nil {
		var err error
		data, err = fm.Tape.ReadRecord()
		if errors.Is(err, io.EOF) {
			return errs.New(errs.EndOfData)
		} else if err != nil {
			return err
		}
	} else {
		files, err := fm.files()
		if err != nil {
			return err
		}
		if data, err = files.ReadAll(arrayFile(op.key)); err != nil {
			return err
		}
	}
	return fm.vars.DecodeArray(op.key, data)
}

type storeVarsOp struct{ name valueOp }

// STORE "name" saves every variable and array.
func (op *storeVarsOp) exec(fm *Frame) error {
	name, err := evalStr(fm, op.name)
	if err != nil {
		return err
	}
	data, err := fm.vars.Snapshot()
	if err != nil {
		return err
	}
	if fm.VarStore != nil {
		return fm.VarStore.SaveVars(name, data)
	}
	files, err := fm.files()
	if err != nil {
		return err
	}
	return files.WriteAll(varsFile(name), data)
}

type restoreVarsOp struct{ name valueOp }

// RESTORE "name" replaces all variables with a saved snapshot.
func (op *restoreVarsOp) exec(fm *Frame) error {
	name, err := evalStr(fm, op.name)
	if err != nil {
		return err
	}
	var data []byte
	if fm.VarStore != nil {
		data, err = fm.VarStore.LoadVars(name)
	} else {
		var files FileStore
		if files, err = fm.files(); err == nil {
			data, err = files.ReadAll(varsFile(name))
		}
	}
	if err != nil {
		return err
	}
	return fm.vars.LoadSnapshot(data)
}

type saveOp struct{ file valueOp }

func (op *saveOp) exec(fm *Frame) error {
	name, err := evalStr(fm, op.file)
	if err != nil {
		return err
	}
	return fm.saveProgram(name)
}

type loadOp struct{ file valueOp }

// LOAD replaces the program; a running program stops.
func (op *loadOp) exec(fm *Frame) error {
	name, err := evalStr(fm, op.file)
	if err != nil {
		return err
	}
	return fm.loadProgram(name)
}

func (ev *Evaler) saveProgram(name string) error {
	files, err := ev.files()
	if err != nil {
		return err
	}
	return files.WriteAll(name, []byte(ev.prog.text()))
}

// loadProgram reads a program file. Lines with syntax errors are kept and
// fail when run. The run that executed the LOAD stops.
func (ev *Evaler) loadProgram(name string) error {
	files, err := ev.files()
	if err != nil {
		return err
	}
	data, err := files.ReadAll(name)
	if err != nil {
		return err
	}
	if err := ev.Load(string(data)); err != nil {
		logger.Printf("loading %s: %v", name, err)
	}
	ev.halted = true
	return nil
}
