package eval

import (
	"sort"
	"strings"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/parse"
)

// fileCmd is a file-system command with its names evaluated.
type fileCmd struct {
	keyword     string
	name, name2 string
	params      map[byte]int
}

func (c *fileCmd) param(letter byte, def int) int {
	if n, ok := c.params[letter]; ok {
		return n
	}
	return def
}

type fileCmdOp struct {
	keyword     string
	name, name2 valueOp
	params      map[byte]int
}

func (cp *compiler) fileCmdOp(n *parse.FileCmd) effectOp {
	op := &fileCmdOp{keyword: n.Keyword, params: n.Params}
	if n.Name != nil {
		op.name = cp.valueOp(n.Name)
	}
	if n.Name2 != nil {
		op.name2 = cp.valueOp(n.Name2)
	}
	return op
}

func (op *fileCmdOp) exec(fm *Frame) error {
	c := &fileCmd{keyword: op.keyword, params: op.params}
	var err error
	if op.name != nil {
		if c.name, err = evalStr(fm, op.name); err != nil {
			return err
		}
	}
	if op.name2 != nil {
		if c.name2, err = evalStr(fm, op.name2); err != nil {
			return err
		}
	}
	return fm.fileCommand(c)
}

// dosCommand runs a command printed after CHR$(4). An empty command only
// cancels redirection.
func (ev *Evaler) dosCommand(text string) error {
	n, err := parse.ParseCommand(text)
	if err != nil {
		ev.cancelRedirect()
		return err
	}
	if n == nil {
		ev.cancelRedirect()
		return nil
	}
	c := &fileCmd{keyword: n.Keyword, params: n.Params}
	if s, ok := n.Name.(*parse.String); ok {
		c.name = s.Value
	}
	if s, ok := n.Name2.(*parse.String); ok {
		c.name2 = s.Value
	}
	return ev.fileCommand(c)
}

func (ev *Evaler) cancelRedirect() {
	ev.readFile, ev.writeFile = "", ""
	ev.out.redirect = nil
}

// fileCommand runs a file-system command. Every command cancels READ and
// WRITE redirection first; READ, WRITE and APPEND then start a new one.
func (ev *Evaler) fileCommand(c *fileCmd) error {
	ev.cancelRedirect()
	files, err := ev.files()
	if err != nil {
		return err
	}
	logger.Printf("file command %s %q %v", c.keyword, c.name, c.params)
	switch c.keyword {
	case "OPEN":
		return files.Open(c.name, c.param('L', 0))
	case "CLOSE":
		return files.Close(c.name)
	case "READ":
		if r, ok := c.params['R']; ok {
			if err := files.Seek(c.name, r, c.param('B', 0)); err != nil {
				return err
			}
		}
		ev.readFile = c.name
	case "WRITE", "APPEND":
		if c.keyword == "APPEND" {
			if err := files.Append(c.name); err != nil {
				return err
			}
		} else if r, ok := c.params['R']; ok {
			if err := files.Seek(c.name, r, c.param('B', 0)); err != nil {
				return err
			}
		}
		name := c.name
		ev.writeFile = name
		ev.out.redirect = func(s string) error { return files.WriteString(name, s) }
	case "POSITION":
		return files.Seek(c.name, c.param('R', 0), c.param('B', 0))
	case "FLUSH":
		return files.Flush(c.name)
	case "CREATE":
		return files.Create(c.name)
	case "DELETE":
		if name, ok := strings.CutSuffix(c.name, ".VARS"); ok && ev.VarStore != nil {
			if err := ev.VarStore.DelVars(name); errs.KindOf(err) != errs.PathNotFound {
				return err
			}
		}
		return files.Delete(c.name)
	case "RENAME":
		return files.Rename(c.name, c.name2)
	case "CATALOG":
		names, err := files.Catalog(c.name)
		if err != nil {
			return err
		}
		if c.name == "" && ev.VarStore != nil {
			// Snapshots show up as the files STORE "name" would write
			// without a variable store.
			snaps, err := ev.VarStore.VarsNames()
			if err != nil {
				return err
			}
			for _, snap := range snaps {
				names = append(names, varsFile(snap))
			}
			sort.Strings(names)
		}
		for _, name := range names {
			if err := ev.out.write(name + "\n"); err != nil {
				return err
			}
		}
	case "PREFIX":
		if c.name == "" {
			return ev.out.write(files.Prefix() + "\n")
		}
		return files.SetPrefix(c.name)
	case "BLOAD":
		data, err := files.ReadAll(c.name)
		if err != nil {
			return err
		}
		if n, ok := c.params['L']; ok && n < len(data) {
			data = data[:n]
		}
		return ev.mem.Load(c.param('A', 0x2000), data)
	case "BSAVE":
		addr, ok1 := c.params['A']
		n, ok2 := c.params['L']
		if !ok1 || !ok2 {
			return errs.Newf(errs.Syntax, "BSAVE needs A and L")
		}
		data, err := ev.mem.Dump(addr, n)
		if err != nil {
			return err
		}
		return files.WriteAll(c.name, data)
	case "SAVE":
		return ev.saveProgram(c.name)
	case "LOAD":
		return ev.loadProgram(c.name)
	default:
		return errs.Newf(errs.Syntax, "unknown command %s", c.keyword)
	}
	return nil
}
