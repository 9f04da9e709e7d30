// Package fsys implements the file store of the interpreter on a directory of
// the host file system.
package fsys

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[fsys] ")

// Dir is a file store rooted at a directory. Names are resolved against the
// current prefix, which starts at the root.
type Dir struct {
	prefix string
	open   map[string]*file
}

type file struct {
	f      *os.File
	r      *bufio.Reader
	w      *bufio.Writer
	recLen int
}

// NewDir returns a file store rooted at dir.
func NewDir(dir string) *Dir {
	return &Dir{prefix: dir, open: make(map[string]*file)}
}

func (d *Dir) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.prefix, name)
}

// wrap converts an OS error into an interpreter error.
func wrap(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return errs.Newf(errs.PathNotFound, "%v", err)
	default:
		return errs.Newf(errs.IOError, "%v", err)
	}
}

func (d *Dir) get(name string) (*file, error) {
	if f, ok := d.open[d.path(name)]; ok {
		return f, nil
	}
	return nil, errs.Newf(errs.FileNotOpen, "%s is not open", name)
}

// Open opens name for reading and writing, creating it if needed. Opening an
// open file rewinds it.
func (d *Dir) Open(name string, recLen int) error {
	p := d.path(name)
	if f, ok := d.open[p]; ok {
		f.recLen = recLen
		return d.Seek(name, 0, 0)
	}
	osf, err := os.OpenFile(p, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return wrap(err)
	}
	logger.Println("open", p)
	d.open[p] = &file{f: osf, r: bufio.NewReader(osf), w: bufio.NewWriter(osf), recLen: recLen}
	return nil
}

// Close closes the named file, or every open file when name is empty.
func (d *Dir) Close(name string) error {
	if name == "" {
		var first error
		for p, f := range d.open {
			if err := f.close(); err != nil && first == nil {
				first = err
			}
			delete(d.open, p)
		}
		return first
	}
	f, err := d.get(name)
	if err != nil {
		return err
	}
	delete(d.open, d.path(name))
	return f.close()
}

func (f *file) close() error {
	if err := f.w.Flush(); err != nil {
		f.f.Close()
		return wrap(err)
	}
	return wrap(f.f.Close())
}

// Append opens name positioned at its end.
func (d *Dir) Append(name string) error {
	if _, ok := d.open[d.path(name)]; !ok {
		if err := d.Open(name, 0); err != nil {
			return err
		}
	}
	f, _ := d.get(name)
	return f.seek(0, io.SeekEnd)
}

// seek moves the OS offset, dropping buffered input and flushing pending
// output first.
func (f *file) seek(off int64, whence int) error {
	if err := f.w.Flush(); err != nil {
		return wrap(err)
	}
	if _, err := f.f.Seek(off, whence); err != nil {
		return wrap(err)
	}
	f.r.Reset(f.f)
	return nil
}

// ReadLine returns the next line without its line terminator.
func (d *Dir) ReadLine(name string) (string, error) {
	f, err := d.get(name)
	if err != nil {
		return "", err
	}
	if f.w.Buffered() > 0 {
		if err := f.w.Flush(); err != nil {
			return "", wrap(err)
		}
	}
	line, err := f.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		if err == io.EOF {
			return "", io.EOF
		}
		return "", wrap(err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteString writes s at the current position.
func (d *Dir) WriteString(name, s string) error {
	f, err := d.get(name)
	if err != nil {
		return err
	}
	if n := f.r.Buffered(); n > 0 {
		// The OS offset is past the read-ahead; move it back to where the
		// reader is.
		if err := f.seek(-int64(n), io.SeekCurrent); err != nil {
			return err
		}
	}
	_, err = f.w.WriteString(s)
	return wrap(err)
}

// Seek positions the file at byte record*recLen+offset. Without a record
// length, records are ignored.
func (d *Dir) Seek(name string, record, offset int) error {
	f, err := d.get(name)
	if err != nil {
		return err
	}
	if record < 0 || offset < 0 {
		return errs.Newf(errs.IllegalQuantity, "negative position")
	}
	return f.seek(int64(record*f.recLen+offset), io.SeekStart)
}

// Flush writes buffered output of an open file.
func (d *Dir) Flush(name string) error {
	f, err := d.get(name)
	if err != nil {
		return err
	}
	return wrap(f.w.Flush())
}

// Create creates an empty file if it does not exist.
func (d *Dir) Create(name string) error {
	f, err := os.OpenFile(d.path(name), os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return wrap(err)
	}
	return wrap(f.Close())
}

// Delete removes a closed file.
func (d *Dir) Delete(name string) error {
	if _, ok := d.open[d.path(name)]; ok {
		return errs.Newf(errs.IOError, "%s is open", name)
	}
	return wrap(os.Remove(d.path(name)))
}

func (d *Dir) Rename(oldName, newName string) error {
	return wrap(os.Rename(d.path(oldName), d.path(newName)))
}

// Catalog returns the sorted names in dir. Directories get a trailing slash.
func (d *Dir) Catalog(dir string) ([]string, error) {
	entries, err := os.ReadDir(d.path(dir))
	if err != nil {
		return nil, wrap(err)
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
		if e.IsDir() {
			names[i] += "/"
		}
	}
	sort.Strings(names)
	return names, nil
}

func (d *Dir) Prefix() string { return d.prefix }

// SetPrefix changes the prefix to an existing directory, relative to the
// current one.
func (d *Dir) SetPrefix(dir string) error {
	p := d.path(dir)
	info, err := os.Stat(p)
	if err != nil {
		return wrap(err)
	}
	if !info.IsDir() {
		return errs.Newf(errs.PathNotFound, "%s is not a directory", dir)
	}
	d.prefix = p
	return nil
}

// ReadAll returns the content of a file.
func (d *Dir) ReadAll(name string) ([]byte, error) {
	if f, ok := d.open[d.path(name)]; ok {
		if err := f.w.Flush(); err != nil {
			return nil, wrap(err)
		}
	}
	data, err := os.ReadFile(d.path(name))
	return data, wrap(err)
}

// WriteAll replaces the content of a file.
func (d *Dir) WriteAll(name string, data []byte) error {
	return wrap(os.WriteFile(d.path(name), data, 0644))
}
