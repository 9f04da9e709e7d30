package eval

// Collaborators of the Evaler. They are consumed through these interfaces and
// implemented outside this package (pkg/gfx, pkg/fsys, pkg/tape, pkg/store and
// pkg/sys). A nil collaborator disables the statements that need it.

// Graphics is a low- and high-resolution drawing surface. Coordinates and
// colors are validated by the Evaler before they reach it.
type Graphics interface {
	// Text switches back to the text screen.
	Text()
	// Lores switches to low-resolution graphics and clears the screen.
	Lores()
	// Hires switches to high-resolution page 1 or 2 and clears it.
	Hires(page int)

	SetColor(c int)
	Plot(x, y int)
	HLin(x1, x2, y int)
	VLin(y1, y2, x int)
	Scrn(x, y int) int

	SetHColor(c int)
	HPlot(x, y int)
	HLine(x1, y1, x2, y2 int)
	HScrn(x, y int) int

	// Draw renders shape n of the loaded shape table at (x, y). With xor set
	// the shape is drawn by inverting pixels. It returns an error if no table
	// is loaded or n is out of range.
	Draw(n, x, y, rot, scale int, xor bool) error
	// LoadShapes replaces the shape table.
	LoadShapes(table []byte) error
}

// FileStore is a set of named text files that can be opened, read line by
// line, written and positioned, plus whole-file access for programs and
// binary images. Errors are *errs.Error of kind PathNotFound, IOError or
// FileNotOpen.
type FileStore interface {
	// Open opens a file, creating it if needed. A positive recLen selects
	// random access with records of that length.
	Open(name string, recLen int) error
	// Close closes the named file, or all files if name is empty.
	Close(name string) error
	// Append opens a file positioned at its end.
	Append(name string) error
	// ReadLine reads the next line of an open file without the newline. It
	// returns io.EOF at the end of the file.
	ReadLine(name string) (string, error)
	// WriteString writes to an open file.
	WriteString(name, s string) error
	// Seek positions an open file at a record plus a byte offset.
	Seek(name string, record, offset int) error
	Flush(name string) error

	Create(name string) error
	Delete(name string) error
	Rename(oldName, newName string) error
	// Catalog lists the files of a directory; an empty dir means the
	// current prefix.
	Catalog(dir string) ([]string, error)
	// Prefix returns the current directory prefix.
	Prefix() string
	SetPrefix(dir string) error

	ReadAll(name string) ([]byte, error)
	WriteAll(name string, data []byte) error
}

// Tape is a sequential store of length-prefixed records.
type Tape interface {
	WriteRecord(data []byte) error
	// ReadRecord returns the next record, or io.EOF when there are no more.
	ReadRecord() ([]byte, error)
}

// VarStore persists snapshots of all variables under a name.
type VarStore interface {
	SaveVars(name string, data []byte) error
	// LoadVars returns the snapshot saved under name. It returns an error of
	// kind PathNotFound if there is none.
	LoadVars(name string) ([]byte, error)
	// VarsNames returns the names of all snapshots.
	VarsNames() ([]string, error)
	// DelVars deletes a snapshot. It returns an error of kind PathNotFound
	// if there is none.
	DelVars(name string) error
}

// KeyReader reads single keystrokes.
type KeyReader interface {
	// ReadKey blocks until a key is pressed.
	ReadKey() (byte, error)
	// PollKey returns a pending key without blocking.
	PollKey() (byte, bool)
}
