// Package tape implements the cassette used by STORE and RECALL of arrays: a
// file of records, each a 4-byte little-endian length followed by the data.
//
// Records are written at the end of the file and read from the start, so a
// program can RECALL what it stored in the same order.
package tape

import (
	"encoding/binary"
	"errors"
	"io"
	"os"

	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[tape] ")

// Largest record accepted when reading; anything longer means the file is
// not a tape.
const maxRecord = 1 << 24

// Tape is a tape backed by a file.
type Tape struct {
	f   *os.File
	pos int64
}

// Open opens the tape in the given file, creating it if needed.
func Open(path string) (*Tape, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	logger.Println("tape", path)
	return &Tape{f: f}, nil
}

// WriteRecord appends a record.
func (t *Tape) WriteRecord(data []byte) error {
	buf := make([]byte, 4+len(data))
	binary.LittleEndian.PutUint32(buf, uint32(len(data)))
	copy(buf[4:], data)
	end, err := t.f.Seek(0, io.SeekEnd)
	if err != nil {
		return errs.Newf(errs.IOError, "%v", err)
	}
	if _, err := t.f.WriteAt(buf, end); err != nil {
		return errs.Newf(errs.IOError, "%v", err)
	}
	return nil
}

// ReadRecord returns the next unread record, or io.EOF.
func (t *Tape) ReadRecord() ([]byte, error) {
	var head [4]byte
	if _, err := t.f.ReadAt(head[:], t.pos); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, errs.Newf(errs.IOError, "%v", err)
	}
	n := binary.LittleEndian.Uint32(head[:])
	if n > maxRecord {
		return nil, errs.Newf(errs.IOError, "bad record length %d", n)
	}
	data := make([]byte, n)
	if _, err := t.f.ReadAt(data, t.pos+4); err != nil {
		return nil, errs.Newf(errs.IOError, "short record: %v", err)
	}
	t.pos += 4 + int64(n)
	return data, nil
}

// Rewind makes the next ReadRecord return the first record.
func (t *Tape) Rewind() { t.pos = 0 }

func (t *Tape) Close() error { return t.f.Close() }
