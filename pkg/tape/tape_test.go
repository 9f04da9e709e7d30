package tape_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"

	"src.abasic.dev/pkg/eval"
	"src.abasic.dev/pkg/eval/errs"
	"src.abasic.dev/pkg/tape"
)

var _ eval.Tape = (*tape.Tape)(nil)

func open(t *testing.T, path string) *tape.Tape {
	tp, err := tape.Open(path)
	be.Equal(t, err, nil)
	t.Cleanup(func() { tp.Close() })
	return tp
}

func TestRecordsInOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape")
	tp := open(t, path)
	be.Equal(t, tp.WriteRecord([]byte("first")), nil)
	be.Equal(t, tp.WriteRecord(nil), nil)
	be.Equal(t, tp.WriteRecord([]byte("third")), nil)

	for _, want := range []string{"first", "", "third"} {
		data, err := tp.ReadRecord()
		be.Equal(t, err, nil)
		be.Equal(t, string(data), want)
	}
	_, err := tp.ReadRecord()
	be.Equal(t, err, io.EOF)

	tp.Rewind()
	data, _ := tp.ReadRecord()
	be.Equal(t, string(data), "first")
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape")
	tp := open(t, path)
	tp.WriteRecord([]byte("kept"))
	tp.Close()

	tp = open(t, path)
	data, err := tp.ReadRecord()
	be.Equal(t, err, nil)
	be.Equal(t, string(data), "kept")
}

func TestTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape")
	be.Equal(t, os.WriteFile(path, []byte{9, 0, 0, 0, 'x'}, 0644), nil)
	tp := open(t, path)
	_, err := tp.ReadRecord()
	be.Equal(t, errs.KindOf(err), errs.IOError)
}
