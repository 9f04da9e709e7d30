package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nalgeon/be"
)

var dedentTests = []struct {
	name, text, want string
}{
	{"empty", "", ""},
	{"no margin", "a\n  b\n", "a\n  b\n"},
	{"common margin", "  a\n    b\n", "a\n  b\n"},
	{"leading newline", "\n\t\t10 PRINT\n\t\t20 END\n\t\t", "10 PRINT\n20 END\n"},
	{"blank lines", "  a\n\n   \n  b", "a\n\n\nb"},
	{"mixed", "  a\n\tb", "  a\n\tb"},
}

func TestDedent(t *testing.T) {
	for _, test := range dedentTests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, Dedent(test.text), test.want)
		})
	}
}

func TestInTempDir(t *testing.T) {
	old, err := os.Getwd()
	be.Equal(t, err, nil)
	var dir string
	t.Run("sub", func(t *testing.T) {
		dir = InTempDir(t)
		wd, err := os.Getwd()
		be.Equal(t, err, nil)
		be.Equal(t, wd, dir)
	})
	wd, err := os.Getwd()
	be.Equal(t, err, nil)
	be.Equal(t, wd, old)
	_, err = os.Stat(dir)
	be.True(t, os.IsNotExist(err))
}

func TestApplyDir(t *testing.T) {
	root := t.TempDir()
	ApplyDir(t, Dir{
		"a.bas": "10 END\n",
		"sub": Dir{
			"b": "x",
			"c": Dir{},
		},
	}, root)
	ApplyDir(t, Dir{"sub": Dir{"d": "y"}}, root)

	data, err := os.ReadFile(filepath.Join(root, "a.bas"))
	be.Equal(t, err, nil)
	be.Equal(t, string(data), "10 END\n")
	data, err = os.ReadFile(filepath.Join(root, "sub", "d"))
	be.Equal(t, err, nil)
	be.Equal(t, string(data), "y")
	info, err := os.Stat(filepath.Join(root, "sub", "c"))
	be.Equal(t, err, nil)
	be.True(t, info.IsDir())
}

func TestSetenv(t *testing.T) {
	const name = "ABASIC_TESTUTIL_VAR"
	os.Unsetenv(name)
	t.Run("sub", func(t *testing.T) {
		be.Equal(t, Setenv(t, name, "v"), "v")
		be.Equal(t, os.Getenv(name), "v")
	})
	_, ok := os.LookupEnv(name)
	be.True(t, !ok)
}

func TestScaled(t *testing.T) {
	Setenv(t, "ABASIC_TEST_TIME_SCALE", "2")
	be.Equal(t, Scaled(time.Second), 2*time.Second)
	Setenv(t, "ABASIC_TEST_TIME_SCALE", "bad")
	be.Equal(t, Scaled(time.Second), time.Second)
	Setenv(t, "ABASIC_TEST_TIME_SCALE", "-1")
	be.Equal(t, Scaled(time.Second), time.Second)
}
