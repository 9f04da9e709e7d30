package testutil

import (
	"os"
	"path/filepath"
)

// Dir describes the layout of a directory. The values are either strings,
// the content of files, or Dir, subdirectories.
type Dir map[string]any

// ApplyDir creates the files and directories described by dir under root.
// Existing directories are kept.
func ApplyDir(t Env, dir Dir, root string) {
	t.Helper()
	for name, v := range dir {
		path := filepath.Join(root, name)
		switch v := v.(type) {
		case string:
			if err := os.WriteFile(path, []byte(v), 0600); err != nil {
				t.Fatalf("write %s: %v", path, err)
			}
		case Dir:
			if err := os.MkdirAll(path, 0700); err != nil {
				t.Fatalf("mkdir %s: %v", path, err)
			}
			ApplyDir(t, v, path)
		default:
			t.Fatalf("file %s has content of type %T", name, v)
		}
	}
}

// InTempDir creates a temporary directory, makes it the working directory and
// returns its path. The old working directory is restored when the test
// ends.
func InTempDir(t Env) string {
	t.Helper()
	dir := t.TempDir()
	// On macOS the temporary directory is behind a symlink.
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	Chdir(t, dir)
	return dir
}

// Chdir changes the working directory for the duration of a test.
func Chdir(t Env, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}
