// Package store keeps the persistent state of the interpreter in a bbolt
// database: the history of lines typed at the prompt and the variable
// snapshots written by STORE "name".
package store

import (
	"fmt"
	"os"
	"testing"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.abasic.dev/pkg/logutil"
	"src.abasic.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketCmd  = "cmd"
	bucketVars = "vars"
)

// initDB holds the functions that prepare a freshly opened database, keyed by
// a description used in error messages.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is the permanent storage backend.
type DBStore interface {
	storedefs.Store
	TrimCmds(keep int) error
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database at the given path, creating it if needed.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Println("opened", dbname)
	return &dbStore{db}, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}

// MustTempStore returns a Store backed by a file in a temporary directory of
// the test. The Store is closed when the test ends.
func MustTempStore(t testing.TB) DBStore {
	f, err := os.CreateTemp(t.TempDir(), "abasic.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	f.Close()
	st, err := NewStore(f.Name())
	if err != nil {
		t.Fatalf("create Store instance: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
