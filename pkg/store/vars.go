package store

import (
	bolt "go.etcd.io/bbolt"

	"src.abasic.dev/pkg/eval/errs"
)

func init() {
	initDB["create the variables bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketVars))
		return err
	}
}

func snapshots(tx *bolt.Tx) *bolt.Bucket { return tx.Bucket([]byte(bucketVars)) }

// SaveVars stores a variable snapshot, replacing any with the same name.
func (s *dbStore) SaveVars(name string, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return snapshots(tx).Put([]byte(name), data)
	})
}

// LoadVars returns the snapshot saved under name. The returned slice is a
// copy owned by the caller.
func (s *dbStore) LoadVars(name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := snapshots(tx).Get([]byte(name))
		if v == nil {
			return errs.Newf(errs.PathNotFound, "no variables stored as %q", name)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	return data, err
}

// VarsNames returns the names of all snapshots in byte order.
func (s *dbStore) VarsNames() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return snapshots(tx).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// DelVars deletes a snapshot. It returns an error of kind PathNotFound if
// there is none.
func (s *dbStore) DelVars(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := snapshots(tx)
		if b.Get([]byte(name)) == nil {
			return errs.Newf(errs.PathNotFound, "no variables stored as %q", name)
		}
		return b.Delete([]byte(name))
	})
}
