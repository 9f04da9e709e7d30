package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"

	"src.abasic.dev/pkg/store/storedefs"
)

func init() {
	initDB["create the history bucket"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	}
}

// Lines typed at the prompt are kept under 8-byte big-endian sequence keys so
// that the cursor order is the order they were entered in.

func seqKey(seq int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(seq))
	return k
}

func keySeq(k []byte) int { return int(binary.BigEndian.Uint64(k)) }

func history(tx *bolt.Tx) *bolt.Bucket { return tx.Bucket([]byte(bucketCmd)) }

// AddCmd appends a line to the history. A line equal to the newest entry is
// not added again; its sequence number is returned instead.
func (s *dbStore) AddCmd(text string) (int, error) {
	var seq int
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := history(tx)
		if k, v := b.Cursor().Last(); k != nil && string(v) == text {
			seq = keySeq(k)
			return nil
		}
		n, err := b.NextSequence()
		if err != nil {
			return err
		}
		seq = int(n)
		return b.Put(seqKey(seq), []byte(text))
	})
	return seq, err
}

// CmdsWithSeq returns the entries with from <= seq < upto, oldest first. A
// negative upto means no upper bound.
func (s *dbStore) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	var cmds []storedefs.Cmd
	err := s.db.View(func(tx *bolt.Tx) error {
		c := history(tx).Cursor()
		for k, v := c.Seek(seqKey(from)); k != nil; k, v = c.Next() {
			seq := keySeq(k)
			if upto >= 0 && seq >= upto {
				break
			}
			cmds = append(cmds, storedefs.Cmd{Text: string(v), Seq: seq})
		}
		return nil
	})
	return cmds, err
}

// TrimCmds deletes the oldest entries so that at most keep remain.
func (s *dbStore) TrimCmds(keep int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := history(tx)
		excess := b.Stats().KeyN - keep
		c := b.Cursor()
		for k, _ := c.First(); k != nil && excess > 0; k, _ = c.First() {
			if err := c.Delete(); err != nil {
				return err
			}
			excess--
		}
		return nil
	})
}
