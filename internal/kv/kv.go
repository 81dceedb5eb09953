// Package kv implements the embedded storage backend on bbolt.
//
// Each entity type lives in its own ordered bucket keyed by id, with
// JSON-encoded records. Multi-step mutations (category deletion's
// reassign-then-delete, tag usage reconciliation) run as a sequence of
// independent writes with no cross-step transactional guarantee: a
// crash between steps can leave notes pointing at a deleted category.
// That is an accepted property of this backend; callers who need
// atomic cascades should use the relational backend. The steps are
// ordered and idempotent so a write-ahead log could replay them later.
package kv

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// StorageType identifies this backend in statistics and exports.
const StorageType = "kv"

var (
	bucketNotes      = []byte("notes")
	bucketCategories = []byte("categories")
	bucketTags       = []byte("tags")
)

// Store is the embedded implementation of domain.Store. A single mutex
// serializes operations: concurrent tag-usage updates are not safe
// without one, and callers are allowed to share an instance.
type Store struct {
	mu sync.Mutex
	db *bolt.DB
}

// Open opens (creating if needed) the bolt file at path and ensures
// the entity buckets exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "create kv directory")
		}
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open kv store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketNotes, bucketCategories, bucketTags} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create buckets")
	}
	return &Store{db: db}, nil
}

// Close releases the bolt file.
func (s *Store) Close() error {
	return s.db.Close()
}

// put writes one record as a single flushed step.
func (s *Store) put(bucket []byte, id string, record interface{}) error {
	data, err := sonic.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(id), data)
	})
}

// get decodes one record into out, reporting whether the id exists.
func (s *Store) get(bucket []byte, id string, out interface{}) (bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(id)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "read record")
	}
	if data == nil {
		return false, nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return false, errors.Wrap(err, "decode record")
	}
	return true, nil
}

// delete removes one record as a single flushed step.
func (s *Store) delete(bucket []byte, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(id))
	})
}

// scan walks every record of a bucket in key order.
func (s *Store) scan(bucket []byte, visit func(data []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(_, v []byte) error {
			return visit(v)
		})
	})
}

func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}
