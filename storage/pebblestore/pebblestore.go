// Package pebblestore is an optional on-disk pathoram.Storage backend.
// It satisfies the same interface as pathoram.InMemoryStorage, for
// callers who accept best-effort persistence across restarts; the
// client-observable access shape is unchanged.
package pebblestore

import (
	"strconv"

	"github.com/cockroachdb/pebble"

	"github.com/oblivtree/pathoram"
)

// Store persists buckets in a pebble key-value store, keyed by the
// decimal node key.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if absent) a pebble store at path.
func Open(path string) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying pebble database.
func (s *Store) Close() error {
	return s.db.Close()
}

func nodeKey(node int) []byte {
	return []byte(strconv.Itoa(node))
}

// ReadBucket implements pathoram.Storage.
func (s *Store) ReadBucket(node int) (pathoram.Bucket, error) {
	data, closer, err := s.db.Get(nodeKey(node))
	if err != nil {
		if err == pebble.ErrNotFound {
			return pathoram.Bucket{}, pathoram.ErrUnknownNode
		}
		return pathoram.Bucket{}, err
	}
	defer closer.Close()

	// pebble's Get return value is only valid until closer.Close(); copy
	// it before decoding escapes this function.
	buf := make([]byte, len(data))
	copy(buf, data)
	return pathoram.DecodeBucket(buf)
}

// WriteBucket implements pathoram.Storage.
func (s *Store) WriteBucket(node int, bucket pathoram.Bucket) error {
	data, err := pathoram.EncodeBucket(bucket)
	if err != nil {
		return err
	}
	return s.db.Set(nodeKey(node), data, pebble.NoSync)
}

// NumNodes returns the number of buckets currently persisted. Present
// to satisfy pathoram.Storage; a freshly opened store reports 0 until
// Server.New's construct pass writes every node once.
func (s *Store) NumNodes() int {
	iter, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return 0
	}
	defer iter.Close()
	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count
}
