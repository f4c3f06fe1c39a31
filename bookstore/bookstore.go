// Package bookstore is a disk-backed engine.BookSource, wrapping
// BadgerDB as an embedded key-value store keyed by Zobrist fingerprint.
// Grounded on hailam-chessplay/internal/storage/storage.go's
// NewStorage/View/Update shape; the value codec is encoding/gob instead
// of storage.go's encoding/json since the stored value here is a plain
// internal Go slice, not a config struct crossing a user-facing boundary.
package bookstore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"chesscore/engine"
)

// Store wraps a BadgerDB instance mapping Zobrist keys to weighted
// candidate moves. It satisfies engine.BookSource. Query and Learn are
// safe for concurrent use: badger's MVCC transactions serialize writes
// and never block readers (spec §5: "the book source is read-only
// (thread-safe by construction)").
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) a badger database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("bookstore: opening %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func keyFor(zobristKey uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, zobristKey)
	return key
}

// bookEntry is the gob-encoded value stored per Zobrist key; board.Move
// is plain data so it round-trips through gob without custom
// marshaling.
type bookEntry struct {
	Candidates []engine.BookMove
}

// Query implements engine.BookSource: it returns the weighted candidate
// list stored for zobristKey, or nil if the position isn't in the book.
func (s *Store) Query(zobristKey uint64) []engine.BookMove {
	var entry bookEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(keyFor(zobristKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&entry)
		})
	})
	if err != nil {
		return nil
	}
	return entry.Candidates
}

// Learn records (or replaces) the weighted candidate list for a
// position, letting callers build up a repertoire without ever touching
// a Polyglot file (spec §1: Polyglot loading is explicitly out of
// scope; this is the substitute persistent store named by SPEC_FULL.md).
func (s *Store) Learn(zobristKey uint64, candidates []engine.BookMove) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(bookEntry{Candidates: candidates}); err != nil {
		return fmt.Errorf("bookstore: encoding entry: %w", err)
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(keyFor(zobristKey), buf.Bytes())
	})
	if err != nil {
		return fmt.Errorf("bookstore: writing entry: %w", err)
	}
	return nil
}
