package persistence

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"
)

// storeKey is the single fixed key every snapshot is written under, per the
// "keyed put/get under a fixed store name" contract.
const storeKey = "hnsw_index"

const envelopeVersion = 1

// envelope wraps a raw hnsw.Graph.ToJSON payload with a version tag so
// future on-disk layout changes can be detected before decoding the
// payload itself.
type envelope struct {
	Version int    `msgpack:"version"`
	Payload []byte `msgpack:"payload"`
}

// Store is a sqlite-backed snapshot collaborator. The zero value is not
// ready for use; construct one with Open.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// Open opens (creating if absent) a sqlite database at path and ensures its
// schema exists. Use ":memory:" for an ephemeral, process-local store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persistence: open: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveIndex persists data (an hnsw.Graph.ToJSON payload) under the fixed
// store key, overwriting any previous snapshot.
func (s *Store) SaveIndex(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}

	blob, err := msgpack.Marshal(envelope{Version: envelopeVersion, Payload: data})
	if err != nil {
		return fmt.Errorf("persistence: encode envelope: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, storeKey, blob)
	if err != nil {
		return fmt.Errorf("persistence: save: %w", err)
	}
	return nil
}

// LoadIndex returns the last saved snapshot payload, or (nil, nil) if
// nothing has been saved yet — absence of a snapshot is not an error.
func (s *Store) LoadIndex() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return nil, err
	}

	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, storeKey).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persistence: load: %w", err)
	}

	var env envelope
	if err := msgpack.Unmarshal(blob, &env); err != nil {
		return nil, fmt.Errorf("persistence: decode envelope: %w", err)
	}
	return env.Payload, nil
}

// DeleteIndex removes any saved snapshot. It is a no-op, not an error, if
// none exists.
func (s *Store) DeleteIndex() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}

	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, storeKey); err != nil {
		return fmt.Errorf("persistence: delete: %w", err)
	}
	return nil
}

// Close releases the underlying database handle. Further calls to any
// method return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyLocked(); err != nil {
		return err
	}

	s.closed = true
	return s.db.Close()
}

// readyLocked reports whether the Store can be used, assuming mu is held.
func (s *Store) readyLocked() error {
	if s.db == nil {
		return ErrDatabaseNotReady
	}
	if s.closed {
		return ErrClosed
	}
	return nil
}
