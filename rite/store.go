package rite

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrChunkNotFound indicates the requested chunk is not in the store.
var ErrChunkNotFound = errors.New("rite: chunk not found")

// ErrChunkCorrupt indicates stored bytes no longer match their hash.
var ErrChunkCorrupt = errors.New("rite: chunk corrupt")

// Store is content-addressed chunk persistence on SQLite. Keys are the
// hex sha256 of each chunk's canonical encoding, so a chunk can never
// be silently replaced by different content under the same key.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) a chunk store at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS chunks (
		hash TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database.
func (st *Store) Close() error {
	return st.db.Close()
}

// Put stores a chunk and returns its content address. Re-putting equal
// content is a no-op on the same key.
func (st *Store) Put(c *Chunk) (string, error) {
	data, err := Marshal(c)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	_, err = st.db.Exec(
		`INSERT OR REPLACE INTO chunks (hash, name, data) VALUES (?, ?, ?)`,
		key, c.Name, data,
	)
	if err != nil {
		return "", fmt.Errorf("storing chunk: %w", err)
	}
	return key, nil
}

// Get loads the chunk behind a content address, verifying the stored
// bytes still hash to their key.
func (st *Store) Get(key string) (*Chunk, error) {
	var data []byte
	err := st.db.QueryRow(`SELECT data FROM chunks WHERE hash = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChunkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading chunk: %w", err)
	}

	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != key {
		return nil, ErrChunkCorrupt
	}
	return Unmarshal(data)
}

// StoreEntry describes one stored chunk.
type StoreEntry struct {
	Hash string
	Name string
}

// List returns all stored chunks ordered by name.
func (st *Store) List() ([]StoreEntry, error) {
	rows, err := st.db.Query(`SELECT hash, name FROM chunks ORDER BY name, hash`)
	if err != nil {
		return nil, fmt.Errorf("listing chunks: %w", err)
	}
	defer rows.Close()

	var out []StoreEntry
	for rows.Next() {
		var e StoreEntry
		if err := rows.Scan(&e.Hash, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes a chunk by content address. Deleting a missing chunk
// is not an error.
func (st *Store) Delete(key string) error {
	_, err := st.db.Exec(`DELETE FROM chunks WHERE hash = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting chunk: %w", err)
	}
	return nil
}
