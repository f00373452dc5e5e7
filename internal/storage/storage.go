// Package storage provides the durable key/value boundary the progress
// store persists through: one text blob per key.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// BlobStore reads and writes named text blobs. Read reports absence
// (including unreadable content) as ok=false rather than an error.
type BlobStore interface {
	Read(key string) (string, bool)
	Write(key, value string) error
}

// SQLStore keeps blobs in a single table, on SQLite by default or
// PostgreSQL when DB_TYPE=postgres
type SQLStore struct {
	db     *sqlx.DB
	driver string
}

// Connect opens the database and makes sure the blob table exists.
// SQLite lives under DATA_DIR (default "data"); postgres uses DATABASE_URL.
func Connect() (*SQLStore, error) {
	driver := "sqlite3"
	dsn := ""

	if os.Getenv("DB_TYPE") == "postgres" {
		driver = "postgres"
		dsn = os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
		dsn = filepath.Join(dataDir, "radbot.db")
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	if driver == "sqlite3" {
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	s := &SQLStore{db: db, driver: driver}
	if err := s.initializeSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) initializeSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS progress_blobs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create progress_blobs table: %v", err)
	}
	return nil
}

// Read returns the blob stored under key, or ok=false when there is none
func (s *SQLStore) Read(key string) (string, bool) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM progress_blobs WHERE key = $1", key)
	if err != nil {
		// Missing row and broken storage look the same to the caller
		return "", false
	}
	return value, true
}

// Write stores the blob under key, replacing any previous value
func (s *SQLStore) Write(key, value string) error {
	var err error
	if s.driver == "sqlite3" {
		// SQLite: probe first, ON CONFLICT with RETURNING is not available
		var existing string
		probeErr := s.db.Get(&existing, "SELECT key FROM progress_blobs WHERE key = $1", key)
		if probeErr == sql.ErrNoRows {
			_, err = s.db.Exec("INSERT INTO progress_blobs (key, value) VALUES ($1, $2)", key, value)
		} else {
			_, err = s.db.Exec("UPDATE progress_blobs SET value = $1, updated_at = CURRENT_TIMESTAMP WHERE key = $2", value, key)
		}
	} else {
		_, err = s.db.Exec(`
			INSERT INTO progress_blobs (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`, key, value)
	}
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %v", key, err)
	}
	return nil
}

// MemoryStore is an in-process BlobStore for tests and ephemeral runs
type MemoryStore struct {
	blobs map[string]string
	// FailWrites makes every Write return an error, for exercising the
	// swallowed-write-failure path
	FailWrites bool
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

func (m *MemoryStore) Read(key string) (string, bool) {
	v, ok := m.blobs[key]
	return v, ok
}

func (m *MemoryStore) Write(key, value string) error {
	if m.FailWrites {
		return fmt.Errorf("write disabled")
	}
	m.blobs[key] = value
	return nil
}

// Seed puts a raw blob in place, bypassing Write's failure switch
func (m *MemoryStore) Seed(key, value string) {
	m.blobs[key] = value
}
