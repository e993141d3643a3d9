package kv

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/dolthub/driver"
)

// doltSchema mirrors the sqlite kv table in MySQL dialect. LONGTEXT because
// persisted media attachments can make the reports document large.
const doltSchema = `
CREATE TABLE IF NOT EXISTS kv (
    k VARCHAR(64) PRIMARY KEY,
    v LONGTEXT NOT NULL
);
`

// DoltStore is a Store backed by an embedded Dolt repository. Every write
// lands in Dolt's working set, so the full edit history of the report
// collection is recoverable with stock dolt tooling.
type DoltStore struct {
	db     *sql.DB
	dbPath string
}

// OpenDolt opens or creates the kv database in a Dolt repo at <dir>/hz/.
func OpenDolt(dir string) (*DoltStore, error) {
	dbPath := filepath.Join(dir, "hz")

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, fmt.Errorf("create dolt directory: %w", err)
	}

	// First connect without a database to create it if needed
	initDSN := fmt.Sprintf("file://%s?commitname=hz&commitemail=hz@local", dbPath)
	initDB, err := sql.Open("dolt", initDSN)
	if err != nil {
		return nil, fmt.Errorf("open dolt for init: %w", err)
	}
	if _, err := initDB.Exec("CREATE DATABASE IF NOT EXISTS hz"); err != nil {
		initDB.Close()
		return nil, fmt.Errorf("create database: %w", err)
	}
	initDB.Close()

	dsn := fmt.Sprintf("file://%s?commitname=hz&commitemail=hz@local&database=hz", dbPath)
	db, err := sql.Open("dolt", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dolt db: %w", err)
	}

	if _, err := db.Exec(doltSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init kv schema: %w", err)
	}

	return &DoltStore{db: db, dbPath: dbPath}, nil
}

// Get returns the value stored under key, or ErrNoKey.
func (s *DoltStore) Get(key string) ([]byte, error) {
	var v string
	err := s.db.QueryRow("SELECT v FROM kv WHERE k = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, ErrNoKey
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(v), nil
}

// Set replaces the value stored under key.
func (s *DoltStore) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)",
		key, string(value))
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *DoltStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE k = ?", key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *DoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the Dolt repository directory.
func (s *DoltStore) Path() string {
	return s.dbPath
}
