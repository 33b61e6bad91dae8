// Package database provides the SQLite-backed accession registry: sample
// aliases and the archive accessions assigned to them by past submissions,
// ingested from receipt documents.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/oceanomics/faire2ena/internal/ena"
)

// DB wraps the SQL database connection.
type DB struct {
	*sql.DB
	path string
}

// Initialize creates and configures the registry database.
func Initialize(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000&_sync=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &DB{DB: db, path: path}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sample_accessions (
		alias       TEXT PRIMARY KEY,
		accession   TEXT NOT NULL,
		receipt     TEXT,
		received_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sample_accessions_accession
		ON sample_accessions(accession);
	`
	_, err := db.Exec(schema)
	return err
}

// Path returns the location of the registry file.
func (db *DB) Path() string {
	return db.path
}

// StoreAccessions upserts every accession from a parsed receipt, tagged with
// the receipt source for provenance. Returns the number of rows written.
func (db *DB) StoreAccessions(accessions ena.AccessionMap, receipt string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sample_accessions (alias, accession, receipt, received_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(alias) DO UPDATE SET
			accession = excluded.accession,
			receipt = excluded.receipt,
			received_at = excluded.received_at`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	count := 0
	for alias, accession := range accessions {
		if _, err := stmt.Exec(alias, accession, receipt, now); err != nil {
			return count, fmt.Errorf("failed to store accession for %s: %w", alias, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("failed to commit: %w", err)
	}
	return count, nil
}

// LoadAccessions returns all registered alias -> accession pairs.
func (db *DB) LoadAccessions() (ena.AccessionMap, error) {
	rows, err := db.Query(`SELECT alias, accession FROM sample_accessions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query registry: %w", err)
	}
	defer rows.Close()

	accessions := make(ena.AccessionMap)
	for rows.Next() {
		var alias, accession string
		if err := rows.Scan(&alias, &accession); err != nil {
			return nil, fmt.Errorf("failed to scan registry row: %w", err)
		}
		accessions[alias] = accession
	}

	return accessions, rows.Err()
}

// LookupAccession resolves a single sample alias. The second return value
// reports whether the alias is registered.
func (db *DB) LookupAccession(alias string) (string, bool, error) {
	var accession string
	err := db.QueryRow(`SELECT accession FROM sample_accessions WHERE alias = ?`, alias).Scan(&accession)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up %s: %w", alias, err)
	}
	return accession, true, nil
}

// Count returns the number of registered samples.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sample_accessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count registry: %w", err)
	}
	return n, nil
}
