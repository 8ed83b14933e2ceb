package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"verdant.eco/ledger/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

// SQLite persists snapshots and credential documents in a single database.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("missing database path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	s, err := NewSQLite(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLite wraps an existing database handle and runs migrations.
func NewSQLite(db *sql.DB) (*SQLite, error) {
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at INTEGER NOT NULL,
		body JSON NOT NULL
	);
	CREATE TABLE IF NOT EXISTS credential_docs (
		credential_id INTEGER PRIMARY KEY,
		cid TEXT NOT NULL,
		body BLOB NOT NULL
	);`
	_, err := s.db.ExecContext(context.Background(), query)
	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveSnapshot appends a snapshot row. Older snapshots beyond the most
// recent keep are pruned in the same transaction so the database does not
// grow without bound.
func (s *SQLite) SaveSnapshot(ctx context.Context, takenAt model.Time, snap model.Snapshot) error {
	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (taken_at, body) VALUES (?, ?)`,
		int64(takenAt), string(body),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	// Keep the last few snapshots for manual recovery.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY id DESC LIMIT 8
		)`,
	); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return tx.Commit()
}

// LoadLatestSnapshot returns the most recent snapshot, or ok=false when the
// database holds none.
func (s *SQLite) LoadLatestSnapshot(ctx context.Context) (model.Snapshot, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT body FROM snapshots ORDER BY id DESC LIMIT 1`)
	var body string
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return model.Snapshot{}, false, nil
		}
		return model.Snapshot{}, false, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return model.Snapshot{}, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

// PutCredentialDoc stores the canonical document bytes for a credential.
// Documents are immutable; a repeated put for the same credential is a
// no-op so the daemon can retry safely.
func (s *SQLite) PutCredentialDoc(ctx context.Context, credentialID uint64, cid string, body []byte) error {
	if cid == "" || len(body) == 0 {
		return fmt.Errorf("empty credential document")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credential_docs (credential_id, cid, body) VALUES (?, ?, ?)
		 ON CONFLICT (credential_id) DO NOTHING`,
		int64(credentialID), cid, body,
	)
	if err != nil {
		return fmt.Errorf("insert credential document: %w", err)
	}
	return nil
}

// GetCredentialDoc returns the stored document for a credential.
func (s *SQLite) GetCredentialDoc(ctx context.Context, credentialID uint64) (cid string, body []byte, err error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT cid, body FROM credential_docs WHERE credential_id = ?`,
		int64(credentialID))
	if err := row.Scan(&cid, &body); err != nil {
		if err == sql.ErrNoRows {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}
	return cid, body, nil
}
