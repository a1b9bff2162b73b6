// Package audit keeps an append-only sqlite record of executed intents.
// Recording is best-effort observability: failures are logged, never
// surfaced, and nothing on the request path reads the trail back.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Record is one executed-intent entry.
type Record struct {
	IntentID      string
	Kind          string
	Provider      string
	APIKeyLabel   string
	State         string
	TransactionID string
	Error         string
}

// Store is a sqlite-backed audit trail.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the audit database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS intent_records (
		id TEXT PRIMARY KEY,
		intent_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		provider TEXT NOT NULL,
		api_key_label TEXT,
		state TEXT NOT NULL,
		transaction_id TEXT,
		error TEXT,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Add writes one record. It is safe on a nil store (audit disabled) and
// decouples persistence from the request lifecycle so client disconnects
// don't drop records; a short timeout still bounds the write.
func (s *Store) Add(ctx context.Context, rec *Record) {
	if s == nil {
		return
	}

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(persistCtx,
		`INSERT INTO intent_records
			(id, intent_id, kind, provider, api_key_label, state, transaction_id, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"rec_"+uuid.New().String(),
		rec.IntentID,
		rec.Kind,
		rec.Provider,
		rec.APIKeyLabel,
		rec.State,
		rec.TransactionID,
		rec.Error,
		time.Now().UTC(),
	)
	if err != nil {
		slog.Default().Error("failed to record intent",
			slog.String("intent_id", rec.IntentID),
			slog.String("error", err.Error()),
		)
	}
}
