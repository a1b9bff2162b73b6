package audit

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreAdd(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer store.Close()

	store.Add(context.Background(), &Record{
		IntentID:      "intent-1",
		Kind:          "bridge",
		Provider:      "thirdweb_server",
		APIKeyLabel:   "ops",
		State:         "submitted",
		TransactionID: "tx-1",
	})
	store.Add(context.Background(), &Record{
		IntentID: "intent-2",
		Kind:     "swap",
		Provider: "thirdweb_embedded",
		State:    "failed",
		Error:    "bad_gateway: provider unreachable",
	})

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM intent_records").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	var state, txID string
	err = store.db.QueryRow(
		"SELECT state, transaction_id FROM intent_records WHERE intent_id = ?", "intent-1",
	).Scan(&state, &txID)
	if err != nil {
		t.Fatalf("select query: %v", err)
	}
	if state != "submitted" || txID != "tx-1" {
		t.Errorf("record = %q, %q", state, txID)
	}
}

func TestNilStoreIsNoop(t *testing.T) {
	var store *Store
	// Must not panic with audit disabled.
	store.Add(context.Background(), &Record{IntentID: "x"})
	if err := store.Close(); err != nil {
		t.Errorf("Close() on nil store = %v", err)
	}
}
