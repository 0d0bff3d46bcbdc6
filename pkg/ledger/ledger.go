package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when a ledger record is not found.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a record with the same ID already exists.
var ErrDuplicate = errors.New("duplicate record")

// Record is one persisted evaluation outcome. The result payload is the
// canonical JSON of the evaluation result and ResultHash is its RFC 8785
// hash, so replaying the same facts against the same catalog yields a
// record with an identical hash.
type Record struct {
	ID             string          `json:"id"`
	SystemID       string          `json:"system_id"`
	CatalogVersion string          `json:"catalog_version"`
	EngineVersion  string          `json:"engine_version"`
	ResultHash     string          `json:"result_hash"`
	CreatedAt      time.Time       `json:"created_at"`
	Result         json.RawMessage `json:"result"`
}

// Store is the durable interface for evaluation records.
type Store interface {
	// Append persists a new record. The ID must be unique.
	Append(ctx context.Context, rec Record) error

	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (Record, error)

	// ListBySystem retrieves all records for a system, newest first.
	ListBySystem(ctx context.Context, systemID string) ([]Record, error)

	// ListAll retrieves all records (for observability).
	ListAll(ctx context.Context) ([]Record, error)
}
