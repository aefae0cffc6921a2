package domain

import "context"

// RecordRepository is the storage contract behind the config store. The
// in-memory, PostgreSQL and SQLite backends are interchangeable.
type RecordRepository interface {
	// Get returns ErrNotFound when no record exists for (kind, name).
	Get(ctx context.Context, kind Kind, name string) (*Record, error)
	// GetByID returns ErrNotFound when no record has the id.
	GetByID(ctx context.Context, kind Kind, id string) (*Record, error)
	// CreateIfAbsent inserts rec unless (kind, name) already exists, and
	// returns whichever record is stored afterwards.
	CreateIfAbsent(ctx context.Context, rec *Record) (*Record, error)
	// Upsert inserts rec or overwrites the payload and UpdatedAt of the
	// existing record, keeping its ID and CreatedAt.
	Upsert(ctx context.Context, rec *Record) (*Record, error)
	List(ctx context.Context, kind Kind) ([]Record, error)
}
