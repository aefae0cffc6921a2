package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/sqlinline"
)

// RecordRepositorySQLite implements domain.RecordRepository on a single SQLite file.
type RecordRepositorySQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path and ensures the schema.
func OpenSQLite(ctx context.Context, path string) (*RecordRepositorySQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: ensure directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// one connection: SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	repo := NewSQLiteRecordRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLiteRecordRepository wraps an already opened database handle.
func NewSQLiteRecordRepository(db *sql.DB) *RecordRepositorySQLite {
	return &RecordRepositorySQLite{db: db}
}

var _ domain.RecordRepository = (*RecordRepositorySQLite)(nil)

// EnsureSchema creates the slot_records table when missing.
func (r *RecordRepositorySQLite) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqlinline.SQLiteCreateSlotRecords); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (r *RecordRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *RecordRepositorySQLite) Get(ctx context.Context, kind domain.Kind, name string) (*domain.Record, error) {
	row := r.db.QueryRowContext(ctx, sqlinline.SQLiteSelectSlotRecord, string(kind), name)
	return scanSQLiteRecord(row)
}

func (r *RecordRepositorySQLite) GetByID(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	row := r.db.QueryRowContext(ctx, sqlinline.SQLiteSelectSlotRecordByID, string(kind), id)
	return scanSQLiteRecord(row)
}

func (r *RecordRepositorySQLite) CreateIfAbsent(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	ensureID(rec)
	if _, err := r.db.ExecContext(ctx, sqlinline.SQLiteInsertSlotRecordIfAbsent,
		rec.ID, string(rec.Kind), rec.Name, string(rec.Payload), rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()); err != nil {
		return nil, fmt.Errorf("insert %s/%s: %w", rec.Kind, rec.Name, err)
	}
	return r.Get(ctx, rec.Kind, rec.Name)
}

func (r *RecordRepositorySQLite) Upsert(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	ensureID(rec)
	if _, err := r.db.ExecContext(ctx, sqlinline.SQLiteUpsertSlotRecord,
		rec.ID, string(rec.Kind), rec.Name, string(rec.Payload), rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()); err != nil {
		return nil, fmt.Errorf("upsert %s/%s: %w", rec.Kind, rec.Name, err)
	}
	return r.Get(ctx, rec.Kind, rec.Name)
}

func (r *RecordRepositorySQLite) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, sqlinline.SQLiteListSlotRecords, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (*domain.Record, error) {
	var (
		rec       domain.Record
		kind      string
		payload   []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&rec.ID, &kind, &rec.Name, &payload, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rec.Kind = domain.Kind(kind)
	rec.Payload = payload
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	return &rec, nil
}
