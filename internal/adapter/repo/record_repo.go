package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/infra"
	"github.com/mossjr/tab-image-gen-poc/internal/sqlinline"
)

// RecordRepositoryPG implements domain.RecordRepository using PostgreSQL.
type RecordRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewRecordRepository constructs a Postgres-backed record repository.
func NewRecordRepository(sql infra.SQLExecutor) *RecordRepositoryPG {
	return &RecordRepositoryPG{sql: sql}
}

var _ domain.RecordRepository = (*RecordRepositoryPG)(nil)

// Get returns the record stored under (kind, name).
func (r *RecordRepositoryPG) Get(ctx context.Context, kind domain.Kind, name string) (*domain.Record, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectSlotRecord, string(kind), name)
	return scanRecordRow(row)
}

// GetByID returns the record with the given id. Malformed ids are reported as not found.
func (r *RecordRepositoryPG) GetByID(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	row := r.sql.QueryRow(ctx, sqlinline.QSelectSlotRecordByID, string(kind), id)
	return scanRecordRow(row)
}

// CreateIfAbsent inserts rec unless the slot exists, returning the stored record either way.
func (r *RecordRepositoryPG) CreateIfAbsent(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	ensureID(rec)
	row := r.sql.QueryRow(ctx, sqlinline.QInsertSlotRecordIfAbsent,
		rec.ID, string(rec.Kind), rec.Name, []byte(rec.Payload), rec.CreatedAt, rec.UpdatedAt)
	stored, err := scanRecordRow(row)
	if errors.Is(err, domain.ErrNotFound) {
		// The row is returned on conflict too; read it back if the driver still came up empty.
		stored, err = r.Get(ctx, rec.Kind, rec.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("insert %s/%s: %w", rec.Kind, rec.Name, err)
	}
	return stored, nil
}

// Upsert writes rec, overwriting payload and updated_at of an existing slot.
func (r *RecordRepositoryPG) Upsert(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	ensureID(rec)
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertSlotRecord,
		rec.ID, string(rec.Kind), rec.Name, []byte(rec.Payload), rec.CreatedAt, rec.UpdatedAt)
	stored, err := scanRecordRow(row)
	if err != nil {
		return nil, fmt.Errorf("upsert %s/%s: %w", rec.Kind, rec.Name, err)
	}
	return stored, nil
}

// List returns every record of kind ordered by creation time.
func (r *RecordRepositoryPG) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListSlotRecords, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		rec, err := scanRecordRow(rows)
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

func scanRecordRow(row pgx.Row) (*domain.Record, error) {
	var (
		rec     domain.Record
		kind    string
		payload []byte
	)
	if err := row.Scan(&rec.ID, &kind, &rec.Name, &payload, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rec.Kind = domain.Kind(kind)
	rec.Payload = payload
	return &rec, nil
}

func ensureID(rec *domain.Record) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
}
