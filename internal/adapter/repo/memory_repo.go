package repo

import (
	"context"
	"sync"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
)

// RecordRepositoryMemory keeps records in process memory. Contents are lost
// on restart; List returns records in insertion order.
type RecordRepositoryMemory struct {
	mu     sync.RWMutex
	byName map[domain.Kind]map[string]*domain.Record
	order  map[domain.Kind][]string
}

// NewMemoryRecordRepository constructs an empty in-memory repository.
func NewMemoryRecordRepository() *RecordRepositoryMemory {
	return &RecordRepositoryMemory{
		byName: make(map[domain.Kind]map[string]*domain.Record),
		order:  make(map[domain.Kind][]string),
	}
}

var _ domain.RecordRepository = (*RecordRepositoryMemory)(nil)

func (r *RecordRepositoryMemory) Get(ctx context.Context, kind domain.Kind, name string) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byName[kind][name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (r *RecordRepositoryMemory) GetByID(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.byName[kind] {
		if rec.ID == id {
			return cloneRecord(rec), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *RecordRepositoryMemory) CreateIfAbsent(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[rec.Kind][rec.Name]; ok {
		return cloneRecord(existing), nil
	}
	return r.insertLocked(rec), nil
}

func (r *RecordRepositoryMemory) Upsert(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byName[rec.Kind][rec.Name]; ok {
		existing.Payload = append([]byte(nil), rec.Payload...)
		existing.UpdatedAt = rec.UpdatedAt
		return cloneRecord(existing), nil
	}
	return r.insertLocked(rec), nil
}

func (r *RecordRepositoryMemory) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]domain.Record, 0, len(r.order[kind]))
	for _, name := range r.order[kind] {
		records = append(records, *cloneRecord(r.byName[kind][name]))
	}
	return records, nil
}

func (r *RecordRepositoryMemory) insertLocked(rec *domain.Record) *domain.Record {
	ensureID(rec)
	stored := cloneRecord(rec)
	if r.byName[rec.Kind] == nil {
		r.byName[rec.Kind] = make(map[string]*domain.Record)
	}
	r.byName[rec.Kind][rec.Name] = stored
	r.order[rec.Kind] = append(r.order[rec.Kind], rec.Name)
	return cloneRecord(stored)
}

func cloneRecord(rec *domain.Record) *domain.Record {
	c := *rec
	c.Payload = append([]byte(nil), rec.Payload...)
	return &c
}
