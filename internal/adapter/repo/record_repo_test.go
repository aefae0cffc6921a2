package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/sqlinline"
)

type recordRow struct {
	id, kind, name string
	payload        []byte
	createdAt      time.Time
	updatedAt      time.Time
}

func (r recordRow) scanInto(dest ...any) error {
	if len(dest) != 6 {
		return fmt.Errorf("expected 6 destinations, got %d", len(dest))
	}
	*dest[0].(*string) = r.id
	*dest[1].(*string) = r.kind
	*dest[2].(*string) = r.name
	*dest[3].(*[]byte) = append([]byte(nil), r.payload...)
	*dest[4].(*time.Time) = r.createdAt
	*dest[5].(*time.Time) = r.updatedAt
	return nil
}

type stubRow struct {
	row *recordRow
	err error
}

func (s stubRow) Scan(dest ...any) error {
	if s.err != nil {
		return s.err
	}
	if s.row == nil {
		return pgx.ErrNoRows
	}
	return s.row.scanInto(dest...)
}

type stubRows struct {
	rows []recordRow
	pos  int
}

func (s *stubRows) Close()                                       {}
func (s *stubRows) Err() error                                   { return nil }
func (s *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (s *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (s *stubRows) Values() ([]any, error)                       { return nil, errors.New("not supported") }
func (s *stubRows) RawValues() [][]byte                          { return nil }
func (s *stubRows) Conn() *pgx.Conn                              { return nil }

func (s *stubRows) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *stubRows) Scan(dest ...any) error {
	return s.rows[s.pos-1].scanInto(dest...)
}

type stubExecutor struct {
	row      stubRow
	queue    []stubRow
	rows     []recordRow
	queryErr error
	calls    []struct {
		query string
		args  []any
	}
}

func (s *stubExecutor) record(query string, args []any) {
	s.calls = append(s.calls, struct {
		query string
		args  []any
	}{query, args})
}

func (s *stubExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.record(query, args)
	return pgconn.CommandTag{}, errors.New("not implemented")
}

func (s *stubExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.record(query, args)
	if len(s.queue) > 0 {
		row := s.queue[0]
		s.queue = s.queue[1:]
		return row
	}
	return s.row
}

func (s *stubExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	s.record(query, args)
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return &stubRows{rows: s.rows}, nil
}

func TestRecordRepositoryPGGetNotFound(t *testing.T) {
	exec := &stubExecutor{}
	r := NewRecordRepository(exec)
	if _, err := r.Get(context.Background(), domain.KindTextConfig, "default"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() = %v, want ErrNotFound", err)
	}
	if exec.calls[0].query != sqlinline.QSelectSlotRecord {
		t.Fatalf("Get() used unexpected query %q", exec.calls[0].query)
	}
	if exec.calls[0].args[0] != "text-config" || exec.calls[0].args[1] != "default" {
		t.Fatalf("Get() args = %#v", exec.calls[0].args)
	}
}

func TestRecordRepositoryPGGetByIDRejectsMalformedID(t *testing.T) {
	exec := &stubExecutor{}
	r := NewRecordRepository(exec)
	if _, err := r.GetByID(context.Background(), domain.KindAdContent, "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID() = %v, want ErrNotFound", err)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("GetByID() issued %d queries for a malformed id", len(exec.calls))
	}
}

func TestRecordRepositoryPGUpsert(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	exec := &stubExecutor{row: stubRow{row: &recordRow{
		id: "2f1b5a4e-8f0e-4a39-9d2f-0c9c1f1f7a10", kind: "ad-content", name: "default",
		payload: []byte(`{"raceName":"Spring Classic"}`), createdAt: now.Add(-time.Hour), updatedAt: now,
	}}}
	r := NewRecordRepository(exec)

	rec := &domain.Record{Kind: domain.KindAdContent, Name: "default", Payload: []byte(`{"raceName":"Spring Classic"}`), CreatedAt: now, UpdatedAt: now}
	stored, err := r.Upsert(context.Background(), rec)
	if err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Upsert() did not assign an id to the input record")
	}
	call := exec.calls[0]
	if call.query != sqlinline.QUpsertSlotRecord || len(call.args) != 6 {
		t.Fatalf("Upsert() call = %q with %d args", call.query, len(call.args))
	}
	if string(call.args[3].([]byte)) != `{"raceName":"Spring Classic"}` {
		t.Fatalf("Upsert() payload arg = %v", call.args[3])
	}
	if stored.Kind != domain.KindAdContent || !stored.CreatedAt.Equal(now.Add(-time.Hour)) {
		t.Fatalf("Upsert() stored = %+v", stored)
	}
}

func TestRecordRepositoryPGCreateIfAbsentInserts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.Record{Kind: domain.KindTextConfig, Name: "default", Payload: []byte(`{}`), CreatedAt: now, UpdatedAt: now}
	exec := &stubExecutor{row: stubRow{row: &recordRow{
		id: "6a0f0d0e-1c1d-4a57-8a43-3f1e9b5d2c11", kind: "text-config", name: "default",
		payload: []byte(`{}`), createdAt: now, updatedAt: now,
	}}}
	r := NewRecordRepository(exec)

	stored, err := r.CreateIfAbsent(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateIfAbsent() error: %v", err)
	}
	if len(exec.calls) != 1 || exec.calls[0].query != sqlinline.QInsertSlotRecordIfAbsent {
		t.Fatalf("CreateIfAbsent() calls = %+v", exec.calls)
	}
	if exec.calls[0].args[0] != rec.ID || rec.ID == "" {
		t.Fatalf("CreateIfAbsent() id arg = %v, record id %q", exec.calls[0].args[0], rec.ID)
	}
	if stored.Name != "default" || stored.Kind != domain.KindTextConfig {
		t.Fatalf("CreateIfAbsent() stored = %+v", stored)
	}
}

func TestRecordRepositoryPGCreateIfAbsentReturnsExistingOnConflict(t *testing.T) {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	existing := &recordRow{
		id: "0b7e4a7c-2f43-4d38-9a51-6c1b8f0e9d22", kind: "ad-content", name: "default",
		payload: []byte(`{"raceName":"Stored"}`), createdAt: created, updatedAt: created,
	}
	exec := &stubExecutor{row: stubRow{row: existing}}
	r := NewRecordRepository(exec)

	rec := &domain.Record{Kind: domain.KindAdContent, Name: "default", Payload: []byte(`{"raceName":"Seed"}`), CreatedAt: time.Now(), UpdatedAt: time.Now()}
	stored, err := r.CreateIfAbsent(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateIfAbsent() error: %v", err)
	}
	if stored.ID != existing.id || string(stored.Payload) != `{"raceName":"Stored"}` || !stored.CreatedAt.Equal(created) {
		t.Fatalf("CreateIfAbsent() = %+v, want the existing row", stored)
	}
}

func TestRecordRepositoryPGCreateIfAbsentReadsBackEmptyInsert(t *testing.T) {
	now := time.Now()
	exec := &stubExecutor{
		queue: []stubRow{{}},
		row: stubRow{row: &recordRow{
			id: "9d3c1e55-7b1a-4f6e-8c2d-1a2b3c4d5e6f", kind: "ad-content", name: "weekend",
			payload: []byte(`{}`), createdAt: now, updatedAt: now,
		}},
	}
	r := NewRecordRepository(exec)

	stored, err := r.CreateIfAbsent(context.Background(), &domain.Record{Kind: domain.KindAdContent, Name: "weekend"})
	if err != nil {
		t.Fatalf("CreateIfAbsent() = %v, want the concurrently inserted row", err)
	}
	if stored.Name != "weekend" {
		t.Fatalf("CreateIfAbsent() stored = %+v", stored)
	}
	if len(exec.calls) != 2 || exec.calls[1].query != sqlinline.QSelectSlotRecord {
		t.Fatalf("CreateIfAbsent() calls = %+v, want insert then select", exec.calls)
	}
}

func TestRecordRepositoryPGBackendErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewRecordRepository(&stubExecutor{row: stubRow{err: boom}})
	_, err := r.CreateIfAbsent(context.Background(), &domain.Record{Kind: domain.KindAdContent, Name: "default"})
	if !errors.Is(err, boom) || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("CreateIfAbsent() = %v, want wrapped backend error", err)
	}
}

func TestRecordRepositoryPGList(t *testing.T) {
	now := time.Now()
	exec := &stubExecutor{rows: []recordRow{
		{id: "a", kind: "text-config", name: "default", payload: []byte(`{}`), createdAt: now, updatedAt: now},
		{id: "b", kind: "text-config", name: "weekend", payload: []byte(`{}`), createdAt: now, updatedAt: now},
	}}
	r := NewRecordRepository(exec)
	list, err := r.List(context.Background(), domain.KindTextConfig)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 || list[1].Name != "weekend" {
		t.Fatalf("List() = %+v", list)
	}
}

func TestRecordRepositoryPGListEmptyIsNotNil(t *testing.T) {
	r := NewRecordRepository(&stubExecutor{})
	list, err := r.List(context.Background(), domain.KindAdContent)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if list == nil {
		t.Fatal("List() returned nil slice, want empty")
	}
}
