// Package configstore keeps the ad content and text layout records for each
// slot. Reads of a slot that was never written seed and persist the
// hardcoded default, so Get may write exactly once per unseen name.
package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
)

// Store validates payloads and mediates every access to the record repository.
type Store struct {
	repo   domain.RecordRepository
	logger zerolog.Logger
	now    func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs a Store over repo.
func New(repo domain.RecordRepository, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		logger: logger.With().Str("component", "configstore").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the record stored under name, seeding the default for kind
// when the slot has never been written.
func (s *Store) Get(ctx context.Context, kind domain.Kind, name string) (*domain.Record, error) {
	name, err := checkSlot(kind, name)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx, kind, name)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, s.backendErr("get", kind, name, err)
	}

	def, err := domain.DefaultPayload(kind)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec, err = s.repo.CreateIfAbsent(ctx, &domain.Record{
		Kind:      kind,
		Name:      name,
		Payload:   domain.MustMarshal(def),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.backendErr("seed", kind, name, err)
	}
	s.logger.Info().Str("kind", string(kind)).Str("slot", name).Msg("seeded default record")
	return rec, nil
}

// Save validates raw against the schema of kind and upserts it under name.
// Invalid payloads never reach the repository.
func (s *Store) Save(ctx context.Context, kind domain.Kind, name string, raw []byte) (*domain.Record, error) {
	name, err := checkSlot(kind, name)
	if err != nil {
		return nil, err
	}
	payload, err := domain.DecodePayload(kind, raw)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, kind, name, payload)
}

func (s *Store) save(ctx context.Context, kind domain.Kind, name string, payload domain.Payload) (*domain.Record, error) {
	now := s.now()
	rec, err := s.repo.Upsert(ctx, &domain.Record{
		Kind:      kind,
		Name:      name,
		Payload:   domain.MustMarshal(payload),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, s.backendErr("save", kind, name, err)
	}
	s.logger.Debug().Str("kind", string(kind)).Str("slot", name).Msg("record saved")
	return rec, nil
}

// List returns every record of kind in backend order.
func (s *Store) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	records, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, s.backendErr("list", kind, "*", err)
	}
	return records, nil
}

// GetByID looks a record up by id without seeding; absent ids yield domain.ErrNotFound.
func (s *Store) GetByID(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	rec, err := s.repo.GetByID(ctx, kind, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.backendErr("get_by_id", kind, id, err)
	}
	return rec, nil
}

// AdContent returns the decoded content of slot name.
func (s *Store) AdContent(ctx context.Context, name string) (domain.AdContent, error) {
	var c domain.AdContent
	err := s.decode(ctx, domain.KindAdContent, name, &c)
	return c, err
}

// TextLayout returns the decoded layout of slot name.
func (s *Store) TextLayout(ctx context.Context, name string) (domain.TextLayoutConfig, error) {
	var l domain.TextLayoutConfig
	err := s.decode(ctx, domain.KindTextConfig, name, &l)
	return l, err
}

// SaveAdContent validates and stores c under name.
func (s *Store) SaveAdContent(ctx context.Context, name string, c domain.AdContent) (*domain.Record, error) {
	return s.saveTyped(ctx, domain.KindAdContent, name, c)
}

// SaveTextLayout validates and stores l under name.
func (s *Store) SaveTextLayout(ctx context.Context, name string, l domain.TextLayoutConfig) (*domain.Record, error) {
	return s.saveTyped(ctx, domain.KindTextConfig, name, l)
}

func (s *Store) saveTyped(ctx context.Context, kind domain.Kind, name string, p domain.Payload) (*domain.Record, error) {
	name, err := checkSlot(kind, name)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.save(ctx, kind, name, p)
}

func (s *Store) decode(ctx context.Context, kind domain.Kind, name string, dst any) error {
	rec, err := s.Get(ctx, kind, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rec.Payload, dst); err != nil {
		return s.backendErr("decode", kind, rec.Name, err)
	}
	return nil
}

func (s *Store) backendErr(op string, kind domain.Kind, name string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Str("kind", string(kind)).Str("slot", name).Msg("storage backend error")
	return fmt.Errorf("%w: %s %s/%s: %w", domain.ErrBackend, op, kind, name, err)
}

func checkSlot(kind domain.Kind, name string) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
	return domain.NormalizeSlotName(name)
}
