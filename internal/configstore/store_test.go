package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mossjr/tab-image-gen-poc/internal/adapter/repo"
	"github.com/mossjr/tab-image-gen-poc/internal/domain"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(r domain.RecordRepository) *Store {
	return New(r, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
}

// failingRepo returns err from every call.
type failingRepo struct{ err error }

func (f failingRepo) Get(context.Context, domain.Kind, string) (*domain.Record, error) {
	return nil, f.err
}
func (f failingRepo) GetByID(context.Context, domain.Kind, string) (*domain.Record, error) {
	return nil, f.err
}
func (f failingRepo) CreateIfAbsent(context.Context, *domain.Record) (*domain.Record, error) {
	return nil, f.err
}
func (f failingRepo) Upsert(context.Context, *domain.Record) (*domain.Record, error) {
	return nil, f.err
}
func (f failingRepo) List(context.Context, domain.Kind) ([]domain.Record, error) {
	return nil, f.err
}

func TestGetSeedsDefaultLayout(t *testing.T) {
	ctx := context.Background()
	mem := repo.NewMemoryRecordRepository()
	s := newTestStore(mem)

	layout, err := s.TextLayout(ctx, "never-saved")
	if err != nil {
		t.Fatalf("TextLayout() error = %v", err)
	}
	rn := layout.RaceName
	if rn.BottomY() != 200 || rn.Left == nil || *rn.Left != 100 || rn.Alignment != domain.AlignLeft ||
		rn.FontFamily != "Montserrat-BoldItalic" || rn.FontSize != 60 || rn.Color != "#1fd87b" {
		t.Fatalf("raceName default = %+v", rn)
	}

	stored, err := mem.Get(ctx, domain.KindTextConfig, "never-saved")
	if err != nil {
		t.Fatalf("default was not persisted: %v", err)
	}
	if !stored.CreatedAt.Equal(fixedNow) {
		t.Fatalf("CreatedAt = %v, want %v", stored.CreatedAt, fixedNow)
	}
}

func TestGetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(repo.NewMemoryRecordRepository())

	first, err := s.Get(ctx, domain.KindAdContent, "default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	second, err := s.Get(ctx, domain.KindAdContent, "default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if first.ID != second.ID || string(first.Payload) != string(second.Payload) {
		t.Fatalf("second Get() = %+v, want %+v", second, first)
	}
}

func TestConcurrentSeedConverges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(repo.NewMemoryRecordRepository())

	const n = 16
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec, err := s.Get(ctx, domain.KindTextConfig, "race-day")
			if err != nil {
				t.Errorf("Get() error = %v", err)
				return
			}
			ids[i] = rec.ID
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("ids diverged: %q vs %q", ids[i], ids[0])
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(repo.NewMemoryRecordRepository())

	in := domain.AdContent{
		RaceName:      "Spring Classic",
		PrizeAmount:   "75,000",
		ProjectedPool: "120,000",
		Day:           "SUNDAY",
		NumberOfRaces: "10",
	}
	if _, err := s.SaveAdContent(ctx, "default", in); err != nil {
		t.Fatalf("SaveAdContent() error = %v", err)
	}
	got, err := s.AdContent(ctx, "default")
	if err != nil {
		t.Fatalf("AdContent() error = %v", err)
	}
	if got != in {
		t.Fatalf("AdContent() = %+v, want %+v", got, in)
	}
}

func TestSaveLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(repo.NewMemoryRecordRepository())

	a := domain.DefaultAdContent()
	a.RaceName = "A"
	b := domain.DefaultAdContent()
	b.RaceName = "B"

	first, err := s.SaveAdContent(ctx, "slot", a)
	if err != nil {
		t.Fatalf("SaveAdContent(a) error = %v", err)
	}
	second, err := s.SaveAdContent(ctx, "slot", b)
	if err != nil {
		t.Fatalf("SaveAdContent(b) error = %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("upsert changed id: %q -> %q", first.ID, second.ID)
	}
	got, _ := s.AdContent(ctx, "slot")
	if got.RaceName != "B" {
		t.Fatalf("RaceName = %q, want B", got.RaceName)
	}
}

func TestSaveRejectsInvalidPayload(t *testing.T) {
	ctx := context.Background()
	mem := repo.NewMemoryRecordRepository()
	s := newTestStore(mem)

	before, err := s.Get(ctx, domain.KindTextConfig, "default")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	bad := domain.DefaultTextLayout()
	bad.Day.FontSize = 5
	raw, _ := json.Marshal(bad)

	_, err = s.Save(ctx, domain.KindTextConfig, "default", raw)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Save() error = %v, want ErrValidation", err)
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "day.fontSize" {
		t.Fatalf("validation fields = %+v", verr)
	}

	after, _ := mem.Get(ctx, domain.KindTextConfig, "default")
	if string(after.Payload) != string(before.Payload) {
		t.Fatalf("stored payload changed after rejected save")
	}
}

func TestSaveRejectsBlankName(t *testing.T) {
	s := newTestStore(repo.NewMemoryRecordRepository())
	_, err := s.Save(context.Background(), domain.KindAdContent, "   ", []byte(`{}`))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("Save() error = %v, want ErrValidation", err)
	}
}

func TestBackendErrorsAreWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	s := newTestStore(failingRepo{err: cause})
	ctx := context.Background()

	if _, err := s.Get(ctx, domain.KindAdContent, "default"); !errors.Is(err, domain.ErrBackend) || !errors.Is(err, cause) {
		t.Fatalf("Get() error = %v, want ErrBackend wrapping cause", err)
	}
	if _, err := s.SaveAdContent(ctx, "default", domain.DefaultAdContent()); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("SaveAdContent() error = %v, want ErrBackend", err)
	}
	if _, err := s.List(ctx, domain.KindTextConfig); !errors.Is(err, domain.ErrBackend) {
		t.Fatalf("List() error = %v, want ErrBackend", err)
	}
}

func TestGetByIDDoesNotSeed(t *testing.T) {
	s := newTestStore(repo.NewMemoryRecordRepository())
	_, err := s.GetByID(context.Background(), domain.KindAdContent, "6f0c1f6e-8c1c-4f4a-9d55-3b6f0f0d2a11")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
	list, err := s.List(context.Background(), domain.KindAdContent)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("List() len = %d, want 0", len(list))
	}
}
