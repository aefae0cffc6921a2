package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"default/spring-1.png", "default/spring-1.png", false},
		{"/abs/x.png", "abs/x.png", false},
		{`win\style.png`, "win/style.png", false},
		{"a/../b.png", "b.png", false},
		{"../escape.png", "", true},
		{"..", "", true},
		{"  ", "", true},
	}
	for _, tt := range tests {
		got, err := sanitizeKey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("sanitizeKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("sanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileStoreWriteReadList(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	key, err := s.Write(ctx, ExportKey("default", "spring-classic-1.png"), []byte("png"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if key != "default/spring-classic-1.png" {
		t.Fatalf("Write() key = %q", key)
	}
	if _, err := s.Write(ctx, ExportKey("other", "b.png"), []byte("b")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := s.Read(ctx, key)
	if err != nil || string(data) != "png" {
		t.Fatalf("Read() = %q, %v", data, err)
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if want := []string{"default/spring-classic-1.png", "other/b.png"}; !reflect.DeepEqual(all, want) {
		t.Fatalf("List() = %v, want %v", all, want)
	}

	none, err := s.List(ctx, "missing")
	if err != nil || len(none) != 0 {
		t.Fatalf("List(missing) = %v, %v", none, err)
	}
}

func TestNilFileStore(t *testing.T) {
	var s *FileStore
	if _, err := s.Write(context.Background(), "a.png", nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("Write() error = %v, want ErrNoStore", err)
	}
}

func TestExportKeyFlattensSlot(t *testing.T) {
	if got := ExportKey("a/b", "x.png"); got != "a_b/x.png" {
		t.Fatalf("ExportKey() = %q", got)
	}
}
