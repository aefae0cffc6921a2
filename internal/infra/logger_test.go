package infra

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo("production", &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("slot", "default").Msg("seeded")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not a single JSON line: %q (%v)", buf.String(), err)
	}
	if entry["message"] != "seeded" || entry["slot"] != "default" || entry["service"] != "ad-image-gen" {
		t.Fatalf("unexpected log entry: %#v", entry)
	}
}
