package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes the two record families kept by the config store.
type Kind string

const (
	KindAdContent  Kind = "ad-content"
	KindTextConfig Kind = "text-config"
)

// DefaultSlot is the conventional slot name used by the editor.
const DefaultSlot = "default"

const maxSlotNameLength = 100

// Valid reports whether k is a known record kind.
func (k Kind) Valid() bool {
	return k == KindAdContent || k == KindTextConfig
}

// Record is the persisted wrapper around one AdContent or TextLayoutConfig.
type Record struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"-"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Payload is implemented by the record bodies.
type Payload interface {
	Validate() error
}

// NormalizeSlotName trims name and rejects empty or oversized slot keys.
func NormalizeSlotName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("name", "is required")
	}
	if len(name) > maxSlotNameLength {
		return "", NewValidationError("name", fmt.Sprintf("must be at most %d characters", maxSlotNameLength))
	}
	return name, nil
}

// DecodePayload strictly decodes raw into the body type of kind and validates it.
// Unknown keys are rejected so the five-field shape cannot drift.
func DecodePayload(kind Kind, raw []byte) (Payload, error) {
	var p Payload
	switch kind {
	case KindAdContent:
		var c AdContent
		if err := strictUnmarshal(raw, &c); err != nil {
			return nil, err
		}
		p = c
	case KindTextConfig:
		var l TextLayoutConfig
		if err := strictUnmarshal(raw, &l); err != nil {
			return nil, err
		}
		p = l
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func strictUnmarshal(raw []byte, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return NewValidationError("payload", "is required")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return NewValidationError("payload", err.Error())
	}
	if dec.More() {
		return NewValidationError("payload", "unexpected trailing data")
	}
	return nil
}

// MustMarshal encodes v or panics; used for values built in code.
func MustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("json marshal: %w", err))
	}
	return b
}
