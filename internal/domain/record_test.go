package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestAdContentValidate(t *testing.T) {
	if err := DefaultAdContent().Validate(); err != nil {
		t.Fatalf("DefaultAdContent().Validate() = %v", err)
	}
	c := AdContent{RaceName: "Spring Classic", PrizeAmount: "  ", Day: "FRIDAY", NumberOfRaces: "6"}
	err := c.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want *ValidationError", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0].Field != "prizeAmount" || verr.Fields[1].Field != "projectedPool" {
		t.Fatalf("Validate() fields = %+v", verr.Fields)
	}
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		raw     string
		wantErr bool
	}{
		{"valid content", KindAdContent, `{"raceName":"Spring Classic","prizeAmount":"10,000","projectedPool":"20,000","day":"FRIDAY","numberOfRaces":"6"}`, false},
		{"unknown content key", KindAdContent, `{"raceName":"a","prizeAmount":"b","projectedPool":"c","day":"d","numberOfRaces":"e","extra":"x"}`, true},
		{"missing content key", KindAdContent, `{"raceName":"a","prizeAmount":"b","projectedPool":"c","day":"d"}`, true},
		{"number where string expected", KindAdContent, `{"raceName":"a","prizeAmount":10,"projectedPool":"c","day":"d","numberOfRaces":"e"}`, true},
		{"empty body", KindTextConfig, ``, true},
		{"extra layout key", KindTextConfig, `{"subtitle":{}}`, true},
		{"trailing data", KindAdContent, `{"raceName":"a","prizeAmount":"b","projectedPool":"c","day":"d","numberOfRaces":"e"} {}`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePayload(tc.kind, []byte(tc.raw))
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("DecodePayload() = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodePayload() unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeDefaultLayoutRoundTrip(t *testing.T) {
	p, err := DecodePayload(KindTextConfig, MustMarshal(DefaultTextLayout()))
	if err != nil {
		t.Fatalf("DecodePayload(default layout) error: %v", err)
	}
	l, ok := p.(TextLayoutConfig)
	if !ok {
		t.Fatalf("DecodePayload() type = %T", p)
	}
	if l.PrizeAmount.Center == nil || *l.PrizeAmount.Center != 960 {
		t.Fatalf("prizeAmount.center = %v, want 960", l.PrizeAmount.Center)
	}
}

func TestDecodeLayoutRequiresBottom(t *testing.T) {
	var doc map[string]map[string]any
	if err := json.Unmarshal(MustMarshal(DefaultTextLayout()), &doc); err != nil {
		t.Fatalf("unmarshal default layout: %v", err)
	}
	delete(doc["raceName"], "bottom")
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal layout: %v", err)
	}

	_, err = DecodePayload(KindTextConfig, raw)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("DecodePayload(no bottom) = %v, want *ValidationError", err)
	}
	found := false
	for _, f := range verr.Fields {
		if f.Field == "raceName.bottom" {
			found = true
		}
	}
	if !found {
		t.Fatalf("validation fields = %+v, want raceName.bottom", verr.Fields)
	}
}

func TestNormalizeSlotName(t *testing.T) {
	if got, err := NormalizeSlotName("  default "); err != nil || got != "default" {
		t.Fatalf("NormalizeSlotName() = %q, %v", got, err)
	}
	if _, err := NormalizeSlotName("   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("NormalizeSlotName(blank) = %v, want ErrValidation", err)
	}
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := NormalizeSlotName(string(long)); !errors.Is(err, ErrValidation) {
		t.Fatalf("NormalizeSlotName(long) = %v, want ErrValidation", err)
	}
}
