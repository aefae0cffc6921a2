package domain

import "strings"

// AdContent holds the operator-entered text of one ad. Values are stored
// verbatim; currency prefixes are applied only when rendering.
type AdContent struct {
	RaceName      string `json:"raceName"`
	PrizeAmount   string `json:"prizeAmount"`
	ProjectedPool string `json:"projectedPool"`
	Day           string `json:"day"`
	NumberOfRaces string `json:"numberOfRaces"`
}

// Validate ensures every field is present and non-blank.
func (c AdContent) Validate() error {
	verr := &ValidationError{}
	for _, f := range []struct {
		key   FieldKey
		value string
	}{
		{FieldRaceName, c.RaceName},
		{FieldPrizeAmount, c.PrizeAmount},
		{FieldProjectedPool, c.ProjectedPool},
		{FieldDay, c.Day},
		{FieldNumberOfRaces, c.NumberOfRaces},
	} {
		if strings.TrimSpace(f.value) == "" {
			verr.add(string(f.key), "is required")
		}
	}
	return verr.orNil()
}

// Value returns the content string for a field key.
func (c AdContent) Value(key FieldKey) string {
	switch key {
	case FieldRaceName:
		return c.RaceName
	case FieldPrizeAmount:
		return c.PrizeAmount
	case FieldProjectedPool:
		return c.ProjectedPool
	case FieldDay:
		return c.Day
	case FieldNumberOfRaces:
		return c.NumberOfRaces
	}
	return ""
}
