package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKey names one of the five ad fields.
type FieldKey string

const (
	FieldRaceName      FieldKey = "raceName"
	FieldPrizeAmount   FieldKey = "prizeAmount"
	FieldProjectedPool FieldKey = "projectedPool"
	FieldDay           FieldKey = "day"
	FieldNumberOfRaces FieldKey = "numberOfRaces"
)

// FieldKeys lists the ad fields in drawing order.
var FieldKeys = []FieldKey{
	FieldRaceName,
	FieldPrizeAmount,
	FieldProjectedPool,
	FieldDay,
	FieldNumberOfRaces,
}

// Alignment selects which horizontal anchor of a TextStyleRecord is used.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

const (
	MinFontSize = 8
	MaxFontSize = 300
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TextStyleRecord positions and styles one field on the canvas. Bottom is the
// y coordinate of the text's bottom edge. Only the anchor named by Alignment
// is consulted; the other one may be present and is ignored.
type TextStyleRecord struct {
	Bottom     *float64  `json:"bottom"`
	Left       *float64  `json:"left,omitempty"`
	Center     *float64  `json:"center,omitempty"`
	Alignment  Alignment `json:"alignment"`
	FontFamily string    `json:"fontFamily"`
	FontSize   float64   `json:"fontSize"`
	Color      string    `json:"color"`
}

// BottomY returns the y coordinate of the text's bottom edge.
func (s TextStyleRecord) BottomY() float64 {
	if s.Bottom == nil {
		return 0
	}
	return *s.Bottom
}

// AnchorX returns the x coordinate governing horizontal placement.
func (s TextStyleRecord) AnchorX() float64 {
	var p *float64
	if s.Alignment == AlignCenter {
		p = s.Center
	} else {
		p = s.Left
	}
	if p == nil {
		return 0
	}
	return *p
}

func (s TextStyleRecord) validate(prefix string, verr *ValidationError) {
	if s.Bottom == nil {
		verr.add(prefix+".bottom", "is required")
	} else if *s.Bottom < 0 {
		verr.add(prefix+".bottom", "must be >= 0")
	}
	switch s.Alignment {
	case AlignLeft:
		if s.Left == nil {
			verr.add(prefix+".left", "is required when alignment is left")
		} else if *s.Left < 0 {
			verr.add(prefix+".left", "must be >= 0")
		}
	case AlignCenter:
		if s.Center == nil {
			verr.add(prefix+".center", "is required when alignment is center")
		} else if *s.Center < 0 {
			verr.add(prefix+".center", "must be >= 0")
		}
	default:
		verr.add(prefix+".alignment", "must be one of left, center")
	}
	if strings.TrimSpace(s.FontFamily) == "" {
		verr.add(prefix+".fontFamily", "is required")
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		verr.add(prefix+".fontSize", fmt.Sprintf("must be between %d and %d", MinFontSize, MaxFontSize))
	}
	if !hexColorPattern.MatchString(s.Color) {
		verr.add(prefix+".color", "must match #RRGGBB")
	}
}

// TextLayoutConfig carries exactly one style record per ad field.
type TextLayoutConfig struct {
	RaceName      TextStyleRecord `json:"raceName"`
	PrizeAmount   TextStyleRecord `json:"prizeAmount"`
	ProjectedPool TextStyleRecord `json:"projectedPool"`
	Day           TextStyleRecord `json:"day"`
	NumberOfRaces TextStyleRecord `json:"numberOfRaces"`
}

// Style returns the record for a field key.
func (l TextLayoutConfig) Style(key FieldKey) TextStyleRecord {
	switch key {
	case FieldRaceName:
		return l.RaceName
	case FieldPrizeAmount:
		return l.PrizeAmount
	case FieldProjectedPool:
		return l.ProjectedPool
	case FieldDay:
		return l.Day
	case FieldNumberOfRaces:
		return l.NumberOfRaces
	}
	return TextStyleRecord{}
}

// Validate checks all five records and reports every failing field.
func (l TextLayoutConfig) Validate() error {
	verr := &ValidationError{}
	for _, key := range FieldKeys {
		l.Style(key).validate(string(key), verr)
	}
	return verr.orNil()
}

// Float returns a pointer to v, for building anchors in literals.
func Float(v float64) *float64 {
	return &v
}
