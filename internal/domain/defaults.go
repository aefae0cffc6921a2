package domain

import "fmt"

// DefaultAdContent is seeded into a slot the first time it is read.
func DefaultAdContent() AdContent {
	return AdContent{
		RaceName:      "Race Name",
		PrizeAmount:   "50,000",
		ProjectedPool: "100,000",
		Day:           "SATURDAY",
		NumberOfRaces: "8",
	}
}

// DefaultTextLayout is seeded into a slot the first time it is read.
func DefaultTextLayout() TextLayoutConfig {
	return TextLayoutConfig{
		RaceName: TextStyleRecord{
			Bottom:     Float(200),
			Left:       Float(100),
			Alignment:  AlignLeft,
			FontFamily: "Montserrat-BoldItalic",
			FontSize:   60,
			Color:      "#1fd87b",
		},
		PrizeAmount: TextStyleRecord{
			Bottom:     Float(520),
			Center:     Float(960),
			Alignment:  AlignCenter,
			FontFamily: "Montserrat-Black",
			FontSize:   160,
			Color:      "#ffffff",
		},
		ProjectedPool: TextStyleRecord{
			Bottom:     Float(700),
			Center:     Float(960),
			Alignment:  AlignCenter,
			FontFamily: "Montserrat-Bold",
			FontSize:   90,
			Color:      "#ffffff",
		},
		Day: TextStyleRecord{
			Bottom:     Float(960),
			Left:       Float(100),
			Alignment:  AlignLeft,
			FontFamily: "Montserrat-Bold",
			FontSize:   64,
			Color:      "#ffffff",
		},
		NumberOfRaces: TextStyleRecord{
			Bottom:     Float(960),
			Left:       Float(1400),
			Alignment:  AlignLeft,
			FontFamily: "Montserrat-Regular",
			FontSize:   64,
			Color:      "#1fd87b",
		},
	}
}

// DefaultPayload returns the hardcoded default body for kind.
func DefaultPayload(kind Kind) (Payload, error) {
	switch kind {
	case KindAdContent:
		return DefaultAdContent(), nil
	case KindTextConfig:
		return DefaultTextLayout(), nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}
