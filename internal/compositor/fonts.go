package compositor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight is a CSS-style numeric font weight.
type Weight int

const (
	WeightNormal Weight = 400
	WeightBold   Weight = 700
	WeightBlack  Weight = 900
)

// FontDescriptor is the concrete face a fontFamily string resolves to.
type FontDescriptor struct {
	Family string
	Weight Weight
	Italic bool
	Size   float64
}

var variantTable = map[string]struct {
	weight Weight
	italic bool
}{
	"Regular":    {WeightNormal, false},
	"Bold":       {WeightBold, false},
	"BoldItalic": {WeightBold, true},
	"Black":      {WeightBlack, false},
}

// ResolveFont maps a family like "Montserrat-BoldItalic" or a bare variant
// like "Bold" to a descriptor. The whole name is tried first, then the suffix
// after the last '-'; unknown variants are normal/normal.
func ResolveFont(family string, size float64) FontDescriptor {
	d := FontDescriptor{Family: family, Weight: WeightNormal, Size: size}
	variant := family
	if _, ok := variantTable[variant]; !ok {
		if i := strings.LastIndex(family, "-"); i >= 0 {
			variant = family[i+1:]
		}
	}
	if v, ok := variantTable[variant]; ok {
		d.Weight = v.weight
		d.Italic = v.italic
	}
	return d
}

// FontManager loads fonts from an optional directory and falls back to the
// embedded Go fonts. Parsed fonts are cached; faces are not.
type FontManager struct {
	dir    string
	logger zerolog.Logger

	mu    sync.Mutex
	cache map[string]*opentype.Font
}

// NewFontManager returns a manager reading <dir>/<family>.ttf|.otf. An empty
// dir uses only the embedded fonts.
func NewFontManager(dir string, logger zerolog.Logger) *FontManager {
	return &FontManager{
		dir:    dir,
		logger: logger.With().Str("component", "fonts").Logger(),
		cache:  make(map[string]*opentype.Font),
	}
}

// Face returns a face for d. A family missing from the font directory
// silently degrades to the matching Go font variant.
func (fm *FontManager) Face(d FontDescriptor) (font.Face, error) {
	f, err := fm.font(d)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    d.Size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}

func (fm *FontManager) font(d FontDescriptor) (*opentype.Font, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if fm.dir != "" && d.Family != "" {
		if f, ok := fm.cache["dir:"+d.Family]; ok {
			return f, nil
		}
		if f := fm.loadFromDir(d.Family); f != nil {
			fm.cache["dir:"+d.Family] = f
			return f, nil
		}
	}

	key, data := embeddedVariant(d)
	if f, ok := fm.cache[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", key, err)
	}
	fm.cache[key] = f
	return f, nil
}

func (fm *FontManager) loadFromDir(family string) *opentype.Font {
	// family comes from stored layouts; keep it inside dir.
	name := filepath.Base(family)
	for _, ext := range []string{".ttf", ".otf"} {
		path := filepath.Join(fm.dir, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			fm.logger.Warn().Err(err).Str("path", path).Msg("could not parse font, using embedded fallback")
			return nil
		}
		return f
	}
	fm.logger.Debug().Str("family", family).Msg("font not in font dir, using embedded fallback")
	return nil
}

func embeddedVariant(d FontDescriptor) (string, []byte) {
	bold := d.Weight >= WeightBold
	switch {
	case bold && d.Italic:
		return "go:bolditalic", gobolditalic.TTF
	case bold:
		return "go:bold", gobold.TTF
	case d.Italic:
		return "go:italic", goitalic.TTF
	default:
		return "go:regular", goregular.TTF
	}
}
