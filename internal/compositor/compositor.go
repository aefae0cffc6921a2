// Package compositor draws the ad text fields over a background bitmap.
// Each call starts from a fresh canvas; nothing is shared between renders
// apart from the parsed font cache.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
)

// Field is one string to draw with its style.
type Field struct {
	Key   domain.FieldKey
	Text  string
	Style domain.TextStyleRecord
}

// Compositor renders ads at a fixed canvas size.
type Compositor struct {
	fonts  *FontManager
	width  int
	height int
	logger zerolog.Logger
}

// New returns a Compositor for a width x height canvas.
func New(fonts *FontManager, width, height int, logger zerolog.Logger) *Compositor {
	return &Compositor{
		fonts:  fonts,
		width:  width,
		height: height,
		logger: logger.With().Str("component", "compositor").Logger(),
	}
}

// Size reports the canvas dimensions.
func (c *Compositor) Size() (int, int) { return c.width, c.height }

// LoadBackground decodes the PNG or JPEG at path. Any failure is logged and
// replaced by the placeholder; it never returns nil.
func (c *Compositor) LoadBackground(path string) image.Image {
	if path == "" {
		c.logger.Warn().Msg("no background configured, using placeholder")
		return c.Placeholder()
	}
	f, err := os.Open(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("could not open background, using placeholder")
		return c.Placeholder()
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("could not decode background, using placeholder")
		return c.Placeholder()
	}
	return img
}

// Render composes the five ad fields of content styled by layout.
func (c *Compositor) Render(background image.Image, content domain.AdContent, layout domain.TextLayoutConfig) (*image.RGBA, error) {
	return c.Compose(background, Fields(content, layout))
}

// Compose draws fields in order onto a fresh copy of background scaled to the
// canvas. A nil background is replaced by the placeholder.
func (c *Compositor) Compose(background image.Image, fields []Field) (*image.RGBA, error) {
	if background == nil {
		background = c.Placeholder()
	}

	dst := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	sb := background.Bounds()
	if sb.Dx() == c.width && sb.Dy() == c.height {
		draw.Draw(dst, dst.Bounds(), background, sb.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), background, sb, draw.Src, nil)
	}

	dc := gg.NewContextForRGBA(dst)
	for _, f := range fields {
		if err := c.drawField(dc, f); err != nil {
			return nil, fmt.Errorf("draw %s: %w", f.Key, err)
		}
	}
	return dst, nil
}

func (c *Compositor) drawField(dc *gg.Context, f Field) error {
	desc := ResolveFont(f.Style.FontFamily, f.Style.FontSize)
	face, err := c.fonts.Face(desc)
	if err != nil {
		return err
	}
	defer face.Close()

	dc.SetFontFace(face)
	dc.SetColor(parseHexColor(f.Style.Color))

	ax := 0.0
	if f.Style.Alignment == domain.AlignCenter {
		ax = 0.5
	}
	// Bottom of the em box sits on Bottom, so the baseline is lifted by the descent.
	descent := float64(face.Metrics().Descent) / 64
	dc.DrawStringAnchored(f.Text, f.Style.AnchorX(), f.Style.BottomY()-descent, ax, 0)
	return nil
}

// parseHexColor converts "#rrggbb" to an opaque color, white when malformed.
func parseHexColor(hex string) color.RGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.RGBA{255, 255, 255, 255}
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}
