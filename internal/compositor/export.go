package compositor

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// ExportFilename derives "<race-name>-<unix millis>.png" from raceName.
func ExportFilename(raceName string, t time.Time) string {
	slug := strings.Join(strings.Fields(raceName), "-")
	slug = strings.NewReplacer("/", "-", "\\", "-").Replace(slug)
	if slug == "" {
		slug = "ad"
	}
	slug = cases.Lower(language.Und).String(slug)
	return fmt.Sprintf("%s-%d.png", slug, t.UnixMilli())
}
