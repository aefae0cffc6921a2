package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

var (
	placeholderFill   = color.RGBA{0x0b, 0x6e, 0x3f, 0xff}
	gradientTop       = color.NRGBA{255, 255, 255, 26}
	gradientBottom    = color.NRGBA{0, 0, 0, 64}
	watermarkColor    = color.NRGBA{255, 255, 255, 20}
	watermarkText     = "TEMPLATE"
	watermarkFontName = "Placeholder-Black"
)

// Placeholder synthesizes the stand-in background used when the configured
// image cannot be loaded.
func (c *Compositor) Placeholder() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	draw.Draw(img, img.Bounds(), &image.Uniform{placeholderFill}, image.Point{}, draw.Src)

	w, h := float64(c.width), float64(c.height)
	dc := gg.NewContextForRGBA(img)

	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, gradientTop)
	grad.AddColorStop(1, gradientBottom)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	face, err := c.fonts.Face(ResolveFont(watermarkFontName, h/5))
	if err != nil {
		c.logger.Warn().Err(err).Msg("placeholder watermark skipped")
		return img
	}
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(watermarkColor)
	dc.DrawStringAnchored(watermarkText, w/2, h/2, 0.5, 0.5)
	return img
}
