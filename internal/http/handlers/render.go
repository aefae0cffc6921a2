package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/mossjr/tab-image-gen-poc/internal/compositor"
	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/storage"
	"github.com/mossjr/tab-image-gen-poc/pkg/zip"
)

type renderRequest struct {
	Content json.RawMessage `json:"content"`
	Layout  json.RawMessage `json:"layout"`
}

// RenderSlot streams the composite of a stored slot as PNG.
func (a *App) RenderSlot(w http.ResponseWriter, r *http.Request) {
	content, layout, err := a.loadSlot(r, slotParam(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.writePNG(w, r, content, layout)
}

// RenderPreview renders an unsaved working copy without touching storage.
func (a *App) RenderPreview(w http.ResponseWriter, r *http.Request) {
	body, ok := a.readBody(w, r)
	if !ok {
		return
	}
	var req renderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		a.fail(w, r, domain.NewValidationError("body", err.Error()))
		return
	}
	c, err := domain.DecodePayload(domain.KindAdContent, req.Content)
	if err != nil {
		a.fail(w, r, prefixFields("content", err))
		return
	}
	l, err := domain.DecodePayload(domain.KindTextConfig, req.Layout)
	if err != nil {
		a.fail(w, r, prefixFields("layout", err))
		return
	}
	a.writePNG(w, r, c.(domain.AdContent), l.(domain.TextLayoutConfig))
}

// Export renders a slot as a PNG attachment and archives it when an export
// store is configured.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	slot := slotParam(r)
	content, layout, err := a.loadSlot(r, slot)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	png, err := a.encode(content, layout)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	filename := compositor.ExportFilename(content.RaceName, a.now())
	a.archive(r, slot, filename, png)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", attachment(filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// ExportBundle zips the exported PNG with the two records it was rendered from.
func (a *App) ExportBundle(w http.ResponseWriter, r *http.Request) {
	slot := slotParam(r)
	content, layout, err := a.loadSlot(r, slot)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	png, err := a.encode(content, layout)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	now := a.now()
	filename := compositor.ExportFilename(content.RaceName, now)
	archive, err := zip.ArchiveAssets([]zip.Asset{
		{Filename: filename, MIME: "image/png", Data: png},
		{Filename: "ad-content.json", MIME: "application/json", Data: indent(content)},
		{Filename: "text-config.json", MIME: "application/json", Data: indent(layout)},
	}, now)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	zipName := strings.TrimSuffix(filename, ".png") + ".zip"
	a.archive(r, slot, zipName, archive)

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", attachment(zipName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) loadSlot(r *http.Request, slot string) (domain.AdContent, domain.TextLayoutConfig, error) {
	content, err := a.Store.AdContent(r.Context(), slot)
	if err != nil {
		return domain.AdContent{}, domain.TextLayoutConfig{}, err
	}
	layout, err := a.Store.TextLayout(r.Context(), slot)
	if err != nil {
		return domain.AdContent{}, domain.TextLayoutConfig{}, err
	}
	return content, layout, nil
}

func (a *App) encode(content domain.AdContent, layout domain.TextLayoutConfig) ([]byte, error) {
	img, err := a.Compositor.Render(a.background(), content, layout)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	var buf bytes.Buffer
	if err := compositor.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) writePNG(w http.ResponseWriter, r *http.Request, content domain.AdContent, layout domain.TextLayoutConfig) {
	png, err := a.encode(content, layout)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (a *App) background() image.Image {
	if a.Background != nil {
		return a.Background
	}
	return a.Compositor.Placeholder()
}

// archive failures are logged; the client still gets its download.
func (a *App) archive(r *http.Request, slot, filename string, data []byte) {
	if a.Exports == nil {
		return
	}
	key, err := a.Exports.Write(r.Context(), storage.ExportKey(slot, filename), data)
	if err != nil {
		a.log(r).Warn().Err(err).Str("slot", slot).Msg("export archive failed")
		return
	}
	a.log(r).Info().Str("slot", slot).Str("key", key).Msg("export archived")
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

func indent(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}

// prefixFields scopes field names of a nested payload, e.g. "layout.day.color".
func prefixFields(prefix string, err error) error {
	verr, ok := err.(*domain.ValidationError)
	if !ok {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, len(verr.Fields))}
	for i, f := range verr.Fields {
		out.Fields[i] = domain.FieldError{Field: prefix + "." + f.Field, Message: f.Message}
	}
	return out
}
