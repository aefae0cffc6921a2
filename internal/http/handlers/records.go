package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
)

// GetTextConfig returns the layout of a slot, seeding the default on first read.
func (a *App) GetTextConfig(w http.ResponseWriter, r *http.Request) {
	a.getPayload(w, r, domain.KindTextConfig)
}

// SaveTextConfig validates and upserts a layout.
func (a *App) SaveTextConfig(w http.ResponseWriter, r *http.Request) {
	a.savePayload(w, r, domain.KindTextConfig)
}

func (a *App) ListTextConfigs(w http.ResponseWriter, r *http.Request) {
	a.listRecords(w, r, domain.KindTextConfig)
}

func (a *App) GetTextConfigByID(w http.ResponseWriter, r *http.Request) {
	a.getRecordByID(w, r, domain.KindTextConfig)
}

// GetAdContent returns the content of a slot, seeding the default on first read.
func (a *App) GetAdContent(w http.ResponseWriter, r *http.Request) {
	a.getPayload(w, r, domain.KindAdContent)
}

func (a *App) SaveAdContent(w http.ResponseWriter, r *http.Request) {
	a.savePayload(w, r, domain.KindAdContent)
}

func (a *App) ListAdContents(w http.ResponseWriter, r *http.Request) {
	a.listRecords(w, r, domain.KindAdContent)
}

func (a *App) GetAdContentByID(w http.ResponseWriter, r *http.Request) {
	a.getRecordByID(w, r, domain.KindAdContent)
}

func (a *App) getPayload(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	rec, err := a.Store.Get(r.Context(), kind, slotParam(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.rawJSON(w, http.StatusOK, rec.Payload)
}

func (a *App) savePayload(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	body, ok := a.readBody(w, r)
	if !ok {
		return
	}
	rec, err := a.Store.Save(r.Context(), kind, slotParam(r), body)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, rec)
}

func (a *App) listRecords(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	records, err := a.Store.List(r.Context(), kind)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, records)
}

func (a *App) getRecordByID(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	rec, err := a.Store.GetByID(r.Context(), kind, chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, rec)
}
