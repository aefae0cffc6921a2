// Package handlers serves the ad config, render and export endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mossjr/tab-image-gen-poc/internal/compositor"
	"github.com/mossjr/tab-image-gen-poc/internal/configstore"
	"github.com/mossjr/tab-image-gen-poc/internal/domain"
	"github.com/mossjr/tab-image-gen-poc/internal/storage"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

type App struct {
	Store      *configstore.Store
	Compositor *compositor.Compositor
	Background image.Image
	// Exports archives every served export when set.
	Exports *storage.FileStore
	Logger  zerolog.Logger
	Now     func() time.Time
}

func NewApp(store *configstore.Store, comp *compositor.Compositor, background image.Image, exports *storage.FileStore, logger zerolog.Logger) *App {
	return &App{
		Store:      store,
		Compositor: comp,
		Background: background,
		Exports:    exports,
		Logger:     logger,
		Now:        time.Now,
	}
}

type errorBody struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// rawJSON writes an already encoded document.
func (a *App) rawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorBody{"error": {Code: errCode, Message: message}})
}

// fail maps a store or render error onto a response.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.json(w, http.StatusBadRequest, map[string]errorBody{"error": {
			Code:    "validation_failed",
			Message: "payload failed validation",
			Fields:  verr.Fields,
		}})
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "record not found")
	default:
		a.log(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// log prefers the request-scoped logger installed by the access log middleware.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

// readBody reads at most MaxBodyBytes, reporting false after writing an error response.
func (a *App) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds 1 MiB")
			return nil, false
		}
		a.error(w, http.StatusBadRequest, "bad_request", "could not read request body")
		return nil, false
	}
	return body, true
}

// slotParam returns the decoded {name} segment. chi matches against RawPath
// when the request has one, so only then is the param still escaped.
func slotParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
