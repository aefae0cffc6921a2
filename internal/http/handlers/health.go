package handlers

import (
	"fmt"
	"net/http"

	"github.com/mossjr/tab-image-gen-poc/internal/domain"
)

// Health is the liveness probe.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports 503 until the record backend answers a list query.
func (a *App) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := a.Store.List(r.Context(), domain.KindAdContent); err != nil {
		a.log(r).Warn().Err(err).Msg("readiness check failed")
		a.error(w, http.StatusServiceUnavailable, "unavailable", "storage backend unavailable")
		return
	}
	width, height := a.Compositor.Size()
	a.json(w, http.StatusOK, map[string]string{
		"status": "ready",
		"canvas": fmt.Sprintf("%dx%d", width, height),
	})
}
