package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mossjr/tab-image-gen-poc/internal/http/handlers"
	"github.com/mossjr/tab-image-gen-poc/internal/middleware"
)

// Options configures the middleware chain.
type Options struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	Logger          zerolog.Logger
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/readyz", app.Ready)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/api", func(r chi.Router) {
		r.Get("/text-config/{name}", app.GetTextConfig)
		r.Get("/text-configs", app.ListTextConfigs)
		r.Get("/text-configs/{id}", app.GetTextConfigByID)
		r.Get("/ad-content/{name}", app.GetAdContent)
		r.Get("/ad-contents", app.ListAdContents)
		r.Get("/ad-contents/{id}", app.GetAdContentByID)
		r.Get("/render/{name}", app.RenderSlot)
		r.Get("/export/{name}", app.Export)
		r.Get("/export/{name}/bundle", app.ExportBundle)

		// writes and renders cost the most; limit them per client
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
			r.Post("/text-config/{name}", app.SaveTextConfig)
			r.Post("/ad-content/{name}", app.SaveAdContent)
			r.Post("/render", app.RenderPreview)
		})
	})

	return r
}
