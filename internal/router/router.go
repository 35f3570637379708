// Package router sets up all HTTP routes and middleware chains for the
// fact board: the page and HTMX fragment routes, the rate-limited write
// routes, static assets and the health check.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"factshare/internal/handlers"
	"factshare/internal/middleware"
	"factshare/internal/session"
	"factshare/web"
)

// New creates and returns the configured Chi router. sessions and limiter
// may be nil, which disables flash messages and write rate limiting.
func New(sessions *session.Store, facts *handlers.Facts, limiter *middleware.RateLimiter, secure bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware: applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		if sessions != nil {
			r.Use(middleware.LoadSession(sessions))
		}
		r.Use(middleware.NewCSRF(secure))

		r.Get("/", facts.Index)
		r.Get("/facts", facts.List)
		r.Get("/facts/form", facts.Form)
		r.Get("/facts/{id}", facts.Show)
		r.Get("/facts/{id}/qr.png", facts.QRCode)

		// Writes share one per-IP budget.
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/facts", facts.Create)
			r.Post("/facts/{id}/votes/{column}", facts.Vote)
		})
	})

	return r
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static directory missing: " + err.Error())
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
