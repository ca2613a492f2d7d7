/*
server.go - HTTP router and middleware configuration

PURPOSE:

	Configures the HTTP router (chi), middleware stack, and route definitions.
	This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:

	/api/parse              Assumption extraction
	/api/project*           Projection runs
	/api/export             CSV download
	/api/executions*        Audit log

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/actuary: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", h.ParseAssumptions)
		r.Post("/project", h.RunProjection)
		r.Post("/project-from-text", h.ProjectFromText)
		r.Post("/export", h.ExportCSV)

		r.Route("/executions", func(r chi.Router) {
			r.Get("/", h.ListExecutions)
			r.Get("/{id}", h.GetExecution)
		})
	})

	// Minimal landing page listing the API surface.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Actuarial Projection Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Actuarial Projection Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><code>POST /api/parse</code> - Natural language to assumptions</li>
<li><code>POST /api/project</code> - Run a projection</li>
<li><code>POST /api/project-from-text</code> - Parse and project in one step</li>
<li><code>POST /api/export</code> - Projection as CSV download</li>
<li><a href="/api/executions">/api/executions</a> - Execution audit log</li>
</ul>
</body>
</html>`))
	})

	return r
}
