package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/audit-pilar-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions carries the cross-cutting settings of the HTTP surface.
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(opts RouterOptions, auditHandler AuditHandler) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/audits", func(r chi.Router) {
			r.Get("/", auditHandler.List)
			r.Post("/", auditHandler.Evaluate)
			r.Post("/preview", auditHandler.Preview)
			r.Post("/batch", auditHandler.EvaluateBatch)
			r.Get("/compare", auditHandler.Compare)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", auditHandler.GetByID)
				r.Get("/export", auditHandler.Export)
			})
		})

		r.Get("/engine/config", auditHandler.EngineConfig)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
