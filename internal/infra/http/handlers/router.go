package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xavierca1/leadgen/internal/infra/http/middleware"
)

type Router struct {
	Leads  *LeadHandler
	Stats  *StatsHandler
	Export *ExportHandler
	Health *HealthHandler

	AllowedOrigins []string
}

func (rt Router) Handler() http.Handler {
	origins := rt.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", rt.Leads.List)
			r.Post("/", rt.Leads.Create)
			r.Get("/search", rt.Leads.Search)
			r.Get("/lookup", rt.Leads.Lookup)
			r.Get("/responded", rt.Leads.Responded)
			r.Get("/{id}", rt.Leads.Get)
			r.Post("/{id}/outreach", rt.Leads.RecordOutreach)
			r.Post("/{id}/response", rt.Leads.RecordResponse)
			r.Post("/{id}/notes", rt.Leads.SaveNotes)
			r.Post("/{id}/message", rt.Leads.AttachMessage)
		})

		r.Get("/stats", rt.Stats.Stats)
		r.Get("/stats/cities", rt.Stats.Cities)
		r.Get("/stats/categories", rt.Stats.Categories)
		r.Get("/activity", rt.Stats.Activity)
		r.Get("/system-status", rt.Stats.SystemStatus)
		r.Get("/export/csv", rt.Export.CSV)
	})

	return r
}
