package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/xavierca1/leadgen/internal/config"
	"github.com/xavierca1/leadgen/internal/entity"
)

type StatsReader interface {
	Stats(ctx context.Context, since time.Time) (*entity.LeadStats, error)
	CityStats(ctx context.Context, limit int) ([]entity.GroupCount, error)
	CategoryStats(ctx context.Context, limit int) ([]entity.GroupCount, error)
	Activity(ctx context.Context, days int) ([]entity.DailyActivity, error)
}

type StatsHandler struct {
	Repo   StatsReader
	Config *config.Config
	Now    func() time.Time
}

func NewStatsHandler(repo StatsReader, cfg *config.Config) *StatsHandler {
	return &StatsHandler{
		Repo:   repo,
		Config: cfg,
		Now:    time.Now,
	}
}

// Stats (GET /api/stats). "leads_today" conta a partir da meia-noite UTC.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	now := h.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	stats, err := h.Repo.Stats(r.Context(), midnight)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Cities (GET /api/stats/cities?limit=)
func (h *StatsHandler) Cities(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Repo.CityStats(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cities": nonNilGroups(groups)})
}

// Categories (GET /api/stats/categories?limit=)
func (h *StatsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Repo.CategoryStats(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": nonNilGroups(groups)})
}

// Activity (GET /api/activity?days=7)
func (h *StatsHandler) Activity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Repo.Activity(r.Context(), queryInt(r, "days", 7))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"activity": activity})
}

type SystemStatusResponse struct {
	SMTPConfigured     bool   `json:"smtp_configured"`
	SMTPServer         string `json:"smtp_server"`
	EmailFrom          string `json:"email_from,omitempty"`
	OpenAIConfigured   bool   `json:"openai_configured"`
	OpenAIModel        string `json:"openai_model"`
	MaxLeadsPerDay     int    `json:"max_leads_per_day"`
	HeadlessMode       bool   `json:"headless_mode"`
	QueueEnabled       bool   `json:"queue_enabled"`
	DatabaseConfigured bool   `json:"database_configured"`
}

// SystemStatus (GET /api/system-status). Nunca devolve senha nem chave.
func (h *StatsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	c := h.Config
	writeJSON(w, http.StatusOK, SystemStatusResponse{
		SMTPConfigured:     c.SMTPConfigured(),
		SMTPServer:         c.SMTPServer,
		EmailFrom:          c.EmailFrom,
		OpenAIConfigured:   c.GenerativeConfigured(),
		OpenAIModel:        c.OpenAIModel,
		MaxLeadsPerDay:     c.MaxLeadsPerDay,
		HeadlessMode:       c.HeadlessMode,
		QueueEnabled:       c.QueueEnabled(),
		DatabaseConfigured: c.DatabaseURL != "",
	})
}

func nonNilGroups(groups []entity.GroupCount) []entity.GroupCount {
	if groups == nil {
		return []entity.GroupCount{}
	}
	return groups
}
