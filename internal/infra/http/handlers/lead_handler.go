package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/xavierca1/leadgen/internal/entity"
	"github.com/xavierca1/leadgen/internal/infra/metrics"
	"github.com/xavierca1/leadgen/internal/usecase"
)

// LeadReader cobre as consultas do dashboard.
type LeadReader interface {
	FindByID(ctx context.Context, id int64) (*entity.Lead, error)
	FindByEmail(ctx context.Context, email string) ([]*entity.Lead, error)
	List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.Lead, error)
	Responded(ctx context.Context, limit int) ([]*entity.Lead, error)
}

type LeadHandler struct {
	Repo       LeadReader
	RegisterUC *usecase.RegisterLeadUseCase
	OutreachUC *usecase.RecordOutreachUseCase
	ResponseUC *usecase.RecordResponseUseCase
	MessageUC  *usecase.AttachMessageUseCase
}

func NewLeadHandler(
	repo LeadReader,
	registerUC *usecase.RegisterLeadUseCase,
	outreachUC *usecase.RecordOutreachUseCase,
	responseUC *usecase.RecordResponseUseCase,
	messageUC *usecase.AttachMessageUseCase,
) *LeadHandler {
	return &LeadHandler{
		Repo:       repo,
		RegisterUC: registerUC,
		OutreachUC: outreachUC,
		ResponseUC: responseUC,
		MessageUC:  messageUC,
	}
}

type LeadListResponse struct {
	Leads  []*entity.Lead `json:"leads"`
	Count  int            `json:"count"`
	Limit  int            `json:"limit,omitempty"`
	Offset int            `json:"offset,omitempty"`
}

func listResponse(leads []*entity.Lead, limit, offset int) LeadListResponse {
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return LeadListResponse{Leads: leads, Count: len(leads), Limit: limit, Offset: offset}
}

// List (GET /api/leads?limit=&offset=&city=&status=contacted|pending|no_email)
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "status deve ser contacted, pending ou no_email")
		return
	}

	filter := entity.LeadFilter{
		City:   r.URL.Query().Get("city"),
		Status: status,
		Limit:  queryInt(r, "limit", 100),
		Offset: queryInt(r, "offset", 0),
	}

	leads, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(leads, filter.Limit, filter.Offset))
}

// Search (GET /api/leads/search?q=)
func (h *LeadHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "parâmetro q é obrigatório")
		return
	}

	leads, err := h.Repo.Search(r.Context(), q, queryInt(r, "limit", 50))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(leads, 0, 0))
}

// Responded (GET /api/leads/responded), para o acompanhamento das respostas.
func (h *LeadHandler) Responded(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Repo.Responded(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(leads, 0, 0))
}

// Lookup (GET /api/leads/lookup?email=)
func (h *LeadHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "parâmetro email é obrigatório")
		return
	}

	leads, err := h.Repo.FindByEmail(r.Context(), email)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(leads, 0, 0))
}

// Get (GET /api/leads/{id})
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "id inválido")
		return
	}

	lead, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, usecase.CodeLeadNotFound, err.Error())
			return
		}
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Create (POST /api/leads)
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "JSON inválido: "+err.Error())
		return
	}

	out, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, err)
		return
	}

	metrics.RecordLeadRegistered(out.ExtractionSource)

	writeJSON(w, http.StatusCreated, out)
}

// RecordOutreach (POST /api/leads/{id}/outreach). "sent" é obrigatório;
// false desfaz o contato e limpa o timestamp.
func (h *LeadHandler) RecordOutreach(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "id inválido")
		return
	}

	var req usecase.RecordOutreachInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "JSON inválido: "+err.Error())
		return
	}
	req.LeadID = id

	if err := h.OutreachUC.Execute(r.Context(), req); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	channel := strings.ToLower(strings.TrimSpace(req.Channel))
	metrics.RecordOutreach(channel, *req.Sent)

	writeJSON(w, http.StatusOK, map[string]any{"lead_id": id, "channel": channel, "sent": *req.Sent})
}

// RecordResponse (POST /api/leads/{id}/response)
func (h *LeadHandler) RecordResponse(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "id inválido")
		return
	}

	var req usecase.RecordResponseInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "JSON inválido: "+err.Error())
		return
	}
	req.LeadID = id

	if err := h.ResponseUC.Execute(r.Context(), req); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lead_id": id, "status": strings.ToLower(strings.TrimSpace(req.Status))})
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// SaveNotes (POST /api/leads/{id}/notes)
func (h *LeadHandler) SaveNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "id inválido")
		return
	}

	var req notesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "JSON inválido: "+err.Error())
		return
	}

	if err := h.ResponseUC.SaveNotes(r.Context(), id, req.Notes); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lead_id": id})
}

type messageRequest struct {
	Message string `json:"message"`
}

// AttachMessage (POST /api/leads/{id}/message)
func (h *LeadHandler) AttachMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := leadID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "id inválido")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "JSON inválido: "+err.Error())
		return
	}

	if err := h.MessageUC.Execute(r.Context(), id, req.Message); err != nil {
		writeUseCaseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lead_id": id})
}
