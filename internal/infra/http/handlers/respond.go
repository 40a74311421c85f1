package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/xavierca1/leadgen/internal/entity"
	"github.com/xavierca1/leadgen/internal/usecase"
)

type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithFields(log.Fields{"err": err}).Warn("falha ao escrever resposta")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeUseCaseError traduz o erro em status HTTP. DomainError vira 4xx;
// qualquer outro vira 500 sem vazar detalhe para o cliente.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	if usecase.IsDomainError(err) {
		code := usecase.ErrorCode(err)
		status := http.StatusBadRequest
		switch code {
		case usecase.CodeLeadNotFound:
			status = http.StatusNotFound
		case usecase.CodeLeadAlreadyExists:
			status = http.StatusConflict
		}
		writeError(w, status, code, err.Error())
		return
	}

	entry := log.WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"err":    err,
	})
	if usecase.IsTechnicalError(err) {
		entry.WithFields(log.Fields{"code": usecase.ErrorCode(err)}).Error("falha de infraestrutura")
	} else {
		entry.Error("erro inesperado")
	}
	writeError(w, http.StatusInternalServerError, usecase.CodeStorage, "erro interno")
}

func leadID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// statusFilter lê ?status=. O antigo ?pending=true continua valendo como
// status=pending.
func statusFilter(r *http.Request) (string, bool) {
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "" && r.URL.Query().Get("pending") == "true" {
		status = entity.LeadStatusPending
	}
	return status, entity.IsValidLeadStatus(status)
}

// queryInt devolve def quando o parâmetro falta ou não é número.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}
