package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xavierca1/leadgen/internal/entity"
	"github.com/xavierca1/leadgen/internal/infra/export"
	"github.com/xavierca1/leadgen/internal/usecase"
)

const exportPageSize = 1000

type LeadLister interface {
	List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error)
}

type ExportHandler struct {
	Repo LeadLister
}

func NewExportHandler(repo LeadLister) *ExportHandler {
	return &ExportHandler{Repo: repo}
}

// CSV (GET /api/export/csv?city=&status=) pagina a tabela inteira.
func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	status, ok := statusFilter(r)
	if !ok {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "status deve ser contacted, pending ou no_email")
		return
	}

	filter := entity.LeadFilter{
		City:   r.URL.Query().Get("city"),
		Status: status,
		Limit:  exportPageSize,
	}

	var all []*entity.Lead
	for {
		page, err := h.Repo.List(r.Context(), filter)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			break
		}
		filter.Offset += exportPageSize
	}

	filename := fmt.Sprintf("leads_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)

	if err := export.WriteLeadsCSV(w, all); err != nil {
		log.WithFields(log.Fields{"err": err}).Error("falha ao gerar CSV")
		return
	}
	log.WithFields(log.Fields{"rows": len(all)}).Info("CSV exportado")
}
