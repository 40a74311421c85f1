package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/leadgen/internal/entity"
)

type RecordResponseUseCase struct {
	Repo ResponseRepository
}

func NewRecordResponseUseCase(repo ResponseRepository) *RecordResponseUseCase {
	return &RecordResponseUseCase{Repo: repo}
}

func (uc *RecordResponseUseCase) Execute(ctx context.Context, input RecordResponseInput) error {
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if !entity.IsValidResponseStatus(status) {
		return &DomainError{Code: CodeValidation, Message: "validation failed: status (is invalid)", Err: entity.ErrInvalidResponseStatus}
	}

	return mapRepoError(uc.Repo.UpdateResponse(ctx, input.LeadID, status, input.Text), "registrar resposta")
}

func (uc *RecordResponseUseCase) SaveNotes(ctx context.Context, leadID int64, notes string) error {
	if len(notes) > 5000 {
		return &DomainError{Code: CodeValidation, Message: "validation failed: notes (must not exceed 5000 characters)"}
	}
	return mapRepoError(uc.Repo.UpdateNotes(ctx, leadID, notes), "salvar notas")
}
