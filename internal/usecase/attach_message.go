package usecase

import (
	"context"
	"strings"
)

// AttachMessageUseCase guarda a mensagem personalizada gerada fora daqui.
type AttachMessageUseCase struct {
	Repo MessageRepository
}

func NewAttachMessageUseCase(repo MessageRepository) *AttachMessageUseCase {
	return &AttachMessageUseCase{Repo: repo}
}

func (uc *AttachMessageUseCase) Execute(ctx context.Context, leadID int64, message string) error {
	if strings.TrimSpace(message) == "" {
		return &DomainError{Code: CodeValidation, Message: "validation failed: message (is required)"}
	}
	return mapRepoError(uc.Repo.SetAIMessage(ctx, leadID, message), "salvar mensagem")
}
