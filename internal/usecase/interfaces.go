package usecase

import (
	"context"

	"github.com/xavierca1/leadgen/internal/entity"
)

type LeadWriter interface {
	Create(ctx context.Context, lead *entity.Lead) error
}

type OutreachRepository interface {
	UpdateOutreachStatus(ctx context.Context, id int64, update entity.OutreachUpdate) error
}

type ResponseRepository interface {
	UpdateResponse(ctx context.Context, id int64, status, text string) error
	UpdateNotes(ctx context.Context, id int64, notes string) error
}

type MessageRepository interface {
	SetAIMessage(ctx context.Context, id int64, message string) error
}

// LeadEventPublisher avisa os colaboradores externos (gerador de mensagem,
// mailer) que um lead novo entrou.
type LeadEventPublisher interface {
	PublishLeadRegistered(ctx context.Context, event LeadRegisteredEvent) error
}
