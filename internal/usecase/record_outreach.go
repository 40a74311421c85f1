package usecase

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xavierca1/leadgen/internal/entity"
)

type RecordOutreachUseCase struct {
	Repo OutreachRepository
	Now  func() time.Time
}

func NewRecordOutreachUseCase(repo OutreachRepository) *RecordOutreachUseCase {
	return &RecordOutreachUseCase{
		Repo: repo,
		Now:  time.Now,
	}
}

// Execute grava flag e timestamp do canal numa operação só.
func (uc *RecordOutreachUseCase) Execute(ctx context.Context, input RecordOutreachInput) error {
	if input.LeadID <= 0 {
		return &DomainError{Code: CodeValidation, Message: "validation failed: lead_id (is required)"}
	}

	ch, err := entity.ParseChannel(input.Channel)
	if err != nil {
		return &DomainError{Code: CodeValidation, Message: "validation failed: channel (must be one of " + channelNames() + ")", Err: err}
	}

	if input.Sent == nil {
		return &DomainError{Code: CodeValidation, Message: "validation failed: sent (is required)"}
	}
	sent := *input.Sent

	at := uc.Now()
	if input.SentAt != nil && !input.SentAt.IsZero() {
		at = *input.SentAt
	}

	update := entity.OutreachUpdate{
		Channel:     ch,
		Sent:        sent,
		At:          at,
		SenderEmail: NormalizeEmail(input.SenderEmail),
	}

	if err := uc.Repo.UpdateOutreachStatus(ctx, input.LeadID, update); err != nil {
		return mapRepoError(err, "registrar contato")
	}

	log.WithFields(log.Fields{
		"lead_id": input.LeadID,
		"channel": ch,
		"sent":    sent,
	}).Info("contato registrado")
	return nil
}

func channelNames() string {
	names := make([]string, len(entity.Channels))
	for i, ch := range entity.Channels {
		names[i] = string(ch)
	}
	return strings.Join(names, ", ")
}
