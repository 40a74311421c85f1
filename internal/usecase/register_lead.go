package usecase

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xavierca1/leadgen/internal/entity"
)

type RegisterLeadUseCase struct {
	Repo      LeadWriter
	Publisher LeadEventPublisher
}

// publisher pode ser nil (fila desligada).
func NewRegisterLeadUseCase(repo LeadWriter, publisher LeadEventPublisher) *RegisterLeadUseCase {
	return &RegisterLeadUseCase{
		Repo:      repo,
		Publisher: publisher,
	}
}

func (uc *RegisterLeadUseCase) Execute(ctx context.Context, input RegisterLeadInput) (*RegisterLeadOutput, error) {
	if errs := ValidateRegisterLeadInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := entity.NewLead(input.BusinessName)
	if err != nil {
		return nil, mapRepoError(err, "criar lead")
	}

	email := NormalizeEmail(input.Email)
	discarded := email == "" && strings.TrimSpace(input.Email) != ""

	lead.Category = optional(input.Category)
	lead.Address = optional(input.Address)
	lead.City = optional(input.City)
	lead.Phone = optional(input.Phone)
	lead.Website = optional(input.Website)
	lead.Rating = input.Rating
	lead.ReviewsCount = input.ReviewsCount
	lead.Email = optional(email)
	lead.InstagramHandle = optional(normalizeInstagram(input.InstagramHandle))
	if src := strings.TrimSpace(input.ExtractionSource); src != "" {
		lead.ExtractionSource = src
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, mapRepoError(err, "salvar lead")
	}

	log.WithFields(log.Fields{
		"lead_id": lead.ID,
		"source":  lead.ExtractionSource,
		"email":   email != "",
	}).Info("lead registrado")

	if discarded {
		log.WithFields(log.Fields{"lead_id": lead.ID}).Debug("email descartado na normalização")
	}

	uc.publish(ctx, lead)

	return &RegisterLeadOutput{
		ID:               lead.ID,
		BusinessName:     lead.BusinessName,
		Email:            email,
		ExtractionSource: lead.ExtractionSource,
		ExtractionDate:   lead.ExtractionDate,
		EmailDiscarded:   discarded,
	}, nil
}

// O lead já está salvo; falha na fila só gera log.
func (uc *RegisterLeadUseCase) publish(ctx context.Context, lead *entity.Lead) {
	if uc.Publisher == nil {
		return
	}

	event := LeadRegisteredEvent{
		LeadID:           lead.ID,
		BusinessName:     lead.BusinessName,
		City:             deref(lead.City),
		Category:         deref(lead.Category),
		Email:            deref(lead.Email),
		Phone:            deref(lead.Phone),
		InstagramHandle:  deref(lead.InstagramHandle),
		ExtractionSource: lead.ExtractionSource,
		ExtractionDate:   lead.ExtractionDate,
	}

	if err := uc.Publisher.PublishLeadRegistered(ctx, event); err != nil {
		log.WithFields(log.Fields{"lead_id": lead.ID, "err": err}).Warn("lead salvo, mas falha ao publicar evento")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
