package queue

import (
	"time"

	"github.com/xavierca1/leadgen/internal/usecase"
)

// ScrapedLeadPayload é o que o scraper externo publica em q.leads.scraped.
type ScrapedLeadPayload struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Phone     string   `json:"phone"`
	Website   string   `json:"website"`
	Rating    *float64 `json:"rating"`
	Reviews   *int     `json:"reviews"`
	Email     string   `json:"email"`
	Instagram string   `json:"instagram"`
	Source    string   `json:"source"`
}

func (p ScrapedLeadPayload) toInput() usecase.RegisterLeadInput {
	return usecase.RegisterLeadInput{
		BusinessName:     p.Name,
		Category:         p.Category,
		Address:          p.Address,
		City:             p.City,
		Phone:            p.Phone,
		Website:          p.Website,
		Rating:           p.Rating,
		ReviewsCount:     p.Reviews,
		Email:            p.Email,
		InstagramHandle:  p.Instagram,
		ExtractionSource: p.Source,
	}
}

// OutreachEventPayload é o que o mailer externo publica em q.leads.outreach
// depois de enviar (ou desfazer) um contato.
type OutreachEventPayload struct {
	LeadID      int64      `json:"lead_id"`
	Channel     string     `json:"channel"`
	Sent        *bool      `json:"sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	SenderEmail string     `json:"sender_email,omitempty"`
}

func (p OutreachEventPayload) toInput() usecase.RecordOutreachInput {
	return usecase.RecordOutreachInput{
		LeadID:      p.LeadID,
		Channel:     p.Channel,
		Sent:        p.Sent,
		SentAt:      p.SentAt,
		SenderEmail: p.SenderEmail,
	}
}
