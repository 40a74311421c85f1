package entity

import (
	"context"
	"strings"
	"time"
)

const (
	DefaultExtractionSource = "google_maps"

	ResponseNone          = "none"
	ResponseInterested    = "interested"
	ResponseNotInterested = "not_interested"
	ResponseReplied       = "replied"
	ResponseBounced       = "bounced"
)

// Lead é um negócio encontrado pelo scraper, com o estado de contato por canal.
type Lead struct {
	ID int64 `json:"id"`

	// Dados do negócio
	BusinessName string   `json:"business_name"`
	Category     *string  `json:"category,omitempty"`
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Website      *string  `json:"website,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
	ReviewsCount *int     `json:"reviews_count,omitempty"`

	// Dados de contato
	Email           *string `json:"email,omitempty"`
	InstagramHandle *string `json:"instagram_handle,omitempty"`

	ExtractionDate   time.Time `json:"extraction_date"`
	ExtractionSource string    `json:"extraction_source"`

	// Estado de contato
	EmailSent      bool       `json:"email_sent"`
	EmailSentAt    *time.Time `json:"email_sent_at,omitempty"`
	SenderEmail    *string    `json:"sender_email,omitempty"`
	WhatsAppSent   bool       `json:"whatsapp_sent"`
	WhatsAppSentAt *time.Time `json:"whatsapp_sent_at,omitempty"`
	InstagramSent  bool       `json:"instagram_sent"`

	AIPersonalizedMessage *string `json:"ai_personalized_message,omitempty"`

	ResponseStatus string     `json:"response_status"`
	ResponseText   *string    `json:"response_text,omitempty"`
	ResponseDate   *time.Time `json:"response_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
}

// Factory
func NewLead(businessName string) (*Lead, error) {
	lead := &Lead{
		BusinessName:     strings.TrimSpace(businessName),
		ExtractionDate:   time.Now().UTC(),
		ExtractionSource: DefaultExtractionSource,
		ResponseStatus:   ResponseNone,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.BusinessName) == "" {
		return ErrBusinessNameRequired
	}
	return nil
}

func IsValidResponseStatus(status string) bool {
	switch status {
	case ResponseNone, ResponseInterested, ResponseNotInterested, ResponseReplied, ResponseBounced:
		return true
	}
	return false
}

// OutreachUpdate muda o estado de um canal. Sent=true grava a flag e o
// timestamp (At, ou agora se zero); Sent=false limpa os dois.
type OutreachUpdate struct {
	Channel     Channel
	Sent        bool
	At          time.Time
	SenderEmail string
}

// Filtros de estado da lista de leads.
const (
	LeadStatusContacted = "contacted"
	LeadStatusPending   = "pending"
	LeadStatusNoEmail   = "no_email"
)

func IsValidLeadStatus(status string) bool {
	switch status {
	case "", LeadStatusContacted, LeadStatusPending, LeadStatusNoEmail:
		return true
	}
	return false
}

// LeadFilter.Status vazio não filtra por estado.
type LeadFilter struct {
	City   string
	Status string
	Limit  int
	Offset int
}

type LeadStats struct {
	TotalLeads     int `json:"total_leads"`
	LeadsToday     int `json:"leads_today"`
	WithEmail      int `json:"with_email"`
	WithPhone      int `json:"with_phone"`
	AIGenerated    int `json:"ai_generated"`
	EmailsSent     int `json:"emails_sent"`
	WhatsAppSent   int `json:"whatsapp_sent"`
	InstagramSent  int `json:"instagram_sent"`
	PendingContact int `json:"pending_contact"`
	Responded      int `json:"responded"`
}

// DailyActivity agrupa os leads pelo dia (UTC) de extração.
type DailyActivity struct {
	Date        string `json:"date"`
	Extracted   int    `json:"extracted"`
	EmailsFound int    `json:"emails_found"`
	Contacted   int    `json:"contacted"`
}

type GroupCount struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	WithEmail int    `json:"with_email"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id int64) (*Lead, error)
	FindByEmail(ctx context.Context, email string) ([]*Lead, error)
	UpdateOutreachStatus(ctx context.Context, id int64, update OutreachUpdate) error

	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Search(ctx context.Context, term string, limit int) ([]*Lead, error)
	Responded(ctx context.Context, limit int) ([]*Lead, error)
	UpdateResponse(ctx context.Context, id int64, status, text string) error
	UpdateNotes(ctx context.Context, id int64, notes string) error
	SetAIMessage(ctx context.Context, id int64, message string) error

	Stats(ctx context.Context, since time.Time) (*LeadStats, error)
	CityStats(ctx context.Context, limit int) ([]GroupCount, error)
	CategoryStats(ctx context.Context, limit int) ([]GroupCount, error)
	Activity(ctx context.Context, days int) ([]DailyActivity, error)
	ClearEmailsMatching(ctx context.Context, patterns []string) (int64, error)
}
