package usecase

import "time"

type RegisterLeadInput struct {
	BusinessName     string   `json:"business_name"`
	Category         string   `json:"category,omitempty"`
	Address          string   `json:"address,omitempty"`
	City             string   `json:"city,omitempty"`
	Phone            string   `json:"phone,omitempty"`
	Website          string   `json:"website,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	ReviewsCount     *int     `json:"reviews_count,omitempty"`
	Email            string   `json:"email,omitempty"`
	InstagramHandle  string   `json:"instagram_handle,omitempty"`
	ExtractionSource string   `json:"extraction_source,omitempty"`
}

type RegisterLeadOutput struct {
	ID               int64     `json:"id"`
	BusinessName     string    `json:"business_name"`
	Email            string    `json:"email,omitempty"`
	ExtractionSource string    `json:"extraction_source"`
	ExtractionDate   time.Time `json:"extraction_date"`
	EmailDiscarded   bool      `json:"email_discarded,omitempty"`
}

type LeadRegisteredEvent struct {
	LeadID           int64     `json:"lead_id"`
	BusinessName     string    `json:"business_name"`
	City             string    `json:"city,omitempty"`
	Category         string    `json:"category,omitempty"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	InstagramHandle  string    `json:"instagram_handle,omitempty"`
	ExtractionSource string    `json:"extraction_source"`
	ExtractionDate   time.Time `json:"extraction_date"`
}

// Sent é obrigatório: ausente é erro de validação, nunca "false".
type RecordOutreachInput struct {
	LeadID      int64      `json:"lead_id"`
	Channel     string     `json:"channel"`
	Sent        *bool      `json:"sent"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	SenderEmail string     `json:"sender_email,omitempty"`
}

type RecordResponseInput struct {
	LeadID int64  `json:"lead_id"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}
