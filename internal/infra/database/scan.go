package database

import (
	"database/sql"
	"time"

	"github.com/xavierca1/leadgen/internal/entity"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l                                         entity.Lead
		category, address, city, phone, website   sql.NullString
		email, instagram, sender, aiMessage       sql.NullString
		responseText, notes                       sql.NullString
		rating                                    sql.NullFloat64
		reviews                                   sql.NullInt64
		emailSentAt, whatsAppSentAt, responseDate sql.NullTime
	)

	err := row.Scan(
		&l.ID,
		&l.BusinessName,
		&category,
		&address,
		&city,
		&phone,
		&website,
		&rating,
		&reviews,
		&email,
		&instagram,
		&l.ExtractionDate,
		&l.ExtractionSource,
		&l.EmailSent,
		&emailSentAt,
		&sender,
		&l.WhatsAppSent,
		&whatsAppSentAt,
		&l.InstagramSent,
		&aiMessage,
		&l.ResponseStatus,
		&responseText,
		&responseDate,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	l.Category = stringPtr(category)
	l.Address = stringPtr(address)
	l.City = stringPtr(city)
	l.Phone = stringPtr(phone)
	l.Website = stringPtr(website)
	l.Email = stringPtr(email)
	l.InstagramHandle = stringPtr(instagram)
	l.SenderEmail = stringPtr(sender)
	l.AIPersonalizedMessage = stringPtr(aiMessage)
	l.ResponseText = stringPtr(responseText)
	l.Notes = stringPtr(notes)
	l.EmailSentAt = timePtr(emailSentAt)
	l.WhatsAppSentAt = timePtr(whatsAppSentAt)
	l.ResponseDate = timePtr(responseDate)
	l.ExtractionDate = l.ExtractionDate.UTC()

	if rating.Valid {
		v := rating.Float64
		l.Rating = &v
	}
	if reviews.Valid {
		v := int(reviews.Int64)
		l.ReviewsCount = &v
	}

	return &l, nil
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

// nullable converte ponteiro em valor do driver (nil vira NULL).
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullableTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return p.UTC()
}
