package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Emails que o scraper pega de scripts de tracking e páginas modelo.
var DiscardedEmailPatterns = []string{
	"sentry",
	"wixpress",
	"localhost",
	"@0.0.0.0",
	"noreply",
	"no-reply",
	"example.com",
}

var instagramHandleRe = regexp.MustCompile(`^@?[A-Za-z0-9._]{1,30}$`)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateRegisterLeadInput(input RegisterLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.BusinessName) == "" {
		errors = append(errors, ValidationError{"business_name", "is required"})
	} else if utf8.RuneCountInString(strings.TrimSpace(input.BusinessName)) > 300 {
		errors = append(errors, ValidationError{"business_name", "must not exceed 300 characters"})
	}

	if input.Rating != nil && (*input.Rating < 0 || *input.Rating > 5) {
		errors = append(errors, ValidationError{"rating", "must be between 0 and 5"})
	}

	if input.ReviewsCount != nil && *input.ReviewsCount < 0 {
		errors = append(errors, ValidationError{"reviews_count", "must not be negative"})
	}

	if h := strings.TrimSpace(input.InstagramHandle); h != "" && !instagramHandleRe.MatchString(h) {
		errors = append(errors, ValidationError{"instagram_handle", "is invalid"})
	}

	return errors
}

func validationFailed(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}

// NormalizeEmail devolve o email em minúsculas, ou "" se for inválido ou
// estiver na lista de descartados.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}

	for _, p := range DiscardedEmailPatterns {
		if strings.Contains(email, p) {
			return ""
		}
	}
	return email
}

func normalizeInstagram(raw string) string {
	h := strings.TrimSpace(raw)
	if h == "" {
		return ""
	}
	return "@" + strings.TrimPrefix(h, "@")
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
