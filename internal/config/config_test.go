package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWhenUnset(t *testing.T) {
	cfg, err := FromMap(nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite:///leads.db", cfg.DatabaseURL)
	assert.Equal(t, "email-smtp.us-east-1.amazonaws.com", cfg.SMTPServer)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 1000, cfg.MaxLeadsPerDay)
	assert.False(t, cfg.HeadlessMode)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.EmailHygieneInterval)
}

func TestSecretsEmptyWhenUnset(t *testing.T) {
	cfg, err := FromMap(map[string]string{})
	require.NoError(t, err)

	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.Empty(t, cfg.SMTPUsername)
	assert.Empty(t, cfg.SMTPPassword)
	assert.Empty(t, cfg.EmailFrom)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.False(t, cfg.SMTPConfigured())
	assert.False(t, cfg.GenerativeConfigured())
	assert.False(t, cfg.QueueEnabled())
}

func TestOverridesFromEnvironment(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"DATABASE_URL":   "postgres://user:pw@db:5432/leads",
		"SMTP_SERVER":    "smtp.example.org",
		"SMTP_PORT":      "2525",
		"SMTP_USERNAME":  "mailer",
		"SMTP_PASSWORD":  "s3cret",
		"EMAIL_FROM":     "hola@example.org",
		"OPENAI_API_KEY": "sk-test",
	})
	require.NoError(t, err)

	assert.Equal(t, "postgres://user:pw@db:5432/leads", cfg.DatabaseURL)
	assert.Equal(t, "smtp.example.org", cfg.SMTPServer)
	assert.Equal(t, 2525, cfg.SMTPPort)
	assert.Equal(t, "hola@example.org", cfg.EmailFrom)
	assert.True(t, cfg.SMTPConfigured())
	assert.True(t, cfg.GenerativeConfigured())
}

func TestFixedValuesIgnoreEnvironment(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"MAX_LEADS_PER_DAY": "5",
		"HEADLESS_MODE":     "true",
		"OPENAI_MODEL":      "other-model",
	})
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.MaxLeadsPerDay)
	assert.False(t, cfg.HeadlessMode)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
}

func TestInvalidPort(t *testing.T) {
	_, err := FromMap(map[string]string{"SMTP_PORT": "abc"})
	assert.Error(t, err)

	_, err = FromMap(map[string]string{"SMTP_PORT": "70000"})
	assert.Error(t, err)
}

func TestStringRedactsSecrets(t *testing.T) {
	cfg, err := FromMap(map[string]string{
		"DATABASE_URL":   "postgres://user:topsecret@db:5432/leads",
		"SMTP_PASSWORD":  "smtp-pass",
		"OPENAI_API_KEY": "sk-live-123",
	})
	require.NoError(t, err)

	out := cfg.String()
	assert.False(t, strings.Contains(out, "topsecret"))
	assert.False(t, strings.Contains(out, "smtp-pass"))
	assert.False(t, strings.Contains(out, "sk-live-123"))
	assert.Contains(t, out, "max_leads_per_day=1000")
}
