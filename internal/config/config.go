// Package config carrega as configurações do processo a partir do ambiente.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// Fixos: não podem ser sobrescritos pelo ambiente.
	OpenAIModel    = "gpt-4o-mini"
	MaxLeadsPerDay = 1000
	HeadlessMode   = false
)

// Config é montada uma vez no startup e passada por referência. Ninguém
// deve alterar os campos depois de Load.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite:///leads.db"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string

	SMTPServer   string `env:"SMTP_SERVER" envDefault:"email-smtp.us-east-1.amazonaws.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM"`

	MaxLeadsPerDay int
	HeadlessMode   bool

	HTTPAddr             string        `env:"HTTP_ADDR" envDefault:":8080"`
	RabbitMQURL          string        `env:"RABBITMQ_URL"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	EmailHygieneInterval time.Duration `env:"EMAIL_HYGIENE_INTERVAL" envDefault:"1h"`
}

// Load lê o .env (se existir) e depois o ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv parses the current process environment without touching .env files.
func FromEnv() (*Config, error) {
	return parse(env.Options{})
}

// FromMap parses environ instead of the process environment.
func FromMap(environ map[string]string) (*Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.OpenAIModel = OpenAIModel
	cfg.MaxLeadsPerDay = MaxLeadsPerDay
	cfg.HeadlessMode = HeadlessMode

	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("SMTP_PORT fora do intervalo: %d", cfg.SMTPPort)
	}
	if cfg.EmailHygieneInterval <= 0 {
		return nil, fmt.Errorf("EMAIL_HYGIENE_INTERVAL deve ser positivo")
	}

	return cfg, nil
}

func (c *Config) SMTPConfigured() bool {
	return c.SMTPServer != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

func (c *Config) GenerativeConfigured() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) QueueEnabled() bool {
	return c.RabbitMQURL != ""
}

// String never includes secrets.
func (c *Config) String() string {
	return fmt.Sprintf(
		"database=%s smtp=%s:%d smtp_auth=%t openai_model=%s openai_key=%t max_leads_per_day=%d headless=%t http=%s queue=%t",
		redactURL(c.DatabaseURL), c.SMTPServer, c.SMTPPort, c.SMTPConfigured(),
		c.OpenAIModel, c.GenerativeConfigured(), c.MaxLeadsPerDay, c.HeadlessMode,
		c.HTTPAddr, c.QueueEnabled(),
	)
}
