package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/leadgen/internal/infra/mail"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type ConnectionState interface {
	IsClosed() bool
}

type SMTPChecker interface {
	Check(ctx context.Context) error
}

type HealthHandler struct {
	DB        Pinger
	RabbitMQ  ConnectionState
	SMTP      SMTPChecker
	StartTime time.Time
	Timeout   time.Duration
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

// rabbitMQ e smtp podem ser nil (recurso desligado).
func NewHealthHandler(db Pinger, rabbitMQ ConnectionState, smtp SMTPChecker) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		RabbitMQ:  rabbitMQ,
		SMTP:      smtp,
		StartTime: time.Now(),
		Timeout:   5 * time.Second,
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	deps := make(map[string]string)

	// Database
	if h.DB != nil {
		if err := h.DB.Ping(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	// RabbitMQ
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			deps["rabbitmq"] = "unhealthy: connection closed"
		} else {
			deps["rabbitmq"] = "healthy"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	// SMTP relay
	if h.SMTP != nil {
		err := h.SMTP.Check(ctx)
		switch {
		case errors.Is(err, mail.ErrNotConfigured):
			deps["smtp"] = "not configured"
		case err != nil:
			deps["smtp"] = fmt.Sprintf("unhealthy: %v", err)
		default:
			deps["smtp"] = "healthy"
		}
	} else {
		deps["smtp"] = "not configured"
	}

	status := "healthy"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
