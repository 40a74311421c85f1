package worker

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/xavierca1/leadgen/internal/infra/metrics"
)

type EmailCleaner interface {
	ClearEmailsMatching(ctx context.Context, patterns []string) (int64, error)
}

// EmailHygieneWorker apaga periodicamente emails de tracking/placeholder que
// o scraper capturou antes dos filtros atuais.
type EmailHygieneWorker struct {
	repo         EmailCleaner
	patterns     []string
	tickInterval time.Duration
}

func NewEmailHygieneWorker(repo EmailCleaner, patterns []string, interval time.Duration) *EmailHygieneWorker {
	return &EmailHygieneWorker{
		repo:         repo,
		patterns:     patterns,
		tickInterval: interval,
	}
}

func (w *EmailHygieneWorker) Start(ctx context.Context) {
	log.WithFields(log.Fields{"interval": w.tickInterval.String()}).Info("email hygiene worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("email hygiene worker encerrado")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *EmailHygieneWorker) RunOnce(ctx context.Context) int64 {
	n, err := w.repo.ClearEmailsMatching(ctx, w.patterns)
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Error("erro ao limpar emails inválidos")
	}
	if n > 0 {
		metrics.RecordEmailsCleared(n)
		log.WithFields(log.Fields{"cleared": n}).Info("emails inválidos removidos")
	}
	return n
}
