package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
	"github.com/xavierca1/leadgen/internal/entity"
	"github.com/xavierca1/leadgen/internal/infra/metrics"
	"github.com/xavierca1/leadgen/internal/usecase"
)

// LeadSessions abre uma unidade de trabalho no banco por mensagem.
type LeadSessions interface {
	WithLeads(ctx context.Context, fn func(repo entity.LeadRepositoryInterface) error) error
}

type consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel   consumer
	Sessions  LeadSessions
	Publisher usecase.LeadEventPublisher
}

func NewWorker(ch consumer, sessions LeadSessions, publisher usecase.LeadEventPublisher) *Worker {
	return &Worker{
		Channel:   ch,
		Sessions:  sessions,
		Publisher: publisher,
	}
}

// Start consome q.leads.scraped e q.leads.outreach até ctx acabar ou o
// canal fechar.
func (w *Worker) Start(ctx context.Context) error {
	scraped, err := w.consume(ScrapedQueue)
	if err != nil {
		return err
	}
	outreach, err := w.consume(OutreachQueue)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"queues": []string{ScrapedQueue, OutreachQueue}}).Info("worker aguardando mensagens")

	for {
		select {
		case <-ctx.Done():
			log.Info("worker encerrado")
			return nil
		case d, ok := <-scraped:
			if !ok {
				return fmt.Errorf("canal %s fechado", ScrapedQueue)
			}
			w.handle(ctx, ScrapedQueue, d)
		case d, ok := <-outreach:
			if !ok {
				return fmt.Errorf("canal %s fechado", OutreachQueue)
			}
			w.handle(ctx, OutreachQueue, d)
		}
	}
}

func (w *Worker) consume(queueName string) (<-chan amqp.Delivery, error) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao registrar consumidor em %s: %w", queueName, err)
	}
	return msgs, nil
}

// handle confirma ou rejeita a entrega. Rejeitadas vão para a DLQ, sem requeue.
func (w *Worker) handle(ctx context.Context, queueName string, d amqp.Delivery) {
	entry := log.WithFields(log.Fields{"queue": queueName, "message_id": d.MessageId})

	err := w.process(ctx, queueName, d.Body)
	switch {
	case err == nil:
		metrics.RecordQueueMessage(queueName, "ack")
		d.Ack(false)
	case usecase.ErrorCode(err) == usecase.CodeLeadAlreadyExists:
		// Scraper mandou o mesmo negócio de novo: já temos, só confirma.
		entry.Debug("lead duplicado ignorado")
		metrics.RecordQueueMessage(queueName, "duplicate")
		d.Ack(false)
	default:
		entry.WithFields(log.Fields{"err": err}).Error("mensagem rejeitada")
		metrics.RecordQueueMessage(queueName, "rejected")
		d.Nack(false, false)
	}
}

func (w *Worker) process(ctx context.Context, queueName string, body []byte) error {
	switch queueName {
	case ScrapedQueue:
		var payload ScrapedLeadPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return fmt.Errorf("JSON inválido: %w", err)
		}
		return w.Sessions.WithLeads(ctx, func(repo entity.LeadRepositoryInterface) error {
			out, err := usecase.NewRegisterLeadUseCase(repo, w.Publisher).Execute(ctx, payload.toInput())
			if err != nil {
				return err
			}
			metrics.RecordLeadRegistered(out.ExtractionSource)
			log.WithFields(log.Fields{"lead_id": out.ID}).Debug("lead do scraper salvo")
			return nil
		})

	case OutreachQueue:
		var payload OutreachEventPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			return fmt.Errorf("JSON inválido: %w", err)
		}
		return w.Sessions.WithLeads(ctx, func(repo entity.LeadRepositoryInterface) error {
			if err := usecase.NewRecordOutreachUseCase(repo).Execute(ctx, payload.toInput()); err != nil {
				return err
			}
			metrics.RecordOutreach(strings.ToLower(strings.TrimSpace(payload.Channel)), *payload.Sent)
			return nil
		})
	}

	return fmt.Errorf("fila desconhecida: %s", queueName)
}
