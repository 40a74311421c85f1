package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/xavierca1/leadgen/internal/config"
	"github.com/xavierca1/leadgen/internal/infra/database"
	"github.com/xavierca1/leadgen/internal/infra/http/handlers"
	"github.com/xavierca1/leadgen/internal/infra/logging"
	"github.com/xavierca1/leadgen/internal/infra/mail"
	"github.com/xavierca1/leadgen/internal/infra/queue"
	"github.com/xavierca1/leadgen/internal/infra/worker"
	"github.com/xavierca1/leadgen/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("configuração inválida")
	}
	logging.Setup(cfg.LogLevel)
	log.WithFields(log.Fields{"config": cfg.String()}).Info("configuração carregada")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Banco
	store, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("falha ao abrir banco")
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		log.WithFields(log.Fields{"err": err}).Fatal("falha ao criar schema")
	}
	leadRepo := store.Leads()

	// 2. Fila (opcional)
	var (
		publisher  usecase.LeadEventPublisher
		rabbitConn handlers.ConnectionState
	)
	if cfg.QueueEnabled() {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.WithFields(log.Fields{"err": err}).Fatal("falha ao conectar no RabbitMQ")
		}
		defer rabbitMQ.Close()

		publisher = queue.NewProducer(rabbitMQ.Ch)
		rabbitConn = rabbitMQ.Conn

		leadWorker := queue.NewWorker(rabbitMQ.Ch, store, publisher)
		go func() {
			if err := leadWorker.Start(ctx); err != nil {
				log.WithFields(log.Fields{"err": err}).Error("worker da fila parou")
			}
		}()
	} else {
		log.Info("RABBITMQ_URL vazio, fila desligada")
	}

	// 3. Limpeza periódica de emails
	hygiene := worker.NewEmailHygieneWorker(leadRepo, usecase.DiscardedEmailPatterns, cfg.EmailHygieneInterval)
	go hygiene.Start(ctx)

	// 4. UseCases
	registerUC := usecase.NewRegisterLeadUseCase(leadRepo, publisher)
	outreachUC := usecase.NewRecordOutreachUseCase(leadRepo)
	responseUC := usecase.NewRecordResponseUseCase(leadRepo)
	messageUC := usecase.NewAttachMessageUseCase(leadRepo)

	// 5. Handlers
	smtpChecker := mail.NewChecker(mail.SMTPSettings{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})

	router := handlers.Router{
		Leads:  handlers.NewLeadHandler(leadRepo, registerUC, outreachUC, responseUC, messageUC),
		Stats:  handlers.NewStatsHandler(leadRepo, cfg),
		Export: handlers.NewExportHandler(leadRepo),
		Health: handlers.NewHealthHandler(store, rabbitConn, smtpChecker),
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"addr": cfg.HTTPAddr}).Info("🔥 dashboard de leads rodando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithFields(log.Fields{"err": err}).Fatal("servidor HTTP caiu")
		}
	}()

	<-ctx.Done()
	log.Info("encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithFields(log.Fields{"err": err}).Error("falha no shutdown do servidor")
	}
}
