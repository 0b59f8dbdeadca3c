package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/ligue-conversions/internal/config"
	"github.com/xavierca1/ligue-conversions/internal/infra/database"
	"github.com/xavierca1/ligue-conversions/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-conversions/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/infra/mail"
	"github.com/xavierca1/ligue-conversions/internal/infra/queue"
	"github.com/xavierca1/ligue-conversions/internal/infra/worker"
	"github.com/xavierca1/ligue-conversions/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatalf("❌ Falha ao conectar no banco: %v", err)
	}
	defer db.Close()
	log.Println("Conexão com o pool do banco de dados estabelecida.")

	if cfg.RunMigrations {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	if !cfg.MetaConfigured() {
		log.Println("⚠️ PIXEL_ID / FB_ACCESS_TOKEN não configurados: o webhook vai responder erro de configuração")
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways e Adapters
	metaClient := meta.NewClient(meta.Options{
		BaseURL:       cfg.MetaBaseURL,
		APIVersion:    cfg.MetaAPIVersion,
		PixelID:       cfg.PixelID,
		AccessToken:   cfg.AccessToken,
		TestEventCode: cfg.MetaTestCode,
		Timeout:       cfg.DispatchTimeout,
	})

	var alerts usecase.AlertService
	alertSender := mail.NewAlertSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.AlertEmail)
	if alertSender.Enabled() {
		alerts = alertSender
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	// Fila de conversões que falharam (opcional)
	var failedPub usecase.FailedConversionPublisher
	var rabbitState handlers.ConnectionState
	if cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()
		failedPub = queue.NewProducer(rabbitMQ.Ch)
		rabbitState = rabbitMQ

		monitor := worker.NewQueueMonitor(rabbitMQ.DepthReader(), middleware.RecordQueueDepth, queue.DLQName, queue.QueueName, queue.DLQName)
		go monitor.Start(workerCtx)
	}

	// 3. UseCases
	sendConversionUC := usecase.NewSendConversionUseCase(
		usecase.NewLeadResolver(leadRepo),
		usecase.NewPayloadBuilder(),
		metaClient,
		failedPub,
		alerts,
	)
	importLeadsUC := usecase.NewImportLeadsUseCase(leadRepo)

	// 4. Handlers + Router
	router := newRouter(routes{
		conversion: handlers.NewConversionHandler(sendConversionUC),
		importer:   handlers.NewImportHandler(importLeadsUC),
		health:     handlers.NewHealthHandler(db, rabbitState, cfg.MetaConfigured()),
	}, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Servidor rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor caiu: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Erro no shutdown: %v", err)
	}
	log.Println("Servidor encerrado")
}
