package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/xavierca1/ligue-conversions/internal/config"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/infra/queue"
)

// replay consome a fila de conversões que falharam e reenvia cada uma uma vez.
// Roda separado da API: a retentativa fica fora do pipeline.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("❌ RABBITMQ_URL deve estar configurado")
	}
	if !cfg.MetaConfigured() {
		log.Fatal("❌ PIXEL_ID e FB_ACCESS_TOKEN devem estar configurados")
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Close()

	metaClient := meta.NewClient(meta.Options{
		BaseURL:       cfg.MetaBaseURL,
		APIVersion:    cfg.MetaAPIVersion,
		PixelID:       cfg.PixelID,
		AccessToken:   cfg.AccessToken,
		TestEventCode: cfg.MetaTestCode,
		Timeout:       cfg.DispatchTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker := queue.NewWorker(rabbitMQ.Ch, metaClient)
	if err := worker.Start(ctx, queue.QueueName); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
