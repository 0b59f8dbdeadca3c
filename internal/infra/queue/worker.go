package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
)

// EventSender define o contrato do dispatcher usado no reprocessamento.
type EventSender interface {
	SendEvent(ctx context.Context, event entity.ConversionEvent) (*meta.Ack, error)
}

// Acknowledger é o pedaço de amqp.Delivery que o worker usa (facilita teste).
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Worker reenvia, uma única vez, eventos que falharam no pipeline.
// Falhou de novo: Nack sem requeue e a mensagem vai para a DLQ.
type Worker struct {
	Channel *amqp.Channel
	Sender  EventSender
}

func NewWorker(ch *amqp.Channel, sender EventSender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(
		ctx,
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker de reprocessamento aguardando na fila '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Worker de reprocessamento encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de consumo fechado")
			}
			w.HandleDelivery(ctx, d.Body, &d)
		}
	}
}

func (w *Worker) HandleDelivery(ctx context.Context, body []byte, ack Acknowledger) {
	var payload FailedConversionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("❌ [WORKER] JSON inválido: %s", err)
		ack.Nack(false, false)
		return
	}

	ackResp, err := w.Sender.SendEvent(ctx, payload.Event)
	if err != nil {
		log.Printf("❌ [WORKER] Reenvio do evento '%s' (lead %s) falhou: %v", payload.Event.EventName, payload.LeadID, err)
		ack.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] Evento '%s' reenviado para o lead %s (fbtrace %s)", payload.Event.EventName, payload.LeadID, ackResp.FBTraceID)
	ack.Ack(false)
}
