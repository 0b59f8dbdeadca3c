package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ligue-conversions/internal/entity"
)

// FailedConversionPayload é o evento que não foi aceito pela Conversions API,
// guardado para reprocessamento fora do pipeline.
type FailedConversionPayload struct {
	LeadID     string                 `json:"lead_id"`
	Event      entity.ConversionEvent `json:"event"`
	Error      string                 `json:"error"`
	StatusCode int                    `json:"status_code,omitempty"`
	FailedAt   time.Time              `json:"failed_at"`
}

// Publisher é o pedaço do amqp.Channel que o producer usa.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishFailedConversion(ctx context.Context, payload FailedConversionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.Event.EventID,
			Timestamp:    payload.FailedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
