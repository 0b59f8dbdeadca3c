package usecase

import (
	"context"

	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/infra/queue"
)

type SendConversionInput struct {
	Stage string        `json:"stage"`
	Lead  *ContactInput `json:"lead"`
}

type ContactInput struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Estados terminais do pipeline que não são falha.
const (
	StatusDelivered   = "DELIVERED"
	StatusNotFound    = "NOT_FOUND"
	StatusNoEventName = "NO_EVENT_NAME"
)

type SendConversionOutput struct {
	Status    string `json:"status"`
	EventName string `json:"event_name,omitempty"`
	LeadID    string `json:"lead_id,omitempty"`
	TraceID   string `json:"fbtrace_id,omitempty"`
	Msg       string `json:"message"`
}

type ConversionDispatcher interface {
	SendEvent(ctx context.Context, event entity.ConversionEvent) (*meta.Ack, error)
}

type FailedConversionPublisher interface {
	PublishFailedConversion(ctx context.Context, payload queue.FailedConversionPayload) error
}

type AlertService interface {
	SendAlert(subject, body string) error
}

type SendConversionUseCase struct {
	Resolver   *LeadResolver
	Builder    *PayloadBuilder
	Dispatcher ConversionDispatcher
	FailedPub  FailedConversionPublisher // opcional
	Alerts     AlertService              // opcional
}

type ImportLeadsOutput struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Msg      string `json:"message"`
}

type ImportLeadsUseCase struct {
	Repo entity.LeadRepositoryInterface
}
