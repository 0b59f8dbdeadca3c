package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/infra/queue"
)

func NewSendConversionUseCase(
	resolver *LeadResolver,
	builder *PayloadBuilder,
	dispatcher ConversionDispatcher,
	failedPub FailedConversionPublisher,
	alerts AlertService,
) *SendConversionUseCase {
	return &SendConversionUseCase{
		Resolver:   resolver,
		Builder:    builder,
		Dispatcher: dispatcher,
		FailedPub:  failedPub,
		Alerts:     alerts,
	}
}

// Execute processa um evento de mudança de etapa do CRM até um estado terminal.
// Não há retentativa: falha de envio volta como DISPATCH_ERROR e o cliente reenvia.
func (uc *SendConversionUseCase) Execute(ctx context.Context, input SendConversionInput) (*SendConversionOutput, error) {
	if strings.TrimSpace(input.Stage) == "" {
		return &SendConversionOutput{
			Status: StatusNoEventName,
			Msg:    "Webhook recebido, mas sem nome de evento.",
		}, nil
	}

	if errs := ValidateSendConversionInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    CodeMissingFields,
			Message: "Dados do lead ausentes.",
		}
	}

	// Etapa desconhecida segue exatamente como veio do CRM.
	eventName := MapStageToEvent(input.Stage)

	lead, err := uc.Resolver.Resolve(ctx, input.Lead.Email, input.Lead.Phone)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			log.Printf("🔎 Lead não encontrado para evento '%s'", eventName)
			return &SendConversionOutput{
				Status:    StatusNotFound,
				EventName: eventName,
				Msg:       "ID do Facebook não encontrado.",
			}, nil
		}
		return nil, err
	}

	event := uc.Builder.Build(lead, eventName)

	log.Printf("📤 Enviando evento '%s' para a Conversions API (lead %s)", eventName, lead.ExternalLeadID)
	ack, err := uc.Dispatcher.SendEvent(ctx, event)
	if err != nil {
		return nil, uc.dispatchFailure(ctx, lead, event, err)
	}

	log.Printf("✅ Evento '%s' disparado com sucesso para o lead %s", eventName, lead.ExternalLeadID)
	return &SendConversionOutput{
		Status:    StatusDelivered,
		EventName: eventName,
		LeadID:    lead.ExternalLeadID,
		TraceID:   ack.FBTraceID,
		Msg:       "Evento de conversão enviado com sucesso!",
	}, nil
}

func (uc *SendConversionUseCase) dispatchFailure(ctx context.Context, lead *entity.Lead, event entity.ConversionEvent, err error) error {
	if errors.Is(err, meta.ErrNotConfigured) {
		log.Printf("❌ ERRO: PIXEL_ID / FB_ACCESS_TOKEN não configurados")
		if uc.Alerts != nil {
			go func() {
				body := fmt.Sprintf("Evento '%s' do lead %s não foi enviado: %v", event.EventName, lead.ExternalLeadID, err)
				if alertErr := uc.Alerts.SendAlert("Conversions API sem configuração", body); alertErr != nil {
					log.Printf("⚠️ Falha ao enviar alerta: %v", alertErr)
				}
			}()
		}
		return &TechnicalError{
			Code:    CodeConfigurationError,
			Message: "Erro de configuração no servidor.",
			Err:     err,
		}
	}

	payload := queue.FailedConversionPayload{
		LeadID:   lead.ExternalLeadID,
		Event:    event,
		Error:    err.Error(),
		FailedAt: time.Now().UTC(),
	}
	var apiErr *meta.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.StatusCode == 0:
		log.Printf("❌ Falha de rede ao enviar evento '%s': %v", event.EventName, apiErr.Err)
	case apiErr != nil:
		payload.StatusCode = apiErr.StatusCode
		log.Printf("❌ Conversions API rejeitou o evento '%s' (status %d): %s", event.EventName, apiErr.StatusCode, apiErr.Body)
	default:
		log.Printf("❌ Erro ao enviar evento '%s': %v", event.EventName, err)
	}

	// A fila é só registro para reprocessamento externo; o pipeline não tenta de novo.
	if uc.FailedPub != nil {
		if pubErr := uc.FailedPub.PublishFailedConversion(ctx, payload); pubErr != nil {
			log.Printf("⚠️ Falha ao publicar conversão com erro na fila: %v", pubErr)
		}
	}

	return &TechnicalError{
		Code:    CodeDispatchError,
		Message: "falha ao enviar evento de conversão",
		Err:     err,
	}
}
