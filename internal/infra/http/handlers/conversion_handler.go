package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/ligue-conversions/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-conversions/internal/usecase"
)

type SendConversionExecutor interface {
	Execute(ctx context.Context, input usecase.SendConversionInput) (*usecase.SendConversionOutput, error)
}

type ConversionHandler struct {
	SendConversionUC SendConversionExecutor
}

func NewConversionHandler(uc SendConversionExecutor) *ConversionHandler {
	return &ConversionHandler{SendConversionUC: uc}
}

// crmWebhookRequest é o corpo enviado pelo CRM na mudança de etapa.
type crmWebhookRequest struct {
	Tag *struct {
		Name string `json:"name"`
	} `json:"tag"`
	Lead *usecase.ContactInput `json:"lead"`
}

type conversionResponse struct {
	Success bool `json:"success"`
	*usecase.SendConversionOutput
}

func (h *ConversionHandler) Handle(w http.ResponseWriter, r *http.Request) {
	log.Println("--- Webhook recebido ---")

	var req crmWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	input := usecase.SendConversionInput{Lead: req.Lead}
	if req.Tag != nil {
		input.Stage = req.Tag.Name
	}

	output, err := h.SendConversionUC.Execute(r.Context(), input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	middleware.RecordConversion(usecase.EventMetricLabel(output.EventName), output.Status)
	writeJSON(w, http.StatusOK, conversionResponse{Success: true, SendConversionOutput: output})
}

func (h *ConversionHandler) handleError(w http.ResponseWriter, err error) {
	code := usecase.ErrorCode(err)
	middleware.RecordConversion("", code)

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeErrorResponse(w, http.StatusBadRequest, domainErr.Code, domainErr.Message)
		return
	}

	log.Printf("❌ Erro ao processar o webhook: %v", err)

	switch code {
	case usecase.CodeConfigurationError:
		writeErrorResponse(w, http.StatusInternalServerError, code, "Erro de configuração no servidor.")
	case usecase.CodeDispatchError:
		middleware.RecordIntegrationError("meta")
		writeErrorResponse(w, http.StatusInternalServerError, code, "Falha ao enviar evento de conversão.")
	default:
		if code == "" {
			code = "INTERNAL_ERROR"
		}
		writeErrorResponse(w, http.StatusInternalServerError, code, "Erro interno do servidor.")
	}
}
