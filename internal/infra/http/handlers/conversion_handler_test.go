package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-conversions/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/usecase"
)

type MockSendConversion struct {
	mock.Mock
}

func (m *MockSendConversion) Execute(ctx context.Context, input usecase.SendConversionInput) (*usecase.SendConversionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SendConversionOutput), args.Error(1)
}

func postWebhook(t *testing.T, h *handlers.ConversionHandler, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.Handle(w, req)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return w, resp
}

func TestConversionHandlerDelivered(t *testing.T) {
	uc := new(MockSendConversion)
	uc.On("Execute", mock.Anything, usecase.SendConversionInput{
		Stage: "novos",
		Lead:  &usecase.ContactInput{Email: "a@x.com"},
	}).Return(&usecase.SendConversionOutput{
		Status:    usecase.StatusDelivered,
		EventName: "Lead",
		LeadID:    "L1",
		Msg:       "Evento de conversão enviado com sucesso!",
	}, nil)

	w, resp := postWebhook(t, handlers.NewConversionHandler(uc), `{"tag":{"name":"novos"},"lead":{"email":"a@x.com"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "DELIVERED", resp["status"])
	assert.Equal(t, "Lead", resp["event_name"])
	assert.Equal(t, "L1", resp["lead_id"])
	uc.AssertExpectations(t)
}

func TestConversionHandlerWithoutTagPassesEmptyStage(t *testing.T) {
	uc := new(MockSendConversion)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.SendConversionInput) bool {
		return in.Stage == "" && in.Lead != nil
	})).Return(&usecase.SendConversionOutput{Status: usecase.StatusNoEventName, Msg: "sem nome de evento"}, nil)

	w, resp := postWebhook(t, handlers.NewConversionHandler(uc), `{"lead":{"phone":"11999999999"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "NO_EVENT_NAME", resp["status"])
}

func TestConversionHandlerNotFoundIs200(t *testing.T) {
	uc := new(MockSendConversion)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&usecase.SendConversionOutput{
		Status: usecase.StatusNotFound,
		Msg:    "ID do Facebook não encontrado.",
	}, nil)

	w, resp := postWebhook(t, handlers.NewConversionHandler(uc), `{"tag":{"name":"ATENDEU"},"lead":{"email":"ghost@x.com"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "NOT_FOUND", resp["status"])
}

func TestConversionHandlerErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing fields", &usecase.DomainError{Code: usecase.CodeMissingFields, Message: "Dados do lead ausentes."}, http.StatusBadRequest, "MISSING_FIELDS"},
		{"missing identity", &usecase.DomainError{Code: usecase.CodeMissingIdentity, Message: "E-mail ou telefone ausentes."}, http.StatusBadRequest, "MISSING_IDENTITY"},
		{"configuration", &usecase.TechnicalError{Code: usecase.CodeConfigurationError, Err: meta.ErrNotConfigured}, http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"dispatch", &usecase.TechnicalError{Code: usecase.CodeDispatchError, Err: &meta.APIError{StatusCode: 400, Body: "{}"}}, http.StatusInternalServerError, "DISPATCH_ERROR"},
		{"store", &usecase.TechnicalError{Code: usecase.CodeStoreError}, http.StatusInternalServerError, "STORE_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockSendConversion)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			w, resp := postWebhook(t, handlers.NewConversionHandler(uc), `{"tag":{"name":"ATENDEU"},"lead":{}}`)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tc.code, resp["error"])
		})
	}
}

func TestConversionHandlerInvalidJSON(t *testing.T) {
	uc := new(MockSendConversion)

	w, resp := postWebhook(t, handlers.NewConversionHandler(uc), `{"tag":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", resp["error"])
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func conversionEventLabels(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	labels := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "conversions_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "event" {
					labels[lp.GetValue()] = true
				}
			}
		}
	}
	return labels
}

func TestConversionHandlerFreeStageDoesNotBecomeMetricLabel(t *testing.T) {
	uc := new(MockSendConversion)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&usecase.SendConversionOutput{
		Status:    usecase.StatusDelivered,
		EventName: "Etapa Livre 8f3a",
		LeadID:    "L1",
	}, nil)

	w, resp := postWebhook(t, handlers.NewConversionHandler(uc), `{"tag":{"name":"Etapa Livre 8f3a"},"lead":{"email":"a@x.com"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Etapa Livre 8f3a", resp["event_name"])

	labels := conversionEventLabels(t)
	assert.False(t, labels["Etapa Livre 8f3a"])
	assert.True(t, labels["other"])
}
