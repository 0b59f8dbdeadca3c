package meta

import (
	"errors"
	"fmt"

	"github.com/xavierca1/ligue-conversions/internal/entity"
)

var ErrNotConfigured = errors.New("conversions api: PIXEL_ID ou FB_ACCESS_TOKEN não configurados")

type eventsRequest struct {
	Data          []entity.ConversionEvent `json:"data"`
	TestEventCode string                   `json:"test_event_code,omitempty"`
}

// Ack é a resposta de sucesso da Conversions API.
type Ack struct {
	EventsReceived int      `json:"events_received"`
	Messages       []string `json:"messages"`
	FBTraceID      string   `json:"fbtrace_id"`
}

// APIError representa falha de rede ou resposta não-2xx. Body guarda a resposta da API para diagnóstico.
type APIError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("conversions api: %v", e.Err)
	}
	return fmt.Sprintf("conversions api rejeitou (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
