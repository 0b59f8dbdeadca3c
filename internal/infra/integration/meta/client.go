package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xavierca1/ligue-conversions/internal/entity"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v24.0"
)

type Client struct {
	baseURL       string
	apiVersion    string
	pixelID       string
	accessToken   string
	testEventCode string
	http          *http.Client
}

type Options struct {
	BaseURL       string
	APIVersion    string
	PixelID       string
	AccessToken   string
	TestEventCode string
	Timeout       time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIVersion == "" {
		opts.APIVersion = DefaultAPIVersion
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		apiVersion:    opts.APIVersion,
		pixelID:       opts.PixelID,
		accessToken:   opts.AccessToken,
		testEventCode: opts.TestEventCode,
		http:          &http.Client{Timeout: opts.Timeout},
	}
}

// Configured informa se pixel e token estão presentes.
func (c *Client) Configured() bool {
	return c.pixelID != "" && c.accessToken != ""
}

// SendEvent envia um único evento (lote de um) para /{pixel}/events.
// Sem retentativa: quem chama decide o que fazer com o erro.
func (c *Client) SendEvent(ctx context.Context, event entity.ConversionEvent) (*Ack, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	payload := eventsRequest{
		Data:          []entity.ConversionEvent{event},
		TestEventCode: c.testEventCode,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar json do evento: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.eventsURL(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &APIError{Err: withoutURL(err)}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		// timeout do client também cai aqui
		return nil, &APIError{Err: withoutURL(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var ack Ack
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("erro ao ler resposta: %w", err)}
	}

	return &ack, nil
}

func (c *Client) eventsURL() string {
	q := url.Values{}
	q.Set("access_token", c.accessToken)
	return fmt.Sprintf("%s/%s/%s/events?%s", c.baseURL, c.apiVersion, url.PathEscape(c.pixelID), q.Encode())
}

// withoutURL descarta o *url.Error, cuja mensagem traz a URL com o access_token.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s /events: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LigueConversions/1.0")
}
