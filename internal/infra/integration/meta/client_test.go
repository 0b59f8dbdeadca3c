package meta_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
)

func sampleEvent() entity.ConversionEvent {
	return entity.ConversionEvent{
		EventName:    "Lead",
		EventTime:    1700000000,
		EventID:      "evt-1",
		ActionSource: entity.ActionSourceSystemGenerated,
		UserData:     entity.UserData{Email: []string{"abc"}, LeadID: "L1"},
		CustomData:   entity.CustomData{EventSource: "crm", LeadEventSource: "Greenn Sales"},
	}
}

func TestSendEventPostsSingletonBatch(t *testing.T) {
	var gotPath, gotToken string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"events_received":1,"messages":[],"fbtrace_id":"AbC123"}`))
	}))
	defer srv.Close()

	client := meta.NewClient(meta.Options{
		BaseURL:       srv.URL,
		PixelID:       "pixel-42",
		AccessToken:   "tok&en",
		TestEventCode: "TEST123",
	})

	ack, err := client.SendEvent(context.Background(), sampleEvent())

	require.NoError(t, err)
	assert.Equal(t, 1, ack.EventsReceived)
	assert.Equal(t, "AbC123", ack.FBTraceID)
	assert.Equal(t, "/v24.0/pixel-42/events", gotPath)
	assert.Equal(t, "tok&en", gotToken)
	assert.Equal(t, "TEST123", gotBody["test_event_code"])

	data, ok := gotBody["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)
	event := data[0].(map[string]any)
	assert.Equal(t, "Lead", event["event_name"])
	assert.Equal(t, "system_generated", event["action_source"])
	userData := event["user_data"].(map[string]any)
	assert.Equal(t, "L1", userData["lead_id"])
	assert.NotContains(t, userData, "ph")
}

func TestSendEventNotConfiguredSkipsNetwork(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	for _, opts := range []meta.Options{
		{BaseURL: srv.URL, AccessToken: "tok"},
		{BaseURL: srv.URL, PixelID: "pixel"},
	} {
		client := meta.NewClient(opts)
		assert.False(t, client.Configured())

		_, err := client.SendEvent(context.Background(), sampleEvent())
		assert.ErrorIs(t, err, meta.ErrNotConfigured)
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestSendEventAPIErrorPreservesBody(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","code":190}}`))
	}))
	defer srv.Close()

	client := meta.NewClient(meta.Options{BaseURL: srv.URL, PixelID: "p", AccessToken: "t"})
	_, err := client.SendEvent(context.Background(), sampleEvent())

	var apiErr *meta.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid OAuth access token.")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "não pode haver retentativa")
}

func TestSendEventTimeoutIsAPIError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := meta.NewClient(meta.Options{
		BaseURL:     srv.URL,
		PixelID:     "p",
		AccessToken: "SECRET-TOKEN-123",
		Timeout:     50 * time.Millisecond,
	})

	_, err := client.SendEvent(context.Background(), sampleEvent())

	var apiErr *meta.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Error(t, apiErr.Err)
	assert.NotContains(t, err.Error(), "SECRET-TOKEN-123")
}

func TestSendEventNetworkErrorDoesNotLeakToken(t *testing.T) {
	client := meta.NewClient(meta.Options{
		BaseURL:     "http://127.0.0.1:1",
		PixelID:     "p",
		AccessToken: "SECRET-TOKEN-123",
		Timeout:     2 * time.Second,
	})

	_, err := client.SendEvent(context.Background(), sampleEvent())

	var apiErr *meta.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.NotContains(t, err.Error(), "SECRET-TOKEN-123")
	assert.NotContains(t, err.Error(), "access_token")

	var urlErr *url.Error
	assert.False(t, errors.As(err, &urlErr), "*url.Error carrega a URL completa")
}

func TestSendEventInvalidSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>proxy</html>`))
	}))
	defer srv.Close()

	client := meta.NewClient(meta.Options{BaseURL: srv.URL + "/", PixelID: "p", AccessToken: "t"})
	_, err := client.SendEvent(context.Background(), sampleEvent())

	var apiErr *meta.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "<html>proxy</html>", apiErr.Body)
}
