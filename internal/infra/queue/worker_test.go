package queue_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/infra/queue"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendEvent(ctx context.Context, event entity.ConversionEvent) (*meta.Ack, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meta.Ack), args.Error(1)
}

type fakeAck struct {
	acked, nacked, requeue bool
}

func (f *fakeAck) Ack(multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(multiple, requeue bool) error {
	f.nacked = true
	f.requeue = requeue
	return nil
}

func encode(t *testing.T, p queue.FailedConversionPayload) []byte {
	t.Helper()
	body, err := json.Marshal(p)
	require.NoError(t, err)
	return body
}

func TestWorkerAcksOnSuccessfulResend(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendEvent", mock.Anything, mock.MatchedBy(func(e entity.ConversionEvent) bool {
		return e.EventID == "evt-9"
	})).Return(&meta.Ack{EventsReceived: 1, FBTraceID: "t"}, nil)
	ack := &fakeAck{}

	w := queue.NewWorker(nil, sender)
	w.HandleDelivery(context.Background(), encode(t, samplePayload()), ack)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	sender.AssertNumberOfCalls(t, "SendEvent", 1)
}

func TestWorkerDeadLettersOnSecondFailure(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendEvent", mock.Anything, mock.Anything).Return(nil, errors.New("still down"))
	ack := &fakeAck{}

	queue.NewWorker(nil, sender).HandleDelivery(context.Background(), encode(t, samplePayload()), ack)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	sender.AssertNumberOfCalls(t, "SendEvent", 1)
}

func TestWorkerRejectsMalformedMessage(t *testing.T) {
	sender := new(MockSender)
	ack := &fakeAck{}

	queue.NewWorker(nil, sender).HandleDelivery(context.Background(), []byte("{"), ack)

	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	sender.AssertNotCalled(t, "SendEvent", mock.Anything, mock.Anything)
}
