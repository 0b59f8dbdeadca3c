package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-conversions/internal/entity"
	"github.com/xavierca1/ligue-conversions/internal/infra/integration/meta"
	"github.com/xavierca1/ligue-conversions/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) UpsertBatch(ctx context.Context, leads []*entity.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByContact(ctx context.Context, email, phone string) (*entity.Lead, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, externalLeadID string) (*entity.Lead, error) {
	args := m.Called(ctx, externalLeadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) SendEvent(ctx context.Context, event entity.ConversionEvent) (*meta.Ack, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meta.Ack), args.Error(1)
}

type MockFailedPublisher struct {
	mock.Mock
}

func (m *MockFailedPublisher) PublishFailedConversion(ctx context.Context, payload queue.FailedConversionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// fakeAlerts avisa pelo canal quando o alerta (enviado em goroutine) chega.
type fakeAlerts struct {
	sent chan string
}

func newFakeAlerts() *fakeAlerts {
	return &fakeAlerts{sent: make(chan string, 1)}
}

func (f *fakeAlerts) SendAlert(subject, body string) error {
	f.sent <- subject
	return nil
}
