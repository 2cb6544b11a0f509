package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billforge/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) List(ctx context.Context) ([]domain.SavedInvoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.SavedInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Update(ctx context.Context, inv *domain.SavedInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
