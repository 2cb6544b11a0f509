package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billforge/internal/port"
)

// MockInvoiceDrafter is a mock implementation of port.InvoiceDrafter.
type MockInvoiceDrafter struct {
	mock.Mock
}

func (m *MockInvoiceDrafter) Draft(ctx context.Context, input port.DraftInput) (*port.DraftOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.DraftOutput), args.Error(1)
}
