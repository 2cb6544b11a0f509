package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNumberingService is a mock implementation of service.NumberingService.
type MockNumberingService struct {
	mock.Mock
}

func (m *MockNumberingService) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
