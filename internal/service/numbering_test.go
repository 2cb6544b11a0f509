package service_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billforge/internal/domain"
	"billforge/internal/service"
	"billforge/mocks"
)

func savedWithNumber(number string) domain.SavedInvoice {
	return domain.SavedInvoice{ID: "id-" + number, Invoice: domain.Invoice{InvoiceNumber: number}}
}

func TestNumbering_SeedsWhenEmpty(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	repo.On("List", mock.Anything).Return([]domain.SavedInvoice{}, nil)

	svc := service.NewNumberingService(repo)
	number, err := svc.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0001-25-26", number)
}

func TestNumbering_IncrementsSequence(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	repo.On("List", mock.Anything).Return([]domain.SavedInvoice{
		savedWithNumber("0007-25-26"),
		savedWithNumber("0006-25-26"),
	}, nil)

	svc := service.NewNumberingService(repo)
	number, err := svc.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0008-25-26", number)
}

func TestNumbering_CarriesYearTokensVerbatim(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	repo.On("List", mock.Anything).Return([]domain.SavedInvoice{
		savedWithNumber("0099-24-25"),
	}, nil)

	svc := service.NewNumberingService(repo)
	number, err := svc.Next(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "0100-24-25", number)
}

func TestNumbering_MalformedFallsBackToTimestamp(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	repo.On("List", mock.Anything).Return([]domain.SavedInvoice{
		savedWithNumber("no-dash-format-here-at-all"),
	}, nil)

	svc := service.NewNumberingService(repo)
	number, err := svc.Next(context.Background())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d+$`), number)
}

func TestNumbering_NonNumericSequenceFallsBack(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	repo.On("List", mock.Anything).Return([]domain.SavedInvoice{
		savedWithNumber("ABCD-25-26"),
	}, nil)

	svc := service.NewNumberingService(repo)
	number, err := svc.Next(context.Background())

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d+$`), number)
}

func TestNumbering_RepoErrorPropagates(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	repo.On("List", mock.Anything).Return(nil, assert.AnError)

	svc := service.NewNumberingService(repo)
	_, err := svc.Next(context.Background())

	assert.Error(t, err)
}
