package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/port"
	"billforge/internal/service"
	"billforge/mocks"
)

func savedInvoiceFixture() *domain.SavedInvoice {
	return &domain.SavedInvoice{
		ID:      "inv-1",
		Invoice: domain.Invoice{InvoiceNumber: "0007-25-26"},
		Seller:  domain.Party{Name: "Gift Plus", State: "Karnataka"},
		Customer: domain.Party{
			Name:  "Acme Traders",
			State: "Kerala",
		},
		LineItems: []domain.LineItem{
			{ID: "li-1", Description: "Mug", Quantity: 2, Rate: 150, TaxRate: 12},
		},
		SubTotal:   300,
		TaxTotal:   36,
		GrandTotal: 336,
	}
}

func TestInvoiceService_EmailSendsToRecipient(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(repo, sender, nil, config.S3Config{})

	inv := savedInvoiceFixture()
	repo.On("GetByID", mock.Anything, "inv-1").Return(inv, nil).Once()
	sender.On("SendInvoiceEmail", mock.Anything, "buyer@acme.in", "Acme Traders", inv).Return(nil).Once()

	err := svc.Email(context.Background(), "inv-1", "buyer@acme.in", "Acme Traders")

	require.NoError(t, err)
	repo.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestInvoiceService_EmailMissingInvoice(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(repo, sender, nil, config.S3Config{})

	repo.On("GetByID", mock.Anything, "nope").Return(nil, domain.ErrNotFound).Once()

	err := svc.Email(context.Background(), "nope", "buyer@acme.in", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	sender.AssertNotCalled(t, "SendInvoiceEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_EmailSenderFailure(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	sender := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(repo, sender, nil, config.S3Config{})

	repo.On("GetByID", mock.Anything, "inv-1").Return(savedInvoiceFixture(), nil).Once()
	sender.On("SendInvoiceEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()

	err := svc.Email(context.Background(), "inv-1", "buyer@acme.in", "")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestInvoiceService_RenderPDFArchivesWhenBucketConfigured(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	s3cfg := config.S3Config{Bucket: "billforge-archive", Prefix: "invoices", PresignExpiry: 900}
	svc := service.NewInvoiceService(repo, nil, storage, s3cfg)

	repo.On("GetByID", mock.Anything, "inv-1").Return(savedInvoiceFixture(), nil).Once()

	var uploaded port.UploadInput
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Run(func(args mock.Arguments) {
		uploaded = args.Get(1).(port.UploadInput)
	}).Return(&port.UploadOutput{Location: "s3://billforge-archive/x"}, nil).Once()
	storage.On("PresignGet", mock.Anything, "billforge-archive", "invoices/0007-25-26-inv-1.pdf", int64(900)).
		Return("https://signed.example/invoice.pdf", nil).Once()

	pdf, url, err := svc.RenderPDF(context.Background(), "inv-1", domain.CopyOriginal)

	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")
	assert.Equal(t, "https://signed.example/invoice.pdf", url)
	assert.Equal(t, "billforge-archive", uploaded.Bucket)
	assert.Equal(t, "invoices/0007-25-26-inv-1.pdf", uploaded.Key)
	assert.Equal(t, "application/pdf", uploaded.ContentType)
	storage.AssertExpectations(t)
}

func TestInvoiceService_RenderPDFArchiveFailureStillReturnsPDF(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	s3cfg := config.S3Config{Bucket: "billforge-archive", PresignExpiry: 900}
	svc := service.NewInvoiceService(repo, nil, storage, s3cfg)

	repo.On("GetByID", mock.Anything, "inv-1").Return(savedInvoiceFixture(), nil).Once()
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	pdf, url, err := svc.RenderPDF(context.Background(), "inv-1", domain.CopyOffice)

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Empty(t, url)
	storage.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_RenderPDFWithoutStorageSkipsArchive(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewInvoiceService(repo, nil, nil, config.S3Config{})

	repo.On("GetByID", mock.Anything, "inv-1").Return(savedInvoiceFixture(), nil).Once()

	pdf, url, err := svc.RenderPDF(context.Background(), "inv-1", domain.CopyDeliveryChallan)

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Empty(t, url)
}
