package main

import (
	"context"
	"fmt"
	"log"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/drafter"
	"billforge/internal/drafter/gemini"
	"billforge/internal/drafter/openai"
	"billforge/internal/email/noop"
	"billforge/internal/email/ses"
	"billforge/internal/handler"
	"billforge/internal/port"
	"billforge/internal/repository/memory"
	"billforge/internal/repository/postgres"
	redisrepo "billforge/internal/repository/redis"
	"billforge/internal/router"
	"billforge/internal/service"
	s3storage "billforge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repo, err := newInvoiceRepo(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize invoice store: %w", err)
	}

	invoiceDrafter, err := newDrafter(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize drafter: %w", err)
	}

	emailSender, err := newEmailSender(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	numberingSvc := service.NewNumberingService(repo)
	sessionSvc := service.NewSessionService(repo, numberingSvc, cfg.Seller)
	invoiceSvc := service.NewInvoiceService(repo, emailSender, storage, cfg.S3)

	// Start with a fresh editable invoice so the first GET /session is
	// already populated.
	if err := sessionSvc.New(context.Background()); err != nil {
		return fmt.Errorf("failed to seed session: %w", err)
	}

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc, invoiceDrafter)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, numberingSvc)
	healthH := handler.NewHealthHandler(repo)

	// Setup router
	r := router.Setup(sessionH, invoiceH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s (store backend: %s)", cfg.Server.Port, cfg.Store.Backend)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newInvoiceRepo(cfg *config.Config) (port.InvoiceRepository, error) {
	switch domain.StoreBackend(cfg.Store.Backend) {
	case domain.StoreMemory:
		return memory.NewInvoiceRepo(), nil
	case domain.StoreRedis:
		client, err := redisrepo.NewClient(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisrepo.NewInvoiceRepo(client, cfg.Store.Key), nil
	case domain.StorePostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, err
		}
		return postgres.NewInvoiceRepo(db, cfg.Store.Key), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}

// newDrafter builds the drafter chain: primary provider, with the
// secondary as a rate-limit fallback when configured. Returns nil when no
// API key is set; the draft endpoint then reports itself disabled.
func newDrafter(cfg *config.Config) (port.InvoiceDrafter, error) {
	drafter.RegisterProvider("gemini", func(c *config.DrafterProviderConfig) (port.InvoiceDrafter, error) {
		return gemini.NewDrafter(c), nil
	})
	drafter.RegisterProvider("openai", func(c *config.DrafterProviderConfig) (port.InvoiceDrafter, error) {
		return openai.NewDrafter(c), nil
	})

	if cfg.Drafter.Primary.APIKey == "" {
		log.Println("no drafter API key configured; AI draft endpoint disabled")
		return nil, nil
	}

	primary, err := drafter.NewDrafter(&cfg.Drafter.Primary)
	if err != nil {
		return nil, err
	}

	drafters := []port.InvoiceDrafter{primary}
	names := []string{cfg.Drafter.Primary.Provider}

	if sec := cfg.Drafter.SecondaryConfig(); sec != nil && sec.APIKey != "" {
		secondary, err := drafter.NewDrafter(sec)
		if err != nil {
			return nil, err
		}
		drafters = append(drafters, secondary)
		names = append(names, sec.Provider)
	}

	return drafter.NewFallbackDrafter(drafters, names), nil
}

func newEmailSender(cfg *config.Config) (port.EmailSender, error) {
	switch cfg.Email.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
	case "noop", "":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Email.Provider)
	}
}
