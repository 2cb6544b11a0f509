// Package redis provides a Redis-backed InvoiceRepository. The whole
// invoice list is stored as one JSON blob under a single key, mirroring
// the browser localStorage layout the store replaced, so every write is a
// read-modify-write of the full list.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/port"
)

type invoiceRepo struct {
	client *redis.Client
	key    string
}

// NewClient creates a Redis client from config and verifies connectivity.
func NewClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// NewInvoiceRepo creates a Redis-backed InvoiceRepository storing the
// invoice list under the given key.
func NewInvoiceRepo(client *redis.Client, key string) port.InvoiceRepository {
	return &invoiceRepo{client: client, key: key}
}

func (r *invoiceRepo) load(ctx context.Context) ([]domain.SavedInvoice, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.load: %w", err)
	}

	var invoices []domain.SavedInvoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		return nil, fmt.Errorf("invoiceRepo.load: decoding stored list: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) store(ctx context.Context, invoices []domain.SavedInvoice) error {
	raw, err := json.Marshal(invoices)
	if err != nil {
		return fmt.Errorf("invoiceRepo.store: encoding list: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("invoiceRepo.store: %w", err)
	}
	return nil
}

func (r *invoiceRepo) List(ctx context.Context) ([]domain.SavedInvoice, error) {
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortInvoicesByNumberDesc(invoices)
	return invoices, nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id string) (*domain.SavedInvoice, error) {
	invoices, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			return &invoices[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.SavedInvoice) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	invoices = append(invoices, *inv)
	return r.store(ctx, invoices)
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.SavedInvoice) error {
	invoices, err := r.load(ctx)
	if err != nil {
		return err
	}

	for i := range invoices {
		if invoices[i].ID == inv.ID {
			inv.CreatedAt = invoices[i].CreatedAt
			inv.UpdatedAt = time.Now().UTC()
			invoices[i] = *inv
			return r.store(ctx, invoices)
		}
	}
	return domain.ErrNotFound
}
