package drafter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"billforge/internal/port"
)

// circuitState tracks rate-limit backoff for a single drafter.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackDrafter tries drafters in order, skipping those with open circuits.
// It implements port.InvoiceDrafter.
type FallbackDrafter struct {
	drafters []port.InvoiceDrafter
	circuits []*circuitState
	names    []string
}

// NewFallbackDrafter creates a FallbackDrafter from an ordered list of drafters and their names.
func NewFallbackDrafter(drafters []port.InvoiceDrafter, names []string) *FallbackDrafter {
	circuits := make([]*circuitState, len(drafters))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackDrafter{
		drafters: drafters,
		circuits: circuits,
		names:    names,
	}
}

func (f *FallbackDrafter) Draft(ctx context.Context, input port.DraftInput) (*port.DraftOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, d := range f.drafters {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("drafter.FallbackDrafter: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := d.Draft(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("drafter.FallbackDrafter: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil {
		// All drafters were skipped due to open circuits
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all drafters rate limited"), int(retryAfter.Seconds()))
	}

	if allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all drafters rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all drafters failed: %w", lastErr)
}
