package drafter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billforge/internal/config"
	"billforge/internal/domain"
	"billforge/internal/drafter"
	"billforge/internal/port"
)

// stubDrafter is a minimal InvoiceDrafter for fallback tests.
type stubDrafter struct {
	out   *port.DraftOutput
	err   error
	calls int
}

func (s *stubDrafter) Draft(_ context.Context, _ port.DraftInput) (*port.DraftOutput, error) {
	s.calls++
	return s.out, s.err
}

func draftOutput(model string) *port.DraftOutput {
	return &port.DraftOutput{Draft: &domain.InvoiceDraft{}, ModelUsed: model}
}

func TestFallback_PrimarySucceeds(t *testing.T) {
	primary := &stubDrafter{out: draftOutput("primary")}
	secondary := &stubDrafter{out: draftOutput("secondary")}

	f := drafter.NewFallbackDrafter([]port.InvoiceDrafter{primary, secondary}, []string{"a", "b"})
	out, err := f.Draft(context.Background(), port.DraftInput{})

	require.NoError(t, err)
	assert.Equal(t, "primary", out.ModelUsed)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallback_FallsThroughOnError(t *testing.T) {
	primary := &stubDrafter{err: errors.New("boom")}
	secondary := &stubDrafter{out: draftOutput("secondary")}

	f := drafter.NewFallbackDrafter([]port.InvoiceDrafter{primary, secondary}, []string{"a", "b"})
	out, err := f.Draft(context.Background(), port.DraftInput{})

	require.NoError(t, err)
	assert.Equal(t, "secondary", out.ModelUsed)
}

func TestFallback_RateLimitOpensCircuit(t *testing.T) {
	primary := &stubDrafter{err: drafter.NewRateLimitError("a", errors.New("429"), 60)}
	secondary := &stubDrafter{out: draftOutput("secondary")}

	f := drafter.NewFallbackDrafter([]port.InvoiceDrafter{primary, secondary}, []string{"a", "b"})

	out, err := f.Draft(context.Background(), port.DraftInput{})
	require.NoError(t, err)
	assert.Equal(t, "secondary", out.ModelUsed)
	assert.Equal(t, 1, primary.calls)

	// Circuit is open: primary is skipped on the next call.
	_, err = f.Draft(context.Background(), port.DraftInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestFallback_AllRateLimited(t *testing.T) {
	primary := &stubDrafter{err: drafter.NewRateLimitError("a", errors.New("429"), 60)}
	secondary := &stubDrafter{err: drafter.NewRateLimitError("b", errors.New("429"), 30)}

	f := drafter.NewFallbackDrafter([]port.InvoiceDrafter{primary, secondary}, []string{"a", "b"})
	_, err := f.Draft(context.Background(), port.DraftInput{})

	var rlErr *drafter.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallback_AllFail(t *testing.T) {
	primary := &stubDrafter{err: errors.New("boom one")}
	secondary := &stubDrafter{err: errors.New("boom two")}

	f := drafter.NewFallbackDrafter([]port.InvoiceDrafter{primary, secondary}, []string{"a", "b"})
	_, err := f.Draft(context.Background(), port.DraftInput{})

	assert.ErrorContains(t, err, "all drafters failed")
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	drafter.RegisterProvider("test-provider", func(cfg *config.DrafterProviderConfig) (port.InvoiceDrafter, error) {
		return &stubDrafter{out: draftOutput(cfg.DefaultModel)}, nil
	})

	d, err := drafter.NewDrafter(&config.DrafterProviderConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	assert.NoError(t, err)
	assert.NotNil(t, d)
}

func TestFactory_UnknownProvider(t *testing.T) {
	d, err := drafter.NewDrafter(&config.DrafterProviderConfig{Provider: "nonexistent-xyz"})

	assert.Nil(t, d)
	assert.ErrorContains(t, err, "unknown drafter provider")
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 30, drafter.ParseRetryAfterHeader("30"))
	assert.Equal(t, 0, drafter.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, drafter.ParseRetryAfterHeader("Wed, 21 Oct 2026 07:28:00 GMT"))
}
