package drafter

import (
	"fmt"

	"billforge/internal/config"
	"billforge/internal/port"
)

// ProviderFactory is a function that creates an InvoiceDrafter from a provider config.
type ProviderFactory func(cfg *config.DrafterProviderConfig) (port.InvoiceDrafter, error)

// registry of drafter provider factories, populated explicitly via
// RegisterProvider at wiring time.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a drafter provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewDrafter creates an InvoiceDrafter from a provider config using the registered factory.
func NewDrafter(cfg *config.DrafterProviderConfig) (port.InvoiceDrafter, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown drafter provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
