package services

import (
	"time"

	"github.com/currconv/currency_conversion_app/internal/core/ports"
)

// NewServiceContainer wires the service graph: the currency snapshot feeds
// preference validation, and preferences feed the conversion pipeline.
func NewServiceContainer(
	txnRepo ports.TransactionRepository,
	prefRepo ports.PreferenceRepository,
	cache ports.RateCache,
	provider ports.RateProvider,
	rateTTL time.Duration,
) *ports.ServiceContainer {
	container := &ports.ServiceContainer{}

	container.Currency = NewCurrencyService(cache, provider, rateTTL)
	container.Preference = NewPreferenceService(prefRepo, container.Currency)
	container.Conversion = NewConversionService(txnRepo, container.Preference, cache, provider, rateTTL)

	return container
}

// Compile-time interface checks.
var (
	_ ports.ConversionSvcFacade = (*ConversionService)(nil)
	_ ports.CurrencySvcFacade   = (*CurrencyService)(nil)
	_ ports.PreferenceSvcFacade = (*PreferenceService)(nil)
)
