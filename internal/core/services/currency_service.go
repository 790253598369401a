package services

import (
	"context"
	"errors"
	"time"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/shopspring/decimal"
)

// SnapshotBaseCurrency is the base for the available-currency snapshot.
const SnapshotBaseCurrency = "USD"

// CurrencyService serves the available-currency snapshot, cache-first with
// provider fallback under the same TTL policy as pair rates.
type CurrencyService struct {
	cache       ports.RateCache
	provider    ports.RateProvider
	snapshotTTL time.Duration
}

// NewCurrencyService creates a new CurrencyService. A non-positive
// snapshotTTL falls back to DefaultRateTTL.
func NewCurrencyService(cache ports.RateCache, provider ports.RateProvider, snapshotTTL time.Duration) *CurrencyService {
	if snapshotTTL <= 0 {
		snapshotTTL = DefaultRateTTL
	}
	return &CurrencyService{
		cache:       cache,
		provider:    provider,
		snapshotTTL: snapshotTTL,
	}
}

// ListAvailableCurrencies returns the latest rate table for
// SnapshotBaseCurrency, served from the cache when an unexpired snapshot
// exists and written through on fetch.
func (s *CurrencyService) ListAvailableCurrencies(ctx context.Context) (map[string]decimal.Decimal, error) {
	if rates, ok := s.cache.GetAvailable(ctx); ok {
		return rates, nil
	}

	rates, err := s.provider.FetchLatestRates(ctx, SnapshotBaseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrUpstream) {
			return nil, err
		}
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderUnavailable,
			"there was an issue fetching the list of available currencies")
	}
	s.cache.SetAvailable(ctx, rates, s.snapshotTTL)
	return rates, nil
}
