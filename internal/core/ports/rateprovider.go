package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider fetches exchange rates from the external rate source. Calls
// are synchronous and bounded by the client's timeout. Failures are typed:
// transport or non-2xx problems surface as apperrors.ErrProviderUnavailable
// class rejections, a reachable-but-malformed response as
// apperrors.ErrProviderDataInvalid. No retries happen at this layer.
type RateProvider interface {
	// FetchPairRate returns the current from→to conversion rate. Both codes
	// are uppercased before being placed in the request URL.
	FetchPairRate(ctx context.Context, from, to string) (decimal.Decimal, error)

	// FetchLatestRates returns the full latest-rate table for a base currency.
	FetchLatestRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}
