package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateCache is the shared TTL cache in front of the rate provider. Keys are
// directional: the A→B entry never answers a B→A lookup. An entry past its
// TTL is simply a miss; implementations expire passively. The cache is a
// performance layer only and must never change the correctness of a result.
type RateCache interface {
	// GetRate returns the cached rate for an uppercased from→to pair and
	// whether an unexpired entry was present.
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, bool)

	// SetRate stores a pair rate with the given TTL. The value and its expiry
	// are written atomically with respect to concurrent readers.
	SetRate(ctx context.Context, from, to string, rate decimal.Decimal, ttl time.Duration)

	// GetAvailable returns the cached available-currency snapshot. The
	// returned map is the caller's to mutate; implementations copy out.
	GetAvailable(ctx context.Context) (map[string]decimal.Decimal, bool)

	// SetAvailable stores the available-currency snapshot with the given TTL.
	SetAvailable(ctx context.Context, rates map[string]decimal.Decimal, ttl time.Duration)
}
