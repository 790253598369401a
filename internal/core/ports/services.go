package ports

import (
	"context"

	"github.com/currconv/currency_conversion_app/internal/dto"
	"github.com/currconv/currency_conversion_app/internal/models"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade is the service interface consumed by transaction
// handlers.
type ConversionSvcFacade interface {
	// Convert runs the full pipeline: validation, rate resolution, precision
	// computation and persistence. Rejections carry an apperrors.Rejection.
	Convert(ctx context.Context, customerID string, req dto.ConvertRequest) (*models.Transaction, error)

	// ListTransactions returns the customer's own transactions, newest first.
	ListTransactions(ctx context.Context, customerID string) ([]models.Transaction, error)

	// GetTransaction returns one of the customer's own transactions.
	GetTransaction(ctx context.Context, customerID, transactionID string) (*models.Transaction, error)
}

// CurrencySvcFacade exposes the available-currency snapshot.
type CurrencySvcFacade interface {
	// ListAvailableCurrencies returns the latest rate table for the snapshot
	// base currency, served from cache when an unexpired snapshot exists.
	ListAvailableCurrencies(ctx context.Context) (map[string]decimal.Decimal, error)
}

// PreferenceSvcFacade manages per-user conversion preferences.
type PreferenceSvcFacade interface {
	// GetOrCreatePreferences returns the user's preference, creating the
	// default row on first access.
	GetOrCreatePreferences(ctx context.Context, userID string) (*models.UserPreference, error)

	// UpdatePreferences replaces both preference fields atomically after
	// validating the selection against the available-currency snapshot.
	UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferenceRequest) (*models.UserPreference, error)
}

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	Conversion ConversionSvcFacade
	Currency   CurrencySvcFacade
	Preference PreferenceSvcFacade
}
