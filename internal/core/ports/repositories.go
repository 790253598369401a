package ports

import (
	"context"

	"github.com/currconv/currency_conversion_app/internal/models"
)

// TransactionRepository persists finalized conversion transactions.
type TransactionRepository interface {
	// SaveTransaction persists a new transaction. Rows are never updated.
	SaveTransaction(ctx context.Context, txn models.Transaction) error

	// ListTransactionsByCustomer retrieves all transactions owned by a customer,
	// newest first.
	ListTransactionsByCustomer(ctx context.Context, customerID string) ([]models.Transaction, error)

	// FindTransactionByID retrieves a single transaction.
	// Returns apperrors.ErrNotFound when no row exists.
	FindTransactionByID(ctx context.Context, transactionID string) (*models.Transaction, error)
}

// PreferenceRepository persists per-user conversion preferences.
type PreferenceRepository interface {
	// FindUserPreference retrieves the preference row for a user.
	// Returns apperrors.ErrNotFound when the user has none yet.
	FindUserPreference(ctx context.Context, userID string) (*models.UserPreference, error)

	// SaveUserPreference inserts or fully replaces a user's preference.
	SaveUserPreference(ctx context.Context, pref models.UserPreference) error
}
