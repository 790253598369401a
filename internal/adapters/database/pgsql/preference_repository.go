package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/currconv/currency_conversion_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPreferenceRepository implements ports.PreferenceRepository using pgxpool.
type PgxPreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository creates a new repository for user preference rows.
func NewPreferenceRepository(pool *pgxpool.Pool) *PgxPreferenceRepository {
	return &PgxPreferenceRepository{pool: pool}
}

// FindUserPreference retrieves the preference row for a user.
func (r *PgxPreferenceRepository) FindUserPreference(ctx context.Context, userID string) (*models.UserPreference, error) {
	query := `
		SELECT user_id, preferred_currencies, decimal_precision, created_at, last_updated_at
		FROM user_preferences
		WHERE user_id = $1;
	`
	var pref models.UserPreference
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&pref.UserID,
		&pref.PreferredCurrencies,
		&pref.DecimalPrecision,
		&pref.CreatedAt,
		&pref.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find preferences for user %s: %w", userID, err)
	}
	return &pref, nil
}

// SaveUserPreference inserts or fully replaces a user's preference row in a
// single statement, which keeps the currency/precision pair atomic.
func (r *PgxPreferenceRepository) SaveUserPreference(ctx context.Context, pref models.UserPreference) error {
	query := `
		INSERT INTO user_preferences (user_id, preferred_currencies, decimal_precision, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_currencies = EXCLUDED.preferred_currencies,
			decimal_precision = EXCLUDED.decimal_precision,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	_, err := r.pool.Exec(ctx, query,
		pref.UserID,
		pref.PreferredCurrencies,
		pref.DecimalPrecision,
		pref.CreatedAt,
		pref.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save preferences for user %s: %w", pref.UserID, err)
	}
	return nil
}

var _ ports.PreferenceRepository = (*PgxPreferenceRepository)(nil)
