package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/currconv/currency_conversion_app/internal/dto"
	"github.com/currconv/currency_conversion_app/internal/models"
)

// RequiredSelectionCount is how many output currencies a user subscribes to
// once preferences are configured.
const RequiredSelectionCount = 3

// PreferenceService manages per-user conversion preferences. Updates are
// all-or-nothing: a single invalid field rejects the whole request and the
// stored preference is left untouched.
type PreferenceService struct {
	prefRepo ports.PreferenceRepository
	currency ports.CurrencySvcFacade
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(prefRepo ports.PreferenceRepository, currency ports.CurrencySvcFacade) *PreferenceService {
	return &PreferenceService{
		prefRepo: prefRepo,
		currency: currency,
	}
}

// GetOrCreatePreferences returns the user's preference row, creating a
// default one (no subscriptions, default precision) on first access.
func (s *PreferenceService) GetOrCreatePreferences(ctx context.Context, userID string) (*models.UserPreference, error) {
	pref, err := s.prefRepo.FindUserPreference(ctx, userID)
	if err == nil {
		return pref, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get preferences in service: %w", err)
	}

	now := time.Now().UTC()
	fresh := models.UserPreference{
		UserID:              userID,
		PreferredCurrencies: []string{},
		DecimalPrecision:    DefaultPrecision,
		CreatedAt:           now,
		LastUpdatedAt:       now,
	}
	if err := s.prefRepo.SaveUserPreference(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to create default preferences in service: %w", err)
	}
	return &fresh, nil
}

// UpdatePreferences validates the selected currencies against the
// available-currency snapshot and the precision against its allowed range,
// then replaces both fields in one write.
func (s *PreferenceService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferenceRequest) (*models.UserPreference, error) {
	if len(req.PreferredCurrencies) != RequiredSelectionCount {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonSelectionCount,
			fmt.Sprintf("you must choose exactly %d currencies", RequiredSelectionCount))
	}
	// An omitted precision falls back to the default instead of zero.
	precision := DefaultPrecision
	if req.DecimalPrecision != nil {
		precision = *req.DecimalPrecision
	}
	if precision < MinPrecision || precision > MaxPrecision {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonPrecisionOutOfRange,
			fmt.Sprintf("decimal precision must be between %d and %d", MinPrecision, MaxPrecision))
	}

	available, err := s.currency.ListAvailableCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	selected := make([]string, len(req.PreferredCurrencies))
	var invalid []string
	for i, code := range req.PreferredCurrencies {
		code = strings.ToUpper(strings.TrimSpace(code))
		if _, ok := available[code]; !ok {
			invalid = append(invalid, code)
		}
		selected[i] = code
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonInvalidSelection,
			"invalid currency selections: "+strings.Join(invalid, ", "))
	}

	current, err := s.GetOrCreatePreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := models.UserPreference{
		UserID:              userID,
		PreferredCurrencies: selected,
		DecimalPrecision:    precision,
		CreatedAt:           current.CreatedAt,
		LastUpdatedAt:       time.Now().UTC(),
	}
	if err := s.prefRepo.SaveUserPreference(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update preferences in service: %w", err)
	}
	return &updated, nil
}
