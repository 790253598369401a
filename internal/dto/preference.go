package dto

import (
	"time"

	"github.com/currconv/currency_conversion_app/internal/models"
)

// UpdatePreferenceRequest defines a full replacement of a user's conversion
// preferences. Both fields are validated together; a rejection leaves the
// stored preference untouched. DecimalPrecision is a pointer so an omitted
// value falls back to the default precision rather than zero.
type UpdatePreferenceRequest struct {
	PreferredCurrencies []string `json:"preferred_currencies" binding:"required"`
	DecimalPrecision    *int     `json:"decimal_precision"`
}

// PreferenceResponse defines the data returned for a user preference.
type PreferenceResponse struct {
	PreferredCurrencies []string  `json:"preferredCurrencies"`
	DecimalPrecision    int       `json:"decimalPrecision"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
}

// ToPreferenceResponse converts a models.UserPreference to its response DTO.
func ToPreferenceResponse(pref *models.UserPreference) PreferenceResponse {
	return PreferenceResponse{
		PreferredCurrencies: pref.PreferredCurrencies,
		DecimalPrecision:    pref.DecimalPrecision,
		LastUpdatedAt:       pref.LastUpdatedAt,
	}
}
