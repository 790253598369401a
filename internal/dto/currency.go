package dto

import (
	"sort"

	"github.com/shopspring/decimal"
)

// AvailableCurrenciesResponse lists the currencies the rate provider
// currently quotes, with their latest USD-based rates.
type AvailableCurrenciesResponse struct {
	BaseCurrency    string                     `json:"baseCurrency"`
	ConversionRates map[string]decimal.Decimal `json:"conversionRates"`
	Currencies      []string                   `json:"currencies"`
}

// ToAvailableCurrenciesResponse builds the response DTO from a rate table,
// with the currency codes sorted for a stable listing.
func ToAvailableCurrenciesResponse(base string, rates map[string]decimal.Decimal) AvailableCurrenciesResponse {
	codes := make([]string, 0, len(rates))
	for code := range rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return AvailableCurrenciesResponse{
		BaseCurrency:    base,
		ConversionRates: rates,
		Currencies:      codes,
	}
}
