package models

import "time"

// UserPreference holds a user's conversion settings. Created lazily with
// defaults on first access; both fields are replaced together on update.
type UserPreference struct {
	UserID              string    `json:"userID"`
	PreferredCurrencies []string  `json:"preferredCurrencies"` // exactly 3 once configured
	DecimalPrecision    int       `json:"decimalPrecision"`    // fractional digits, [0,10]
	CreatedAt           time.Time `json:"createdAt"`
	LastUpdatedAt       time.Time `json:"lastUpdatedAt"`
}

// IsSubscribedTo reports whether code is one of the user's preferred output
// currencies.
func (p *UserPreference) IsSubscribedTo(code string) bool {
	for _, c := range p.PreferredCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
