package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one recorded currency conversion. Monetary fields are
// finalized by the conversion service before the row is written and are
// never mutated afterwards.
type Transaction struct {
	TransactionID  string          `json:"transactionID"` // UUID, immutable
	CustomerID     string          `json:"customerID"`
	InputAmount    decimal.Decimal `json:"inputAmount"`
	InputCurrency  string          `json:"inputCurrency"` // 3-letter code, uppercase
	OutputAmount   decimal.Decimal `json:"outputAmount"`  // inputAmount * rate, quantized
	OutputCurrency string          `json:"outputCurrency"`
	CreatedAt      time.Time       `json:"createdAt"` // set once at persistence
}
