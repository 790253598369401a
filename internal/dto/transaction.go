package dto

import (
	"time"

	"github.com/currconv/currency_conversion_app/internal/models"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the data needed to record a currency conversion.
// No binding tags: missing or unparseable fields reach the service layer so
// the response carries a specific rejection reason instead of a bind error.
type ConvertRequest struct {
	InputCurrency  string `json:"input_currency"`
	OutputCurrency string `json:"output_currency"`
	InputAmount    string `json:"input_amount"`
}

// TransactionResponse defines the data returned for a recorded transaction.
type TransactionResponse struct {
	TransactionID  string          `json:"transactionID"`
	CustomerID     string          `json:"customerID"`
	InputAmount    decimal.Decimal `json:"inputAmount"`
	InputCurrency  string          `json:"inputCurrency"`
	OutputAmount   decimal.Decimal `json:"outputAmount"`
	OutputCurrency string          `json:"outputCurrency"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a models.Transaction to its response DTO.
func ToTransactionResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		CustomerID:     txn.CustomerID,
		InputAmount:    txn.InputAmount,
		InputCurrency:  txn.InputCurrency,
		OutputAmount:   txn.OutputAmount,
		OutputCurrency: txn.OutputCurrency,
		CreatedAt:      txn.CreatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to response DTOs.
func ToListTransactionResponse(txns []models.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
