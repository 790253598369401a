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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRateTTL is how long a fetched pair rate stays authoritative in the
// cache.
const DefaultRateTTL = time.Hour

// ConversionService runs the conversion pipeline: validate the request,
// resolve a rate cache-first with provider fallback, compute the output
// amount at the user's precision and persist the transaction. It is the
// single point where failures are classified; nothing leaves Convert as an
// unclassified rejection.
type ConversionService struct {
	txnRepo  ports.TransactionRepository
	prefs    ports.PreferenceSvcFacade
	cache    ports.RateCache
	provider ports.RateProvider
	policy   PrecisionPolicy
	rateTTL  time.Duration
}

// NewConversionService creates a new ConversionService. A non-positive
// rateTTL falls back to DefaultRateTTL.
func NewConversionService(
	txnRepo ports.TransactionRepository,
	prefs ports.PreferenceSvcFacade,
	cache ports.RateCache,
	provider ports.RateProvider,
	rateTTL time.Duration,
) *ConversionService {
	if rateTTL <= 0 {
		rateTTL = DefaultRateTTL
	}
	return &ConversionService{
		txnRepo:  txnRepo,
		prefs:    prefs,
		cache:    cache,
		provider: provider,
		rateTTL:  rateTTL,
	}
}

// Convert records a currency conversion for the authenticated customer.
// An identical input/output pair is not special-cased: the provider or cache
// is still expected to supply the (unit) rate.
func (s *ConversionService) Convert(ctx context.Context, customerID string, req dto.ConvertRequest) (*models.Transaction, error) {
	if strings.TrimSpace(req.InputCurrency) == "" ||
		strings.TrimSpace(req.OutputCurrency) == "" ||
		strings.TrimSpace(req.InputAmount) == "" {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonMissingField,
			"input_currency, output_currency and input_amount are all required")
	}

	amount, err := decimal.NewFromString(req.InputAmount)
	if err != nil {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonInvalidAmount,
			"the input amount is not a valid number")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonInvalidAmount,
			"the input amount must be greater than zero")
	}

	from := strings.ToUpper(req.InputCurrency)
	to := strings.ToUpper(req.OutputCurrency)

	pref, err := s.prefs.GetOrCreatePreferences(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences for conversion: %w", err)
	}
	if !pref.IsSubscribedTo(to) {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonCurrencyNotSubscribed,
			"you can only convert to subscribed currencies")
	}

	rate, err := s.resolveRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	precision := s.policy.Resolve(pref)
	// Exact multiplication first; the only rounding step is the quantize.
	output := s.policy.Quantize(amount.Mul(rate), precision)
	if s.policy.CombinedDigitCount(output, precision) > MaxCombinedDigits {
		return nil, apperrors.NewValidationRejection(apperrors.ReasonPrecisionLimitExceeded,
			"the calculated output amount exceeds the allowed precision")
	}

	txn := models.Transaction{
		TransactionID:  uuid.NewString(),
		CustomerID:     customerID,
		InputAmount:    amount,
		InputCurrency:  from,
		OutputAmount:   output,
		OutputCurrency: to,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record transaction in service: %w", err)
	}
	return &txn, nil
}

// resolveRate consults the cache first and falls back to the provider,
// writing the fetched rate through with the standard TTL. Concurrent misses
// for the same pair may each hit the provider; the fetch is idempotent so no
// single-flight is needed.
func (s *ConversionService) resolveRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if rate, ok := s.cache.GetRate(ctx, from, to); ok {
		return rate, nil
	}

	rate, err := s.provider.FetchPairRate(ctx, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrUpstream) {
			return decimal.Zero, err
		}
		return decimal.Zero, apperrors.NewUpstreamRejection(apperrors.ReasonRateUnavailable,
			"there was an issue fetching the exchange rate")
	}
	s.cache.SetRate(ctx, from, to, rate, s.rateTTL)
	return rate, nil
}

// ListTransactions returns the customer's own transactions, newest first.
func (s *ConversionService) ListTransactions(ctx context.Context, customerID string) ([]models.Transaction, error) {
	txns, err := s.txnRepo.ListTransactionsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		return []models.Transaction{}, nil
	}
	return txns, nil
}

// GetTransaction returns one transaction, scoped to its owner. A row owned
// by another customer is reported as not found rather than forbidden.
func (s *ConversionService) GetTransaction(ctx context.Context, customerID, transactionID string) (*models.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	if txn.CustomerID != customerID {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return txn, nil
}
