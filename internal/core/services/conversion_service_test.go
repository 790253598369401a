package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/currconv/currency_conversion_app/internal/adapters/ratecache"
	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/currconv/currency_conversion_app/internal/core/services"
	"github.com/currconv/currency_conversion_app/internal/dto"
	"github.com/currconv/currency_conversion_app/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID string) ([]models.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*models.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// --- Mock PreferenceSvcFacade ---
type MockPreferenceSvc struct {
	mock.Mock
}

func (m *MockPreferenceSvc) GetOrCreatePreferences(ctx context.Context, userID string) (*models.UserPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreference), args.Error(1)
}

func (m *MockPreferenceSvc) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferenceRequest) (*models.UserPreference, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPreference), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchPairRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateProvider) FetchLatestRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type ConversionServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockTransactionRepository
	mockPrefs    *MockPreferenceSvc
	mockProvider *MockRateProvider
	cache        *ratecache.MemoryRateCache
	service      ports.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.mockPrefs = new(MockPreferenceSvc)
	suite.mockProvider = new(MockRateProvider)
	suite.cache = ratecache.NewMemoryRateCache()
	suite.service = services.NewConversionService(suite.mockRepo, suite.mockPrefs, suite.cache, suite.mockProvider, time.Hour)
}

func (suite *ConversionServiceTestSuite) subscribedPref(currencies ...string) *models.UserPreference {
	return &models.UserPreference{
		UserID:              "cust-1",
		PreferredCurrencies: currencies,
		DecimalPrecision:    2,
	}
}

// --- Test Cases ---

func (suite *ConversionServiceTestSuite) TestConvert_Success_CacheMissFetchesAndCaches() {
	ctx := context.Background()
	pref := suite.subscribedPref("EUR", "GBP", "JPY")

	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Once()
	suite.mockProvider.On("FetchPairRate", ctx, "USD", "EUR").
		Return(decimal.RequireFromString("0.92"), nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn models.Transaction) bool {
		return txn.CustomerID == "cust-1" &&
			txn.InputCurrency == "USD" &&
			txn.OutputCurrency == "EUR" &&
			txn.InputAmount.Equal(decimal.RequireFromString("100.00")) &&
			txn.OutputAmount.Equal(decimal.RequireFromString("92.00"))
	})).Return(nil).Once()

	txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "usd",
		OutputCurrency: "eur",
		InputAmount:    "100.00",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("USD", txn.InputCurrency)
	suite.Equal("EUR", txn.OutputCurrency)
	suite.True(txn.OutputAmount.Equal(decimal.RequireFromString("92.00")))
	_, parseErr := uuid.Parse(txn.TransactionID)
	suite.NoError(parseErr)
	suite.False(txn.CreatedAt.IsZero())

	// The fetched rate is now cached for the directional pair.
	cached, ok := suite.cache.GetRate(ctx, "USD", "EUR")
	suite.True(ok)
	suite.True(cached.Equal(decimal.RequireFromString("0.92")))

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_SecondCallInsideTTLSkipsProvider() {
	ctx := context.Background()
	pref := suite.subscribedPref("EUR", "GBP", "JPY")

	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Twice()
	suite.mockProvider.On("FetchPairRate", ctx, "USD", "EUR").
		Return(decimal.RequireFromString("0.92"), nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("models.Transaction")).Return(nil).Twice()

	req := dto.ConvertRequest{InputCurrency: "USD", OutputCurrency: "EUR", InputAmount: "50"}

	first, err := suite.service.Convert(ctx, "cust-1", req)
	suite.Require().NoError(err)
	second, err := suite.service.Convert(ctx, "cust-1", req)
	suite.Require().NoError(err)

	// Same rate both times, exactly one provider call.
	suite.True(first.OutputAmount.Equal(second.OutputAmount))
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchPairRate", 1)
}

func (suite *ConversionServiceTestSuite) TestConvert_MissingFieldRejected() {
	ctx := context.Background()

	txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "USD",
		OutputCurrency: "",
		InputAmount:    "100",
	})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	reason, ok := apperrors.ReasonOf(err)
	suite.True(ok)
	suite.Equal(apperrors.ReasonMissingField, reason)
	suite.mockPrefs.AssertNotCalled(suite.T(), "GetOrCreatePreferences", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_InvalidAmountRejected() {
	ctx := context.Background()

	for _, amount := range []string{"0", "-5", "abc"} {
		txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
			InputCurrency:  "USD",
			OutputCurrency: "EUR",
			InputAmount:    amount,
		})

		suite.Require().Error(err, "amount %q", amount)
		suite.Nil(txn)
		suite.ErrorIs(err, apperrors.ErrValidation)
		reason, _ := apperrors.ReasonOf(err)
		suite.Equal(apperrors.ReasonInvalidAmount, reason, "amount %q", amount)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_UnsubscribedCurrencyRejected() {
	ctx := context.Background()
	pref := suite.subscribedPref("EUR", "GBP", "JPY")

	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Once()

	txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "USD",
		OutputCurrency: "CHF",
		InputAmount:    "100",
	})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonCurrencyNotSubscribed, reason)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchPairRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_ProviderUnavailableRejected() {
	ctx := context.Background()
	pref := suite.subscribedPref("EUR", "GBP", "JPY")

	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Once()
	suite.mockProvider.On("FetchPairRate", ctx, "USD", "EUR").
		Return(decimal.Zero, apperrors.NewUpstreamRejection(apperrors.ReasonProviderUnavailable, "exchange rate provider is unreachable")).Once()

	txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "USD",
		OutputCurrency: "EUR",
		InputAmount:    "100",
	})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonProviderUnavailable, reason)

	// A failed fetch never writes to the cache or the store.
	_, ok := suite.cache.GetRate(ctx, "USD", "EUR")
	suite.False(ok)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_ProviderDataInvalidRejected() {
	ctx := context.Background()
	pref := suite.subscribedPref("EUR", "GBP", "JPY")

	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Once()
	suite.mockProvider.On("FetchPairRate", ctx, "USD", "EUR").
		Return(decimal.Zero, apperrors.NewUpstreamRejection(apperrors.ReasonProviderDataInvalid, "exchange rate missing in provider response")).Once()

	_, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "USD",
		OutputCurrency: "EUR",
		InputAmount:    "100",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUpstream)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonProviderDataInvalid, reason)
}

func (suite *ConversionServiceTestSuite) TestConvert_PrecisionLimitRejected() {
	ctx := context.Background()
	pref := suite.subscribedPref("EUR", "GBP", "JPY")

	// 999999999.99 * 999999999.99 quantized at 2 places has far more than 15
	// combined digits.
	suite.cache.SetRate(ctx, "USD", "EUR", decimal.RequireFromString("999999999.99"), time.Hour)
	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Once()

	txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "USD",
		OutputCurrency: "EUR",
		InputAmount:    "999999999.99",
	})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	reason, _ := apperrors.ReasonOf(err)
	suite.Equal(apperrors.ReasonPrecisionLimitExceeded, reason)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *ConversionServiceTestSuite) TestConvert_IdenticalPairStillResolvesRate() {
	ctx := context.Background()
	pref := suite.subscribedPref("USD", "GBP", "JPY")

	suite.mockPrefs.On("GetOrCreatePreferences", ctx, "cust-1").Return(pref, nil).Once()
	suite.mockProvider.On("FetchPairRate", ctx, "USD", "USD").
		Return(decimal.NewFromInt(1), nil).Once()
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("models.Transaction")).Return(nil).Once()

	txn, err := suite.service.Convert(ctx, "cust-1", dto.ConvertRequest{
		InputCurrency:  "USD",
		OutputCurrency: "USD",
		InputAmount:    "100.00",
	})

	suite.Require().NoError(err)
	suite.True(txn.OutputAmount.Equal(decimal.RequireFromString("100.00")))
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestListTransactions_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListTransactionsByCustomer", ctx, "cust-1").Return(nil, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, "cust-1")

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func (suite *ConversionServiceTestSuite) TestGetTransaction_OtherCustomersRowIsNotFound() {
	ctx := context.Background()
	txnID := uuid.NewString()
	stored := &models.Transaction{TransactionID: txnID, CustomerID: "someone-else"}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()

	txn, err := suite.service.GetTransaction(ctx, "cust-1", txnID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ConversionServiceTestSuite) TestGetTransaction_OwnRow() {
	ctx := context.Background()
	txnID := uuid.NewString()
	stored := &models.Transaction{TransactionID: txnID, CustomerID: "cust-1"}

	suite.mockRepo.On("FindTransactionByID", ctx, txnID).Return(stored, nil).Once()

	txn, err := suite.service.GetTransaction(ctx, "cust-1", txnID)

	suite.Require().NoError(err)
	suite.Equal(stored, txn)
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
