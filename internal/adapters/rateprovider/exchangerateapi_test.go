package rateprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPairRate_Success(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"success","base_code":"USD","target_code":"EUR","conversion_rate":0.92}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	rate, err := client.FetchPairRate(context.Background(), "usd", "eur")

	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")), "got %s", rate)
	// Codes are uppercased before URL construction.
	assert.Equal(t, "/test-key/pair/USD/EUR", requestedPath)
}

func TestFetchPairRate_MissingRateFieldIsDataInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","base_code":"USD","target_code":"EUR"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	reason, ok := apperrors.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ReasonProviderDataInvalid, reason)
}

func TestFetchPairRate_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	reason, _ := apperrors.ReasonOf(err)
	assert.Equal(t, apperrors.ReasonProviderUnavailable, reason)
}

func TestFetchPairRate_UnreachableHostIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately closed: connection refused

	client := NewClient(server.URL, "test-key")
	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	reason, _ := apperrors.ReasonOf(err)
	assert.Equal(t, apperrors.ReasonProviderUnavailable, reason)
}

func TestFetchPairRate_NonJSONBodyIsDataInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.FetchPairRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	reason, _ := apperrors.ReasonOf(err)
	assert.Equal(t, apperrors.ReasonProviderDataInvalid, reason)
}

func TestFetchLatestRates_Success(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.92,"GBP":0.78}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	rates, err := client.FetchLatestRates(context.Background(), "usd")

	require.NoError(t, err)
	assert.Equal(t, "/test-key/latest/USD", requestedPath)
	require.Len(t, rates, 3)
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("0.92")))
	assert.True(t, rates["USD"].Equal(decimal.NewFromInt(1)))
}

func TestFetchLatestRates_MissingTableIsDataInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"success","base_code":"USD"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.FetchLatestRates(context.Background(), "USD")

	require.Error(t, err)
	reason, _ := apperrors.ReasonOf(err)
	assert.Equal(t, apperrors.ReasonProviderDataInvalid, reason)
}
