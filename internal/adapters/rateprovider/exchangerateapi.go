package rateprovider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/currconv/currency_conversion_app/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds every provider call.
const DefaultTimeout = 10 * time.Second

// Client talks to the exchangerate API:
//
//	GET {base}/{key}/pair/{FROM}/{TO}   -> {"conversion_rate": 0.92, ...}
//	GET {base}/{key}/latest/{BASE}      -> {"conversion_rates": {"EUR": 0.92, ...}}
//
// Transport failures and non-2xx responses are classified as
// provider-unavailable; a reachable endpoint returning a body without the
// expected field is provider-data-invalid. The distinction matters upstream:
// the first means unreachable, the second means reachable but malformed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an exchangerate API client with the default timeout.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPairRate returns the current from→to conversion rate.
func (c *Client) FetchPairRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL, c.apiKey, strings.ToUpper(from), strings.ToUpper(to))
	body, err := c.get(ctx, url)
	if err != nil {
		return decimal.Zero, err
	}

	field := gjson.GetBytes(body, "conversion_rate")
	if !field.Exists() {
		return decimal.Zero, apperrors.NewUpstreamRejection(apperrors.ReasonProviderDataInvalid,
			"exchange rate missing in provider response")
	}
	// Parse the raw JSON number as a string so the rate stays exact.
	rate, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Zero, apperrors.NewUpstreamRejection(apperrors.ReasonProviderDataInvalid,
			"exchange rate in provider response is not a number")
	}
	return rate, nil
}

// FetchLatestRates returns the full latest-rate table for a base currency.
func (c *Client) FetchLatestRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, strings.ToUpper(base))
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	table := gjson.GetBytes(body, "conversion_rates")
	if !table.Exists() || !table.IsObject() {
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderDataInvalid,
			"conversion rates missing in provider response")
	}

	rates := make(map[string]decimal.Decimal)
	var parseErr error
	table.ForEach(func(code, value gjson.Result) bool {
		rate, err := decimal.NewFromString(value.String())
		if err != nil {
			parseErr = apperrors.NewUpstreamRejection(apperrors.ReasonProviderDataInvalid,
				fmt.Sprintf("rate for %s in provider response is not a number", code.String()))
			return false
		}
		rates[code.String()] = rate
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return rates, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderUnavailable,
			"failed to build provider request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderUnavailable,
			"exchange rate provider is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderUnavailable,
			fmt.Sprintf("exchange rate provider returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderUnavailable,
			"failed to read provider response")
	}
	if !gjson.ValidBytes(body) {
		return nil, apperrors.NewUpstreamRejection(apperrors.ReasonProviderDataInvalid,
			"provider response is not valid JSON")
	}
	return body, nil
}

var _ ports.RateProvider = (*Client)(nil)
