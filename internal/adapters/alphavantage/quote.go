package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/shopspring/decimal"
)

var ErrNoPrice = errors.New("no price in response")

// isCrypto treats tickers like BTCUSD as a currency pair quoted in USD.
func isCrypto(ticker string) bool {
	t := strings.ToUpper(ticker)
	return strings.HasSuffix(t, "USD") && len(t) > 3
}

// LatestPrice returns the last traded price of a stock, or the USD exchange
// rate of a crypto pair. Transport failures and 5xx answers are retried with
// exponential backoff; an API error message is not.
func (c *Client) LatestPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if c.APIKey == "" {
		return decimal.Zero, errors.New("alphavantage api key is not set")
	}

	params := url.Values{"apikey": {c.APIKey}}
	if isCrypto(ticker) {
		params.Set("function", "CURRENCY_EXCHANGE_RATE")
		params.Set("from_currency", strings.TrimSuffix(strings.ToUpper(ticker), "USD"))
		params.Set("to_currency", "USD")
	} else {
		params.Set("function", "GLOBAL_QUOTE")
		params.Set("symbol", ticker)
	}
	endpoint := c.BaseURL + "?" + params.Encode()

	tries := c.MaxTries
	if tries == 0 {
		tries = 1
	}
	return backoff.Retry(ctx, func() (decimal.Decimal, error) {
		return c.fetch(ctx, endpoint, ticker)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(tries))
}

func (c *Client) fetch(ctx context.Context, endpoint, ticker string) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, backoff.Permanent(err)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return decimal.Zero, err
	}
	if resp.StatusCode >= 500 {
		return decimal.Zero, fmt.Errorf("alphavantage: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("alphavantage: %s", resp.Status))
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}

	if note, ok := data["Note"].(string); ok {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("API limit: %s", note))
	}
	if msg, ok := data["Error Message"].(string); ok {
		return decimal.Zero, backoff.Permanent(errors.New(msg))
	}

	var raw string
	if q, ok := data["Global Quote"].(map[string]interface{}); ok {
		raw, _ = q["05. price"].(string)
	}
	if rate, ok := data["Realtime Currency Exchange Rate"].(map[string]interface{}); ok {
		raw, _ = rate["5. Exchange Rate"].(string)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil || !price.IsPositive() {
		return decimal.Zero, backoff.Permanent(fmt.Errorf("%w for %s", ErrNoPrice, ticker))
	}
	return price, nil
}
