package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := New("demo")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func TestLatestPriceStock(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		w.Write([]byte(`{"Global Quote":{"01. symbol":"AAPL","05. price":"187.4500"}}`))
	})

	price, err := c.LatestPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "187.45", price.StringFixed(2))
}

func TestLatestPriceCrypto(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CURRENCY_EXCHANGE_RATE", r.URL.Query().Get("function"))
		assert.Equal(t, "BTC", r.URL.Query().Get("from_currency"))
		w.Write([]byte(`{"Realtime Currency Exchange Rate":{"5. Exchange Rate":"64000.10"}}`))
	})

	price, err := c.LatestPrice(context.Background(), "btcusd")
	require.NoError(t, err)
	assert.Equal(t, "64000.10", price.StringFixed(2))
}

func TestLatestPriceAPILimitIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"Note":"Thank you for using Alpha Vantage!"}`))
	})

	_, err := c.LatestPrice(context.Background(), "AAPL")
	assert.ErrorContains(t, err, "API limit")
	assert.Equal(t, int32(1), calls.Load())
}

func TestLatestPriceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"Global Quote":{"05. price":"10.00"}}`))
	})

	price, err := c.LatestPrice(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "10.00", price.StringFixed(2))
	assert.Equal(t, int32(2), calls.Load())
}

func TestLatestPriceMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote":{}}`))
	})

	_, err := c.LatestPrice(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, ErrNoPrice), "got %v", err)
}

func TestLatestPriceRequiresKey(t *testing.T) {
	_, err := New("").LatestPrice(context.Background(), "AAPL")
	assert.Error(t, err)
}
