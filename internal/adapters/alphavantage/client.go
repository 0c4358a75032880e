package alphavantage

import (
	"net/http"
	"time"

	"tradejournal/internal/ports"
)

const DefaultBaseURL = "https://www.alphavantage.co/query"

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	// MaxTries bounds attempts per quote, including the first one.
	MaxTries uint
}

func New(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		MaxTries:   3,
	}
}

var _ ports.QuoteProvider = (*Client)(nil)
