package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"tradejournal/internal/domain/journal"
)

// TradeStore is the durable record set. Load reads every row once; rows
// that fail validation come back in LoadResult.Skipped.
type TradeStore interface {
	Load(ctx context.Context) (journal.LoadResult, error)
	Append(ctx context.Context, t journal.Trade) error
	Close() error
}

type QuoteProvider interface {
	LatestPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// FailureLog records trades that could not be written.
type FailureLog interface {
	RecordWriteFailure(t journal.Trade, err error)
}
