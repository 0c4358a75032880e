package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"tradejournal/internal/domain/journal"
	"tradejournal/internal/ports"
	"tradejournal/internal/trace"
)

var ErrNoQuoteProvider = errors.New("no quote provider configured")

// JournalService owns the in-memory trade table and the per-day aggregate,
// both rebuilt from the store on Load.
type JournalService struct {
	store    ports.TradeStore
	failures ports.FailureLog
	quotes   ports.QuoteProvider
	log      *zap.Logger
	now      func() time.Time
	mode     journal.AggregateMode

	// writeMu holds a store write together with its in-memory effect.
	writeMu sync.Mutex

	mu      sync.RWMutex
	trades  []journal.Trade
	agg     *journal.Aggregate
	skipped []journal.SkippedRow
}

type Option func(*JournalService)

func WithClock(now func() time.Time) Option {
	return func(s *JournalService) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *JournalService) { s.log = log }
}

func WithFailureLog(fl ports.FailureLog) Option {
	return func(s *JournalService) { s.failures = fl }
}

func WithQuotes(q ports.QuoteProvider) Option {
	return func(s *JournalService) { s.quotes = q }
}

func WithAggregateMode(m journal.AggregateMode) Option {
	return func(s *JournalService) { s.mode = m }
}

func NewJournalService(store ports.TradeStore, opts ...Option) *JournalService {
	s := &JournalService{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		mode:  journal.AggregateLast,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.agg = journal.NewAggregate(s.mode)
	return s
}

type LoadReport struct {
	Loaded  int                  `json:"loaded"`
	Skipped []journal.SkippedRow `json:"skipped"`
}

// Load replaces the in-memory state with the store's valid records.
func (s *JournalService) Load(ctx context.Context) (LoadReport, error) {
	ctx, span := trace.StartSpan(ctx, "journal.Load")
	defer span.End()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.store.Load(ctx)
	if err != nil {
		span.RecordError(err)
		return LoadReport{}, fmt.Errorf("load trades: %w", err)
	}

	agg := journal.NewAggregate(s.mode)
	for _, t := range res.Trades {
		agg.Add(t)
	}
	for _, sk := range res.Skipped {
		s.log.Debug("skipped malformed trade row",
			zap.Int("line", sk.Line),
			zap.Strings("fields", sk.Fields),
			zap.String("reason", sk.Reason))
	}

	s.mu.Lock()
	s.trades = res.Trades
	s.agg = agg
	s.skipped = res.Skipped
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int("trades.loaded", len(res.Trades)),
		attribute.Int("trades.skipped", len(res.Skipped)))
	s.log.Info("trades loaded",
		zap.Int("loaded", len(res.Trades)),
		zap.Int("skipped", len(res.Skipped)))

	return LoadReport{Loaded: len(res.Trades), Skipped: res.Skipped}, nil
}

type SubmitInput struct {
	Ticker string `json:"ticker"`
	Entry  string `json:"entry"`
	Exit   string `json:"exit"`
}

// Submit validates and records one trade dated today. Nothing is mutated
// when validation or the store write fails.
func (s *JournalService) Submit(ctx context.Context, in SubmitInput) (journal.Row, error) {
	ctx, span := trace.StartSpan(ctx, "journal.Submit")
	defer span.End()

	entry, entryErr := journal.ParsePrice(in.Entry)
	exit, exitErr := journal.ParsePrice(in.Exit)
	if entryErr != nil || exitErr != nil {
		s.log.Debug("rejected trade input",
			zap.String("entry", in.Entry),
			zap.String("exit", in.Exit))
		return journal.Row{}, journal.ErrInvalidPrices
	}

	t := journal.NewTrade(s.now(), in.Ticker, entry, exit)
	span.SetAttributes(attribute.String("trade.ticker", t.Ticker))

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Append(ctx, t); err != nil {
		span.RecordError(err)
		if s.failures != nil {
			s.failures.RecordWriteFailure(t, err)
		}
		s.log.Error("failed to save trade", zap.String("ticker", t.Ticker), zap.Error(err))
		return journal.Row{}, fmt.Errorf("append trade: %w", err)
	}

	s.mu.Lock()
	s.trades = append(s.trades, t)
	s.agg.Add(t)
	s.mu.Unlock()

	row := t.Row()
	s.log.Info("trade saved",
		zap.String("date", row.Date),
		zap.String("ticker", row.Ticker),
		zap.String("result", row.Result),
		zap.String("class", string(row.Class)))
	return row, nil
}

// Trades returns the table rows in the order they were recorded.
func (s *JournalService) Trades() []journal.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]journal.Row, len(s.trades))
	for i, t := range s.trades {
		rows[i] = t.Row()
	}
	return rows
}

func (s *JournalService) Aggregate() map[string]decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.Snapshot()
}

// Marks classifies every date that has trades.
func (s *JournalService) Marks() map[string]journal.Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.Marks()
}

func (s *JournalService) Calendar(year int, month time.Month) journal.CalendarMonth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg.Month(year, month)
}

func (s *JournalService) Skipped() []journal.SkippedRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]journal.SkippedRow(nil), s.skipped...)
}

func (s *JournalService) Summary() journal.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return journal.Summarize(s.trades, s.agg)
}

func (s *JournalService) AggregateMode() journal.AggregateMode { return s.mode }

// Now is the service clock, used by views to pick the current month.
func (s *JournalService) Now() time.Time { return s.now() }

// Quote fetches the latest price for ticker, rounded to cents.
func (s *JournalService) Quote(ctx context.Context, ticker string) (decimal.Decimal, error) {
	if s.quotes == nil {
		return decimal.Zero, ErrNoQuoteProvider
	}
	ctx, span := trace.StartSpan(ctx, "journal.Quote")
	defer span.End()

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	price, err := s.quotes.LatestPrice(ctx, ticker)
	if err != nil {
		span.RecordError(err)
		return decimal.Zero, fmt.Errorf("quote %s: %w", ticker, err)
	}
	return journal.Round2(price), nil
}

func (s *JournalService) Close() error {
	return s.store.Close()
}
