package app

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/internal/adapters/storage"
	"tradejournal/internal/domain/journal"
)

var testDay = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testDay }

type failingStore struct {
	storage.MemoryTradeStore
	err error
}

func (f *failingStore) Append(ctx context.Context, t journal.Trade) error { return f.err }

type recordingFailureLog struct {
	trades []journal.Trade
	errs   []error
}

func (r *recordingFailureLog) RecordWriteFailure(t journal.Trade, err error) {
	r.trades = append(r.trades, t)
	r.errs = append(r.errs, err)
}

type stubQuotes struct {
	price decimal.Decimal
	err   error
	asked string
}

func (q *stubQuotes) LatestPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	q.asked = ticker
	return q.price, q.err
}

func TestSubmitProfitOnEmptyStore(t *testing.T) {
	store := storage.NewMemoryTradeStore()
	svc := NewJournalService(store, WithClock(fixedClock))
	ctx := context.Background()

	_, err := svc.Load(ctx)
	require.NoError(t, err)

	row, err := svc.Submit(ctx, SubmitInput{Ticker: "AAPL", Entry: "100.00", Exit: "105.50"})
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-10-19", "AAPL", "100.00", "105.50", "$5.50"}, row.Cells())
	assert.Equal(t, journal.ClassPositive, row.Class)
	assert.Equal(t, []journal.Row{row}, svc.Trades())

	pl := svc.Aggregate()["2026-10-19"]
	assert.True(t, pl.Equal(decimal.RequireFromString("5.50")), pl.String())
	assert.Equal(t, [][]string{{"2026-10-19", "AAPL", "100.00", "105.50", "$5.50"}}, store.Rows())
}

func TestSubmitLoss(t *testing.T) {
	svc := NewJournalService(storage.NewMemoryTradeStore(), WithClock(fixedClock))

	row, err := svc.Submit(context.Background(), SubmitInput{Ticker: "tsla", Entry: "50", Exit: "40"})
	require.NoError(t, err)

	assert.Equal(t, "$10.00", row.Result)
	assert.Equal(t, "TSLA", row.Ticker)
	assert.Equal(t, journal.ClassNegative, row.Class)
	pl := svc.Aggregate()["2026-10-19"]
	assert.True(t, pl.Equal(decimal.NewFromInt(-10)), pl.String())
	assert.Equal(t, map[string]journal.Class{"2026-10-19": journal.ClassNegative}, svc.Marks())
}

func TestSubmitInvalidPricesChangesNothing(t *testing.T) {
	store := storage.NewMemoryTradeStore()
	svc := NewJournalService(store, WithClock(fixedClock))

	for _, in := range []SubmitInput{
		{Ticker: "X", Entry: "abc", Exit: "10"},
		{Ticker: "X", Entry: "10", Exit: ""},
		{Ticker: "X", Entry: "", Exit: ""},
	} {
		_, err := svc.Submit(context.Background(), in)
		require.ErrorIs(t, err, journal.ErrInvalidPrices)
		assert.Equal(t, "Entry and Exit price must be valid numbers!", err.Error())
	}

	assert.Empty(t, svc.Trades())
	assert.Empty(t, svc.Aggregate())
	assert.Empty(t, store.Rows())
}

func TestSameDayLastWriteWins(t *testing.T) {
	store := storage.NewMemoryTradeStore()
	svc := NewJournalService(store, WithClock(fixedClock))
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{Ticker: "A", Entry: "10", Exit: "15"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, SubmitInput{Ticker: "B", Entry: "10", Exit: "7"})
	require.NoError(t, err)

	pl := svc.Aggregate()["2026-10-19"]
	assert.True(t, pl.Equal(decimal.NewFromInt(-3)), pl.String())
	assert.Len(t, svc.Trades(), 2)
	assert.Len(t, store.Rows(), 2)
}

func TestSameDaySumMode(t *testing.T) {
	svc := NewJournalService(storage.NewMemoryTradeStore(),
		WithClock(fixedClock), WithAggregateMode(journal.AggregateSum))
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{Ticker: "A", Entry: "10", Exit: "15"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, SubmitInput{Ticker: "B", Entry: "10", Exit: "7"})
	require.NoError(t, err)

	pl := svc.Aggregate()["2026-10-19"]
	assert.True(t, pl.Equal(decimal.NewFromInt(2)), pl.String())
}

func TestWriteFailureRollsBack(t *testing.T) {
	writeErr := errors.New("disk full")
	failures := &recordingFailureLog{}
	svc := NewJournalService(&failingStore{err: writeErr},
		WithClock(fixedClock), WithFailureLog(failures))

	_, err := svc.Submit(context.Background(), SubmitInput{Ticker: "AAPL", Entry: "1", Exit: "2"})
	require.ErrorIs(t, err, writeErr)

	assert.Empty(t, svc.Trades())
	assert.Empty(t, svc.Aggregate())
	require.Len(t, failures.trades, 1)
	assert.Equal(t, "AAPL", failures.trades[0].Ticker)
	assert.Equal(t, writeErr, failures.errs[0])
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	store := storage.NewMemoryTradeStore()
	store.Seed(
		[]string{"2026-10-01", "AAPL", "100", "110", "$10.00"},
		[]string{"2026-10-02", "AAPL", "100", "110"},
		[]string{"2026-13-02", "AAPL", "100", "110", "$10.00"},
		[]string{"2026-10-03", "AAPL", "x", "110", "$10.00"},
		[]string{"2026-10-04", "AAPL", "100", "x", "$10.00"},
		[]string{"2026-10-05", "AAPL", "100", "110", "ten"},
	)
	svc := NewJournalService(store)

	rep, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Loaded)
	assert.Len(t, rep.Skipped, 5)
	assert.Len(t, svc.Skipped(), 5)
	assert.Len(t, svc.Trades(), 1)
	assert.Equal(t, []string{"2026-10-01"}, keys(svc.Aggregate()))
}

func TestLoadReplacesState(t *testing.T) {
	store := storage.NewMemoryTradeStore()
	svc := NewJournalService(store, WithClock(fixedClock))
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitInput{Ticker: "A", Entry: "1", Exit: "2"})
	require.NoError(t, err)

	_, err = svc.Load(ctx)
	require.NoError(t, err)
	_, err = svc.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, svc.Trades(), 1)
}

func TestRoundTripThroughFreshService(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	ctx := context.Background()

	first := NewJournalService(storage.NewCSVTradeStore(path), WithClock(fixedClock))
	inputs := []SubmitInput{
		{Ticker: "aapl", Entry: "100", Exit: "105.5"},
		{Ticker: "tsla", Entry: "50,25", Exit: "40"},
	}
	var want []journal.Row
	for _, in := range inputs {
		row, err := first.Submit(ctx, in)
		require.NoError(t, err)
		want = append(want, row)
	}

	second := NewJournalService(storage.NewCSVTradeStore(path))
	rep, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rep.Skipped)

	got := second.Trades()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Cells(), got[i].Cells())
		assert.True(t, want[i].ProfitLoss.Equal(got[i].ProfitLoss))
		assert.Equal(t, want[i].Class, got[i].Class)
	}
	assert.Equal(t, first.Marks(), second.Marks())
}

func TestRoundTripAtPriceBound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")
	ctx := context.Background()

	first := NewJournalService(storage.NewCSVTradeStore(path), WithClock(fixedClock))
	row, err := first.Submit(ctx, SubmitInput{Ticker: "BIG", Entry: "0", Exit: "999999999999999.99"})
	require.NoError(t, err)
	assert.Equal(t, "$999999999999999.99", row.Result)

	_, err = first.Submit(ctx, SubmitInput{Ticker: "BIG", Entry: "0", Exit: "92233720368547758.08"})
	require.ErrorIs(t, err, journal.ErrInvalidPrices)

	second := NewJournalService(storage.NewCSVTradeStore(path))
	rep, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rep.Skipped)
	require.Equal(t, 1, rep.Loaded)
	assert.Equal(t, row.Cells(), second.Trades()[0].Cells())
}

// slowStore widens the gap between concurrent appends.
type slowStore struct {
	*storage.MemoryTradeStore
}

func (s slowStore) Append(ctx context.Context, t journal.Trade) error {
	time.Sleep(time.Duration(len(t.Ticker)%3) * time.Millisecond)
	return s.MemoryTradeStore.Append(ctx, t)
}

func TestConcurrentSubmitsKeepStoreOrder(t *testing.T) {
	store := storage.NewMemoryTradeStore()
	svc := NewJournalService(slowStore{store}, WithClock(fixedClock))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := SubmitInput{Ticker: strings.Repeat("X", i%5+1), Entry: "10", Exit: strconv.Itoa(i)}
			_, err := svc.Submit(ctx, in)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rows := store.Rows()
	trades := svc.Trades()
	require.Len(t, trades, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i], trades[i].Cells())
	}

	reloaded := NewJournalService(store)
	_, err := reloaded.Load(ctx)
	require.NoError(t, err)
	want, got := svc.Aggregate(), reloaded.Aggregate()
	require.Len(t, got, len(want))
	for day, pl := range want {
		assert.True(t, pl.Equal(got[day]), "%s: %s != %s", day, pl, got[day])
	}
}

func TestCalendarIsIdempotent(t *testing.T) {
	svc := NewJournalService(storage.NewMemoryTradeStore(), WithClock(fixedClock))
	_, err := svc.Submit(context.Background(), SubmitInput{Ticker: "A", Entry: "1", Exit: "2"})
	require.NoError(t, err)

	a := svc.Calendar(2026, time.October)
	b := svc.Calendar(2026, time.October)
	assert.Equal(t, a, b)
	assert.Equal(t, svc.Marks(), svc.Marks())
}

func TestQuote(t *testing.T) {
	svc := NewJournalService(storage.NewMemoryTradeStore())
	_, err := svc.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrNoQuoteProvider)

	q := &stubQuotes{price: decimal.RequireFromString("187.456")}
	svc = NewJournalService(storage.NewMemoryTradeStore(), WithQuotes(q))
	price, err := svc.Quote(context.Background(), " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.asked)
	assert.Equal(t, "187.46", price.StringFixed(2))

	q.err = errors.New("limit")
	_, err = svc.Quote(context.Background(), "AAPL")
	assert.ErrorContains(t, err, "limit")
}

func keys(m map[string]decimal.Decimal) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
