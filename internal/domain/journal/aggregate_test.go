package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trade(day string, entry, exit string) Trade {
	d, err := time.Parse(DateLayout, day)
	if err != nil {
		panic(err)
	}
	return NewTrade(d, "TEST", decimal.RequireFromString(entry), decimal.RequireFromString(exit))
}

func TestAggregateLastWriteWins(t *testing.T) {
	agg := NewAggregate(AggregateLast)
	agg.Add(trade("2026-10-19", "100", "105"))
	agg.Add(trade("2026-10-19", "100", "97"))

	pl, ok := agg.Get("2026-10-19")
	require.True(t, ok)
	assert.True(t, pl.Equal(decimal.NewFromInt(-3)), pl.String())
	assert.Equal(t, 1, agg.Len())
}

func TestAggregateSum(t *testing.T) {
	agg := NewAggregate(AggregateSum)
	agg.Add(trade("2026-10-19", "100", "105"))
	agg.Add(trade("2026-10-19", "100", "97"))
	agg.Add(trade("2026-10-20", "1", "1.25"))

	pl, _ := agg.Get("2026-10-19")
	assert.True(t, pl.Equal(decimal.NewFromInt(2)), pl.String())
	assert.Equal(t, []string{"2026-10-19", "2026-10-20"}, agg.Days())
}

func TestParseAggregateMode(t *testing.T) {
	m, err := ParseAggregateMode("")
	require.NoError(t, err)
	assert.Equal(t, AggregateLast, m)

	m, err = ParseAggregateMode(" SUM ")
	require.NoError(t, err)
	assert.Equal(t, AggregateSum, m)

	_, err = ParseAggregateMode("average")
	assert.Error(t, err)
}

func TestMarksAreIdempotent(t *testing.T) {
	agg := NewAggregate(AggregateLast)
	agg.Add(trade("2026-10-01", "10", "12"))
	agg.Add(trade("2026-10-02", "10", "8"))

	first := agg.Marks()
	second := agg.Marks()
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]Class{
		"2026-10-01": ClassPositive,
		"2026-10-02": ClassNegative,
	}, first)
}

func TestMonthGrid(t *testing.T) {
	agg := NewAggregate(AggregateLast)
	agg.Add(trade("2026-10-19", "100", "105.5"))
	agg.Add(trade("2026-10-20", "50", "40"))
	agg.Add(trade("2026-11-02", "1", "2"))

	cm := agg.Month(2026, time.October)
	// October 2026 starts on a Thursday and ends on a Saturday.
	require.Len(t, cm.Weeks, 5)
	assert.Equal(t, "2026-09-28", cm.Weeks[0][0].Date.Format(DateLayout))
	assert.False(t, cm.Weeks[0][0].InMonth)
	assert.Equal(t, "2026-11-01", cm.Weeks[4][6].Date.Format(DateLayout))

	marked := map[string]Class{}
	for _, w := range cm.Weeks {
		for _, d := range w {
			if d.Class != "" {
				marked[d.Date.Format(DateLayout)] = d.Class
			}
		}
	}
	assert.Equal(t, map[string]Class{
		"2026-10-19": ClassPositive,
		"2026-10-20": ClassNegative,
	}, marked)

	assert.Equal(t, cm, agg.Month(2026, time.October))
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	y, m, err := ParseMonth("", now)
	require.NoError(t, err)
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.October, m)

	y, m, err = ParseMonth("2025-02", now)
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.February, m)

	_, _, err = ParseMonth("02/2025", now)
	assert.Error(t, err)
}
