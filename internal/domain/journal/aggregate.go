package journal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AggregateMode decides how several trades on one date combine.
type AggregateMode string

const (
	// AggregateLast keeps the most recent trade's result for a date.
	AggregateLast AggregateMode = "last"
	// AggregateSum nets every trade of a date.
	AggregateSum AggregateMode = "sum"
)

func ParseAggregateMode(s string) (AggregateMode, error) {
	switch m := AggregateMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return AggregateLast, nil
	case AggregateLast, AggregateSum:
		return m, nil
	default:
		return "", fmt.Errorf("unknown aggregate mode %q (want last or sum)", s)
	}
}

// Aggregate maps a trade date to its profit or loss. It is derived state,
// rebuilt from the store's trades.
type Aggregate struct {
	mode AggregateMode
	days map[string]decimal.Decimal
}

func NewAggregate(mode AggregateMode) *Aggregate {
	if mode == "" {
		mode = AggregateLast
	}
	return &Aggregate{mode: mode, days: make(map[string]decimal.Decimal)}
}

func (a *Aggregate) Mode() AggregateMode { return a.mode }

// Add registers t under its date.
func (a *Aggregate) Add(t Trade) {
	pl := t.ProfitLoss()
	if a.mode == AggregateSum {
		pl = pl.Add(a.days[t.Day()])
	}
	a.days[t.Day()] = pl
}

func (a *Aggregate) Get(day string) (decimal.Decimal, bool) {
	pl, ok := a.days[day]
	return pl, ok
}

func (a *Aggregate) Len() int { return len(a.days) }

// Days returns the aggregated dates in ascending order.
func (a *Aggregate) Days() []string {
	days := make([]string, 0, len(a.days))
	for d := range a.days {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Snapshot copies the date to profit/loss mapping.
func (a *Aggregate) Snapshot() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.days))
	for d, pl := range a.days {
		out[d] = pl
	}
	return out
}

// Marks classifies every aggregated date. Dates without trades are absent.
func (a *Aggregate) Marks() map[string]Class {
	marks := make(map[string]Class, len(a.days))
	for d, pl := range a.days {
		marks[d] = Classify(pl)
	}
	return marks
}
