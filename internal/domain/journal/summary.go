package journal

import (
	"github.com/shopspring/decimal"

	"tradejournal/internal/util"
)

type DayResult struct {
	Date       string          `json:"date"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
}

// Summary describes the journal as a whole.
type Summary struct {
	Trades     int             `json:"trades"`
	Wins       int             `json:"wins"`
	Losses     int             `json:"losses"`
	WinRatePct float64         `json:"win_rate_pct"`
	NetPL      decimal.Decimal `json:"net_pl"`
	BestDay    *DayResult      `json:"best_day,omitempty"`
	WorstDay   *DayResult      `json:"worst_day,omitempty"`

	// Drawdown of cumulative P/L from its running peak, in trade order.
	MaxDrawdown       decimal.Decimal `json:"max_drawdown"`
	MaxDrawdownPct    float64         `json:"max_drawdown_pct"`
	RecoveryNeededPct float64         `json:"recovery_needed_pct"`
}

// Summarize computes the summary of trades and the per-day aggregate.
func Summarize(trades []Trade, agg *Aggregate) Summary {
	s := Summary{Trades: len(trades)}

	var equity, peak decimal.Decimal
	for _, t := range trades {
		pl := t.ProfitLoss()
		if pl.IsNegative() {
			s.Losses++
		} else {
			s.Wins++
		}
		equity = equity.Add(pl)
		if equity.GreaterThan(peak) {
			peak = equity
		}
		if dd := peak.Sub(equity); dd.GreaterThan(s.MaxDrawdown) {
			s.MaxDrawdown = dd
			s.MaxDrawdownPct = util.Pct(dd, peak)
		}
	}
	s.NetPL = equity
	if s.Trades > 0 {
		s.WinRatePct = float64(s.Wins) / float64(s.Trades) * 100
	}
	// Undefined once cumulative P/L has dropped to zero or below.
	if s.MaxDrawdownPct < 100 {
		s.RecoveryNeededPct = util.RequiredRecoveryPct(s.MaxDrawdownPct)
	}

	for _, d := range agg.Days() {
		pl := agg.days[d]
		if s.BestDay == nil || pl.GreaterThan(s.BestDay.ProfitLoss) {
			s.BestDay = &DayResult{Date: d, ProfitLoss: pl}
		}
		if s.WorstDay == nil || pl.LessThan(s.WorstDay.ProfitLoss) {
			s.WorstDay = &DayResult{Date: d, ProfitLoss: pl}
		}
	}
	return s
}
