package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"tradejournal/internal/domain/journal"
)

// Journal is everything the report shows.
type Journal struct {
	Rows    []journal.Row
	Days    map[string]decimal.Decimal
	Summary journal.Summary
	Skipped int
}

// Markdown renders the journal as a markdown document.
func Markdown(j Journal) string {
	var b strings.Builder
	s := j.Summary

	fmt.Fprint(&b, "# Trade Journal\n\n")

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintln(&b, "| Metric | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Trades | %d |\n", s.Trades)
	fmt.Fprintf(&b, "| Wins / Losses | %d / %d |\n", s.Wins, s.Losses)
	fmt.Fprintf(&b, "| Win rate | %.1f%% |\n", s.WinRatePct)
	fmt.Fprintf(&b, "| Net P/L | %s |\n", signed(s.NetPL))
	if s.BestDay != nil {
		fmt.Fprintf(&b, "| Best day | %s (%s) |\n", s.BestDay.Date, signed(s.BestDay.ProfitLoss))
	}
	if s.WorstDay != nil {
		fmt.Fprintf(&b, "| Worst day | %s (%s) |\n", s.WorstDay.Date, signed(s.WorstDay.ProfitLoss))
	}
	fmt.Fprintf(&b, "| Max drawdown | %s (%.1f%%) |\n", journal.FormatResult(s.MaxDrawdown), s.MaxDrawdownPct)
	if s.RecoveryNeededPct > 0 {
		fmt.Fprintf(&b, "| Recovery needed | %.1f%% |\n", s.RecoveryNeededPct)
	}
	b.WriteString("\n")

	if len(j.Days) > 0 {
		days := make([]string, 0, len(j.Days))
		for d := range j.Days {
			days = append(days, d)
		}
		sort.Strings(days)

		fmt.Fprint(&b, "## Daily Results\n\n")
		fmt.Fprintln(&b, "| Date | P/L | |")
		fmt.Fprintln(&b, "|:---|---:|:---:|")
		for _, d := range days {
			pl := j.Days[d]
			fmt.Fprintf(&b, "| %s | %s | %s |\n", d, signed(pl), journal.Classify(pl))
		}
		b.WriteString("\n")
	}

	fmt.Fprint(&b, "## Trades\n\n")
	if len(j.Rows) == 0 {
		fmt.Fprint(&b, "_No trades recorded._\n")
	} else {
		fmt.Fprintln(&b, "| Date | Ticker | Entry | Exit | Result |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
		for _, r := range j.Rows {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", r.Date, r.Ticker, r.Entry, r.Exit, signed(r.ProfitLoss))
		}
	}

	if j.Skipped > 0 {
		fmt.Fprintf(&b, "\n> %d malformed row(s) were skipped while loading.\n", j.Skipped)
	}
	return b.String()
}

// signed prefixes the formatted magnitude with its sign.
func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + journal.FormatResult(d)
	}
	return "+" + journal.FormatResult(d)
}

// Render formats markdown for a terminal of the given width.
func Render(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(md)
}
