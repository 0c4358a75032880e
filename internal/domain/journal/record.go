package journal

import (
	"fmt"
	"time"
)

// RecordFields is the number of columns in a persisted trade row.
const RecordFields = 5

// SkippedRow is a persisted row that failed validation on load.
type SkippedRow struct {
	Line   int      `json:"line"`
	Fields []string `json:"fields"`
	Reason string   `json:"reason"`
}

// LoadResult is everything a store read in one pass.
type LoadResult struct {
	Trades  []Trade
	Skipped []SkippedRow
}

// ParseRecord validates one persisted row. The result column only has to be
// numeric; the trade's profit or loss is always derived from its prices.
func ParseRecord(fields []string) (Trade, error) {
	if len(fields) != RecordFields {
		return Trade{}, fmt.Errorf("expected %d fields, got %d", RecordFields, len(fields))
	}

	date, err := time.Parse(DateLayout, fields[0])
	if err != nil {
		return Trade{}, fmt.Errorf("invalid date %q", fields[0])
	}
	entry, err := ParsePrice(fields[2])
	if err != nil {
		return Trade{}, fmt.Errorf("invalid entry price %q", fields[2])
	}
	exit, err := ParsePrice(fields[3])
	if err != nil {
		return Trade{}, fmt.Errorf("invalid exit price %q", fields[3])
	}
	if _, err := parseResult(fields[4]); err != nil {
		return Trade{}, fmt.Errorf("invalid result %q", fields[4])
	}

	return Trade{
		Date:   date,
		Ticker: fields[1],
		Entry:  entry,
		Exit:   exit,
	}, nil
}

// Add validates fields and records either the trade or the reason it was
// skipped. line is 1-based.
func (r *LoadResult) Add(line int, fields []string) {
	t, err := ParseRecord(fields)
	if err != nil {
		r.Skip(line, fields, err.Error())
		return
	}
	r.Trades = append(r.Trades, t)
}

func (r *LoadResult) Skip(line int, fields []string, reason string) {
	cp := append([]string(nil), fields...)
	r.Skipped = append(r.Skipped, SkippedRow{Line: line, Fields: cp, Reason: reason})
}
