package journal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the persisted trade date format.
const DateLayout = "2006-01-02"

// Class is the color classification of a profit or loss.
type Class string

const (
	ClassPositive Class = "positive"
	ClassNegative Class = "negative"
)

// Classify returns ClassPositive for a break-even or profitable result.
func Classify(pl decimal.Decimal) Class {
	if pl.IsNegative() {
		return ClassNegative
	}
	return ClassPositive
}

// Trade is one closed position as kept in the journal.
type Trade struct {
	Date   time.Time
	Ticker string
	Entry  decimal.Decimal
	Exit   decimal.Decimal
}

// NewTrade normalizes the date to a calendar day, uppercases the ticker with
// its whitespace collapsed to single spaces and rounds both prices to cents.
func NewTrade(date time.Time, ticker string, entry, exit decimal.Decimal) Trade {
	return Trade{
		Date:   DayOf(date),
		Ticker: strings.ToUpper(strings.Join(strings.Fields(ticker), " ")),
		Entry:  Round2(entry),
		Exit:   Round2(exit),
	}
}

// DayOf truncates t to midnight UTC of its own calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day is the ISO key of the trade date.
func (t Trade) Day() string { return t.Date.Format(DateLayout) }

// ProfitLoss is exit minus entry, rounded to cents.
func (t Trade) ProfitLoss() decimal.Decimal { return Round2(t.Exit.Sub(t.Entry)) }

func (t Trade) ResultText() string { return FormatResult(t.ProfitLoss()) }
func (t Trade) Class() Class       { return Classify(t.ProfitLoss()) }

// Record returns the five persisted columns in file order.
func (t Trade) Record() []string {
	return []string{
		t.Day(),
		t.Ticker,
		t.Entry.StringFixed(2),
		t.Exit.StringFixed(2),
		t.ResultText(),
	}
}

// Row is a trade as shown in the results table.
type Row struct {
	Date       string          `json:"date"`
	Ticker     string          `json:"ticker"`
	Entry      string          `json:"entry"`
	Exit       string          `json:"exit"`
	Result     string          `json:"result"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
	Class      Class           `json:"class"`
}

func (t Trade) Row() Row {
	pl := t.ProfitLoss()
	return Row{
		Date:       t.Day(),
		Ticker:     t.Ticker,
		Entry:      t.Entry.StringFixed(2),
		Exit:       t.Exit.StringFixed(2),
		Result:     FormatResult(pl),
		ProfitLoss: pl,
		Class:      Classify(pl),
	}
}

// Cells returns the table cells in column order.
func (r Row) Cells() []string {
	return []string{r.Date, r.Ticker, r.Entry, r.Exit, r.Result}
}
