package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarDay is one cell of a month grid. Class is empty for days without
// trades.
type CalendarDay struct {
	Date       time.Time        `json:"date"`
	InMonth    bool             `json:"in_month"`
	Class      Class            `json:"class,omitempty"`
	ProfitLoss *decimal.Decimal `json:"profit_loss,omitempty"`
}

// CalendarMonth is a Monday-first grid covering a whole month.
type CalendarMonth struct {
	Year  int              `json:"year"`
	Month time.Month       `json:"month"`
	Weeks [][7]CalendarDay `json:"weeks"`
}

// Month lays out the given month and marks every day found in the aggregate.
func (a *Aggregate) Month(year int, month time.Month) CalendarMonth {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	day := first.AddDate(0, 0, -offset)

	cm := CalendarMonth{Year: year, Month: month}
	for {
		var week [7]CalendarDay
		for i := range week {
			cell := CalendarDay{Date: day, InMonth: day.Month() == month}
			if pl, ok := a.days[day.Format(DateLayout)]; ok {
				cell.ProfitLoss = &pl
				cell.Class = Classify(pl)
			}
			week[i] = cell
			day = day.AddDate(0, 0, 1)
		}
		cm.Weeks = append(cm.Weeks, week)
		if day.Month() != month || day.Year() != year {
			break
		}
	}
	return cm
}

// ParseMonth reads "yyyy-MM"; an empty string means the month of now.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
