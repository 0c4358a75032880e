package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"tradejournal/internal/domain/journal"
)

var weekdays = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// classStyle decorates a cell for a profit/loss class; unmarked days keep base.
func classStyle(base lipgloss.Style, c journal.Class) lipgloss.Style {
	switch c {
	case journal.ClassPositive:
		return base.Foreground(Shadow).Background(Green)
	case journal.ClassNegative:
		return base.Foreground(Text).Background(Red)
	default:
		return base
	}
}

// RenderMonth draws the month grid with each traded day colored by the sign
// of its result. The output depends only on cm.
func RenderMonth(cm journal.CalendarMonth) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", cm.Month, cm.Year)))
	b.WriteString("\n\n")

	head := make([]string, len(weekdays))
	for i, d := range weekdays {
		head[i] = weekdayStyle.Render(d)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, head...))
	b.WriteString("\n")

	for _, week := range cm.Weeks {
		cells := make([]string, len(week))
		for i, day := range week {
			base := dayStyle
			if !day.InMonth {
				base = outsideStyle
			}
			cells[i] = classStyle(base, day.Class).Render(fmt.Sprintf("%d", day.Date.Day()))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(positiveStyle.Render(" profit ") + " " + negativeStyle.Render(" loss "))
	return b.String()
}

// RenderTable draws the results table; the result column is colored by class.
func RenderTable(rows []journal.Row) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Date", "Ticker", "Entry", "Exit", "Result").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			if col == 4 && row >= 0 && row < len(rows) {
				return classStyle(cellStyle, rows[row].Class)
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(r.Cells()...)
	}
	return t.Render()
}
