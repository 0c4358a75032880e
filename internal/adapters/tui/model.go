package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tradejournal/internal/app"
	"tradejournal/internal/domain/journal"
)

type tab int

const (
	tabTrades tab = iota
	tabCalendar
)

const (
	fieldTicker = iota
	fieldEntry
	fieldExit
	fieldSave
)

// visibleRows caps how many recent trades the table shows.
const visibleRows = 12

// Model is the journal window: a trade form with its results table, and a
// calendar of daily results.
type Model struct {
	ctx context.Context
	svc *app.JournalService

	tab    tab
	inputs []textinput.Model
	focus  int

	year  int
	month time.Month

	modal  string
	status string

	width, height int
}

func New(ctx context.Context, svc *app.JournalService) Model {
	labels := []string{"AAPL", "100.00", "105.50"}
	inputs := make([]textinput.Model, len(labels))
	for i, placeholder := range labels {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = ""
		ti.CharLimit = 16
		ti.Width = 16
		inputs[i] = ti
	}
	inputs[fieldTicker].Focus()

	now := svc.Now()
	return Model{
		ctx:    ctx,
		svc:    svc,
		inputs: inputs,
		year:   now.Year(),
		month:  now.Month(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != "" {
			switch msg.String() {
			case "enter", "esc", " ":
				m.modal = ""
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+t":
			if m.tab == tabTrades {
				m.tab = tabCalendar
			} else {
				m.tab = tabTrades
			}
			return m, nil
		case "f1":
			m.tab = tabTrades
			return m, nil
		case "f2":
			m.tab = tabCalendar
			return m, nil
		}
		if m.tab == tabCalendar {
			return m.updateCalendar(msg), nil
		}
		return m.updateForm(msg)
	}

	if m.tab == tabTrades && m.focus < fieldSave {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.setFocus((m.focus + 1) % (fieldSave + 1)), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus + fieldSave) % (fieldSave + 1)), nil
	case "enter":
		return m.submit(), nil
	}

	if m.focus == fieldSave {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateCalendar(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "left", "h":
		m.year, m.month = shiftMonth(m.year, m.month, -1)
	case "right", "l":
		m.year, m.month = shiftMonth(m.year, m.month, 1)
	case "t":
		now := m.svc.Now()
		m.year, m.month = now.Year(), now.Month()
	}
	return m
}

func shiftMonth(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}

func (m Model) setFocus(i int) Model {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m
}

// submit saves the form as a trade. On success the inputs are cleared;
// on failure the error is shown in a modal and the form is kept.
func (m Model) submit() Model {
	row, err := m.svc.Submit(m.ctx, app.SubmitInput{
		Ticker: m.inputs[fieldTicker].Value(),
		Entry:  m.inputs[fieldEntry].Value(),
		Exit:   m.inputs[fieldExit].Value(),
	})
	if errors.Is(err, journal.ErrInvalidPrices) {
		m.modal = err.Error()
		return m
	}
	if err != nil {
		m.modal = fmt.Sprintf("Failed to save trade: %v", err)
		return m
	}

	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.status = fmt.Sprintf("Saved %s %s", row.Ticker, row.Result)
	return m.setFocus(fieldTicker)
}

func (m Model) View() string {
	var b strings.Builder

	tabs := []string{tabStyle.Render("Trades"), tabStyle.Render("Calendar")}
	tabs[m.tab] = activeTabStyle.Render([]string{"Trades", "Calendar"}[m.tab])
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch m.tab {
	case tabTrades:
		b.WriteString(m.viewForm())
	case tabCalendar:
		b.WriteString(RenderMonth(m.svc.Calendar(m.year, m.month)))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("←/→ month • t today • ctrl+t trades • ctrl+c quit"))
	}

	view := b.String()
	if m.modal != "" {
		box := modalStyle.Render(m.modal + "\n\n" + helpStyle.Render("enter to dismiss"))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return view + "\n\n" + box
	}
	return view
}

func (m Model) viewForm() string {
	var b strings.Builder

	for i, label := range []string{"Ticker:", "Entry Price:", "Exit Price:"} {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	button := buttonStyle
	if m.focus == fieldSave {
		button = activeButtonStyle
	}
	b.WriteString(button.Render("Save Trade"))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := m.svc.Trades()
	if len(rows) > visibleRows {
		rows = rows[len(rows)-visibleRows:]
	}
	b.WriteString(RenderTable(rows))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field • enter save • ctrl+t calendar • ctrl+c quit"))
	return b.String()
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(ctx context.Context, svc *app.JournalService) error {
	_, err := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
