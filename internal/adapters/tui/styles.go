package tui

import "github.com/charmbracelet/lipgloss"

var (
	Green  = lipgloss.Color("#2AFFAA") // profit
	Red    = lipgloss.Color("#FF5555") // loss
	Cyan   = lipgloss.Color("#00E5FF")
	Muted  = lipgloss.Color("#6C7280")
	Text   = lipgloss.Color("#ECEFF4")
	Shadow = lipgloss.Color("#1B1D23")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(Shadow).Background(Cyan).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(Muted).Padding(0, 1)
	labelStyle     = lipgloss.NewStyle().Foreground(Text).Width(13)
	helpStyle      = lipgloss.NewStyle().Foreground(Muted)
	statusStyle    = lipgloss.NewStyle().Foreground(Green)

	buttonStyle       = lipgloss.NewStyle().Foreground(Text).Border(lipgloss.NormalBorder()).BorderForeground(Muted).Padding(0, 2)
	activeButtonStyle = buttonStyle.BorderForeground(Cyan).Foreground(Cyan).Bold(true)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Foreground(Cyan).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Foreground(Text).Padding(0, 1)
	borderStyle     = lipgloss.NewStyle().Foreground(Muted)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Padding(1, 3).
			Foreground(Text)

	dayStyle      = lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Foreground(Text)
	outsideStyle  = dayStyle.Foreground(Muted)
	weekdayStyle  = dayStyle.Foreground(Cyan)
	positiveStyle = lipgloss.NewStyle().Foreground(Shadow).Background(Green)
	negativeStyle = lipgloss.NewStyle().Foreground(Text).Background(Red)
)
