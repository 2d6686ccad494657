package cli

import (
	"pet-record-guardian/internal/domain/appointments"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	todayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	upcomingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	refillStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func statusBadge(s appointments.DisplayStatus) string {
	label := "[" + string(s) + "]"
	switch s {
	case appointments.DisplayOverdue, appointments.DisplayMissed:
		return overdueStyle.Render(label)
	case appointments.DisplayToday, appointments.DisplayTomorrow:
		return todayStyle.Render(label)
	case appointments.DisplayUpcoming:
		return upcomingStyle.Render(label)
	default:
		return mutedStyle.Render(label)
	}
}
