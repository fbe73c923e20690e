package ui

import "github.com/charmbracelet/lipgloss"

const sidebarWidth = 30

var (
	colorAccent = lipgloss.Color("#2563EB")
	colorSlate  = lipgloss.Color("#0F172A")
	colorMuted  = lipgloss.Color("#94A3B8")
	colorText   = lipgloss.Color("#E2E8F0")
	colorOnline = lipgloss.Color("#22C55E")

	sidebarStyle = lipgloss.NewStyle().
			Background(colorSlate).
			Foreground(colorText).
			Width(sidebarWidth).
			Padding(0, 1)

	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	sectionStyle  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	selectedStyle = lipgloss.NewStyle().Background(colorAccent).Foreground(lipgloss.Color("#FFFFFF"))
	cursorStyle   = lipgloss.NewStyle().Underline(true)
	onlineStyle   = lipgloss.NewStyle().Foreground(colorOnline)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorMuted)

	avatarStyle  = lipgloss.NewStyle().Background(colorAccent).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	authorStyle  = lipgloss.NewStyle().Bold(true)
	ownBodyStyle = lipgloss.NewStyle().Foreground(colorAccent)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(colorMuted)

	buttonStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2)
)
