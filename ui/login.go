package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Login holds the email and password fields of the sign-in screen.
type Login struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	err      string
}

func NewLogin() Login {
	email := textinput.New()
	email.Placeholder = textEmail
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = textPassword
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 72
	password.Width = 40

	return Login{email: email, password: password}
}

func (l *Login) Focus() tea.Cmd {
	l.focus = 0
	l.password.Blur()
	return l.email.Focus()
}

// Next moves between the two fields.
func (l *Login) Next() tea.Cmd {
	if l.focus == 0 {
		l.focus = 1
		l.email.Blur()
		return l.password.Focus()
	}
	return l.Focus()
}

func (l Login) Credentials() (string, string) {
	return strings.TrimSpace(l.email.Value()), l.password.Value()
}

func (l Login) OnPassword() bool {
	return l.focus == 1
}

func (l *Login) SetBusy(busy bool) {
	l.busy = busy
	if busy {
		l.err = ""
	}
}

func (l Login) Busy() bool {
	return l.busy
}

func (l *Login) Failed(reason string) {
	l.busy = false
	l.err = reason
	l.password.Reset()
}

// Reset clears both fields, used after a logout.
func (l *Login) Reset() {
	l.email.Reset()
	l.password.Reset()
	l.busy = false
	l.err = ""
}

func (l *Login) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if l.focus == 0 {
		l.email, cmd = l.email.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return cmd
}

func (l Login) View(width, height int) string {
	button := buttonStyle.Render(textLoginButton)
	if l.busy {
		button = mutedStyle.Render(textLoading)
	}
	lines := []string{
		titleStyle.Render(textLoginTitle),
		mutedStyle.Render(textLoginSubtitle),
		"",
		l.email.View(),
		l.password.View(),
		"",
		button,
	}
	if l.err != "" {
		lines = append(lines, "", errorStyle.Render(l.err))
	}
	form := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, form)
}
