package ui

import (
	"fmt"
	"strings"

	"komunikator/domain/chat"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sidebar lists the channels, filtered by the search box.
type Sidebar struct {
	search   textinput.Model
	channels []chat.Channel
	cursor   int
	current  string
	user     *chat.User
	company  string
}

func NewSidebar(company string) Sidebar {
	search := textinput.New()
	search.Placeholder = textSearch
	search.Prompt = "🔍 "
	search.Width = sidebarWidth - 6
	return Sidebar{search: search, company: company}
}

func (s *Sidebar) SetChannels(channels []chat.Channel) {
	s.channels = channels
	s.clampCursor()
}

func (s *Sidebar) SetUser(user *chat.User) {
	s.user = user
}

// SetCurrent highlights the channel and moves the cursor onto it when visible.
func (s *Sidebar) SetCurrent(channelID string) {
	s.current = channelID
	if idx := chat.IndexOfChannel(s.Filtered(), channelID); idx >= 0 {
		s.cursor = idx
	}
}

func (s Sidebar) Current() string {
	return s.current
}

func (s Sidebar) Filtered() []chat.Channel {
	return chat.FilterChannels(s.channels, s.search.Value())
}

// Highlighted is the channel under the cursor, if any.
func (s Sidebar) Highlighted() (chat.Channel, bool) {
	filtered := s.Filtered()
	if s.cursor < 0 || s.cursor >= len(filtered) {
		return chat.Channel{}, false
	}
	return filtered[s.cursor], true
}

func (s *Sidebar) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *Sidebar) MoveDown() {
	if s.cursor < len(s.Filtered())-1 {
		s.cursor++
	}
}

func (s *Sidebar) FocusSearch() tea.Cmd {
	return s.search.Focus()
}

func (s *Sidebar) BlurSearch() {
	s.search.Blur()
}

// UpdateSearch forwards key presses to the search box and resets the cursor
// when the filter changes.
func (s *Sidebar) UpdateSearch(msg tea.Msg) tea.Cmd {
	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		s.cursor = 0
	}
	return cmd
}

func (s *Sidebar) clampCursor() {
	n := len(s.Filtered())
	switch {
	case n == 0:
		s.cursor = 0
	case s.cursor >= n:
		s.cursor = n - 1
	}
}

func (s Sidebar) View(height int, channelsFocused bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(textAppName) + "\n")
	b.WriteString(mutedStyle.Render(s.company) + "\n\n")
	b.WriteString(s.search.View() + "\n\n")
	b.WriteString(sectionStyle.Render(strings.ToUpper(textChannels)) + "\n")

	for i, channel := range s.Filtered() {
		line := truncate("# "+channel.Name, sidebarWidth-2)
		switch {
		case channel.ID == s.current:
			line = selectedStyle.Render(line)
		case channelsFocused && i == s.cursor:
			line = cursorStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	body := b.String()
	footer := s.footer()
	gap := height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return sidebarStyle.Height(height).Render(body + footer)
}

func (s Sidebar) footer() string {
	avatar := avatarStyle.Render(" " + strings.ToUpper(chat.AvatarLetter(s.user)) + " ")
	name := truncate(chat.DisplayName(s.user), sidebarWidth-8)
	return fmt.Sprintf("%s %s\n    %s %s", avatar, name, onlineStyle.Render("●"), mutedStyle.Render(textOnline))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
