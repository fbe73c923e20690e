package ui

import (
	"strings"

	"komunikator/domain/chat"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// ChatArea shows the current channel's messages and the draft input.
type ChatArea struct {
	channel  *chat.Channel
	user     *chat.User
	messages []chat.Message
	loading  bool
	sendErr  bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
}

func NewChatArea() ChatArea {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 4000
	return ChatArea{
		input:    input,
		viewport: viewport.New(0, 0),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (c ChatArea) Channel() *chat.Channel {
	return c.channel
}

// SetChannel switches the area to a channel and drops the previous messages.
func (c *ChatArea) SetChannel(channel *chat.Channel) {
	c.channel = channel
	c.messages = nil
	c.sendErr = false
	if channel != nil {
		c.input.Placeholder = inputPlaceholder(channel.Name)
	}
	c.refresh()
}

func (c *ChatArea) SetUser(user *chat.User) {
	c.user = user
	c.refresh()
}

func (c *ChatArea) SetLoading(loading bool) tea.Cmd {
	c.loading = loading
	if loading {
		return c.spinner.Tick
	}
	return nil
}

func (c ChatArea) Loading() bool {
	return c.loading
}

func (c *ChatArea) SetMessages(messages []chat.Message) {
	c.messages = messages
	c.refresh()
}

func (c ChatArea) Messages() []chat.Message {
	return c.messages
}

// Appended adds a freshly sent message and clears the draft. A poll may
// already have brought the message in.
func (c *ChatArea) Appended(message chat.Message) {
	if !lo.ContainsBy(c.messages, func(m chat.Message) bool { return m.ID == message.ID }) {
		c.messages = append(c.messages, message)
	}
	c.input.Reset()
	c.sendErr = false
	c.refresh()
}

func (c *ChatArea) SendFailed() {
	c.sendErr = true
}

func (c ChatArea) Draft() string {
	return c.input.Value()
}

// ClearDraft empties the input after a send the service accepted.
func (c *ChatArea) ClearDraft() {
	c.input.Reset()
	c.sendErr = false
}

func (c *ChatArea) Focus() tea.Cmd {
	return c.input.Focus()
}

func (c *ChatArea) Blur() {
	c.input.Blur()
}

func (c *ChatArea) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.input.Width = max(width-4, 1)
	c.viewport.Width = width
	c.viewport.Height = max(height-5, 1)
	c.refresh()
}

func (c *ChatArea) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *ChatArea) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !c.loading {
		return nil
	}
	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return cmd
}

func (c *ChatArea) UpdateViewport(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

// refresh re-renders the transcript and keeps the newest message in view.
func (c *ChatArea) refresh() {
	c.viewport.SetContent(c.transcript())
	c.viewport.GotoBottom()
}

func (c ChatArea) transcript() string {
	if len(c.messages) == 0 {
		return mutedStyle.Render(textNoMessages)
	}
	var b strings.Builder
	for i, m := range c.messages {
		if chat.ShowAuthorHeader(c.messages, i) {
			if i > 0 {
				b.WriteString("\n")
			}
			avatar := avatarStyle.Render(" " + chat.Initials(m.UserID) + " ")
			author := authorStyle.Render(chat.AuthorLabel(m, c.user))
			b.WriteString(avatar + " " + author + " " + mutedStyle.Render(chat.FormatTime(m.CreatedAt)) + "\n")
		}
		body := m.Content
		if c.user != nil && m.UserID == c.user.ID {
			body = ownBodyStyle.Render(body)
		}
		b.WriteString("     " + body + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c ChatArea) View() string {
	if c.channel == nil {
		placeholder := lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render(textPickChannel),
			mutedStyle.Render(textPickChannelSub))
		return lipgloss.Place(c.width, c.height, lipgloss.Center, lipgloss.Center, placeholder)
	}

	header := "# " + c.channel.Name
	if c.channel.Description != "" {
		header += "  " + mutedStyle.Render(c.channel.Description)
	}

	body := c.viewport.View()
	if c.loading {
		body = lipgloss.Place(c.viewport.Width, c.viewport.Height, lipgloss.Center, lipgloss.Center, c.spinner.View())
	}

	footer := c.input.View()
	if c.sendErr {
		footer += "\n" + errorStyle.Render(textSendFailed)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Width(c.width).Render(header),
		body,
		inputStyle.Width(c.width).Render(footer))
}
