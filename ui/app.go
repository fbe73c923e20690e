package ui

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"komunikator/domain/chat"
	"komunikator/errors"
	"komunikator/runtime/workers"
	"komunikator/services"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultRequestTimeout = 10 * time.Second

type focus int

const (
	focusSearch focus = iota
	focusChannels
	focusInput
)

type Deps struct {
	Log            *slog.Logger
	Auth           services.IAuthService
	Channels       services.IChannelService
	Messages       services.IMessageService
	CompanyName    string
	RequestTimeout time.Duration
}

type (
	authStateMsg      services.AuthState
	loginResultMsg    struct{ err error }
	channelsLoadedMsg struct{ channels []chat.Channel }
	channelLoadedMsg  struct {
		channelID string
		channel   *chat.Channel
	}
	messagesLoadedMsg struct {
		channelID string
		messages  []chat.Message
	}
	messageSentMsg struct {
		channelID string
		message   chat.Message
		err       error
	}
)

// App is the root model. It switches between the loading, login and main
// screens following the auth state.
type App struct {
	deps        Deps
	auth        chan services.AuthState
	authMu      sync.Mutex
	unsubscribe func()

	state   services.AuthState
	focus   focus
	width   int
	height  int
	spinner spinner.Model
	login   Login
	sidebar Sidebar
	chat    ChatArea
}

func NewApp(deps Deps) *App {
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}
	if deps.RequestTimeout <= 0 {
		deps.RequestTimeout = defaultRequestTimeout
	}
	a := &App{
		deps:    deps,
		auth:    make(chan services.AuthState, 1),
		state:   services.AuthState{IsLoading: true},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		login:   NewLogin(),
		sidebar: NewSidebar(deps.CompanyName),
		chat:    NewChatArea(),
	}
	a.unsubscribe = deps.Auth.Subscribe(a.onAuthState)
	return a
}

// onAuthState runs on the auth service's goroutine. Only the latest state is
// kept so a slow UI never blocks the service.
func (a *App) onAuthState(state services.AuthState) {
	a.authMu.Lock()
	defer a.authMu.Unlock()
	select {
	case <-a.auth:
	default:
	}
	a.auth <- state
}

func (a *App) waitForAuth() tea.Cmd {
	return func() tea.Msg {
		return authStateMsg(<-a.auth)
	}
}

// Close stops listening to auth changes.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForAuth(), a.restore(), a.spinner.Tick, a.login.Focus())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.chat.SetSize(max(msg.Width-sidebarWidth, 0), max(msg.Height-1, 0))
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, tea.Batch(cmd, a.chat.UpdateSpinner(msg))

	case authStateMsg:
		return a, tea.Batch(a.waitForAuth(), a.applyAuth(services.AuthState(msg)))

	case loginResultMsg:
		if msg.err != nil {
			a.login.Failed(textLoginFailed)
			return a, nil
		}
		a.login.SetBusy(false)
		return a, nil

	case channelsLoadedMsg:
		a.sidebar.SetChannels(msg.channels)
		a.sidebar.SetCurrent(a.sidebar.Current())
		return a, nil

	case channelLoadedMsg:
		if msg.channelID != a.sidebar.Current() {
			return a, nil
		}
		a.chat.SetChannel(msg.channel)
		if msg.channel == nil {
			return a, a.chat.SetLoading(false)
		}
		return a, tea.Batch(a.chat.SetLoading(true), a.loadMessages(msg.channel))

	case messagesLoadedMsg:
		if current := a.chat.Channel(); current == nil || current.ID != msg.channelID {
			return a, nil
		}
		a.chat.SetLoading(false)
		a.chat.SetMessages(msg.messages)
		return a, nil

	case messageSentMsg:
		if current := a.chat.Channel(); current == nil || current.ID != msg.channelID {
			return a, nil
		}
		switch {
		case stderrors.Is(msg.err, errors.ErrInvalidRecord):
			// Stored, but the returned record cannot be shown.
			a.chat.ClearDraft()
			return a, nil
		case msg.err != nil:
			a.chat.SendFailed()
			return a, nil
		}
		a.chat.Appended(msg.message)
		return a, nil

	case workers.PollTick:
		channel := a.chat.Channel()
		if a.state.User == nil || channel == nil || a.chat.Loading() {
			return a, nil
		}
		return a, a.loadMessages(channel)
	}

	if a.state.User != nil && a.focus == focusInput {
		return a, a.chat.UpdateViewport(msg)
	}
	return a, nil
}

// applyAuth reacts to sign in and sign out.
func (a *App) applyAuth(state services.AuthState) tea.Cmd {
	previous := a.state.User
	a.state = state
	a.sidebar.SetUser(state.User)
	a.chat.SetUser(state.User)

	switch {
	case state.User == nil:
		a.chat.SetChannel(nil)
		a.sidebar.SetChannels(nil)
		a.sidebar.SetCurrent("")
		if previous != nil {
			a.login.Reset()
		}
		return a.login.Focus()
	case previous == nil || previous.ID != state.User.ID:
		a.sidebar.BlurSearch()
		a.focus = focusInput
		return tea.Batch(a.chat.Focus(), a.loadChannels(), a.selectChannel(a.deps.Channels.LastChannel()))
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}
	switch {
	case a.state.IsLoading:
		return nil
	case a.state.User == nil:
		return a.handleLoginKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlL:
		return a.logout()
	case tea.KeyTab:
		return a.cycleFocus()
	}

	switch a.focus {
	case focusSearch:
		if msg.Type == tea.KeyEnter {
			return a.selectHighlighted()
		}
		return a.sidebar.UpdateSearch(msg)
	case focusChannels:
		switch msg.Type {
		case tea.KeyUp:
			a.sidebar.MoveUp()
		case tea.KeyDown:
			a.sidebar.MoveDown()
		case tea.KeyEnter:
			return a.selectHighlighted()
		}
		return nil
	default:
		switch msg.Type {
		case tea.KeyEnter:
			return a.send()
		case tea.KeyPgUp, tea.KeyPgDown:
			return a.chat.UpdateViewport(msg)
		}
		return a.chat.UpdateInput(msg)
	}
}

func (a *App) handleLoginKey(msg tea.KeyMsg) tea.Cmd {
	if a.login.Busy() {
		return nil
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab:
		return a.login.Next()
	case tea.KeyEnter:
		if !a.login.OnPassword() {
			return a.login.Next()
		}
		email, password := a.login.Credentials()
		a.login.SetBusy(true)
		return a.signIn(email, password)
	}
	return a.login.Update(msg)
}

func (a *App) cycleFocus() tea.Cmd {
	a.focus = (a.focus + 1) % 3
	a.sidebar.BlurSearch()
	a.chat.Blur()
	switch a.focus {
	case focusSearch:
		return a.sidebar.FocusSearch()
	case focusInput:
		return a.chat.Focus()
	}
	return nil
}

func (a *App) selectHighlighted() tea.Cmd {
	channel, ok := a.sidebar.Highlighted()
	if !ok {
		return nil
	}
	return a.selectChannel(channel.ID)
}

// selectChannel makes channelID current and loads it. Selecting the channel
// already shown is a no-op.
func (a *App) selectChannel(channelID string) tea.Cmd {
	if channelID == "" {
		return nil
	}
	if current := a.chat.Channel(); current != nil && current.ID == channelID && a.sidebar.Current() == channelID {
		return nil
	}
	a.sidebar.SetCurrent(channelID)
	a.deps.Log.Debug("Channel selected", "channel_id", channelID)
	return tea.Batch(a.chat.SetLoading(true), a.loadChannel(channelID))
}

func (a *App) send() tea.Cmd {
	channel := a.chat.Channel()
	text := a.chat.Draft()
	if channel == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	user := a.state.User
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		message, err := a.deps.Messages.SendMessage(ctx, channel, user, text)
		return messageSentMsg{channelID: channel.ID, message: message, err: err}
	}
}

func (a *App) restore() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		if err := a.deps.Auth.Restore(ctx); err != nil {
			a.deps.Log.Debug("No session restored", "error", err)
		}
		return nil
	}
}

func (a *App) signIn(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		return loginResultMsg{err: a.deps.Auth.Login(ctx, email, password)}
	}
}

func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		if err := a.deps.Auth.Logout(ctx); err != nil {
			a.deps.Log.Warn("Error signing out", "error", err)
		}
		return nil
	}
}

func (a *App) loadChannels() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		return channelsLoadedMsg{channels: a.deps.Channels.ListChannels(ctx)}
	}
}

func (a *App) loadChannel(channelID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		channel := a.deps.Channels.LoadChannel(ctx, channelID)
		if channel != nil {
			a.deps.Channels.SelectChannel(channelID)
		}
		return channelLoadedMsg{channelID: channelID, channel: channel}
	}
}

func (a *App) loadMessages(channel *chat.Channel) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.context()
		defer cancel()
		return messagesLoadedMsg{channelID: channel.ID, messages: a.deps.Messages.LoadMessages(ctx, channel)}
	}
}

func (a *App) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.deps.RequestTimeout)
}

func (a *App) View() string {
	switch {
	case a.state.IsLoading:
		screen := lipgloss.JoinHorizontal(lipgloss.Center, a.spinner.View(), " ", textLoading)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, screen)
	case a.state.User == nil:
		return a.login.View(a.width, a.height)
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		a.sidebar.View(max(a.height-1, 0), a.focus == focusChannels),
		a.chat.View())
	return main + "\n" + mutedStyle.Render(textHelp)
}
