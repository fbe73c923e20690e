package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"komunikator/domain/chat"
	"komunikator/errors"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

type command func(ctx context.Context, c *client, args []string) (int, error)

var commands = map[string]command{
	"login":    loginCommand,
	"logout":   logoutCommand,
	"whoami":   whoamiCommand,
	"channels": channelsCommand,
	"history":  historyCommand,
	"send":     sendCommand,
}

func loginCommand(ctx context.Context, c *client, args []string) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return exitConfig, err
	}

	if err := c.auth.Login(ctx, *email, *password); err != nil {
		if stderrors.Is(err, errors.ErrInvalidCredentials) {
			return exitConfig, err
		}
		return exitRuntime, err
	}
	fmt.Printf("Zalogowano jako %s\n", chat.DisplayName(c.auth.State().User))
	return exitOK, nil
}

func logoutCommand(ctx context.Context, c *client, _ []string) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.auth.Restore(ctx); err != nil {
		return exitRuntime, err
	}
	if err := c.auth.Logout(ctx); err != nil {
		return exitRuntime, err
	}
	fmt.Println("Wylogowano")
	return exitOK, nil
}

func whoamiCommand(ctx context.Context, c *client, _ []string) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	user, err := c.signedIn(ctx)
	if err != nil {
		return exitRuntime, err
	}
	fmt.Printf("%s\t%s\t%s\n", user.ID, user.Email, chat.DisplayName(user))
	return exitOK, nil
}

func channelsCommand(ctx context.Context, c *client, args []string) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fs := flag.NewFlagSet("channels", flag.ContinueOnError)
	query := fs.String("q", "", "case-insensitive name filter")
	if err := fs.Parse(args); err != nil {
		return exitConfig, err
	}
	if _, err := c.signedIn(ctx); err != nil {
		return exitRuntime, err
	}

	channels := chat.FilterChannels(c.channels.ListChannels(ctx), *query)
	printChannels(os.Stdout, channels)
	return exitOK, nil
}

func historyCommand(ctx context.Context, c *client, args []string) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	channelID := fs.String("channel", c.channels.LastChannel(), "channel id")
	if err := fs.Parse(args); err != nil {
		return exitConfig, err
	}
	user, err := c.signedIn(ctx)
	if err != nil {
		return exitRuntime, err
	}

	channel := c.channels.LoadChannel(ctx, *channelID)
	if channel == nil {
		return exitRuntime, fmt.Errorf("%w: %s", errors.ErrChannelNotFound, *channelID)
	}
	c.channels.SelectChannel(channel.ID)
	printHistory(os.Stdout, channel, user, c.messages.LoadMessages(ctx, channel))
	return exitOK, nil
}

func sendCommand(ctx context.Context, c *client, args []string) (int, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	channelID := fs.String("channel", c.channels.LastChannel(), "channel id")
	if err := fs.Parse(args); err != nil {
		return exitConfig, err
	}
	text := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(text) == "" {
		return exitConfig, errors.ErrEmptyContent
	}
	user, err := c.signedIn(ctx)
	if err != nil {
		return exitRuntime, err
	}

	channel := c.channels.LoadChannel(ctx, *channelID)
	if channel == nil {
		return exitRuntime, fmt.Errorf("%w: %s", errors.ErrChannelNotFound, *channelID)
	}
	message, err := c.messages.SendMessage(ctx, channel, user, text)
	if err != nil {
		return exitRuntime, err
	}
	fmt.Printf("%s\t%s\t%s\n", message.ID, chat.FormatTime(message.CreatedAt), message.Content)
	return exitOK, nil
}

// signedIn resumes the stored session and fails when there is none.
func (c *client) signedIn(ctx context.Context) (*chat.User, error) {
	if err := c.auth.Restore(ctx); err != nil {
		return nil, err
	}
	user := c.auth.State().User
	if user == nil {
		return nil, fmt.Errorf("%w: run `komunikator login` first", errors.ErrUnauthenticated)
	}
	return user, nil
}

// withTimeout bounds a whole command by REQUEST_TIMEOUT.
func (c *client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.config.RequestTimeout)
}

func printChannels(w io.Writer, channels []chat.Channel) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Description", "Private"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetTablePadding("\t")

	for _, channel := range channels {
		table.Append([]string{channel.ID, "#" + channel.Name, channel.Description, strconv.FormatBool(channel.IsPrivate)})
	}
	table.Render()
}

func printHistory(w io.Writer, channel *chat.Channel, user *chat.User, messages []chat.Message) {
	header := color.New(color.FgCyan, color.OpBold)
	muted := color.New(color.FgGray)
	own := color.New(color.FgBlue, color.OpBold)

	fmt.Fprintf(w, "%s  %s\n\n", header.Render("# "+channel.Name), channel.Description)
	if len(messages) == 0 {
		fmt.Fprintln(w, muted.Render("Brak wiadomości w tym kanale. Napisz pierwszą!"))
		return
	}
	for i, m := range messages {
		if chat.ShowAuthorHeader(messages, i) {
			author := chat.AuthorLabel(m, user)
			if user != nil && m.UserID == user.ID {
				author = own.Render(author)
			} else {
				author = color.OpBold.Render(author)
			}
			fmt.Fprintf(w, "%s %s\n", author, muted.Render(chat.FormatTime(m.CreatedAt)))
		}
		fmt.Fprintf(w, "  %s\n", m.Content)
	}
}
