package chat

import "strings"

// PostMessageCommand is the user's intent to write into a channel.
type PostMessageCommand struct {
	ChannelID string
	UserID    string
	Content   string
}

// Trimmed returns the command with surrounding whitespace removed from the content.
func (p PostMessageCommand) Trimmed() PostMessageCommand {
	p.Content = strings.TrimSpace(p.Content)
	return p
}

// GetMessageCommand loads the latest messages of a channel, oldest first.
type GetMessageCommand struct {
	ChannelID string
	Limit     int
}
