//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"komunikator/contract"
	"komunikator/domain/chat"
	"komunikator/errors"
)

// DefaultMessageLimit caps one channel load.
const DefaultMessageLimit = 100

type IMessageService interface {
	LoadMessages(ctx context.Context, channel *chat.Channel) []chat.Message
	SendMessage(ctx context.Context, channel *chat.Channel, user *chat.User, text string) (chat.Message, error)
}

type MessageService struct {
	log   *slog.Logger
	store contract.IMessageStore
	limit int
	now   func() time.Time
}

func NewMessageService(log *slog.Logger, store contract.IMessageStore, limit int) *MessageService {
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	return &MessageService{log: log, store: store, limit: limit, now: time.Now}
}

// LoadMessages returns the channel's messages oldest first, without the
// records that cannot be rendered. A failed query reads as an empty list.
func (s *MessageService) LoadMessages(ctx context.Context, channel *chat.Channel) []chat.Message {
	if channel == nil || channel.ID == "" {
		return nil
	}
	cmd := chat.GetMessageCommand{ChannelID: channel.ID, Limit: s.limit}
	messages, err := s.store.List(ctx, chat.ListOptions{
		Where:   map[string]string{"channel_id": cmd.ChannelID},
		OrderBy: chat.OrderBy("created_at", chat.Asc),
		Limit:   cmd.Limit,
	})
	if err != nil {
		s.log.Warn("Error loading messages", "channel_id", channel.ID, "error", err)
		return []chat.Message{}
	}
	valid := chat.ValidMessages(messages)
	if dropped := len(messages) - len(valid); dropped > 0 {
		s.log.Debug("Dropped invalid messages", "channel_id", channel.ID, "count", dropped)
	}
	return valid
}

// SendMessage posts the trimmed text and returns the stored record.
func (s *MessageService) SendMessage(ctx context.Context, channel *chat.Channel,
	user *chat.User, text string) (chat.Message, error) {
	switch {
	case channel == nil || channel.ID == "":
		return chat.Message{}, errors.ErrNoChannel
	case user == nil || user.ID == "":
		return chat.Message{}, errors.ErrNoUser
	}
	cmd := chat.PostMessageCommand{ChannelID: channel.ID, UserID: user.ID, Content: text}.Trimmed()
	if cmd.Content == "" {
		return chat.Message{}, errors.ErrEmptyContent
	}

	stored, err := s.store.Create(ctx, chat.Message{
		ID:          chat.NewMessageID(s.now()),
		ChannelID:   cmd.ChannelID,
		UserID:      cmd.UserID,
		Content:     cmd.Content,
		MessageType: chat.TextMessage,
	})
	if err != nil {
		s.log.Error("Error sending message", "channel_id", channel.ID, "error", err)
		return chat.Message{}, err
	}
	if !stored.IsPosted() {
		s.log.Warn("Service returned an incomplete message", "channel_id", channel.ID, "message_id", stored.ID)
		return chat.Message{}, errors.ErrInvalidRecord
	}
	if stored.ChannelID == "" {
		stored.ChannelID = channel.ID
	}
	return stored, nil
}
