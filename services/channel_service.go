//go:generate go run go.uber.org/mock/mockgen -source=channel_service.go -destination=../mocks/mock_channel_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"komunikator/contract"
	"komunikator/domain/chat"
	"komunikator/infrastructure/storage"
)

type IChannelService interface {
	ListChannels(ctx context.Context) []chat.Channel
	LoadChannel(ctx context.Context, channelID string) *chat.Channel
	SelectChannel(channelID string)
	LastChannel() string
}

type ChannelService struct {
	log      *slog.Logger
	store    contract.IChannelStore
	sessions storage.ISessionRepository
	fallback string
}

func NewChannelService(log *slog.Logger, store contract.IChannelStore,
	sessions storage.ISessionRepository, defaultChannel string) *ChannelService {
	if defaultChannel == "" {
		defaultChannel = chat.DefaultChannel
	}
	return &ChannelService{log: log, store: store, sessions: sessions, fallback: defaultChannel}
}

// ListChannels returns every channel ordered by name. A failed query is
// logged and reads as an empty list.
func (s *ChannelService) ListChannels(ctx context.Context) []chat.Channel {
	channels, err := s.store.List(ctx, chat.ListOptions{
		OrderBy: chat.OrderBy("name", chat.Asc),
	})
	if err != nil {
		s.log.Warn("Error loading channels", "error", err)
		return []chat.Channel{}
	}
	return channels
}

// LoadChannel returns nil when the id is empty, unknown or the query fails.
func (s *ChannelService) LoadChannel(ctx context.Context, channelID string) *chat.Channel {
	if channelID == "" {
		return nil
	}
	channels, err := s.store.List(ctx, chat.ListOptions{
		Where: map[string]string{"id": channelID},
	})
	if err != nil {
		s.log.Error("Error loading channel", "channel_id", channelID, "error", err)
		return nil
	}
	if len(channels) == 0 || !channels[0].IsValid() {
		s.log.Warn("Channel not found", "channel_id", channelID)
		return nil
	}
	return &channels[0]
}

// SelectChannel remembers the choice for the next start.
func (s *ChannelService) SelectChannel(channelID string) {
	if channelID == "" {
		return
	}
	if err := s.sessions.SaveLastChannel(channelID); err != nil {
		s.log.Warn("Could not remember channel", "channel_id", channelID, "error", err)
	}
}

func (s *ChannelService) LastChannel() string {
	channelID, err := s.sessions.LastChannel()
	if err != nil {
		s.log.Warn("Could not read last channel", "error", err)
	}
	if channelID == "" {
		return s.fallback
	}
	return channelID
}
