package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"testing"

	"komunikator/domain/chat"
	"komunikator/errors"
	"komunikator/infrastructure/backend"
	"komunikator/mocks"
	"komunikator/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var general = &chat.Channel{ID: "general", Name: "general"}

func TestMessageService_LoadMessages(t *testing.T) {
	ctx := context.Background()

	t.Run("should query the channel oldest first with the default cap", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 0)

		store.EXPECT().List(gomock.Any(), chat.ListOptions{
			Where:   map[string]string{"channel_id": "general"},
			OrderBy: chat.OrderBy("created_at", chat.Asc),
			Limit:   100,
		}).Return([]chat.Message{
			{ID: "1", ChannelID: "general", UserID: "alice", Content: "hi"},
			{ID: "2", ChannelID: "general", UserID: "bob"},
			{ID: "3", ChannelID: "general", UserID: "bob", Content: "hey"},
		}, nil)

		messages := svc.LoadMessages(ctx, general)

		req.Len(messages, 2)
		req.Equal("1", messages[0].ID)
		req.Equal("3", messages[1].ID)
	})

	t.Run("should not query without a channel", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 0)
		store.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

		req.Nil(svc.LoadMessages(ctx, nil))
		req.Nil(svc.LoadMessages(ctx, &chat.Channel{Name: "no id"}))
	})

	t.Run("should read a failed query as an empty list", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 20)
		store.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))

		messages := svc.LoadMessages(ctx, general)

		req.NotNil(messages)
		req.Empty(messages)
	})
}

func TestMessageService_SendMessage(t *testing.T) {
	ctx := context.Background()
	alice := &chat.User{ID: "alice"}

	t.Run("should refuse incomplete input without calling the service", func(t *testing.T) {
		tests := []struct {
			description string
			channel     *chat.Channel
			user        *chat.User
			text        string
			want        error
		}{
			{"Blank text", general, alice, "  \n\t ", errors.ErrEmptyContent},
			{"No channel", nil, alice, "hi", errors.ErrNoChannel},
			{"Channel without id", &chat.Channel{}, alice, "hi", errors.ErrNoChannel},
			{"No user", general, nil, "hi", errors.ErrNoUser},
			{"User without id", general, &chat.User{Email: "a@b.pl"}, "hi", errors.ErrNoUser},
		}
		for _, tt := range tests {
			t.Run(tt.description, func(t *testing.T) {
				req := require.New(t)
				ctrl := gomock.NewController(t)
				store := mocks.NewMockIMessageStore(ctrl)
				svc := services.NewMessageService(slog.Default(), store, 0)
				store.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

				_, err := svc.SendMessage(ctx, tt.channel, tt.user, tt.text)

				req.ErrorIs(err, tt.want)
			})
		}
	})

	t.Run("should post a trimmed text message", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 0)

		store.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m chat.Message) (chat.Message, error) {
				req.Regexp(regexp.MustCompile(`^msg_\d+_[0-9a-z]{9}$`), m.ID)
				req.Equal("general", m.ChannelID)
				req.Equal("alice", m.UserID)
				req.Equal("Cześć wszystkim!", m.Content)
				req.Equal(chat.TextMessage, m.MessageType)
				m.CreatedAt = "2024-06-10T08:05:00Z"
				return m, nil
			})

		stored, err := svc.SendMessage(ctx, general, alice, "  Cześć wszystkim!  ")

		req.NoError(err)
		req.Equal("2024-06-10T08:05:00Z", stored.CreatedAt)
	})

	t.Run("should restore the channel reference missing from the representation", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 0)

		store.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(chat.Message{ID: "m1", UserID: "alice", Content: "hi"}, nil)

		stored, err := svc.SendMessage(ctx, general, alice, "hi")

		req.NoError(err)
		req.Equal("general", stored.ChannelID)
		req.True(stored.IsValid())
	})

	t.Run("should reject an incomplete stored record", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 0)

		store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(chat.Message{ID: "m1"}, nil)

		_, err := svc.SendMessage(ctx, general, alice, "hi")

		req.ErrorIs(err, errors.ErrInvalidRecord)
	})

	t.Run("should return the service failure", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIMessageStore(ctrl)
		svc := services.NewMessageService(slog.Default(), store, 0)

		store.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(chat.Message{}, &errors.BackendError{Status: 500, Message: "down"})

		_, err := svc.SendMessage(ctx, general, alice, "hi")

		_, ok := backend.AsBackendError(err)
		req.True(ok)
	})
}
