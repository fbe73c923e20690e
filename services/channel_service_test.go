package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"komunikator/domain/chat"
	"komunikator/mocks"
	"komunikator/services"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestChannelService_ListChannels(t *testing.T) {
	ctx := context.Background()

	t.Run("should query channels ordered by name", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIChannelStore(ctrl)
		svc := services.NewChannelService(slog.Default(), store, mocks.NewMockISessionRepository(ctrl), "")

		channels := []chat.Channel{{ID: "dev", Name: "dev"}, {ID: "general", Name: "general"}}
		store.EXPECT().
			List(gomock.Any(), chat.ListOptions{OrderBy: chat.OrderBy("name", chat.Asc)}).
			Return(channels, nil)

		req.Equal(channels, svc.ListChannels(ctx))
	})

	t.Run("should read a failed query as an empty list", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		store := mocks.NewMockIChannelStore(ctrl)
		svc := services.NewChannelService(slog.Default(), store, mocks.NewMockISessionRepository(ctrl), "")

		store.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))

		channels := svc.ListChannels(ctx)
		req.NotNil(channels)
		req.Empty(channels)
	})
}

func TestChannelService_LoadChannel(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		description string
		id          string
		rows        []chat.Channel
		err         error
		calls       int
		wantID      string
	}{
		{"Should return nil for an empty id", "", nil, nil, 0, ""},
		{"Should return the first match", "general", []chat.Channel{{ID: "general", Name: "general"}}, nil, 1, "general"},
		{"Should return nil when nothing matches", "ghost", []chat.Channel{}, nil, 1, ""},
		{"Should return nil when the record has no id", "general", []chat.Channel{{Name: "general"}}, nil, 1, ""},
		{"Should return nil when the query fails", "general", nil, fmt.Errorf("boom"), 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			store := mocks.NewMockIChannelStore(ctrl)
			svc := services.NewChannelService(slog.Default(), store, mocks.NewMockISessionRepository(ctrl), "")

			store.EXPECT().
				List(gomock.Any(), chat.ListOptions{Where: map[string]string{"id": tt.id}}).
				Return(tt.rows, tt.err).
				Times(tt.calls)

			channel := svc.LoadChannel(ctx, tt.id)

			if tt.wantID == "" {
				req.Nil(channel)
				return
			}
			req.NotNil(channel)
			req.Equal(tt.wantID, channel.ID)
		})
	}
}

func TestChannelService_LastChannel(t *testing.T) {
	t.Run("should fall back to the configured default", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockISessionRepository(ctrl)
		svc := services.NewChannelService(slog.Default(), mocks.NewMockIChannelStore(ctrl), sessions, "ogolny")

		sessions.EXPECT().LastChannel().Return("", nil)

		req.Equal("ogolny", svc.LastChannel())
	})

	t.Run("should use general when nothing is configured", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockISessionRepository(ctrl)
		svc := services.NewChannelService(slog.Default(), mocks.NewMockIChannelStore(ctrl), sessions, "")

		sessions.EXPECT().LastChannel().Return("", fmt.Errorf("disk"))

		req.Equal(chat.DefaultChannel, svc.LastChannel())
	})

	t.Run("should remember the selected channel", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		sessions := mocks.NewMockISessionRepository(ctrl)
		svc := services.NewChannelService(slog.Default(), mocks.NewMockIChannelStore(ctrl), sessions, "")

		sessions.EXPECT().SaveLastChannel("dev").Return(nil)
		sessions.EXPECT().LastChannel().Return("dev", nil)

		svc.SelectChannel("dev")
		svc.SelectChannel("")
		req.Equal("dev", svc.LastChannel())
	})
}
