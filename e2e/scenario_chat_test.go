package e2e

import (
	"context"
	"fmt"
	"testing"
	"time"

	"komunikator/domain/chat"
	"komunikator/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testChatSuite struct {
	BaseBackendSuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

func (s *testChatSuite) TestSignInPostAndReadBack() {
	var channel *chat.Channel
	content := fmt.Sprintf("e2e %s", uuid.NewString())

	s.Run("Step 1: Sign in with password", func() {
		s.Step("Signing in", func(ctx context.Context) {
			s.Require().NoError(s.Auth.Login(ctx, s.Config.Email, s.Config.Password))
			user := s.Auth.State().User
			s.Require().NotNil(user)
			s.Require().NotEmpty(user.ID)

			stored, err := s.sessions.Load()
			s.Require().NoError(err)
			s.Require().Equal(user.ID, stored.User.ID)
		})
	})

	s.Run("Step 2: Channel list is ordered and contains the test channel", func() {
		s.Step("Listing channels", func(ctx context.Context) {
			channels := s.Channels.ListChannels(ctx)
			s.Require().NotEmpty(channels)
			for i := 1; i < len(channels); i++ {
				s.Require().LessOrEqual(channels[i-1].Name, channels[i].Name)
			}
			s.Require().GreaterOrEqual(chat.IndexOfChannel(channels, s.Config.Channel), 0)

			channel = s.Channels.LoadChannel(ctx, s.Config.Channel)
			s.Require().NotNil(channel)
		})
	})

	s.Run("Step 3: Send a message", func() {
		s.Step("Posting", func(ctx context.Context) {
			message, err := s.Messages.SendMessage(ctx, channel, s.Auth.State().User, "  "+content+"  ")
			s.Require().NoError(err)
			s.Require().Equal(content, message.Content)
			s.Require().Regexp(`^msg_\d+_[0-9a-z]{9}$`, message.ID)
		})
	})

	s.Run("Step 4: Message comes back oldest first", func() {
		s.Step("Reloading history", func(ctx context.Context) {
			messages := s.Messages.LoadMessages(ctx, channel)
			s.Require().NotEmpty(messages)

			found := false
			for _, m := range messages {
				if m.Content == content {
					found = true
				}
			}
			// Channels holding more than one page return the oldest messages only.
			if len(messages) < services.DefaultMessageLimit {
				s.Require().True(found, "sent message missing from history")
			}

			var previous time.Time
			for _, m := range messages {
				at, err := time.Parse(time.RFC3339Nano, m.CreatedAt)
				if err != nil {
					continue
				}
				s.Require().False(at.Before(previous))
				previous = at
			}
		})
	})

	s.Run("Step 5: Sign out", func() {
		s.Step("Signing out", func(ctx context.Context) {
			s.Require().NoError(s.Auth.Logout(ctx))
			s.Require().Nil(s.Auth.State().User)
			_, err := s.sessions.Load()
			s.Require().Error(err)
		})
	})
}
