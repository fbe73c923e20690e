package workers

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"komunikator/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSessionRefresher_RefreshesUntilCanceled(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	authService := mocks.NewMockIAuthService(ctrl)

	refreshed := make(chan struct{}, 10)
	authService.EXPECT().Refresh(gomock.Any()).
		DoAndReturn(func(context.Context) error {
			refreshed <- struct{}{}
			return fmt.Errorf("provider down")
		}).
		MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- NewSessionRefresher(slog.Default(), authService, 10*time.Millisecond).Run(ctx)
	}()

	for range 2 {
		select {
		case <-refreshed:
		case <-time.After(time.Second):
			req.Fail("refresh was not attempted")
		}
	}
	cancel()

	select {
	case err := <-done:
		// A failing refresh must not stop the worker with an error
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("refresher did not stop")
	}
}

func TestMessagePoller_PublishesTicks(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)

	ticks := make(chan any, 10)
	sink.EXPECT().Publish(gomock.AssignableToTypeOf(PollTick{})).
		Do(func(msg any) { ticks <- msg }).
		MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = NewMessagePoller(sink, 10*time.Millisecond).Run(ctx)
	}()

	select {
	case msg := <-ticks:
		tick, ok := msg.(PollTick)
		req.True(ok)
		req.False(tick.At.IsZero())
	case <-time.After(time.Second):
		req.Fail("no tick published")
	}
	cancel()
	<-done
}

func TestMessagePoller_DisabledReturnsImmediately(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Publish(gomock.Any()).Times(0)

	req.NoError(NewMessagePoller(sink, 0).Run(context.Background()))
}
