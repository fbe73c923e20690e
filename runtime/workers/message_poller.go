package workers

import (
	"context"
	"time"

	"komunikator/contract"
)

// PollTick asks the chat pane to reload the current channel.
type PollTick struct {
	At time.Time
}

// MessagePoller re-runs the message list query on a fixed interval by
// publishing ticks to the UI. A zero interval disables it.
type MessagePoller struct {
	sink     contract.Sink
	interval time.Duration
}

func NewMessagePoller(sink contract.Sink, interval time.Duration) *MessagePoller {
	return &MessagePoller{sink: sink, interval: interval}
}

func (w *MessagePoller) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-ticker.C:
			w.sink.Publish(PollTick{At: at})
		}
	}
}
