package workers

import (
	"context"
	"log/slog"
	"time"

	"komunikator/services"
)

// SessionRefresher keeps the access token alive while the client runs.
type SessionRefresher struct {
	log      *slog.Logger
	auth     services.IAuthService
	interval time.Duration
}

func NewSessionRefresher(log *slog.Logger, auth services.IAuthService, interval time.Duration) *SessionRefresher {
	return &SessionRefresher{log: log, auth: auth, interval: interval}
}

// Run never fails on a refresh error: a restart would not help, and the
// auth service has already signed the user out if the session is gone.
func (w *SessionRefresher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.auth.Refresh(ctx); err != nil {
				w.log.Warn("Session refresh failed", "error", err)
			}
		}
	}
}
