package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Open opens the badger directory holding the client's session.
// Badger output goes through the application logger so it never
// lands on the terminal UI.
func Open(ctx context.Context, path string, log *slog.Logger) (*badger.DB, error) {
	options := badger.DefaultOptions(path).
		WithLogger(badgerLogger{log: log}).
		WithValueLogFileSize(16 << 20).
		WithNumVersionsToKeep(1)

	if log.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open session store %s: %w", path, err)
	}
	return db, nil
}

// OpenReadOnly is used by the inspector while the client may be running.
func OpenReadOnly(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
}

type badgerLogger struct {
	log *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...any) {
	b.log.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (b badgerLogger) Warningf(format string, args ...any) {
	b.log.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (b badgerLogger) Infof(format string, args ...any) {
	b.log.Info(fmt.Sprintf(format, args...), "component", "badger")
}

func (b badgerLogger) Debugf(format string, args ...any) {
	b.log.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
