package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"komunikator/infrastructure/backend"
	"komunikator/infrastructure/storage"
	"komunikator/internal"
	"komunikator/runtime/workers"
	"komunikator/services"
	"komunikator/ui"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "komunikator: %v\n", err)
	}
	os.Exit(code)
}

// run loads the configuration, wires the client and hands over to the
// terminal UI or to one of the scriptable commands.
func run(args []string) (int, error) {
	// 1. Configuration, an optional .env file comes first
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 0 {
		return runUI(ctx, config)
	}

	command, ok := commands[args[0]]
	if !ok {
		return exitConfig, fmt.Errorf("unknown command %q (use login, logout, whoami, channels, history or send)", args[0])
	}
	log := logs.GetLoggerFromString(config.LogLevel)
	c, closeClient, err := newClient(ctx, config, log)
	if err != nil {
		return exitRuntime, err
	}
	defer closeClient()
	return command(ctx, c, args[1:])
}

// client groups what every entry point needs once configured.
type client struct {
	log      *slog.Logger
	config   internal.Config
	auth     *services.AuthService
	channels *services.ChannelService
	messages *services.MessageService
}

func newClient(ctx context.Context, config internal.Config, log *slog.Logger) (*client, func(), error) {
	db, err := storage.Open(ctx, config.SessionDBPath, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		log.Debug("Closing session store...")
		_ = db.Close()
	}

	api, err := backend.NewClient(log, config.BackendURL, config.BackendAPIKey, config.RequestTimeout)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return wire(log, config, db, api), closeDB, nil
}

func wire(log *slog.Logger, config internal.Config, db *badger.DB, api *backend.Client) *client {
	sessions := storage.NewSessionRepository(db)
	authService := services.NewAuthService(log, backend.NewAuthClient(api), sessions, config.TokenRefreshLeeway)
	api.SetTokenSource(authService)

	return &client{
		log:      log,
		config:   config,
		auth:     authService,
		channels: services.NewChannelService(log, api.Channels(), sessions, config.DefaultChannel),
		messages: services.NewMessageService(log, api.Messages(), config.MessageLimit),
	}
}

// runUI starts the terminal UI. Logs go to LOG_FILE since the terminal
// belongs to the UI.
func runUI(ctx context.Context, config internal.Config) (int, error) {
	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return exitConfig, fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	var level slog.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	log := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level}))

	c, closeClient, err := newClient(ctx, config, log)
	if err != nil {
		return exitRuntime, err
	}
	defer closeClient()

	app := ui.NewApp(ui.Deps{
		Log:            log,
		Auth:           c.auth,
		Channels:       c.channels,
		Messages:       c.messages,
		CompanyName:    config.CompanyName,
		RequestTimeout: config.RequestTimeout,
	})
	defer app.Close()

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewSessionRefresher(log, c.auth, config.SessionRefreshInterval),
		workers.NewMessagePoller(ui.NewProgramSink(program), config.MessagePollInterval),
	)
	workersCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	supervised := make(chan struct{})
	go func() {
		defer close(supervised)
		sup.Run(workersCtx)
	}()

	log.Info("Starting komunikator", "backend", config.BackendURL)
	_, runErr := program.Run()

	stopWorkers()
	<-supervised
	log.Info("Program stopped cleanly")

	if runErr != nil && ctx.Err() == nil {
		return exitRuntime, fmt.Errorf("terminal ui: %w", runErr)
	}
	return exitOK, nil
}
