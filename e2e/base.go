package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"komunikator/infrastructure/backend"
	"komunikator/infrastructure/storage"
	"komunikator/services"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

const stepTimeout = 30 * time.Second

type BaseBackendSuite struct {
	suite.Suite
	Config Config

	log      *slog.Logger
	sessions *storage.SessionRepository
	Auth     *services.AuthService
	Channels *services.ChannelService
	Messages *services.MessageService
	closeDB  func()
}

// SetupSuite wires the client stack against the live backend, with the
// session kept in a throwaway badger directory.
func (s *BaseBackendSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.BackendURL == "" {
		s.T().Skip("E2E_BACKEND_URL not set")
	}

	s.log = slog.New(slog.DiscardHandler)
	if s.Config.Debug {
		s.log = logs.GetLoggerFromLevel(slog.LevelDebug)
	}

	db, err := storage.Open(context.Background(), s.T().TempDir(), s.log)
	s.Require().NoError(err)
	s.closeDB = func() { _ = db.Close() }

	api, err := backend.NewClient(s.log, s.Config.BackendURL, s.Config.APIKey, stepTimeout)
	s.Require().NoError(err)

	s.sessions = storage.NewSessionRepository(db)
	s.Auth = services.NewAuthService(s.log, backend.NewAuthClient(api), s.sessions, 2*time.Minute)
	api.SetTokenSource(s.Auth)
	s.Channels = services.NewChannelService(s.log, api.Channels(), s.sessions, s.Config.Channel)
	s.Messages = services.NewMessageService(s.log, api.Messages(), services.DefaultMessageLimit)
}

func (s *BaseBackendSuite) TearDownSuite() {
	if s.closeDB != nil {
		s.closeDB()
	}
}

// Step prints a header and runs fn with a bounded context.
func (s *BaseBackendSuite) Step(name string, fn func(ctx context.Context)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), stepTimeout)
	defer cancel()

	start := time.Now()
	fn(ctx)
	s.T().Logf("%s done in %v", name, time.Since(start))
}
