//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"komunikator/auth"
	"komunikator/contract"
	"komunikator/domain/chat"
	"komunikator/errors"
	"komunikator/infrastructure/backend"
	"komunikator/infrastructure/storage"
)

// AuthState is what subscribers see: who is signed in, and whether the
// client is still finding out.
type AuthState struct {
	User      *chat.User
	IsLoading bool
}

type IAuthService interface {
	Subscribe(listener func(AuthState)) (unsubscribe func())
	State() AuthState
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
	Token() string
}

type AuthService struct {
	log      *slog.Logger
	provider contract.IAuthProvider
	sessions storage.ISessionRepository
	leeway   time.Duration
	now      func() time.Time

	// changes serializes session changes with their storage writes.
	changes sync.Mutex

	mu         sync.Mutex
	state      AuthState
	session    storage.Session
	generation uint64
	listeners map[int]func(AuthState)
	nextID    int
}

func NewAuthService(log *slog.Logger, provider contract.IAuthProvider,
	sessions storage.ISessionRepository, leeway time.Duration) *AuthService {
	return &AuthService{
		log:       log,
		provider:  provider,
		sessions:  sessions,
		leeway:    leeway,
		now:       time.Now,
		state:     AuthState{IsLoading: true},
		listeners: make(map[int]func(AuthState)),
	}
}

// Subscribe calls listener with the current state, then on every change,
// until the returned function is called.
func (s *AuthService) Subscribe(listener func(AuthState)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	current := s.state
	s.mu.Unlock()

	listener(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.AccessToken
}

// Restore resumes the session remembered on this machine. Any failure ends
// in the signed out state; only storage failures are returned.
func (s *AuthService) Restore(ctx context.Context) error {
	generation := s.currentGeneration()
	session, err := s.sessions.Load()
	if err != nil {
		s.signedOut(generation)
		if stderrors.Is(err, errors.ErrSessionNotFound) {
			return nil
		}
		s.log.Warn("Could not read stored session", "error", err)
		return err
	}

	if auth.NeedsRefresh(expiryOf(session), s.now(), s.leeway) {
		refreshed, err := s.provider.Refresh(ctx, session.RefreshToken)
		if err != nil {
			s.log.Warn("Stored session could not be refreshed", "error", err)
			s.forget(generation)
			return nil
		}
		session = fromBackend(refreshed, session.User)
	}

	user, err := s.provider.User(ctx, session.AccessToken)
	if err != nil {
		s.log.Warn("Stored session was rejected", "error", err)
		if stderrors.Is(err, errors.ErrUnauthenticated) {
			s.forget(generation)
		} else {
			s.signedOut(generation)
		}
		return nil
	}
	session.User = user
	s.establish(generation, session)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := auth.ValidateLogin(auth.LoginRequest{Email: email, Password: password}); err != nil {
		return err
	}

	generation := s.currentGeneration()
	signedIn, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if backendErr, ok := backend.AsBackendError(err); ok &&
			(backendErr.Status == http.StatusBadRequest || backendErr.Status == http.StatusUnauthorized) {
			return fmt.Errorf("%w: %s", errors.ErrInvalidCredentials, backendErr.Message)
		}
		return err
	}

	user := signedIn.User
	if user.ID == "" {
		if user, err = s.provider.User(ctx, signedIn.AccessToken); err != nil {
			return err
		}
	}
	if !s.establish(generation, fromBackend(signedIn, user)) {
		return fmt.Errorf("sign in superseded: %w", errors.ErrUnauthenticated)
	}
	s.log.Info("Signed in", "user_id", user.ID)
	return nil
}

// Logout always ends signed out locally, even when the provider is unreachable.
func (s *AuthService) Logout(ctx context.Context) error {
	token := s.Token()
	if token != "" {
		if err := s.provider.SignOut(ctx, token); err != nil {
			s.log.Warn("Remote sign out failed", "error", err)
		}
	}
	s.forget(anyGeneration)
	return nil
}

// Refresh renews the access token when it is about to expire.
func (s *AuthService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	session, generation := s.session, s.generation
	s.mu.Unlock()

	if session.AccessToken == "" || !auth.NeedsRefresh(expiryOf(session), s.now(), s.leeway) {
		return nil
	}

	refreshed, err := s.provider.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if stderrors.Is(err, errors.ErrUnauthenticated) {
			s.log.Warn("Session expired", "user_id", session.User.ID)
			s.forget(generation)
		}
		return fmt.Errorf("refresh session: %w", err)
	}
	if !s.establish(generation, fromBackend(refreshed, session.User)) {
		s.log.Debug("Refreshed session dropped, auth changed meanwhile")
		return nil
	}
	s.log.Debug("Session refreshed", "expires_at", expiryOf(s.currentSession()))
	return nil
}

func (s *AuthService) currentSession() storage.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// anyGeneration applies a change whatever happened before it.
const anyGeneration = ^uint64(0)

// currentGeneration tags the start of a remote call. Every session change
// bumps the generation, so a call that finishes after a logout or another
// sign in does not overwrite it.
func (s *AuthService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// swap replaces the session when no other change happened since expected.
// Must be called with changes held.
func (s *AuthService) swap(expected uint64, session storage.Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if expected != anyGeneration && expected != s.generation {
		return false
	}
	s.generation++
	s.session = session
	return true
}

func (s *AuthService) establish(expected uint64, session storage.Session) bool {
	s.changes.Lock()
	defer s.changes.Unlock()
	if !s.swap(expected, session) {
		return false
	}
	if err := s.sessions.Save(session); err != nil {
		s.log.Warn("Could not store session", "error", err)
	}
	user := session.User
	s.publish(AuthState{User: &user})
	return true
}

func (s *AuthService) forget(expected uint64) {
	s.changes.Lock()
	defer s.changes.Unlock()
	if !s.swap(expected, storage.Session{}) {
		return
	}
	if err := s.sessions.Delete(); err != nil {
		s.log.Warn("Could not delete stored session", "error", err)
	}
	s.publish(AuthState{})
}

func (s *AuthService) signedOut(expected uint64) {
	s.changes.Lock()
	defer s.changes.Unlock()
	if s.swap(expected, storage.Session{}) {
		s.publish(AuthState{})
	}
}

// publish calls listeners outside mu so they may read State or Token.
// Listeners must not change the session themselves.
func (s *AuthService) publish(state AuthState) {
	s.mu.Lock()
	s.state = state
	listeners := make([]func(AuthState), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}

func fromBackend(session chat.Session, user chat.User) storage.Session {
	if session.User.ID != "" {
		user = session.User
	}
	return storage.Session{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresAt:    session.ExpiresAt,
		User:         user,
	}
}

// expiryOf prefers the expiry reported at sign in and falls back to the token's exp claim.
func expiryOf(session storage.Session) time.Time {
	if !session.ExpiresAt.IsZero() {
		return session.ExpiresAt
	}
	claims, err := auth.ParseAccessToken(session.AccessToken)
	if err != nil {
		return time.Time{}
	}
	return claims.Expiry()
}
