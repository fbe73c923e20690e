//go:generate go run go.uber.org/mock/mockgen -source=session_repository.go -destination=../../mocks/mock_session_repository.go -package=mocks
package storage

import (
	stderrors "errors"
	"fmt"
	"time"

	"komunikator/domain/chat"
	"komunikator/errors"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	keySession     = "session:current"
	keyLastChannel = "pref:last_channel"
)

// Session is the locally remembered sign in, the equivalent of the
// browser storage the hosted SDK uses.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         chat.User
	UpdatedAt    time.Time
}

type ISessionRepository interface {
	Save(session Session) error
	Load() (Session, error)
	Delete() error
	SaveLastChannel(channelID string) error
	LastChannel() (string, error)
}

type SessionRepository struct {
	db  *badger.DB
	now func() time.Time
}

func NewSessionRepository(db *badger.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

func (s *SessionRepository) Save(session Session) error {
	session.UpdatedAt = s.now().UTC()
	value, err := structpb.NewStruct(fromSession(session))
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.put(keySession, value)
}

// Load returns errors.ErrSessionNotFound when nobody signed in on this machine.
func (s *SessionRepository) Load() (Session, error) {
	value, err := s.get(keySession)
	if err != nil {
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return Session{}, errors.ErrSessionNotFound
		}
		return Session{}, err
	}
	return toSession(value.AsMap()), nil
}

func (s *SessionRepository) Delete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keySession))
	})
}

func (s *SessionRepository) SaveLastChannel(channelID string) error {
	value, err := structpb.NewStruct(map[string]any{
		"channel_id": channelID,
		"updated_at": s.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	return s.put(keyLastChannel, value)
}

// LastChannel returns "" when no channel was ever selected.
func (s *SessionRepository) LastChannel() (string, error) {
	value, err := s.get(keyLastChannel)
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return str(value.AsMap(), "channel_id"), nil
}

func (s *SessionRepository) put(key string, value *structpb.Struct) error {
	data, err := proto.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *SessionRepository) get(key string) (*structpb.Struct, error) {
	var value structpb.Struct
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, &value)
		})
	})
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func fromSession(session Session) map[string]any {
	return map[string]any{
		"access_token":  session.AccessToken,
		"refresh_token": session.RefreshToken,
		"expires_at":    formatTime(session.ExpiresAt),
		"updated_at":    formatTime(session.UpdatedAt),
		"user": map[string]any{
			"id":           session.User.ID,
			"email":        session.User.Email,
			"display_name": session.User.DisplayName,
			"avatar":       session.User.Avatar,
			"status":       string(session.User.Status),
		},
	}
}

func toSession(m map[string]any) Session {
	user, _ := m["user"].(map[string]any)
	return Session{
		AccessToken:  str(m, "access_token"),
		RefreshToken: str(m, "refresh_token"),
		ExpiresAt:    parseTime(str(m, "expires_at")),
		UpdatedAt:    parseTime(str(m, "updated_at")),
		User: chat.User{
			ID:          str(user, "id"),
			Email:       str(user, "email"),
			DisplayName: str(user, "display_name"),
			Avatar:      str(user, "avatar"),
			Status:      chat.UserStatus(str(user, "status")),
		},
	}
}

// Decode exposes the stored representation of a key for the inspector.
func Decode(val []byte) (map[string]any, error) {
	var value structpb.Struct
	if err := proto.Unmarshal(val, &value); err != nil {
		return nil, err
	}
	return value.AsMap(), nil
}

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
