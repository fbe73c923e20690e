// Package chat holds the read-only view models mirrored from the hosted service.
// Records are owned and mutated by the service; the client only checks that the
// fields it needs for rendering are present.
package chat

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type UserStatus string

const (
	StatusOnline  UserStatus = "online"
	StatusAway    UserStatus = "away"
	StatusOffline UserStatus = "offline"
)

// TextMessage is the only message type the client creates.
const TextMessage = "text"

// User comes from the hosted auth provider.
type User struct {
	ID          string     `json:"id" validate:"required"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	Status      UserStatus `json:"status,omitempty"`
}

type Channel struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPrivate   bool   `json:"is_private"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

type Message struct {
	ID          string `json:"id" validate:"required"`
	ChannelID   string `json:"channel_id" validate:"required"`
	UserID      string `json:"user_id" validate:"required"`
	Content     string `json:"content" validate:"required"`
	MessageType string `json:"message_type"`
	CreatedAt   string `json:"created_at,omitempty"`
}

type ChannelMember struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	JoinedAt  string `json:"joined_at"`
}

// IsValid reports whether the channel can be selected.
func (c Channel) IsValid() bool {
	return validate.Struct(c) == nil
}

// IsValid reports whether the message can be rendered.
func (m Message) IsValid() bool {
	return validate.Struct(m) == nil
}

// IsPosted is the weaker check applied to the record returned by an insert:
// the service may omit the channel reference in its representation.
func (m Message) IsPosted() bool {
	return validate.StructPartial(m, "ID", "UserID", "Content") == nil
}
