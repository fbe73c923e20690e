package chat

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMessageID_Format(t *testing.T) {
	req := require.New(t)
	now := time.UnixMilli(1718000000123)
	pattern := regexp.MustCompile(`^msg_1718000000123_[0-9a-z]{9}$`)

	seen := make(map[string]struct{})
	for range 50 {
		id := NewMessageID(now)
		req.Regexp(pattern, id)
		seen[id] = struct{}{}
	}
	req.Greater(len(seen), 1)
}

func TestValidMessages_FiltersIncompleteRecords(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{ID: "1", ChannelID: "general", UserID: "alice", Content: "hi"},
		{ID: "", ChannelID: "general", UserID: "alice", Content: "no id"},
		{ID: "3", ChannelID: "general", UserID: "", Content: "no author"},
		{ID: "4", ChannelID: "general", UserID: "bob", Content: ""},
		{ID: "5", ChannelID: "", UserID: "bob", Content: "no channel"},
		{ID: "6", ChannelID: "general", UserID: "bob", Content: "ok"},
	}

	valid := ValidMessages(messages)

	req.Len(valid, 2)
	req.Equal("1", valid[0].ID)
	req.Equal("6", valid[1].ID)
}

func TestMessage_IsPosted_DoesNotRequireChannel(t *testing.T) {
	req := require.New(t)
	req.True(Message{ID: "1", UserID: "alice", Content: "hi"}.IsPosted())
	req.False(Message{ID: "1", UserID: "alice"}.IsPosted())
	req.False(Message{ID: "1", UserID: "alice"}.IsValid())
}

func TestShowAuthorHeader(t *testing.T) {
	req := require.New(t)
	messages := []Message{
		{UserID: "alice"},
		{UserID: "alice"},
		{UserID: "bob"},
		{UserID: "alice"},
	}
	got := make([]bool, len(messages))
	for i := range messages {
		got[i] = ShowAuthorHeader(messages, i)
	}
	req.Equal([]bool{true, false, true, true}, got)
	req.False(ShowAuthorHeader(messages, 10))
}

func TestInitials(t *testing.T) {
	tests := []struct {
		userID string
		want   string
	}{
		{"", "U"},
		{"a", "A"},
		{"alice", "AL"},
		{"żaneta", "ŻA"},
	}
	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			require.Equal(t, tt.want, Initials(tt.userID))
		})
	}
}

func TestAuthorLabel(t *testing.T) {
	req := require.New(t)
	me := &User{ID: "alice"}
	req.Equal("Ty", AuthorLabel(Message{UserID: "alice"}, me))
	req.Equal("Użytkownik BO", AuthorLabel(Message{UserID: "bob"}, me))
	req.Equal("Użytkownik BO", AuthorLabel(Message{UserID: "bob"}, nil))
}

func TestFormatTimeIn(t *testing.T) {
	tests := []struct {
		name string
		ts   string
		want string
	}{
		{"Empty timestamp", "", "--:--"},
		{"Garbage", "yesterday", "--:--"},
		{"RFC3339", "2024-06-10T08:05:00Z", "08:05"},
		{"RFC3339 with fraction", "2024-06-10T21:47:13.123456Z", "21:47"},
		{"Offset is converted", "2024-06-10T10:30:00+02:00", "08:30"},
		{"SQL style", "2024-06-10 14:00:59", "14:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FormatTimeIn(tt.ts, time.UTC))
		})
	}
}
