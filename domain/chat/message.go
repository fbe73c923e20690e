package chat

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/samber/lo"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewMessageID builds the client-side identifier sent with an insert:
// msg_<unix millis>_<9 base36 chars>.
func NewMessageID(now time.Time) string {
	var sb strings.Builder
	for range 9 {
		sb.WriteByte(base36[rand.IntN(len(base36))])
	}
	return fmt.Sprintf("msg_%d_%s", now.UnixMilli(), sb.String())
}

// ValidMessages drops records that cannot be rendered.
func ValidMessages(messages []Message) []Message {
	return lo.Filter(messages, func(m Message, _ int) bool {
		return m.IsValid()
	})
}

// ShowAuthorHeader is true when the message at i starts a new run of messages
// from one author.
func ShowAuthorHeader(messages []Message, i int) bool {
	if i <= 0 || i >= len(messages) {
		return i == 0
	}
	return messages[i-1].UserID != messages[i].UserID
}

// Initials is derived from the user id since the service does not expose
// other users' profiles.
func Initials(userID string) string {
	if userID == "" {
		return "U"
	}
	r := []rune(userID)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

func AuthorLabel(m Message, current *User) string {
	if current != nil && m.UserID == current.ID {
		return "Ty"
	}
	return "Użytkownik " + Initials(m.UserID)
}

// FormatTime renders a service timestamp as HH:MM in the local zone.
func FormatTime(ts string) string {
	return FormatTimeIn(ts, time.Local)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
}

func FormatTimeIn(ts string, loc *time.Location) string {
	if ts == "" {
		return "--:--"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.In(loc).Format("15:04")
		}
	}
	return "--:--"
}
