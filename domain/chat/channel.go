package chat

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultChannel is selected on first start.
const DefaultChannel = "general"

// FilterChannels keeps channels whose name contains query, ignoring case.
func FilterChannels(channels []Channel, query string) []Channel {
	q := strings.ToLower(query)
	return lo.Filter(channels, func(c Channel, _ int) bool {
		return strings.Contains(strings.ToLower(c.Name), q)
	})
}

func IndexOfChannel(channels []Channel, id string) int {
	_, idx, ok := lo.FindIndexOf(channels, func(c Channel) bool {
		return c.ID == id
	})
	if !ok {
		return -1
	}
	return idx
}
