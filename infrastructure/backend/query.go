package backend

import (
	"fmt"
	"net/url"
	"strconv"

	"komunikator/domain/chat"
)

// encodeQuery turns list options into PostgREST query parameters.
func encodeQuery(o chat.ListOptions) url.Values {
	values := url.Values{}
	for column, value := range o.Where {
		values.Set(column, "eq."+value)
	}
	if o.OrderBy != nil && o.OrderBy.Column != "" {
		direction := o.OrderBy.Direction
		if direction == "" {
			direction = chat.Asc
		}
		values.Set("order", fmt.Sprintf("%s.%s", o.OrderBy.Column, direction))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	return values
}
