package backend

import (
	"context"
	"fmt"
	"net/http"

	"komunikator/domain/chat"
	"komunikator/errors"
)

// Table gives typed access to one collection of the hosted database.
type Table[T any] struct {
	client *Client
	name   string
}

func NewTable[T any](client *Client, name string) Table[T] {
	return Table[T]{client: client, name: name}
}

func (t Table[T]) List(ctx context.Context, opts chat.ListOptions) ([]T, error) {
	var rows []T
	err := t.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/rest/v1/" + t.name,
		query:  encodeQuery(opts),
		token:  t.client.tokens.Token(),
	}, &rows)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t.name, err)
	}
	return rows, nil
}

// Create inserts the record and returns the stored representation.
func (t Table[T]) Create(ctx context.Context, record T) (T, error) {
	var rows []T
	var zero T
	err := t.client.do(ctx, request{
		method:  http.MethodPost,
		path:    "/rest/v1/" + t.name,
		body:    record,
		token:   t.client.tokens.Token(),
		headers: map[string]string{headerPrefer: "return=representation"},
	}, &rows)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", t.name, err)
	}
	if len(rows) == 0 {
		return zero, fmt.Errorf("create %s: empty representation: %w", t.name, errors.ErrInvalidRecord)
	}
	return rows[0], nil
}
