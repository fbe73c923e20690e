//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"komunikator/domain/chat"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Sink receives notifications produced outside the UI event loop.
type Sink interface {
	Publish(msg any)
}

type IChannelStore interface {
	List(ctx context.Context, opts chat.ListOptions) ([]chat.Channel, error)
}

type IMessageStore interface {
	List(ctx context.Context, opts chat.ListOptions) ([]chat.Message, error)
	Create(ctx context.Context, message chat.Message) (chat.Message, error)
}

// IAuthProvider is the hosted service's authentication surface.
type IAuthProvider interface {
	SignIn(ctx context.Context, email, password string) (chat.Session, error)
	Refresh(ctx context.Context, refreshToken string) (chat.Session, error)
	User(ctx context.Context, accessToken string) (chat.User, error)
	SignOut(ctx context.Context, accessToken string) error
}
