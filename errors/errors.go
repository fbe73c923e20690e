package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrUnauthenticated    = fmt.Errorf("not authenticated")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrSessionNotFound    = fmt.Errorf("no stored session")
	ErrChannelNotFound    = fmt.Errorf("channel not found")
	ErrEmptyContent       = fmt.Errorf("message content is empty")
	ErrNoChannel          = fmt.Errorf("no channel selected")
	ErrNoUser             = fmt.Errorf("no signed in user")
	ErrInvalidRecord      = fmt.Errorf("record is missing required fields")
)

// BackendError is the decoded body of a non-2xx response from the hosted service.
type BackendError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *BackendError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
}
