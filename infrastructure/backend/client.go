// Package backend is the client side of the hosted database/auth service.
// The service exposes a PostgREST style surface: rows are listed with
// column filters in the query string and inserted with a JSON body.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"komunikator/domain/chat"
	"komunikator/errors"

	"github.com/google/uuid"
)

const (
	headerAPIKey    = "apikey"
	headerRequestID = "X-Request-ID"
	headerPrefer    = "Prefer"
)

// TokenSource provides the access token of the signed in user, or "" when
// nobody is signed in.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	log     *slog.Logger
	tokens  TokenSource
}

func NewClient(log *slog.Logger, baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", baseURL)
	}
	return &Client{
		baseURL: u,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		log:     log,
		tokens:  TokenSourceFunc(func() string { return "" }),
	}, nil
}

// SetTokenSource must be called before the client is shared between goroutines.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *Client) Channels() Table[chat.Channel] {
	return NewTable[chat.Channel](c, "channels")
}

func (c *Client) Messages() Table[chat.Message] {
	return NewTable[chat.Message](c, "messages")
}


type request struct {
	method  string
	path    string
	query   url.Values
	body    any
	token   string
	headers map[string]string
}

// do sends the request and decodes a 2xx JSON body into out (when non nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	endpoint := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", r.path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(headerAPIKey, c.apiKey)
	httpReq.Header.Set(headerRequestID, requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.token)
	}
	for k, v := range r.headers {
		httpReq.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("backend request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	backendErr := &errors.BackendError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if len(data) > 0 {
		var payload struct {
			Code             string `json:"code"`
			Message          string `json:"message"`
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		if json.Unmarshal(data, &payload) == nil {
			backendErr.Code = payload.Code
			if backendErr.Code == "" {
				backendErr.Code = payload.Error
			}
			backendErr.Message = firstNonEmpty(payload.Message, payload.ErrorDescription)
		}
	}
	if backendErr.Message == "" {
		backendErr.Message = http.StatusText(resp.StatusCode)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", errors.ErrUnauthenticated, backendErr)
	}
	return backendErr
}

// AsBackendError unwraps a *errors.BackendError from err.
func AsBackendError(err error) (*errors.BackendError, bool) {
	var backendErr *errors.BackendError
	ok := stderrors.As(err, &backendErr)
	return backendErr, ok
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
