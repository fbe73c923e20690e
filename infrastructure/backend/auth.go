package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"komunikator/domain/chat"
)

type AuthClient struct {
	client *Client
	now    func() time.Time
}

func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client, now: time.Now}
}

func (a *AuthClient) SignIn(ctx context.Context, email, password string) (chat.Session, error) {
	return a.token(ctx, "password", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (chat.Session, error) {
	return a.token(ctx, "refresh_token", map[string]string{
		"refresh_token": refreshToken,
	})
}

func (a *AuthClient) token(ctx context.Context, grantType string, body map[string]string) (chat.Session, error) {
	var session chat.Session
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/token",
		query:  url.Values{"grant_type": {grantType}},
		body:   body,
	}, &session)
	if err != nil {
		return chat.Session{}, fmt.Errorf("auth %s: %w", grantType, err)
	}
	if session.ExpiresIn > 0 {
		session.ExpiresAt = a.now().Add(time.Duration(session.ExpiresIn) * time.Second).UTC()
	}
	return session, nil
}

// User returns the profile attached to the access token.
func (a *AuthClient) User(ctx context.Context, accessToken string) (chat.User, error) {
	var user chat.User
	err := a.client.do(ctx, request{
		method: http.MethodGet,
		path:   "/auth/v1/user",
		token:  accessToken,
	}, &user)
	if err != nil {
		return chat.User{}, fmt.Errorf("auth user: %w", err)
	}
	return user, nil
}

func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	err := a.client.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/v1/logout",
		token:  accessToken,
	}, nil)
	if err != nil {
		return fmt.Errorf("auth logout: %w", err)
	}
	return nil
}
