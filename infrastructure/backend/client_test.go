package backend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"komunikator/domain/chat"
	"komunikator/errors"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(logs.GetLoggerFromLevel(slog.LevelDebug), srv.URL, "project-key", 2*time.Second)
	require.NoError(t, err)
	client.SetTokenSource(TokenSourceFunc(func() string { return "access-123" }))
	return client
}

func TestNewClient_RejectsInvalidURL(t *testing.T) {
	req := require.New(t)
	_, err := NewClient(slog.Default(), "not a url", "key", time.Second)
	req.Error(err)
	_, err = NewClient(slog.Default(), "://missing", "key", time.Second)
	req.Error(err)
}

func TestEncodeQuery(t *testing.T) {
	req := require.New(t)
	opts := chat.ListOptions{
		Where:   map[string]string{"channel_id": "general"},
		OrderBy: chat.OrderBy("created_at", chat.Asc),
		Limit:   100,
	}
	req.Equal("channel_id=eq.general&limit=100&order=created_at.asc", encodeQuery(opts).Encode())
	req.Empty(encodeQuery(chat.ListOptions{}).Encode())
	req.Equal("order=name.asc", encodeQuery(chat.ListOptions{OrderBy: &chat.Order{Column: "name"}}).Encode())
}

func TestTable_List_SendsQueryAndHeaders(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodGet, r.Method)
		req.Equal("/rest/v1/messages", r.URL.Path)
		req.Equal("eq.general", r.URL.Query().Get("channel_id"))
		req.Equal("created_at.asc", r.URL.Query().Get("order"))
		req.Equal("100", r.URL.Query().Get("limit"))
		req.Equal("project-key", r.Header.Get(headerAPIKey))
		req.Equal("Bearer access-123", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get(headerRequestID))
		req.NoError(err)

		_ = json.NewEncoder(w).Encode([]chat.Message{
			{ID: "m1", ChannelID: "general", UserID: "alice", Content: "hi", MessageType: "text"},
		})
	})

	messages, err := client.Messages().List(context.Background(), chat.ListOptions{
		Where:   map[string]string{"channel_id": "general"},
		OrderBy: chat.OrderBy("created_at", chat.Asc),
		Limit:   100,
	})

	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("hi", messages[0].Content)
}

func TestTable_Create_ReturnsRepresentation(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("return=representation", r.Header.Get(headerPrefer))
		var in chat.Message
		req.NoError(json.NewDecoder(r.Body).Decode(&in))
		in.CreatedAt = "2024-06-10T08:05:00Z"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode([]chat.Message{in})
	})

	stored, err := client.Messages().Create(context.Background(), chat.Message{
		ID: "msg_1_abc", ChannelID: "general", UserID: "alice", Content: "hello", MessageType: chat.TextMessage,
	})

	req.NoError(err)
	req.Equal("msg_1_abc", stored.ID)
	req.Equal("2024-06-10T08:05:00Z", stored.CreatedAt)
}

func TestTable_Create_EmptyRepresentation(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	_, err := client.Messages().Create(context.Background(), chat.Message{ID: "x"})

	req.ErrorIs(err, errors.ErrInvalidRecord)
}

func TestClient_DecodesBackendErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantUnauth  bool
		wantMessage string
	}{
		{"Unauthorized", http.StatusUnauthorized, `{"message":"JWT expired"}`, true, "JWT expired"},
		{"Server error without body", http.StatusInternalServerError, ``, false, "Internal Server Error"},
		{"OAuth style error", http.StatusBadRequest, `{"error":"invalid_grant","error_description":"bad password"}`, false, "bad password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Channels().List(context.Background(), chat.ListOptions{})

			req.Error(err)
			if tt.wantUnauth {
				req.ErrorIs(err, errors.ErrUnauthenticated)
			}
			backendErr, ok := AsBackendError(err)
			req.True(ok)
			req.Equal(tt.status, backendErr.Status)
			req.Equal(tt.wantMessage, backendErr.Message)
		})
	}
}

func TestAuthClient_SignInAndUser(t *testing.T) {
	req := require.New(t)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			req.Equal("password", r.URL.Query().Get("grant_type"))
			req.Empty(r.Header.Get("Authorization"))
			var body map[string]string
			req.NoError(json.NewDecoder(r.Body).Decode(&body))
			req.Equal("anna@firma.pl", body["email"])
			_, _ = w.Write([]byte(`{"access_token":"a","refresh_token":"r","expires_in":3600,"user":{"id":"u1","email":"anna@firma.pl"}}`))
		case "/auth/v1/user":
			req.Equal("Bearer a", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"id":"u1","email":"anna@firma.pl","display_name":"Anna"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	authClient := NewAuthClient(client)
	authClient.now = func() time.Time { return now }

	session, err := authClient.SignIn(context.Background(), "anna@firma.pl", "secret")
	req.NoError(err)
	req.Equal("a", session.AccessToken)
	req.Equal("r", session.RefreshToken)
	req.Equal(now.Add(time.Hour), session.ExpiresAt)
	req.Equal("u1", session.User.ID)

	user, err := authClient.User(context.Background(), session.AccessToken)
	req.NoError(err)
	req.Equal("Anna", user.DisplayName)
}
