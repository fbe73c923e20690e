package main

import (
	"bytes"
	"testing"

	"komunikator/domain/chat"

	"github.com/stretchr/testify/require"
)

func TestPrintChannels(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	printChannels(&out, []chat.Channel{
		{ID: "general", Name: "general", Description: "Ogólne"},
		{ID: "hr", Name: "kadry", IsPrivate: true},
	})

	req.Contains(out.String(), "#general")
	req.Contains(out.String(), "Ogólne")
	req.Contains(out.String(), "#kadry")
	req.Contains(out.String(), "true")
}

func TestPrintHistory_CollapsesAuthors(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	me := &chat.User{ID: "u1"}

	printHistory(&out, &chat.Channel{ID: "general", Name: "general"}, me, []chat.Message{
		{ID: "m1", ChannelID: "general", UserID: "u1", Content: "pierwsza"},
		{ID: "m2", ChannelID: "general", UserID: "u1", Content: "druga"},
		{ID: "m3", ChannelID: "general", UserID: "bob", Content: "trzecia"},
	})

	text := out.String()
	req.Equal(1, bytes.Count(out.Bytes(), []byte("Ty")))
	req.Contains(text, "Użytkownik BO")
	req.Contains(text, "pierwsza")
	req.Contains(text, "trzecia")
}

func TestPrintHistory_Empty(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	printHistory(&out, &chat.Channel{ID: "general", Name: "general"}, nil, nil)

	req.Contains(out.String(), "Brak wiadomości")
}

func TestRun_UnknownCommandIsAConfigError(t *testing.T) {
	req := require.New(t)
	t.Setenv("BACKEND_URL", "http://localhost:54321")
	t.Setenv("BACKEND_API_KEY", "anon")

	code, err := run([]string{"dance"})

	req.Error(err)
	req.Equal(exitConfig, code)
}

func TestRun_MissingBackendIsAConfigError(t *testing.T) {
	req := require.New(t)
	t.Setenv("BACKEND_URL", "not a url")
	t.Setenv("BACKEND_API_KEY", "anon")

	code, err := run([]string{"whoami"})

	req.Error(err)
	req.Equal(exitConfig, code)
}
