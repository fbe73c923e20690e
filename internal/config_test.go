package internal

import (
	"os"
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	t.Setenv("BACKEND_URL", "https://chat.firma.pl")
	t.Setenv("BACKEND_API_KEY", "key")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.NoError(config.Validate())

	req.Equal(".komunikator", config.SessionDBPath)
	req.Equal("WARN", config.LogLevel)
	req.Equal(10*time.Second, config.RequestTimeout)
	req.Equal(100, config.MessageLimit)
	req.Zero(config.MessagePollInterval)
	req.Equal(time.Minute, config.SessionRefreshInterval)
	req.Equal(2*time.Minute, config.TokenRefreshLeeway)
	req.Equal("general", config.DefaultChannel)
	req.Equal("Firma XYZ", config.CompanyName)
}

func TestConfig_RequiresBackend(t *testing.T) {
	req := require.New(t)
	// Setenv restores the original values once the test ends
	t.Setenv("BACKEND_URL", "")
	t.Setenv("BACKEND_API_KEY", "")
	_ = os.Unsetenv("BACKEND_URL")
	_ = os.Unsetenv("BACKEND_API_KEY")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.Error(err)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		BackendURL:             "https://chat.firma.pl",
		RequestTimeout:         time.Second,
		MessageLimit:           100,
		SessionRefreshInterval: time.Minute,
	}
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"Relative url", func(c *Config) { c.BackendURL = "chat.firma.pl" }},
		{"Zero timeout", func(c *Config) { c.RequestTimeout = 0 }},
		{"Zero limit", func(c *Config) { c.MessageLimit = 0 }},
		{"Negative poll interval", func(c *Config) { c.MessagePollInterval = -time.Second }},
		{"Zero refresh interval", func(c *Config) { c.SessionRefreshInterval = 0 }},
	}
	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.modify(&config)
			require.Error(t, config.Validate())
		})
	}
}
