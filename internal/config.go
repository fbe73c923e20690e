package internal

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	BackendURL             string        `env:"BACKEND_URL,required=true"`
	BackendAPIKey          string        `env:"BACKEND_API_KEY,required=true"`
	SessionDBPath          string        `env:"SESSION_DB_PATH,default=.komunikator"`
	LogLevel               string        `env:"LOG_LEVEL,default=WARN"`
	LogFile                string        `env:"LOG_FILE,default=komunikator.log"`
	RequestTimeout         time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	MessageLimit           int           `env:"MESSAGE_LIMIT,default=100"`
	MessagePollInterval    time.Duration `env:"MESSAGE_POLL_INTERVAL,default=0s"`
	SessionRefreshInterval time.Duration `env:"SESSION_REFRESH_INTERVAL,default=1m"`
	TokenRefreshLeeway     time.Duration `env:"TOKEN_REFRESH_LEEWAY,default=2m"`
	DefaultChannel         string        `env:"DEFAULT_CHANNEL,default=general"`
	CompanyName            string        `env:"COMPANY_NAME,default=Firma XYZ"`
}

// Validate catches values go-env accepts but the client cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute url, got %q", c.BackendURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.MessageLimit <= 0 {
		return fmt.Errorf("MESSAGE_LIMIT must be positive, got %d", c.MessageLimit)
	}
	if c.MessagePollInterval < 0 {
		return fmt.Errorf("MESSAGE_POLL_INTERVAL must not be negative, got %s", c.MessagePollInterval)
	}
	if c.SessionRefreshInterval <= 0 {
		return fmt.Errorf("SESSION_REFRESH_INTERVAL must be positive, got %s", c.SessionRefreshInterval)
	}
	return nil
}
