package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

// Config points the end-to-end suite at a live backend. The suite is
// skipped when E2E_BACKEND_URL is empty.
type Config struct {
	BackendURL string `envconfig:"E2E_BACKEND_URL"`
	APIKey     string `envconfig:"E2E_BACKEND_API_KEY"`
	Email      string `envconfig:"E2E_EMAIL"`
	Password   string `envconfig:"E2E_PASSWORD"`
	Channel    string `envconfig:"E2E_CHANNEL" default:"general"`
	// E2E_DEBUG logs every request the client makes
	Debug bool `envconfig:"E2E_DEBUG" default:"false"`
	// E2E_COLOURS enables colorized step headers
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
