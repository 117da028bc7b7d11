// Package config holds the console client's configuration. The server reads
// its own settings from internal/infrastructure/config; the console needs
// only the API base URL and where to keep its session file.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIBaseURL is the only externally required knob: where the REST API lives.
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8080"`
	// SessionFile overrides the default session location (user config dir).
	SessionFile string `env:"SESSION_FILE"`
	LogLevel    string `env:"LOG_LEVEL,    default=info"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
