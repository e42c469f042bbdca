package config

import (
	"fmt"
	"time"
)

// Default server settings applied when no source specifies a value.
const (
	DefaultServerAddress = "localhost:8080"
	DefaultTokenDuration = 30 * 24 * time.Hour
	DefaultTokenIssuer   = "echotask"
)

// ServerConfig is the top-level server configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	// App contains token signing parameters and the version string.
	App App
	// Server contains the HTTP listener settings.
	Server Server
	// Storage contains the PostgreSQL connection settings.
	Storage Storage
}

// GetServerConfig builds and validates the server-specific config view
// from the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}
	serverCfg.applyDefaults()

	return serverCfg, serverCfg.validate()
}

func (cfg *ServerConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultServerAddress
	}
	if cfg.Server.RequestTimeout <= 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.App.TokenDuration <= 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
}
