package config

import (
	"fmt"
	"time"
)

// Default client settings applied when neither env, flags, nor the JSON
// file specify a value.
const (
	DefaultSyncInterval   = 5 * time.Minute
	DefaultPullPageSize   = 100
	DefaultRequestTimeout = 15 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the remote store's HTTP base address.
	HTTPAddress string
	// WSAddress is the realtime websocket endpoint. Empty means "derive
	// from HTTPAddress".
	WSAddress string
	// RequestTimeout bounds every outbound push/pull call.
	RequestTimeout time.Duration
}

// ClientDB contains local database settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains client synchronization cadence settings.
type ClientSync struct {
	// Interval defines how often the periodic sync pass runs.
	Interval time.Duration
	// PullPageSize bounds a single changed-since page.
	PullPageSize int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains remote transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains background sync settings.
	Sync ClientSync
}

// GetClientConfig builds and validates the client-specific config view from
// the merged structured configuration. Zero cadence and paging values fall
// back to the package defaults before validation.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			WSAddress:      cfg.Adapter.WSAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			Interval:     cfg.Sync.Interval,
			PullPageSize: cfg.Sync.PullPageSize,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.PullPageSize <= 0 {
		cfg.Sync.PullPageSize = DefaultPullPageSize
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
}
