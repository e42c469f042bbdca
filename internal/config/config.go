// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// StructuredConfig is the top-level configuration container shared by the
// EchoTask server and client agent. It is populated by merging environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: token signing parameters and
	// the application version string.
	App App `envPrefix:"APP_"`

	// Storage holds persistence settings. The server reads a PostgreSQL
	// DSN from it; the client reads the SQLite database path.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the inbound HTTP listener settings (server process).
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound transport settings (client process): the
	// remote store's HTTP base address, the websocket address for the
	// realtime channel, and the per-request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Sync holds the client's synchronization cadence and paging limits.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Populated via the CONFIG env variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the secret used to sign and verify device JWTs.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued device
	// token and validated on every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a device token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is the semantic version of the running binary, exposed via
	// the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups persistence backend settings.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds database connection settings. The server interprets DSN as a
// PostgreSQL connection string; the client interprets it as the SQLite
// database file path.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network settings for the inbound HTTP listener.
type Server struct {
	// HTTPAddress is the TCP address the HTTP server listens on,
	// "host:port".
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's outbound transport settings.
type Adapter struct {
	// HTTPAddress is the remote store's HTTP base address.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// WSAddress is the websocket endpoint address of the realtime
	// channel. When empty it is derived from HTTPAddress.
	// Env: ADAPTER_WS_ADDRESS
	WSAddress string `env:"WS_ADDRESS"`

	// RequestTimeout bounds every outbound push/pull call. A timed-out
	// call counts as a network failure: the affected note stays dirty
	// and is retried on the next pass.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Sync holds the client synchronization settings.
type Sync struct {
	// Interval is the periodic sync cadence.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// PullPageSize bounds a single changed-since page.
	// Env: SYNC_PULL_PAGE_SIZE
	PullPageSize int `env:"PULL_PAGE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources. Later sources win for non-zero fields: env, then flags,
// then the JSON file whose path was resolved from the first two.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
