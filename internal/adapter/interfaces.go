// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the remote document store.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]) with a WebSocket change feed for realtime updates.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"
	"time"

	"github.com/oyugijr/EchoTask/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the remote
// document store. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to the
// sentinel values defined in this package.
type RemoteStore interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful RegisterDevice, or at startup with a persisted
	// token.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// RegisterDevice announces a new device to the server and returns its
	// bearer token. On success the token is stored via SetToken.
	RegisterDevice(ctx context.Context, deviceID string) (models.DeviceToken, error)

	// UpsertNote pushes one full note revision. The server treats the write
	// as an upsert keyed by the note ID and returns the stored revision with
	// its server stamp.
	UpsertNote(ctx context.Context, note models.Note) (models.RemoteNote, error)

	// QueryChangedSince fetches at most limit notes whose server stamp is
	// strictly newer than since, oldest first. The returned count is the
	// number of records the server sent, including any the client failed to
	// decode; callers use it to detect a full page.
	QueryChangedSince(ctx context.Context, since time.Time, limit int) ([]models.RemoteNote, int, error)

	// Subscribe opens the realtime change feed. Remote revisions arrive on
	// the returned channel until ctx is cancelled or the connection drops,
	// after which the channel is closed. Callers re-subscribe to resume.
	Subscribe(ctx context.Context) (<-chan models.RemoteNote, error)

	// Ping probes server reachability.
	Ping(ctx context.Context) error

	// Online reports the adapter's view of connectivity: false while the
	// circuit breaker is open after consecutive transport failures.
	Online() bool
}
