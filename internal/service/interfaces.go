package service

import (
	"context"

	"github.com/oyugijr/EchoTask/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// NoteService is the server-side note API: upsert with a server stamp and
// the watermark-driven changes feed.
type NoteService interface {
	// UpsertNote stores the pushed revision, stamping it with the server
	// clock, and returns the stored record.
	UpsertNote(ctx context.Context, note models.Note) (models.RemoteNote, error)

	// GetNote returns the stored note or a wrapped store.ErrNoteNotFound.
	GetNote(ctx context.Context, noteID string) (models.RemoteNote, error)

	// ChangedSince returns a page of notes whose server stamp is strictly
	// newer than since, oldest first. limit is clamped to the service
	// maximum; zero selects the default page size.
	ChangedSince(ctx context.Context, since string, limit int) (models.ChangesResponse, error)
}

// DeviceService handles device registration and token verification.
type DeviceService interface {
	// Register enrolls the device and issues its bearer token. Registering
	// an already known device re-issues a token for it.
	Register(ctx context.Context, deviceID string) (models.DeviceToken, error)

	// ParseToken validates a raw bearer token and returns its claims.
	// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Touch records device activity for the last-seen stamp.
	Touch(ctx context.Context, deviceID string)
}

// AppInfoService exposes build metadata for the version endpoint.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
