package store

import (
	"context"
	"time"

	"github.com/oyugijr/EchoTask/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// NoteRepository is the server-side document store for synchronized notes.
type NoteRepository interface {
	// UpsertNote writes the note keyed by its ID and stamps it with
	// serverUpdatedAt. An existing row is fully replaced; the stamp always
	// moves forward so the changes feed sees the write.
	UpsertNote(ctx context.Context, note models.Note, serverUpdatedAt time.Time) (models.RemoteNote, error)

	// GetNoteByID returns the stored note or ErrNoteNotFound.
	GetNoteByID(ctx context.Context, noteID string) (models.RemoteNote, error)

	// GetChangedSince returns at most limit notes whose server stamp is
	// strictly newer than since, ordered by server_updated_at ascending.
	GetChangedSince(ctx context.Context, since time.Time, limit uint64) ([]models.RemoteNote, error)
}

// DeviceRepository tracks devices registered for sync.
type DeviceRepository interface {
	// RegisterDevice persists a new device record. Re-registering the same
	// identifier returns ErrDeviceAlreadyRegistered.
	RegisterDevice(ctx context.Context, deviceID string, registeredAt time.Time) (models.Device, error)

	// GetDevice returns the device record or ErrDeviceNotFound.
	GetDevice(ctx context.Context, deviceID string) (models.Device, error)

	// TouchDevice updates the device's last-seen stamp.
	TouchDevice(ctx context.Context, deviceID string, seenAt time.Time) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
