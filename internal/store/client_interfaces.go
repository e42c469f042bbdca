package store

import (
	"context"
	"time"

	"github.com/oyugijr/EchoTask/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalNoteRepository is the low-level offline note store on the client
// device. It is the single source of truth for the UI; sync only reconciles
// it with the remote document store.
type LocalNoteRepository interface {
	SaveNote(ctx context.Context, notes ...models.Note) error
	GetNoteByID(ctx context.Context, noteID string) (models.Note, error)

	// GetAllNotes returns all live (non-deleted) notes.
	GetAllNotes(ctx context.Context) ([]models.Note, error)

	UpdateNote(ctx context.Context, note models.Note) error

	// DeleteNote soft-deletes: the row becomes a tombstone with the given
	// update stamp and stays in the synced set.
	DeleteNote(ctx context.Context, noteID string, deletedAt time.Time) error

	// GetDirtyNotes returns notes needing a push: last_sync_at is NULL or
	// updated_at is newer than last_sync_at. Tombstones included.
	GetDirtyNotes(ctx context.Context) ([]models.Note, error)

	// CountDirty reports the number of notes GetDirtyNotes would return.
	CountDirty(ctx context.Context) (int, error)

	// MarkSynced confirms a pushed revision. The guard on updated_at keeps a
	// note dirty when it was edited between the read and the confirmation.
	MarkSynced(ctx context.Context, noteID string, revisionUpdatedAt, syncedAt time.Time) error

	// UpsertFromRemote writes a remote revision verbatim, including its sync
	// bookkeeping. Inserts when the note is unknown locally.
	UpsertFromRemote(ctx context.Context, note models.Note) error
}

// SyncMetadataRepository is a small key-value store for per-device sync
// state: the pull watermark, the device identifier and its bearer token.
type SyncMetadataRepository interface {
	// Get returns the stored value or ErrMetadataNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Well-known sync metadata keys.
const (
	MetaPullWatermark = "pull_watermark"
	MetaDeviceID      = "device_id"
	MetaDeviceToken   = "device_token"
)
