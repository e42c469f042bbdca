package service

import (
	"context"
	"time"

	"github.com/oyugijr/EchoTask/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientNoteService is the only mutation path for notes. The UI, the sync
// engine's pull side and the realtime listener never write rows directly;
// routing every edit through here keeps the sync bookkeeping fields
// (UpdatedAt monotonicity, dirty accounting) consistent.
type ClientNoteService interface {
	// Create assigns a fresh ID, stamps the sync bookkeeping and persists
	// the note. Returns the stored note.
	Create(ctx context.Context, note models.Note) (models.Note, error)

	// Get returns the note by ID, including tombstones.
	Get(ctx context.Context, noteID string) (models.Note, error)

	// GetAll returns all live notes.
	GetAll(ctx context.Context) ([]models.Note, error)

	// Update applies a partial mutation. Nil fields are left unchanged.
	// UpdatedAt moves strictly forward so the note becomes dirty.
	Update(ctx context.Context, noteID string, update models.NoteUpdate) (models.Note, error)

	// Delete soft-deletes: the tombstone stays in the synced set.
	Delete(ctx context.Context, noteID string) error
}

// ConflictResolver is the pure decision function mapping a (local, remote)
// revision pair to an automatic winner or a flagged conflict.
type ConflictResolver interface {
	// Resolve adjudicates the pair. See the Resolution action constants.
	Resolve(local, remote models.Note) Resolution

	// ConflictFields returns exactly the content fields whose values differ,
	// in a fixed order.
	ConflictFields(local, remote models.Note) []string
}

// SyncEngine orchestrates synchronization: the full periodic pass, the
// shared per-note merge path, and manual conflict resolution.
type SyncEngine interface {
	// RunSync runs one complete pass: push dirty notes, pull remote changes
	// since the watermark, adjudicate, publish status. At most one pass is
	// active; a second call returns ErrSyncAlreadyRunning immediately
	// without queuing.
	RunSync(ctx context.Context) error

	// ApplyRemote merges a single remote revision into the local store.
	// This is the shared path for the pull loop and the realtime listener;
	// access is serialized per note so the two flows can interleave safely.
	ApplyRemote(ctx context.Context, remote models.RemoteNote) error

	// ResolveConflict applies the user's choice for an open conflict.
	// The chosen revision's content fields overwrite the local note,
	// ConflictVersion increments by exactly one, the result is pushed, and
	// the conflict leaves the open set. Resolving an already-resolved
	// conflict is a no-op.
	ResolveConflict(ctx context.Context, noteID string, useLocal bool) error
}

// StatusService is the sync status aggregator: derived, observable state.
// All writers merge individual fields; nobody blind-overwrites the whole
// status, so concurrently added conflicts are never dropped.
type StatusService interface {
	// Snapshot returns a copy of the current status.
	Snapshot() models.SyncStatus

	// Subscribe returns a channel receiving a status copy after every
	// change. Notifications are dropped, not queued, when the receiver
	// lags.
	Subscribe() <-chan models.SyncStatus

	SetOnline(online bool)
	SetSyncing(syncing bool)
	SetLastSyncAt(at time.Time)

	// RecountPending refreshes the dirty-note counter from the local store.
	RecountPending(ctx context.Context)

	// AddConflict merges a conflict into the open set, replacing a previous
	// entry for the same note and preserving entries for other notes.
	AddConflict(conflict models.SyncConflict)

	// Conflict returns the open conflict for the note, if any.
	Conflict(noteID string) (models.SyncConflict, bool)

	// RemoveConflict drops the note's conflict from the open set.
	RemoveConflict(noteID string)
}

// ClientSyncJob drives the engine on a timer and accepts out-of-band nudges
// from the mutation path.
type ClientSyncJob interface {
	// Start launches the ticker loop. It stops a previously running job
	// first.
	Start(ctx context.Context, interval time.Duration)

	// Trigger requests an immediate pass without blocking. Triggers
	// coalesce while a pass is running.
	Trigger()

	// Stop cancels the loop and blocks until it has exited.
	Stop()
}

// RealtimeListener feeds asynchronous remote notifications through the
// engine's merge path, outside the periodic cadence.
type RealtimeListener interface {
	Start(ctx context.Context)
	Stop()
}

// DeviceIdentity manages the stable per-device identifier and its bearer
// token.
type DeviceIdentity interface {
	// EnsureDevice returns the persisted device ID, generating and storing
	// one on first run.
	EnsureDevice(ctx context.Context) (string, error)

	// EnsureToken returns a usable bearer token, registering the device
	// with the remote store when none is persisted. The token is handed to
	// the adapter as a side effect.
	EnsureToken(ctx context.Context) (string, error)
}
