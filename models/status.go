package models

import "time"

// SyncStatus is the derived, observable sync state consumed by the UI.
// It is never persisted and never a source of truth; the status aggregator
// recomputes it after every local mutation and every sync pass.
type SyncStatus struct {
	// IsOnline reports whether the remote store is currently reachable.
	IsOnline bool `json:"is_online"`

	// IsSyncing is the mutual-exclusion flag: true while the single
	// allowed sync pass is in flight.
	IsSyncing bool `json:"is_syncing"`

	// LastSyncAt is the completion time of the last successful pass.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	// PendingChanges counts dirty notes (LastSyncAt unset or
	// UpdatedAt > LastSyncAt).
	PendingChanges int `json:"pending_changes"`

	// Conflicts is the current open conflict set.
	Conflicts []SyncConflict `json:"conflicts,omitempty"`
}
