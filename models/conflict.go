package models

import "time"

// Conflict field names reported in [SyncConflict.Fields]. Only content
// fields participate in conflict detection; bookkeeping fields never do.
const (
	ConflictFieldTitle     = "title"
	ConflictFieldContent   = "content"
	ConflictFieldCompleted = "completed"
	ConflictFieldTags      = "tags"
	ConflictFieldChecklist = "checklist"
)

// SyncConflict is an unresolved divergence between a local and a remote
// revision of the same note. It is created only when the two revisions
// cannot be ordered automatically (equal UpdatedAt, differing content) and
// destroyed when a winner is picked, manually or by policy.
type SyncConflict struct {
	// NoteID identifies the contested note.
	NoteID string `json:"note_id"`

	// Local is the local revision at detection time.
	Local Note `json:"local"`

	// Remote is the remote revision at detection time.
	Remote Note `json:"remote"`

	// Fields lists exactly the content fields whose values differ.
	// Non-empty by construction: a conflict with no differing fields is
	// never created.
	Fields []string `json:"fields"`

	// DetectedAt is when the resolver flagged the divergence.
	DetectedAt time.Time `json:"detected_at"`
}
