// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// Priority is the optional importance level of a note or task.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// TextSegment is one piece of a note's structured rich-text body.
// Plain notes carry a single segment of kind "text"; formatted notes
// carry an ordered list of segments.
type TextSegment struct {
	// Kind describes how the segment is rendered ("text", "bold",
	// "italic", "heading", "link", ...). The sync core treats it as
	// an opaque label.
	Kind string `json:"kind"`

	// Text is the raw segment content.
	Text string `json:"text"`
}

// ChecklistItem is a single entry of a note's ordered checklist.
type ChecklistItem struct {
	// ID is a stable client-generated identifier, unique within the note.
	ID string `json:"id"`

	// Text is the item label.
	Text string `json:"text"`

	// Completed marks the item as done.
	Completed bool `json:"completed"`

	// CreatedAt is the item creation time, preserved across reordering.
	CreatedAt time.Time `json:"created_at"`
}

// Note is the synchronized unit of the application: a single note or task
// together with all of its sync bookkeeping.
//
// Identity is split in three: ID is the stable, locally generated
// identifier (never reused), DeviceID names the device that last wrote the
// note locally, and SyncID is the remote identity — equal to ID once the
// note has been pushed at least once, empty otherwise.
type Note struct {
	ID       string `json:"id"`
	DeviceID string `json:"device_id"`
	SyncID   string `json:"sync_id,omitempty"`

	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Segments  []TextSegment   `json:"segments,omitempty"`
	Checklist []ChecklistItem `json:"checklist,omitempty"`
	Tags      []string        `json:"tags,omitempty"`

	DueAt      *time.Time `json:"due_at,omitempty"`
	ReminderAt *time.Time `json:"reminder_at,omitempty"`
	Priority   Priority   `json:"priority,omitempty"`

	Starred  bool `json:"starred,omitempty"`
	Pinned   bool `json:"pinned,omitempty"`
	Archived bool `json:"archived,omitempty"`

	// Completed applies to task notes only.
	Completed bool `json:"completed,omitempty"`

	// IsDeleted is the soft-delete tombstone. Deletion never removes the
	// record from the synced set; the tombstone itself is synchronized.
	IsDeleted bool `json:"is_deleted,omitempty"`

	// CreatedAt and UpdatedAt are required and monotonically
	// non-decreasing per record; UpdatedAt >= CreatedAt always.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// LastSyncAt is set only when this exact revision has been confirmed
	// pushed to or pulled from the remote store. Nil until first sync.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	// ConflictVersion is incremented only on manual conflict resolution.
	ConflictVersion int64 `json:"conflict_version,omitempty"`
}

// Dirty reports whether the note needs a push: its local revision is newer
// than the last revision confirmed synced.
func (n Note) Dirty() bool {
	return n.LastSyncAt == nil || n.UpdatedAt.After(*n.LastSyncAt)
}

// NoteUpdate carries a partial note mutation. Nil fields are left
// unchanged; the note service applies the update and stamps the sync
// bookkeeping so UpdatedAt stays monotonic.
type NoteUpdate struct {
	Title      *string          `json:"title,omitempty"`
	Content    *string          `json:"content,omitempty"`
	Segments   *[]TextSegment   `json:"segments,omitempty"`
	Checklist  *[]ChecklistItem `json:"checklist,omitempty"`
	Tags       *[]string        `json:"tags,omitempty"`
	DueAt      *time.Time       `json:"due_at,omitempty"`
	ReminderAt *time.Time       `json:"reminder_at,omitempty"`
	Priority   *Priority        `json:"priority,omitempty"`
	Starred    *bool            `json:"starred,omitempty"`
	Pinned     *bool            `json:"pinned,omitempty"`
	Archived   *bool            `json:"archived,omitempty"`
	Completed  *bool            `json:"completed,omitempty"`
}
