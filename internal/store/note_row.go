package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oyugijr/EchoTask/models"
)

// noteRow is the flat database representation of a note. Structured fields
// (segments, checklist, tags) travel as JSON-encoded columns; optional
// timestamps as NULLable columns.
type noteRow struct {
	id              string
	deviceID        string
	syncID          string
	title           string
	content         string
	segments        []byte
	checklist       []byte
	tags            []byte
	dueAt           sql.NullTime
	reminderAt      sql.NullTime
	priority        int64
	starred         bool
	pinned          bool
	archived        bool
	completed       bool
	deleted         bool
	createdAt       time.Time
	updatedAt       time.Time
	lastSyncAt      sql.NullTime
	conflictVersion int64
}

func newNoteRow(n models.Note) (noteRow, error) {
	segments, err := json.Marshal(n.Segments)
	if err != nil {
		return noteRow{}, fmt.Errorf("%w: segments: %w", ErrEncodingColumn, err)
	}
	checklist, err := json.Marshal(n.Checklist)
	if err != nil {
		return noteRow{}, fmt.Errorf("%w: checklist: %w", ErrEncodingColumn, err)
	}
	tags, err := json.Marshal(n.Tags)
	if err != nil {
		return noteRow{}, fmt.Errorf("%w: tags: %w", ErrEncodingColumn, err)
	}

	r := noteRow{
		id:              n.ID,
		deviceID:        n.DeviceID,
		syncID:          n.SyncID,
		title:           n.Title,
		content:         n.Content,
		segments:        segments,
		checklist:       checklist,
		tags:            tags,
		priority:        int64(n.Priority),
		starred:         n.Starred,
		pinned:          n.Pinned,
		archived:        n.Archived,
		completed:       n.Completed,
		deleted:         n.IsDeleted,
		createdAt:       n.CreatedAt,
		updatedAt:       n.UpdatedAt,
		conflictVersion: n.ConflictVersion,
	}
	if n.DueAt != nil {
		r.dueAt = sql.NullTime{Time: *n.DueAt, Valid: true}
	}
	if n.ReminderAt != nil {
		r.reminderAt = sql.NullTime{Time: *n.ReminderAt, Valid: true}
	}
	if n.LastSyncAt != nil {
		r.lastSyncAt = sql.NullTime{Time: *n.LastSyncAt, Valid: true}
	}

	return r, nil
}

func (r *noteRow) toModel() (models.Note, error) {
	n := models.Note{
		ID:              r.id,
		DeviceID:        r.deviceID,
		SyncID:          r.syncID,
		Title:           r.title,
		Content:         r.content,
		Priority:        models.Priority(r.priority),
		Starred:         r.starred,
		Pinned:          r.pinned,
		Archived:        r.archived,
		Completed:       r.completed,
		IsDeleted:       r.deleted,
		CreatedAt:       r.createdAt,
		UpdatedAt:       r.updatedAt,
		ConflictVersion: r.conflictVersion,
	}

	if len(r.segments) > 0 {
		if err := json.Unmarshal(r.segments, &n.Segments); err != nil {
			return models.Note{}, fmt.Errorf("%w: segments: %w", ErrDecodingColumn, err)
		}
	}
	if len(r.checklist) > 0 {
		if err := json.Unmarshal(r.checklist, &n.Checklist); err != nil {
			return models.Note{}, fmt.Errorf("%w: checklist: %w", ErrDecodingColumn, err)
		}
	}
	if len(r.tags) > 0 {
		if err := json.Unmarshal(r.tags, &n.Tags); err != nil {
			return models.Note{}, fmt.Errorf("%w: tags: %w", ErrDecodingColumn, err)
		}
	}

	if r.dueAt.Valid {
		t := r.dueAt.Time
		n.DueAt = &t
	}
	if r.reminderAt.Valid {
		t := r.reminderAt.Time
		n.ReminderAt = &t
	}
	if r.lastSyncAt.Valid {
		t := r.lastSyncAt.Time
		n.LastSyncAt = &t
	}

	return n, nil
}

// scanTargets returns pointers to every column in schema order. Used with
// row.Scan for queries selecting the full note column set.
func (r *noteRow) scanTargets() []any {
	return []any{
		&r.id,
		&r.deviceID,
		&r.syncID,
		&r.title,
		&r.content,
		&r.segments,
		&r.checklist,
		&r.tags,
		&r.dueAt,
		&r.reminderAt,
		&r.priority,
		&r.starred,
		&r.pinned,
		&r.archived,
		&r.completed,
		&r.deleted,
		&r.createdAt,
		&r.updatedAt,
		&r.lastSyncAt,
		&r.conflictVersion,
	}
}

// serverScanTargets returns scan destinations for the server column set,
// which replaces last_sync_at with server_updated_at.
func (r *noteRow) serverScanTargets(serverUpdatedAt *time.Time) []any {
	return []any{
		&r.id,
		&r.deviceID,
		&r.syncID,
		&r.title,
		&r.content,
		&r.segments,
		&r.checklist,
		&r.tags,
		&r.dueAt,
		&r.reminderAt,
		&r.priority,
		&r.starred,
		&r.pinned,
		&r.archived,
		&r.completed,
		&r.deleted,
		&r.createdAt,
		&r.updatedAt,
		&r.conflictVersion,
		serverUpdatedAt,
	}
}

// args returns every column value in schema order. Used as the argument list
// for full-row INSERTs.
func (r *noteRow) args() []any {
	return []any{
		r.id,
		r.deviceID,
		r.syncID,
		r.title,
		r.content,
		r.segments,
		r.checklist,
		r.tags,
		r.dueAt,
		r.reminderAt,
		r.priority,
		r.starred,
		r.pinned,
		r.archived,
		r.completed,
		r.deleted,
		r.createdAt,
		r.updatedAt,
		r.lastSyncAt,
		r.conflictVersion,
	}
}
