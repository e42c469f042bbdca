package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/models"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	log := logger.Nop()
	return &DB{DB: conn, logger: log}, mock
}

func noteRowColumns() []string {
	return []string{
		"id", "device_id", "sync_id", "title", "content",
		"segments", "checklist", "tags",
		"due_at", "reminder_at", "priority",
		"starred", "pinned", "archived", "completed", "deleted",
		"created_at", "updated_at", "last_sync_at", "conflict_version",
	}
}

func addNoteRow(rows *sqlmock.Rows, n models.Note) *sqlmock.Rows {
	row, _ := newNoteRow(n)
	return rows.AddRow(
		row.id, row.deviceID, row.syncID, row.title, row.content,
		row.segments, row.checklist, row.tags,
		row.dueAt, row.reminderAt, row.priority,
		row.starred, row.pinned, row.archived, row.completed, row.deleted,
		row.createdAt, row.updatedAt, row.lastSyncAt, row.conflictVersion,
	)
}

func sampleNote(id string) models.Note {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return models.Note{
		ID:        id,
		DeviceID:  "device-1",
		Title:     "groceries",
		Content:   "milk, eggs",
		Tags:      []string{"home"},
		Checklist: []models.ChecklistItem{{ID: "c1", Text: "milk", CreatedAt: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestLocalNoteRepository_SaveNote(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	note := sampleNote("note-1")

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveNote(context.Background(), note)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_SaveNote_ExecError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO notes")).
		WillReturnError(assert.AnError)

	err := repo.SaveNote(context.Background(), sampleNote("note-1"))

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLocalNoteRepository_GetNoteByID(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	want := sampleNote("note-1")
	rows := addNoteRow(sqlmock.NewRows(noteRowColumns()), want)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes")).
		WithArgs("note-1").
		WillReturnRows(rows)

	got, err := repo.GetNoteByID(context.Background(), "note-1")

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Tags, got.Tags)
	assert.Equal(t, want.Checklist, got.Checklist)
	assert.Nil(t, got.LastSyncAt)
}

func TestLocalNoteRepository_GetNoteByID_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM notes")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(noteRowColumns()))

	_, err := repo.GetNoteByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestLocalNoteRepository_GetDirtyNotes(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	first := sampleNote("note-1")
	second := sampleNote("note-2")
	second.IsDeleted = true // tombstones are part of the dirty set

	rows := sqlmock.NewRows(noteRowColumns())
	rows = addNoteRow(rows, first)
	rows = addNoteRow(rows, second)

	mock.ExpectQuery(regexp.QuoteMeta("last_sync_at IS NULL OR updated_at > last_sync_at")).
		WillReturnRows(rows)

	notes, err := repo.GetDirtyNotes(context.Background())

	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "note-1", notes[0].ID)
	assert.True(t, notes[1].IsDeleted)
}

func TestLocalNoteRepository_CountDirty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountDirty(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestLocalNoteRepository_DeleteNote_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notes")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteNote(context.Background(), "missing", time.Now())

	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestLocalNoteRepository_MarkSynced_RevisionChanged(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	revision := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	syncedAt := revision.Add(time.Second)

	// The note was edited between the read and the confirmation: the guard
	// matches zero rows and the note stays dirty. Not an error.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE notes")).
		WithArgs(syncedAt, "note-1", revision).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkSynced(context.Background(), "note-1", revision, syncedAt)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLocalNoteRepository_UpsertFromRemote(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLocalNoteRepository(db, logger.Nop())

	note := sampleNote("note-1")
	syncedAt := note.UpdatedAt.Add(time.Minute)
	note.LastSyncAt = &syncedAt

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertFromRemote(context.Background(), note)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncMetadataRepository_Get_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSyncMetadataRepository(db, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_metadata")).
		WithArgs(MetaPullWatermark).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Get(context.Background(), MetaPullWatermark)

	assert.ErrorIs(t, err, ErrMetadataNotFound)
}

func TestSyncMetadataRepository_SetAndGet(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSyncMetadataRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_metadata")).
		WithArgs(MetaDeviceID, "device-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_metadata")).
		WithArgs(MetaDeviceID).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("device-1"))

	require.NoError(t, repo.Set(context.Background(), MetaDeviceID, "device-1"))

	value, err := repo.Get(context.Background(), MetaDeviceID)
	require.NoError(t, err)
	assert.Equal(t, "device-1", value)
}
