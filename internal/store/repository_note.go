package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/models"
)

// serverNoteColumns is the server column set: the client's sync bookkeeping
// column (last_sync_at) is replaced by the server stamp.
var serverNoteColumns = []string{
	"id",
	"device_id",
	"sync_id",
	"title",
	"content",
	"segments",
	"checklist",
	"tags",
	"due_at",
	"reminder_at",
	"priority",
	"starred",
	"pinned",
	"archived",
	"completed",
	"deleted",
	"created_at",
	"updated_at",
	"conflict_version",
	"server_updated_at",
}

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// Queries are built with squirrel using dollar placeholders.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields.
type noteRepository struct {
	*DB
	logger  *logger.Logger
	builder sq.StatementBuilderType
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:      db,
		logger:  logger,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// UpsertNote fully replaces the stored note keyed by its ID and stamps it
// with serverUpdatedAt. Last write wins at the row level; field-level
// reconciliation is the client's job.
func (r *noteRepository) UpsertNote(ctx context.Context, note models.Note, serverUpdatedAt time.Time) (models.RemoteNote, error) {
	log := logger.FromContext(ctx)

	row, err := newNoteRow(note)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpsertNote").
			Str("note_id", note.ID).
			Msg("failed to encode note columns")
		return models.RemoteNote{}, err
	}

	query, args, err := r.builder.
		Insert("notes").
		Columns(serverNoteColumns...).
		Values(
			row.id,
			row.deviceID,
			row.syncID,
			row.title,
			row.content,
			row.segments,
			row.checklist,
			row.tags,
			row.dueAt,
			row.reminderAt,
			row.priority,
			row.starred,
			row.pinned,
			row.archived,
			row.completed,
			row.deleted,
			row.createdAt,
			row.updatedAt,
			row.conflictVersion,
			serverUpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			device_id         = excluded.device_id,
			sync_id           = excluded.sync_id,
			title             = excluded.title,
			content           = excluded.content,
			segments          = excluded.segments,
			checklist         = excluded.checklist,
			tags              = excluded.tags,
			due_at            = excluded.due_at,
			reminder_at       = excluded.reminder_at,
			priority          = excluded.priority,
			starred           = excluded.starred,
			pinned            = excluded.pinned,
			archived          = excluded.archived,
			completed         = excluded.completed,
			deleted           = excluded.deleted,
			created_at        = excluded.created_at,
			updated_at        = excluded.updated_at,
			conflict_version  = excluded.conflict_version,
			server_updated_at = excluded.server_updated_at`).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpsertNote").
			Str("note_id", note.ID).
			Msg("failed to build upsert query")
		return models.RemoteNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpsertNote").
			Str("note_id", note.ID).
			Msg("failed to execute upsert for note")
		return models.RemoteNote{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	stored := note
	stored.SyncID = note.ID
	stored.LastSyncAt = nil

	return models.RemoteNote{Note: stored, ServerUpdatedAt: serverUpdatedAt}, nil
}

// GetNoteByID returns the stored note or [ErrNoteNotFound].
func (r *noteRepository) GetNoteByID(ctx context.Context, noteID string) (models.RemoteNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(serverNoteColumns...).
		From("notes").
		Where(sq.Eq{"id": noteID}).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNoteByID").
			Str("note_id", noteID).
			Msg("failed to build select query")
		return models.RemoteNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		row             noteRow
		serverUpdatedAt time.Time
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(row.serverScanTargets(&serverUpdatedAt)...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteNote{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNoteByID").
			Str("note_id", noteID).
			Msg("failed to scan note row")
		return models.RemoteNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	note, err := row.toModel()
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetNoteByID").
			Str("note_id", noteID).
			Msg("failed to decode note columns")
		return models.RemoteNote{}, err
	}

	return models.RemoteNote{Note: note, ServerUpdatedAt: serverUpdatedAt}, nil
}

// GetChangedSince returns at most limit notes stamped strictly after since,
// oldest first. Tombstones are included: deletion propagates through the
// same feed as every other change.
func (r *noteRepository) GetChangedSince(ctx context.Context, since time.Time, limit uint64) ([]models.RemoteNote, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select(serverNoteColumns...).
		From("notes").
		Where(sq.Gt{"server_updated_at": since}).
		OrderBy("server_updated_at ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetChangedSince").
			Time("since", since).
			Msg("failed to build changes query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.GetChangedSince").
			Time("since", since).
			Msg("failed to execute changes query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.RemoteNote, 0, limit)

	for rows.Next() {
		var (
			row             noteRow
			serverUpdatedAt time.Time
		)
		if scanErr := rows.Scan(row.serverScanTargets(&serverUpdatedAt)...); scanErr != nil {
			log.Err(scanErr).
				Str("func", "noteRepository.GetChangedSince").
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		note, convErr := row.toModel()
		if convErr != nil {
			log.Err(convErr).
				Str("func", "noteRepository.GetChangedSince").
				Str("note_id", row.id).
				Msg("failed to decode note columns")
			return nil, convErr
		}

		notes = append(notes, models.RemoteNote{Note: note, ServerUpdatedAt: serverUpdatedAt})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "noteRepository.GetChangedSince").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating note rows: %w", rowsErr)
	}

	return notes, nil
}
