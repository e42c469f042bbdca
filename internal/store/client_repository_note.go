package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/models"
)

type localNoteRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalNoteRepository(db *DB, logger *logger.Logger) LocalNoteRepository {
	return &localNoteRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localNoteRepository) SaveNote(ctx context.Context, notes ...models.Note) error {
	log := logger.FromContext(ctx)

	for _, note := range notes {
		row, err := newNoteRow(note)
		if err != nil {
			log.Err(err).
				Str("func", "localNoteRepository.SaveNote").
				Str("note_id", note.ID).
				Msg("failed to encode note columns")
			return err
		}

		if _, err := l.DB.ExecContext(ctx, saveSingleNote, row.args()...); err != nil {
			log.Err(err).
				Str("func", "localNoteRepository.SaveNote").
				Str("note_id", note.ID).
				Msg("failed to execute insert for note")
			return fmt.Errorf("failed to save note (id=%s): %w", note.ID, err)
		}
	}

	return nil
}

func (l *localNoteRepository) GetNoteByID(ctx context.Context, noteID string) (models.Note, error) {
	log := logger.FromContext(ctx)

	var row noteRow
	err := l.DB.QueryRowContext(ctx, getSingleNote, noteID).Scan(row.scanTargets()...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.GetNoteByID").
			Str("note_id", noteID).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return row.toModel()
}

func (l *localNoteRepository) GetAllNotes(ctx context.Context) ([]models.Note, error) {
	return l.queryNotes(ctx, "localNoteRepository.GetAllNotes", getAllNotes)
}

func (l *localNoteRepository) GetDirtyNotes(ctx context.Context) ([]models.Note, error) {
	return l.queryNotes(ctx, "localNoteRepository.GetDirtyNotes", getDirtyNotes)
}

func (l *localNoteRepository) queryNotes(ctx context.Context, caller, query string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute query for notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var notes []models.Note

	for rows.Next() {
		var row noteRow
		if scanErr := rows.Scan(row.scanTargets()...); scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		note, convErr := row.toModel()
		if convErr != nil {
			log.Err(convErr).
				Str("func", caller).
				Str("note_id", row.id).
				Msg("failed to decode note columns")
			return nil, convErr
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating note rows: %w", rowsErr)
	}

	return notes, nil
}

func (l *localNoteRepository) CountDirty(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := l.DB.QueryRowContext(ctx, countDirtyNotes).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.CountDirty").
			Msg("failed to count dirty notes")
		return 0, fmt.Errorf("failed to count dirty notes: %w", err)
	}

	return count, nil
}

func (l *localNoteRepository) UpdateNote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	row, err := newNoteRow(note)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.UpdateNote").
			Str("note_id", note.ID).
			Msg("failed to encode note columns")
		return err
	}

	result, err := l.DB.ExecContext(ctx, updateNote,
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
		row.updatedAt,
		row.lastSyncAt,
		row.conflictVersion,
		row.id,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.UpdateNote").
			Str("note_id", note.ID).
			Msg("failed to execute update for note")
		return fmt.Errorf("failed to update note (id=%s): %w", note.ID, err)
	}

	return l.requireRowsAffected(ctx, result, "localNoteRepository.UpdateNote", note.ID)
}

func (l *localNoteRepository) DeleteNote(ctx context.Context, noteID string, deletedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, softDeleteNote, deletedAt, noteID)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.DeleteNote").
			Str("note_id", noteID).
			Msg("failed to execute soft delete for note")
		return fmt.Errorf("failed to delete note (id=%s): %w", noteID, err)
	}

	return l.requireRowsAffected(ctx, result, "localNoteRepository.DeleteNote", noteID)
}

func (l *localNoteRepository) MarkSynced(ctx context.Context, noteID string, revisionUpdatedAt, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	// Zero rows affected is not an error here: the note was edited after the
	// pushed revision was read and must stay dirty for the next pass.
	_, err := l.DB.ExecContext(ctx, markNoteSynced, syncedAt, noteID, revisionUpdatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.MarkSynced").
			Str("note_id", noteID).
			Msg("failed to mark note as synced")
		return fmt.Errorf("failed to mark note as synced (id=%s): %w", noteID, err)
	}

	return nil
}

func (l *localNoteRepository) UpsertFromRemote(ctx context.Context, note models.Note) error {
	log := logger.FromContext(ctx)

	row, err := newNoteRow(note)
	if err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.UpsertFromRemote").
			Str("note_id", note.ID).
			Msg("failed to encode note columns")
		return err
	}

	if _, err := l.DB.ExecContext(ctx, upsertNoteFromRemote, row.args()...); err != nil {
		log.Err(err).
			Str("func", "localNoteRepository.UpsertFromRemote").
			Str("note_id", note.ID).
			Msg("failed to execute upsert for remote note")
		return fmt.Errorf("failed to upsert remote note (id=%s): %w", note.ID, err)
	}

	return nil
}

func (l *localNoteRepository) requireRowsAffected(ctx context.Context, result sql.Result, caller, noteID string) error {
	log := logger.FromContext(ctx)

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Str("note_id", noteID).
			Msg("failed to get rows affected")
		return fmt.Errorf("failed to get rows affected (id=%s): %w", noteID, err)
	}

	if rowsAffected == 0 {
		log.Warn().
			Str("func", caller).
			Str("note_id", noteID).
			Msg("no rows affected: note not found")
		return ErrNoteNotFound
	}

	return nil
}
