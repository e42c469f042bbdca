package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/models"
)

const (
	defaultChangesLimit = 100
	maxChangesLimit     = 500
)

// noteService is the concrete implementation of NoteService. It owns the
// server clock: every accepted write is stamped here, never by the client,
// so the changes feed stays totally ordered per server.
type noteService struct {
	noteRepository store.NoteRepository
	now            func() time.Time
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given repository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		now:            time.Now,
		logger:         logger,
	}
}

// UpsertNote implements NoteService.
func (s *noteService) UpsertNote(ctx context.Context, note models.Note) (models.RemoteNote, error) {
	log := logger.FromContext(ctx)

	if note.ID == "" || note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		log.Error().
			Str("note_id", note.ID).
			Msg("rejected note upsert with missing identity or stamps")
		return models.RemoteNote{}, ErrInvalidDataProvided
	}

	stored, err := s.noteRepository.UpsertNote(ctx, note, s.now())
	if err != nil {
		log.Err(err).Str("note_id", note.ID).Msg("note upsert failed")
		return models.RemoteNote{}, fmt.Errorf("note upsert failed: %w", err)
	}

	return stored, nil
}

// GetNote implements NoteService.
func (s *noteService) GetNote(ctx context.Context, noteID string) (models.RemoteNote, error) {
	if noteID == "" {
		return models.RemoteNote{}, ErrInvalidDataProvided
	}

	note, err := s.noteRepository.GetNoteByID(ctx, noteID)
	if err != nil {
		return models.RemoteNote{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

// ChangedSince implements NoteService. since is an RFC 3339 stamp; the empty
// string selects the beginning of time so a fresh device pulls everything.
func (s *noteService) ChangedSince(ctx context.Context, since string, limit int) (models.ChangesResponse, error) {
	log := logger.FromContext(ctx)

	var watermark time.Time
	if since != "" {
		parsed, err := time.Parse(time.RFC3339Nano, since)
		if err != nil {
			log.Error().
				Str("since", since).
				Msg("rejected changes query with malformed watermark")
			return models.ChangesResponse{}, fmt.Errorf("%w: malformed since stamp", ErrInvalidDataProvided)
		}
		watermark = parsed
	}

	switch {
	case limit <= 0:
		limit = defaultChangesLimit
	case limit > maxChangesLimit:
		limit = maxChangesLimit
	}

	notes, err := s.noteRepository.GetChangedSince(ctx, watermark, uint64(limit))
	if err != nil {
		log.Err(err).Time("since", watermark).Msg("changes query failed")
		return models.ChangesResponse{}, fmt.Errorf("changes query failed: %w", err)
	}

	return models.NewChangesResponse(notes), nil
}
