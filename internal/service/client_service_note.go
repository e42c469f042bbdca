package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/internal/utils"
	"github.com/oyugijr/EchoTask/models"
)

type clientNoteService struct {
	notes    store.LocalNoteRepository
	deviceID string
	uuid     *utils.UUIDGenerator
	now      func() time.Time

	// trigger nudges the sync job after every successful mutation. May be
	// nil until the job is wired.
	trigger func()

	logger *logger.Logger
}

// NewClientNoteService constructs the local mutation path for notes. Every
// write stamps the device ID and moves UpdatedAt strictly forward, so the
// note registers as dirty for the next sync pass.
func NewClientNoteService(
	notes store.LocalNoteRepository,
	deviceID string,
	trigger func(),
	logger *logger.Logger,
) ClientNoteService {
	return &clientNoteService{
		notes:    notes,
		deviceID: deviceID,
		uuid:     utils.NewUUIDGenerator(),
		now:      time.Now,
		trigger:  trigger,
		logger:   logger,
	}
}

// Create implements ClientNoteService.
func (s *clientNoteService) Create(ctx context.Context, note models.Note) (models.Note, error) {
	if strings.TrimSpace(note.Title) == "" && strings.TrimSpace(note.Content) == "" &&
		len(note.Segments) == 0 && len(note.Checklist) == 0 {
		return models.Note{}, fmt.Errorf("%w: note has no content", ErrInvalidDataProvided)
	}

	now := s.now()

	note.ID = s.uuid.Generate()
	note.DeviceID = s.deviceID
	note.SyncID = ""
	note.CreatedAt = now
	note.UpdatedAt = now
	note.LastSyncAt = nil
	note.IsDeleted = false
	note.ConflictVersion = 0

	if err := s.notes.SaveNote(ctx, note); err != nil {
		return models.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.nudgeSync()

	return note, nil
}

// Get implements ClientNoteService.
func (s *clientNoteService) Get(ctx context.Context, noteID string) (models.Note, error) {
	if noteID == "" {
		return models.Note{}, fmt.Errorf("%w: empty note id", ErrInvalidDataProvided)
	}

	return s.notes.GetNoteByID(ctx, noteID)
}

// GetAll implements ClientNoteService.
func (s *clientNoteService) GetAll(ctx context.Context) ([]models.Note, error) {
	return s.notes.GetAllNotes(ctx)
}

// Update implements ClientNoteService. Fields left nil in the update keep
// their current value.
func (s *clientNoteService) Update(ctx context.Context, noteID string, update models.NoteUpdate) (models.Note, error) {
	if noteID == "" {
		return models.Note{}, fmt.Errorf("%w: empty note id", ErrInvalidDataProvided)
	}

	note, err := s.notes.GetNoteByID(ctx, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}
	if note.IsDeleted {
		return models.Note{}, fmt.Errorf("update note: %w", store.ErrNoteNotFound)
	}

	applyNoteUpdate(&note, update)

	note.DeviceID = s.deviceID
	note.UpdatedAt = monotonicAfter(s.now(), note.UpdatedAt)

	if err := s.notes.UpdateNote(ctx, note); err != nil {
		return models.Note{}, fmt.Errorf("update note: %w", err)
	}

	s.nudgeSync()

	return note, nil
}

// Delete implements ClientNoteService. The tombstone stays in the synced set
// so the deletion propagates to every device.
func (s *clientNoteService) Delete(ctx context.Context, noteID string) error {
	if noteID == "" {
		return fmt.Errorf("%w: empty note id", ErrInvalidDataProvided)
	}

	note, err := s.notes.GetNoteByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if note.IsDeleted {
		// Deleting a tombstone is a no-op.
		return nil
	}

	deletedAt := monotonicAfter(s.now(), note.UpdatedAt)
	if err := s.notes.DeleteNote(ctx, noteID, deletedAt); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.nudgeSync()

	return nil
}

func (s *clientNoteService) nudgeSync() {
	if s.trigger != nil {
		s.trigger()
	}
}

func applyNoteUpdate(note *models.Note, update models.NoteUpdate) {
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Segments != nil {
		note.Segments = *update.Segments
	}
	if update.Checklist != nil {
		note.Checklist = *update.Checklist
	}
	if update.Tags != nil {
		note.Tags = *update.Tags
	}
	if update.DueAt != nil {
		note.DueAt = update.DueAt
	}
	if update.ReminderAt != nil {
		note.ReminderAt = update.ReminderAt
	}
	if update.Priority != nil {
		note.Priority = *update.Priority
	}
	if update.Starred != nil {
		note.Starred = *update.Starred
	}
	if update.Pinned != nil {
		note.Pinned = *update.Pinned
	}
	if update.Archived != nil {
		note.Archived = *update.Archived
	}
	if update.Completed != nil {
		note.Completed = *update.Completed
	}
}
