package service

import (
	"context"
	"sync"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/models"
)

type statusService struct {
	notes  store.LocalNoteRepository
	logger *logger.Logger

	mu         sync.RWMutex
	online     bool
	syncing    bool
	lastSyncAt *time.Time
	pending    int
	conflicts  map[string]models.SyncConflict
	subs       []chan models.SyncStatus
}

// NewStatusService constructs the status aggregator. The note repository is
// used only to recount dirty notes; the aggregator never writes anything.
func NewStatusService(notes store.LocalNoteRepository, logger *logger.Logger) StatusService {
	return &statusService{
		notes:     notes,
		logger:    logger,
		conflicts: make(map[string]models.SyncConflict),
	}
}

func (s *statusService) Snapshot() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *statusService) snapshotLocked() models.SyncStatus {
	status := models.SyncStatus{
		IsOnline:       s.online,
		IsSyncing:      s.syncing,
		PendingChanges: s.pending,
	}

	if s.lastSyncAt != nil {
		at := *s.lastSyncAt
		status.LastSyncAt = &at
	}

	if len(s.conflicts) > 0 {
		status.Conflicts = make([]models.SyncConflict, 0, len(s.conflicts))
		for _, c := range s.conflicts {
			status.Conflicts = append(status.Conflicts, c)
		}
	}

	return status
}

func (s *statusService) Subscribe() <-chan models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan models.SyncStatus, 1)
	s.subs = append(s.subs, ch)

	return ch
}

// publishLocked pushes the current snapshot to every subscriber without
// blocking. A subscriber that has not drained its previous notification
// keeps the stale one; the next change will catch it up.
func (s *statusService) publishLocked() {
	snapshot := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

func (s *statusService) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.online == online {
		return
	}
	s.online = online
	s.publishLocked()
}

func (s *statusService) SetSyncing(syncing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.syncing == syncing {
		return
	}
	s.syncing = syncing
	s.publishLocked()
}

func (s *statusService) SetLastSyncAt(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSyncAt = &at
	s.publishLocked()
}

func (s *statusService) RecountPending(ctx context.Context) {
	count, err := s.notes.CountDirty(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "statusService.RecountPending").
			Msg("failed to recount pending changes")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == count {
		return
	}
	s.pending = count
	s.publishLocked()
}

func (s *statusService) AddConflict(conflict models.SyncConflict) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conflicts[conflict.NoteID] = conflict
	s.publishLocked()
}

func (s *statusService) Conflict(noteID string) (models.SyncConflict, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conflict, ok := s.conflicts[noteID]
	return conflict, ok
}

func (s *statusService) RemoveConflict(noteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conflicts[noteID]; !ok {
		return
	}
	delete(s.conflicts, noteID)
	s.publishLocked()
}
