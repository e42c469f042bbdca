package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oyugijr/EchoTask/internal/adapter"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/models"
)

const defaultPullPageSize = 100

type clientSyncEngine struct {
	notes    store.LocalNoteRepository
	meta     store.SyncMetadataRepository
	remote   adapter.RemoteStore
	resolver ConflictResolver
	status   StatusService

	pageSize int
	now      func() time.Time

	// syncing is the mutual-exclusion flag for the pass. CAS on entry,
	// store(false) deferred, so the flag is released on every path.
	syncing atomic.Bool

	// noteLocks serializes per-note merges between the pull loop and the
	// realtime listener.
	noteLocks keyedMutex

	logger *logger.Logger
}

// NewSyncEngine wires the engine to the local store, the sync metadata
// store, the remote adapter and the status aggregator.
func NewSyncEngine(
	notes store.LocalNoteRepository,
	meta store.SyncMetadataRepository,
	remote adapter.RemoteStore,
	resolver ConflictResolver,
	status StatusService,
	pageSize int,
	logger *logger.Logger,
) SyncEngine {
	if pageSize <= 0 {
		pageSize = defaultPullPageSize
	}

	return &clientSyncEngine{
		notes:    notes,
		meta:     meta,
		remote:   remote,
		resolver: resolver,
		status:   status,
		pageSize: pageSize,
		now:      time.Now,
		logger:   logger,
	}
}

// RunSync implements SyncEngine. Push before pull, so a fresh local edit is
// not overwritten by a remote fetch that predates it. Transient network
// failures are absorbed: the affected notes stay dirty and the pass reports
// success, per the offline-first contract.
func (e *clientSyncEngine) RunSync(ctx context.Context) error {
	if !e.syncing.CompareAndSwap(false, true) {
		return ErrSyncAlreadyRunning
	}
	defer e.syncing.Store(false)

	log := logger.FromContext(ctx)

	e.status.SetSyncing(true)
	defer e.status.SetSyncing(false)
	defer e.status.RecountPending(ctx)

	if err := e.remote.Ping(ctx); err != nil {
		e.status.SetOnline(false)
		log.Info().
			Err(err).
			Str("func", "clientSyncEngine.RunSync").
			Msg("remote unreachable, staying offline")
		return nil
	}
	e.status.SetOnline(true)

	e.pushDirty(ctx)

	if err := e.pullChanges(ctx); err != nil {
		// Partial progress stays applied; the next pass resumes from the
		// persisted watermark.
		e.status.SetOnline(e.remote.Online())
		log.Warn().
			Err(err).
			Str("func", "clientSyncEngine.RunSync").
			Msg("pull aborted mid-pass")
		return nil
	}

	e.status.SetLastSyncAt(e.now())

	return nil
}

// pushDirty uploads every dirty note. A failed push is logged and skipped:
// the note stays dirty and the next pass retries it.
func (e *clientSyncEngine) pushDirty(ctx context.Context) {
	log := logger.FromContext(ctx)

	dirty, err := e.notes.GetDirtyNotes(ctx)
	if err != nil {
		log.Err(err).
			Str("func", "clientSyncEngine.pushDirty").
			Msg("failed to load dirty notes")
		return
	}

	for _, note := range dirty {
		if _, err := e.remote.UpsertNote(ctx, note); err != nil {
			log.Warn().
				Err(err).
				Str("func", "clientSyncEngine.pushDirty").
				Str("note_id", note.ID).
				Msg("push failed, note stays dirty")
			continue
		}

		// The guard on the pushed revision's UpdatedAt keeps the note dirty
		// when it was edited while the push was in flight.
		if err := e.notes.MarkSynced(ctx, note.ID, note.UpdatedAt, e.now()); err != nil {
			log.Err(err).
				Str("func", "clientSyncEngine.pushDirty").
				Str("note_id", note.ID).
				Msg("failed to record push confirmation")
		}
	}
}

// pullChanges pages through the remote changes feed from the persisted
// watermark. The feed is ordered ascending by server stamp, so the watermark
// advances after every applied record and a pass interrupted mid-page
// resumes exactly where it stopped.
func (e *clientSyncEngine) pullChanges(ctx context.Context) error {
	log := logger.FromContext(ctx)

	watermark, err := e.loadWatermark(ctx)
	if err != nil {
		return err
	}

	for {
		page, count, err := e.remote.QueryChangedSince(ctx, watermark, e.pageSize)
		if err != nil {
			return fmt.Errorf("query changes: %w", err)
		}
		if count == 0 {
			return nil
		}

		applied := watermark
		for _, remote := range page {
			if applyErr := e.ApplyRemote(ctx, remote); applyErr != nil {
				// Records are ascending: stopping at the first failure keeps
				// the watermark behind the failed record so it is retried.
				if storeErr := e.storeWatermark(ctx, applied); storeErr != nil {
					return storeErr
				}
				return fmt.Errorf("apply remote note %s: %w", remote.ID, applyErr)
			}
			if remote.ServerUpdatedAt.After(applied) {
				applied = remote.ServerUpdatedAt
			}
		}

		if !applied.After(watermark) {
			// Every record in a full page failed to decode upstream; there
			// is nothing to anchor progress on. Bail instead of spinning.
			if count >= e.pageSize {
				log.Warn().
					Str("func", "clientSyncEngine.pullChanges").
					Time("watermark", watermark).
					Msg("full page yielded no applicable records")
				return nil
			}
			return nil
		}

		watermark = applied
		if err := e.storeWatermark(ctx, watermark); err != nil {
			return err
		}

		if count < e.pageSize {
			return nil
		}
	}
}

// ApplyRemote implements SyncEngine. It is the single merge path for pulled
// and realtime revisions; the per-note lock keeps concurrent merges of the
// same note ordered.
func (e *clientSyncEngine) ApplyRemote(ctx context.Context, remote models.RemoteNote) error {
	if remote.ID == "" {
		return fmt.Errorf("%w: remote note without id", ErrInvalidDataProvided)
	}

	mu := e.noteLocks.lock(remote.ID)
	defer mu.Unlock()

	log := logger.FromContext(ctx)

	local, err := e.notes.GetNoteByID(ctx, remote.ID)
	if errors.Is(err, store.ErrNoteNotFound) {
		return e.writeRemote(ctx, remote)
	}
	if err != nil {
		return err
	}

	resolution := e.resolver.Resolve(local, remote.Note)
	switch resolution.Action {
	case ActionNone:
		// Identical revision arrived twice.
		return nil

	case ActionTakeRemote:
		return e.writeRemote(ctx, remote)

	case ActionTakeLocal:
		// Local is strictly newer, hence dirty; the next push overwrites
		// the remote copy.
		return nil

	case ActionFlagConflict:
		e.status.AddConflict(models.SyncConflict{
			NoteID:     remote.ID,
			Local:      local,
			Remote:     remote.Note,
			Fields:     resolution.Fields,
			DetectedAt: e.now(),
		})
		log.Info().
			Str("func", "clientSyncEngine.ApplyRemote").
			Str("note_id", remote.ID).
			Strs("fields", resolution.Fields).
			Msg("flagged sync conflict")
		return nil
	}

	return nil
}

// writeRemote stores the remote revision verbatim and records it as the
// confirmed synced revision.
func (e *clientSyncEngine) writeRemote(ctx context.Context, remote models.RemoteNote) error {
	note := remote.Note
	note.SyncID = note.ID

	syncedAt := e.now()
	note.LastSyncAt = &syncedAt

	return e.notes.UpsertFromRemote(ctx, note)
}

// ResolveConflict implements SyncEngine. Resolving a conflict that is no
// longer open is a no-op, which makes the operation idempotent.
func (e *clientSyncEngine) ResolveConflict(ctx context.Context, noteID string, useLocal bool) error {
	mu := e.noteLocks.lock(noteID)
	defer mu.Unlock()

	// The lookup must happen under the note lock: a concurrent resolver that
	// already won removes the conflict before releasing, so the loser sees it
	// gone and backs off instead of resolving twice.
	conflict, ok := e.status.Conflict(noteID)
	if !ok {
		return nil
	}

	log := logger.FromContext(ctx)

	local, err := e.notes.GetNoteByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("load conflicted note: %w", err)
	}

	chosen := conflict.Remote
	if useLocal {
		chosen = conflict.Local
	}

	resolved := local
	resolved.Title = chosen.Title
	resolved.Content = chosen.Content
	resolved.Completed = chosen.Completed
	resolved.Tags = chosen.Tags
	resolved.Checklist = chosen.Checklist
	resolved.ConflictVersion = local.ConflictVersion + 1
	resolved.UpdatedAt = monotonicAfter(e.now(), local.UpdatedAt)

	if err := e.notes.UpdateNote(ctx, resolved); err != nil {
		return fmt.Errorf("store resolved note: %w", err)
	}

	e.status.RemoveConflict(noteID)

	// Push the chosen content right away; on failure the note is dirty and
	// the next pass re-pushes it.
	if _, err := e.remote.UpsertNote(ctx, resolved); err != nil {
		log.Warn().
			Err(err).
			Str("func", "clientSyncEngine.ResolveConflict").
			Str("note_id", noteID).
			Msg("push of resolved note failed, retrying next pass")
	} else if err := e.notes.MarkSynced(ctx, resolved.ID, resolved.UpdatedAt, e.now()); err != nil {
		log.Err(err).
			Str("func", "clientSyncEngine.ResolveConflict").
			Str("note_id", noteID).
			Msg("failed to record push confirmation")
	}

	e.status.RecountPending(ctx)

	return nil
}

func (e *clientSyncEngine) loadWatermark(ctx context.Context) (time.Time, error) {
	raw, err := e.meta.Get(ctx, store.MetaPullWatermark)
	if errors.Is(err, store.ErrMetadataNotFound) {
		// First pull on a fresh install fetches the whole remote set.
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load pull watermark: %w", err)
	}

	watermark, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse pull watermark %q: %w", raw, err)
	}

	return watermark, nil
}

func (e *clientSyncEngine) storeWatermark(ctx context.Context, watermark time.Time) error {
	if err := e.meta.Set(ctx, store.MetaPullWatermark, watermark.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("store pull watermark: %w", err)
	}
	return nil
}

// monotonicAfter returns now, nudged forward when the wall clock has not
// moved past prev. UpdatedAt must move strictly forward or the edit would
// not register as dirty.
func monotonicAfter(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Millisecond)
}
