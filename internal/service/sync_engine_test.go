// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/mock"
	"github.com/oyugijr/EchoTask/internal/store"
	"github.com/oyugijr/EchoTask/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeLocalRepo is an in-memory LocalNoteRepository with real dirty-tracking
// semantics, so engine scenarios read as state transitions instead of call
// expectations.
type fakeLocalRepo struct {
	mu    sync.Mutex
	notes map[string]models.Note
}

func newFakeLocalRepo() *fakeLocalRepo {
	return &fakeLocalRepo{notes: make(map[string]models.Note)}
}

func (f *fakeLocalRepo) SaveNote(_ context.Context, notes ...models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range notes {
		f.notes[n.ID] = n
	}
	return nil
}

func (f *fakeLocalRepo) GetNoteByID(_ context.Context, noteID string) (models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[noteID]
	if !ok {
		return models.Note{}, store.ErrNoteNotFound
	}
	return n, nil
}

func (f *fakeLocalRepo) GetAllNotes(_ context.Context) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Note
	for _, n := range f.notes {
		if !n.IsDeleted {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeLocalRepo) UpdateNote(_ context.Context, note models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.notes[note.ID]; !ok {
		return store.ErrNoteNotFound
	}
	f.notes[note.ID] = note
	return nil
}

func (f *fakeLocalRepo) DeleteNote(_ context.Context, noteID string, deletedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[noteID]
	if !ok {
		return store.ErrNoteNotFound
	}
	n.IsDeleted = true
	n.UpdatedAt = deletedAt
	f.notes[noteID] = n
	return nil
}

func (f *fakeLocalRepo) GetDirtyNotes(_ context.Context) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Note
	for _, n := range f.notes {
		if n.Dirty() {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeLocalRepo) CountDirty(ctx context.Context) (int, error) {
	dirty, err := f.GetDirtyNotes(ctx)
	return len(dirty), err
}

func (f *fakeLocalRepo) MarkSynced(_ context.Context, noteID string, revisionUpdatedAt, syncedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[noteID]
	if !ok || !n.UpdatedAt.Equal(revisionUpdatedAt) {
		// Revision moved on; the note stays dirty.
		return nil
	}
	n.LastSyncAt = &syncedAt
	n.SyncID = n.ID
	f.notes[noteID] = n
	return nil
}

func (f *fakeLocalRepo) UpsertFromRemote(_ context.Context, note models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notes[note.ID] = note
	return nil
}

// fakeMetaRepo is an in-memory SyncMetadataRepository.
type fakeMetaRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeMetaRepo() *fakeMetaRepo {
	return &fakeMetaRepo{values: make(map[string]string)}
}

func (f *fakeMetaRepo) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", store.ErrMetadataNotFound
	}
	return v, nil
}

func (f *fakeMetaRepo) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value
	return nil
}

var engineNow = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, ctrl *gomock.Controller, pageSize int) (*clientSyncEngine, *fakeLocalRepo, *fakeMetaRepo, *mock.MockRemoteStore, StatusService) {
	t.Helper()

	repo := newFakeLocalRepo()
	meta := newFakeMetaRepo()
	remote := mock.NewMockRemoteStore(ctrl)
	status := NewStatusService(repo, logger.Nop())

	engine := NewSyncEngine(repo, meta, remote, NewConflictResolver(), status, pageSize, logger.Nop()).(*clientSyncEngine)
	engine.now = func() time.Time { return engineNow }

	return engine, repo, meta, remote, status
}

func remoteRevision(note models.Note, serverStamp time.Time) models.RemoteNote {
	note.SyncID = note.ID
	note.LastSyncAt = nil
	return models.RemoteNote{Note: note, ServerUpdatedAt: serverStamp}
}

func syncedNote(id string, updatedAt time.Time) models.Note {
	syncedAt := updatedAt.Add(time.Second)
	return models.Note{
		ID:         id,
		DeviceID:   "device-a",
		SyncID:     id,
		Title:      "title",
		Content:    "content",
		CreatedAt:  updatedAt.Add(-time.Hour),
		UpdatedAt:  updatedAt,
		LastSyncAt: &syncedAt,
	}
}

// ── RunSync ──────────────────────────────────────────────────────────────────

func TestSyncEngine_RunSync_OfflineIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	remote.EXPECT().Ping(ctx).Return(errors.New("connection refused"))

	err := engine.RunSync(ctx)
	require.NoError(t, err)

	snapshot := status.Snapshot()
	assert.False(t, snapshot.IsOnline)
	assert.False(t, snapshot.IsSyncing)
	assert.Nil(t, snapshot.LastSyncAt)
}

func TestSyncEngine_RunSync_PushesDirtyNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	dirty := models.Note{
		ID:        "note-1",
		DeviceID:  "device-a",
		Title:     "offline edit",
		CreatedAt: engineNow.Add(-time.Hour),
		UpdatedAt: engineNow.Add(-time.Minute),
	}
	require.NoError(t, repo.SaveNote(ctx, dirty))

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().UpsertNote(ctx, dirty).Return(remoteRevision(dirty, engineNow), nil)
	remote.EXPECT().QueryChangedSince(ctx, gomock.Any(), 10).Return(nil, 0, nil)

	require.NoError(t, engine.RunSync(ctx))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.False(t, stored.Dirty())
	assert.Equal(t, "note-1", stored.SyncID)

	snapshot := status.Snapshot()
	assert.True(t, snapshot.IsOnline)
	assert.Equal(t, 0, snapshot.PendingChanges)
	require.NotNil(t, snapshot.LastSyncAt)
	assert.Equal(t, engineNow, *snapshot.LastSyncAt)
}

func TestSyncEngine_RunSync_PushFailureLeavesNoteDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	dirty := models.Note{
		ID:        "note-1",
		DeviceID:  "device-a",
		Title:     "offline edit",
		CreatedAt: engineNow.Add(-time.Hour),
		UpdatedAt: engineNow.Add(-time.Minute),
	}
	require.NoError(t, repo.SaveNote(ctx, dirty))

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().UpsertNote(ctx, dirty).Return(models.RemoteNote{}, errors.New("boom"))
	remote.EXPECT().QueryChangedSince(ctx, gomock.Any(), 10).Return(nil, 0, nil)

	// Retry-by-omission: the failed push never fails the pass.
	require.NoError(t, engine.RunSync(ctx))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.True(t, stored.Dirty())
	assert.Equal(t, 1, status.Snapshot().PendingChanges)
}

func TestSyncEngine_RunSync_EditDuringPushStaysDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	dirty := models.Note{
		ID:        "note-1",
		DeviceID:  "device-a",
		Title:     "first draft",
		CreatedAt: engineNow.Add(-time.Hour),
		UpdatedAt: engineNow.Add(-time.Minute),
	}
	require.NoError(t, repo.SaveNote(ctx, dirty))

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().UpsertNote(ctx, dirty).DoAndReturn(
		func(ctx context.Context, note models.Note) (models.RemoteNote, error) {
			// Another writer edits the note while the push is in flight.
			edited := note
			edited.Title = "second draft"
			edited.UpdatedAt = note.UpdatedAt.Add(time.Second)
			require.NoError(t, repo.UpdateNote(ctx, edited))
			return remoteRevision(note, engineNow), nil
		})
	remote.EXPECT().QueryChangedSince(ctx, gomock.Any(), 10).Return(nil, 0, nil)

	require.NoError(t, engine.RunSync(ctx))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "second draft", stored.Title)
	assert.True(t, stored.Dirty(), "the in-flight edit must survive the push confirmation")
	assert.Equal(t, 1, status.Snapshot().PendingChanges)
}

func TestSyncEngine_RunSync_PullRemoteNewerOverwritesLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, _ := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	local := syncedNote("note-1", engineNow.Add(-time.Hour))
	require.NoError(t, repo.SaveNote(ctx, local))

	newer := local
	newer.Title = "edited elsewhere"
	newer.UpdatedAt = engineNow.Add(-time.Minute)
	newer.LastSyncAt = nil

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().QueryChangedSince(ctx, gomock.Any(), 10).
		Return([]models.RemoteNote{remoteRevision(newer, engineNow.Add(-time.Minute))}, 1, nil)

	require.NoError(t, engine.RunSync(ctx))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "edited elsewhere", stored.Title)
	assert.False(t, stored.Dirty(), "a pulled revision is already synced")
}

func TestSyncEngine_RunSync_EqualStampDifferingContentFlagsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	stamp := engineNow.Add(-time.Minute)

	local := syncedNote("note-1", stamp)
	local.Title = "written on this device"
	require.NoError(t, repo.SaveNote(ctx, local))

	contested := local
	contested.Title = "written on another device"
	contested.LastSyncAt = nil

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().QueryChangedSince(ctx, gomock.Any(), 10).
		Return([]models.RemoteNote{remoteRevision(contested, engineNow)}, 1, nil)

	require.NoError(t, engine.RunSync(ctx))

	// Neither side is modified until a human picks a winner.
	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "written on this device", stored.Title)

	snapshot := status.Snapshot()
	require.Len(t, snapshot.Conflicts, 1)
	assert.Equal(t, "note-1", snapshot.Conflicts[0].NoteID)
	assert.Equal(t, []string{models.ConflictFieldTitle}, snapshot.Conflicts[0].Fields)
}

func TestSyncEngine_RunSync_TombstonePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, _ := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	local := syncedNote("note-1", engineNow.Add(-time.Hour))
	require.NoError(t, repo.SaveNote(ctx, local))

	tombstone := local
	tombstone.IsDeleted = true
	tombstone.UpdatedAt = engineNow.Add(-time.Minute)
	tombstone.LastSyncAt = nil

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().QueryChangedSince(ctx, gomock.Any(), 10).
		Return([]models.RemoteNote{remoteRevision(tombstone, engineNow)}, 1, nil)

	require.NoError(t, engine.RunSync(ctx))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted)

	live, err := repo.GetAllNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestSyncEngine_RunSync_AdvancesWatermarkAcrossPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, meta, remote, _ := newTestEngine(t, ctrl, 2)
	ctx := context.Background()

	stamp1 := engineNow.Add(-3 * time.Minute)
	stamp2 := engineNow.Add(-2 * time.Minute)
	stamp3 := engineNow.Add(-time.Minute)

	note := func(id string, updatedAt time.Time) models.Note {
		return models.Note{
			ID:        id,
			DeviceID:  "device-b",
			Title:     id,
			CreatedAt: updatedAt,
			UpdatedAt: updatedAt,
		}
	}

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().QueryChangedSince(ctx, time.Time{}, 2).Return([]models.RemoteNote{
		remoteRevision(note("a", stamp1), stamp1),
		remoteRevision(note("b", stamp2), stamp2),
	}, 2, nil)
	remote.EXPECT().QueryChangedSince(ctx, stamp2, 2).Return([]models.RemoteNote{
		remoteRevision(note("c", stamp3), stamp3),
	}, 1, nil)

	require.NoError(t, engine.RunSync(ctx))

	raw, err := meta.Get(ctx, store.MetaPullWatermark)
	require.NoError(t, err)
	persisted, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(t, err)
	assert.True(t, persisted.Equal(stamp3), "watermark must land on the newest applied stamp")
}

func TestSyncEngine_RunSync_ResumesFromPersistedWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, meta, remote, _ := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	watermark := engineNow.Add(-10 * time.Minute)
	require.NoError(t, meta.Set(ctx, store.MetaPullWatermark, watermark.Format(time.RFC3339Nano)))

	remote.EXPECT().Ping(ctx).Return(nil)
	remote.EXPECT().QueryChangedSince(ctx, gomock.Cond(func(since time.Time) bool {
		return since.Equal(watermark)
	}), 10).Return(nil, 0, nil)

	require.NoError(t, engine.RunSync(ctx))
}

func TestSyncEngine_RunSync_SecondConcurrentCallIsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, _, _, _ := newTestEngine(t, ctrl, 10)

	engine.syncing.Store(true)

	err := engine.RunSync(context.Background())
	assert.ErrorIs(t, err, ErrSyncAlreadyRunning)
}

// ── ApplyRemote ──────────────────────────────────────────────────────────────

func TestSyncEngine_ApplyRemote_InsertsUnknownNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, _, _ := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	incoming := models.Note{
		ID:        "note-9",
		DeviceID:  "device-b",
		Title:     "from another device",
		CreatedAt: engineNow.Add(-time.Minute),
		UpdatedAt: engineNow.Add(-time.Minute),
	}

	require.NoError(t, engine.ApplyRemote(ctx, remoteRevision(incoming, engineNow)))

	stored, err := repo.GetNoteByID(ctx, "note-9")
	require.NoError(t, err)
	assert.Equal(t, "from another device", stored.Title)
	assert.Equal(t, "note-9", stored.SyncID)
	assert.False(t, stored.Dirty())
}

func TestSyncEngine_ApplyRemote_LocalNewerIsUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, _, _ := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	local := models.Note{
		ID:        "note-1",
		DeviceID:  "device-a",
		Title:     "fresh local edit",
		CreatedAt: engineNow.Add(-time.Hour),
		UpdatedAt: engineNow.Add(-time.Minute),
	}
	require.NoError(t, repo.SaveNote(ctx, local))

	stale := local
	stale.Title = "stale remote copy"
	stale.UpdatedAt = engineNow.Add(-10 * time.Minute)

	require.NoError(t, engine.ApplyRemote(ctx, remoteRevision(stale, engineNow)))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "fresh local edit", stored.Title)
	assert.True(t, stored.Dirty(), "the local revision still needs its push")
}

func TestSyncEngine_ApplyRemote_RejectsEmptyID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, _, _, _ := newTestEngine(t, ctrl, 10)

	err := engine.ApplyRemote(context.Background(), models.RemoteNote{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ── ResolveConflict ──────────────────────────────────────────────────────────

func seedConflict(t *testing.T, ctx context.Context, repo *fakeLocalRepo, status StatusService) models.SyncConflict {
	t.Helper()

	stamp := engineNow.Add(-time.Minute)

	local := syncedNote("note-1", stamp)
	local.Title = "local title"
	require.NoError(t, repo.SaveNote(ctx, local))

	remote := local
	remote.Title = "remote title"
	remote.LastSyncAt = nil

	conflict := models.SyncConflict{
		NoteID:     "note-1",
		Local:      local,
		Remote:     remote,
		Fields:     []string{models.ConflictFieldTitle},
		DetectedAt: engineNow,
	}
	status.AddConflict(conflict)
	return conflict
}

func TestSyncEngine_ResolveConflict_UseRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	seedConflict(t, ctx, repo, status)

	remote.EXPECT().UpsertNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.Note) (models.RemoteNote, error) {
			return remoteRevision(note, engineNow), nil
		})

	require.NoError(t, engine.ResolveConflict(ctx, "note-1", false))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "remote title", stored.Title)
	assert.Equal(t, int64(1), stored.ConflictVersion)
	assert.False(t, stored.Dirty(), "the resolved revision was pushed and confirmed")

	snapshot := status.Snapshot()
	assert.Empty(t, snapshot.Conflicts)
}

func TestSyncEngine_ResolveConflict_UseLocalKeepsContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	seedConflict(t, ctx, repo, status)

	remote.EXPECT().UpsertNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.Note) (models.RemoteNote, error) {
			return remoteRevision(note, engineNow), nil
		})

	require.NoError(t, engine.ResolveConflict(ctx, "note-1", true))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "local title", stored.Title)
	assert.Equal(t, int64(1), stored.ConflictVersion)
}

func TestSyncEngine_ResolveConflict_PushFailureLeavesNoteDirty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	seedConflict(t, ctx, repo, status)

	remote.EXPECT().UpsertNote(ctx, gomock.Any()).Return(models.RemoteNote{}, errors.New("boom"))

	require.NoError(t, engine.ResolveConflict(ctx, "note-1", false))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, "remote title", stored.Title)
	assert.True(t, stored.Dirty(), "the resolved revision rides the next pass")
	assert.Empty(t, status.Snapshot().Conflicts)
}

func TestSyncEngine_ResolveConflict_SecondCallIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	seedConflict(t, ctx, repo, status)

	remote.EXPECT().UpsertNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.Note) (models.RemoteNote, error) {
			return remoteRevision(note, engineNow), nil
		})

	require.NoError(t, engine.ResolveConflict(ctx, "note-1", false))

	// No remote expectation registered for the second call: it must not
	// touch the note or the network.
	require.NoError(t, engine.ResolveConflict(ctx, "note-1", false))

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ConflictVersion, "ConflictVersion increments exactly once")
}

func TestSyncEngine_ResolveConflict_ConcurrentCallsResolveOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, repo, _, remote, status := newTestEngine(t, ctrl, 10)
	ctx := context.Background()

	seedConflict(t, ctx, repo, status)

	// Exactly one of the racing calls may reach the network.
	remote.EXPECT().UpsertNote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.Note) (models.RemoteNote, error) {
			return remoteRevision(note, engineNow), nil
		}).Times(1)

	// Park both callers on the note lock before either can look the
	// conflict up, then release and let them through back to back.
	held := engine.noteLocks.lock("note-1")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, engine.ResolveConflict(ctx, "note-1", true))
		}()
	}

	time.Sleep(50 * time.Millisecond)
	held.Unlock()
	wg.Wait()

	stored, err := repo.GetNoteByID(ctx, "note-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ConflictVersion, "ConflictVersion increments exactly once")
	assert.Empty(t, status.Snapshot().Conflicts)
}
