// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/mock"
	"github.com/oyugijr/EchoTask/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingEngine captures the revisions routed through ApplyRemote.
type recordingEngine struct {
	mu       sync.Mutex
	applied  []models.RemoteNote
	applyErr error
	runSyncs atomic.Int64
}

func (r *recordingEngine) RunSync(_ context.Context) error {
	r.runSyncs.Add(1)
	return nil
}

func (r *recordingEngine) ApplyRemote(_ context.Context, remote models.RemoteNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, remote)
	return r.applyErr
}

func (r *recordingEngine) ResolveConflict(_ context.Context, _ string, _ bool) error { return nil }

func (r *recordingEngine) appliedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.applied))
	for _, n := range r.applied {
		ids = append(ids, n.ID)
	}
	return ids
}

func newTestListener(t *testing.T, ctrl *gomock.Controller) (RealtimeListener, *recordingEngine, *mock.MockRemoteStore) {
	t.Helper()

	engine := &recordingEngine{}
	remote := mock.NewMockRemoteStore(ctrl)
	repo := mock.NewMockLocalNoteRepository(ctrl)
	repo.EXPECT().CountDirty(gomock.Any()).Return(0, nil).AnyTimes()
	status := NewStatusService(repo, logger.Nop())

	return NewRealtimeListener(remote, engine, status, logger.Nop()), engine, remote
}

// subscribeFeed returns a Subscribe stub that closes feed once ctx is
// cancelled, matching the [adapter.RemoteStore] contract the listener
// relies on to shut down.
func subscribeFeed(feed chan models.RemoteNote) func(context.Context) (<-chan models.RemoteNote, error) {
	return func(ctx context.Context) (<-chan models.RemoteNote, error) {
		go func() {
			<-ctx.Done()
			close(feed)
		}()
		return feed, nil
	}
}

// ── Start / feed handling ────────────────────────────────────────────────────

func TestRealtimeListener_AppliesIncomingRevisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listener, engine, remote := newTestListener(t, ctrl)

	feed := make(chan models.RemoteNote, 2)
	feed <- models.RemoteNote{Note: models.Note{ID: "note-1"}}
	feed <- models.RemoteNote{Note: models.Note{ID: "note-2"}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remote.EXPECT().Subscribe(gomock.Any()).DoAndReturn(subscribeFeed(feed))

	listener.Start(ctx)
	defer listener.Stop()

	require.Eventually(t, func() bool {
		return len(engine.appliedIDs()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"note-1", "note-2"}, engine.appliedIDs())
}

func TestRealtimeListener_ResubscribesAfterDrop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listener, engine, remote := newTestListener(t, ctrl)

	first := make(chan models.RemoteNote, 1)
	first <- models.RemoteNote{Note: models.Note{ID: "before-drop"}}
	close(first)

	second := make(chan models.RemoteNote, 1)
	second <- models.RemoteNote{Note: models.Note{ID: "after-drop"}}

	gomock.InOrder(
		remote.EXPECT().Subscribe(gomock.Any()).Return((<-chan models.RemoteNote)(first), nil),
		remote.EXPECT().Subscribe(gomock.Any()).DoAndReturn(subscribeFeed(second)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener.Start(ctx)
	defer listener.Stop()

	require.Eventually(t, func() bool {
		ids := engine.appliedIDs()
		return len(ids) == 2 && ids[1] == "after-drop"
	}, 5*time.Second, 10*time.Millisecond)

	// The drop triggers a recovery pass for anything the feed missed.
	assert.GreaterOrEqual(t, engine.runSyncs.Load(), int64(1))
}

func TestRealtimeListener_RetriesFailedSubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listener, engine, remote := newTestListener(t, ctrl)

	feed := make(chan models.RemoteNote, 1)
	feed <- models.RemoteNote{Note: models.Note{ID: "note-1"}}

	gomock.InOrder(
		remote.EXPECT().Subscribe(gomock.Any()).Return(nil, errors.New("connection refused")),
		remote.EXPECT().Subscribe(gomock.Any()).DoAndReturn(subscribeFeed(feed)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener.Start(ctx)
	defer listener.Stop()

	require.Eventually(t, func() bool {
		return len(engine.appliedIDs()) == 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRealtimeListener_ApplyErrorDoesNotStopFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listener, engine, remote := newTestListener(t, ctrl)
	engine.applyErr = assert.AnError

	feed := make(chan models.RemoteNote, 2)
	feed <- models.RemoteNote{Note: models.Note{ID: "note-1"}}
	feed <- models.RemoteNote{Note: models.Note{ID: "note-2"}}

	remote.EXPECT().Subscribe(gomock.Any()).DoAndReturn(subscribeFeed(feed))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener.Start(ctx)
	defer listener.Stop()

	require.Eventually(t, func() bool {
		return len(engine.appliedIDs()) == 2
	}, time.Second, 5*time.Millisecond)
}

// ── Stop ─────────────────────────────────────────────────────────────────────

func TestRealtimeListener_Stop_BeforeStart_NoPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listener, _, _ := newTestListener(t, ctrl)
	assert.NotPanics(t, func() { listener.Stop() })
}

func TestRealtimeListener_Stop_ClosesPromptly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	listener, _, remote := newTestListener(t, ctrl)

	feed := make(chan models.RemoteNote)
	remote.EXPECT().Subscribe(gomock.Any()).Return((<-chan models.RemoteNote)(feed), nil).AnyTimes()

	listener.Start(context.Background())
	time.Sleep(20 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		listener.Stop()
		close(done)
	}()

	// Cancelling the subscription closes the feed; simulate the adapter
	// honouring that contract.
	close(feed)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung")
	}
}
