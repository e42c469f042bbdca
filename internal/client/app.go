package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/oyugijr/EchoTask/internal/config"
	"github.com/oyugijr/EchoTask/internal/logger"
	"github.com/oyugijr/EchoTask/internal/service"
	"github.com/oyugijr/EchoTask/internal/workers"
	"github.com/oyugijr/EchoTask/models"
)

var errNoServicesProvided = errors.New("no services are provided")

// App is the client agent: it owns the background sync workers and exposes
// the note and status operations an embedding UI needs.
type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, syncCfg config.ClientSync, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errNoServicesProvided
	}

	// The sync job starts first and stops last: the realtime listener falls
	// back to a full pass when its feed drops, so the job must outlive it.
	w := workers.NewWorkers(
		workers.Func(func(ctx context.Context) { services.SyncJob.Start(ctx, syncCfg.Interval) }, services.SyncJob.Stop),
		workers.Func(services.Listener.Start, services.Listener.Stop),
	)

	return &App{
		services: services,
		workers:  w,
		logger:   logger,
	}, nil
}

// Run starts the agent and blocks until a termination signal arrives. The
// first sync pass runs inline so the agent comes up with fresh state before
// the periodic cadence takes over.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.ensureRegistered(ctx)

	if err := a.services.Engine.RunSync(ctx); err != nil && !errors.Is(err, service.ErrSyncAlreadyRunning) {
		a.logger.Warn().Err(err).Msg("initial sync pass failed")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("client agent shutting down")

	return nil
}

// registrationRetryInterval paces token registration attempts when the
// server is unreachable on first launch.
const registrationRetryInterval = 30 * time.Second

// ensureRegistered obtains the device bearer token, registering with the
// remote store on first run. When the server is unreachable the agent keeps
// running offline and a background loop retries until registration succeeds;
// edits queue locally in the meantime.
func (a *App) ensureRegistered(ctx context.Context) {
	_, err := a.services.Identity.EnsureToken(ctx)
	if err == nil {
		return
	}
	a.logger.Warn().Err(err).Msg("device registration deferred, starting offline")

	go func() {
		ticker := time.NewTicker(registrationRetryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := a.services.Identity.EnsureToken(ctx); err == nil {
					a.logger.Info().Msg("device registered")
					a.services.SyncJob.Trigger()
					return
				}
			}
		}
	}()
}

// ── UI facade ──

// Notes returns all live local notes.
func (a *App) Notes(ctx context.Context) ([]models.Note, error) {
	return a.services.NoteService.GetAll(ctx)
}

// Note returns a single note by ID, including tombstones.
func (a *App) Note(ctx context.Context, noteID string) (models.Note, error) {
	return a.services.NoteService.Get(ctx, noteID)
}

// CreateNote persists a new note and nudges the sync job.
func (a *App) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	return a.services.NoteService.Create(ctx, note)
}

// UpdateNote applies a partial mutation to an existing note.
func (a *App) UpdateNote(ctx context.Context, noteID string, update models.NoteUpdate) (models.Note, error) {
	return a.services.NoteService.Update(ctx, noteID, update)
}

// DeleteNote soft-deletes the note; the tombstone syncs like any edit.
func (a *App) DeleteNote(ctx context.Context, noteID string) error {
	return a.services.NoteService.Delete(ctx, noteID)
}

// Status returns a snapshot of the current sync status.
func (a *App) Status() models.SyncStatus {
	return a.services.Status.Snapshot()
}

// StatusFeed returns a channel receiving a status copy after every change.
func (a *App) StatusFeed() <-chan models.SyncStatus {
	return a.services.Status.Subscribe()
}

// SyncNow requests an immediate sync pass without blocking.
func (a *App) SyncNow() {
	a.services.SyncJob.Trigger()
}

// ResolveConflict applies the user's choice for an open conflict.
func (a *App) ResolveConflict(ctx context.Context, noteID string, useLocal bool) error {
	return a.services.Engine.ResolveConflict(ctx, noteID, useLocal)
}
