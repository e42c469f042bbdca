package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
)

type clientSyncJob struct {
	engine SyncEngine
	logger *logger.Logger

	// trigger carries out-of-band sync requests. Capacity 1: a nudge while
	// one is already queued coalesces into it.
	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that runs a full sync pass on a
// ticker and on demand via Trigger. The job is idle until Start is called.
func NewClientSyncJob(engine SyncEngine, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		engine:  engine,
		logger:  logger,
		trigger: make(chan struct{}, 1),
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that runs a pass every interval and after
// every Trigger. If interval is zero or negative it defaults to 5 minutes.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	log := j.logger
	jobCtx = log.WithContext(jobCtx)

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runPass(jobCtx)
			case <-j.trigger:
				j.runPass(jobCtx)
			}
		}
	}()
}

// Trigger implements ClientSyncJob. It never blocks: if a request is already
// queued, the new one merges into it.
func (j *clientSyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop implements ClientSyncJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientSyncJob) runPass(ctx context.Context) {
	err := j.engine.RunSync(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncAlreadyRunning):
		// A pass is in flight; the ticker will come around again.
	default:
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "clientSyncJob.runPass").
			Msg("sync pass failed")
	}
}
