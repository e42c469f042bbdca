package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oyugijr/EchoTask/internal/adapter"
	"github.com/oyugijr/EchoTask/internal/logger"
)

const (
	resubscribeBaseDelay = time.Second
	resubscribeMaxDelay  = 30 * time.Second
)

type realtimeListener struct {
	remote adapter.RemoteStore
	engine SyncEngine
	status StatusService
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRealtimeListener constructs the listener feeding the realtime change
// feed through the engine's merge path. The channel is advisory: anything
// missed during a disconnect is recovered by the periodic pass.
func NewRealtimeListener(
	remote adapter.RemoteStore,
	engine SyncEngine,
	status StatusService,
	logger *logger.Logger,
) RealtimeListener {
	return &realtimeListener{
		remote: remote,
		engine: engine,
		status: status,
		logger: logger,
	}
}

// Start implements RealtimeListener. It stops a previously running listener
// first, then keeps a subscription open until ctx is cancelled or Stop is
// called, re-subscribing with backoff after every drop.
func (l *realtimeListener) Start(ctx context.Context) {
	l.Stop()

	l.mu.Lock()
	listenCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(1)
	l.mu.Unlock()

	listenCtx = l.logger.WithContext(listenCtx)

	go func() {
		defer l.wg.Done()
		l.listen(listenCtx)
	}()
}

// Stop implements RealtimeListener. Safe to call when the listener is not
// running.
func (l *realtimeListener) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}

func (l *realtimeListener) listen(ctx context.Context) {
	log := logger.FromContext(ctx)
	delay := resubscribeBaseDelay

	for {
		if ctx.Err() != nil {
			return
		}

		feed, err := l.remote.Subscribe(ctx)
		if err != nil {
			log.Warn().
				Err(err).
				Str("func", "realtimeListener.listen").
				Dur("retry_in", delay).
				Msg("realtime subscribe failed")

			if !sleepCtx(ctx, delay) {
				return
			}
			delay = nextDelay(delay)
			continue
		}

		delay = resubscribeBaseDelay
		log.Info().
			Str("func", "realtimeListener.listen").
			Msg("realtime feed connected")

		for remote := range feed {
			if err := l.engine.ApplyRemote(ctx, remote); err != nil {
				log.Warn().
					Err(err).
					Str("func", "realtimeListener.listen").
					Str("note_id", remote.ID).
					Msg("failed to apply realtime revision")
				continue
			}
			l.status.RecountPending(ctx)
		}

		if ctx.Err() != nil {
			return
		}

		// The connection dropped. A full pass after reconnecting covers
		// whatever the feed missed while it was down.
		log.Info().
			Str("func", "realtimeListener.listen").
			Msg("realtime feed dropped, resyncing")

		if err := l.engine.RunSync(ctx); err != nil && !errors.Is(err, ErrSyncAlreadyRunning) {
			log.Warn().
				Err(err).
				Str("func", "realtimeListener.listen").
				Msg("recovery sync pass failed")
		}

		if !sleepCtx(ctx, delay) {
			return
		}
		delay = nextDelay(delay)
	}
}

// sleepCtx waits for d, returning false when ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func nextDelay(d time.Duration) time.Duration {
	d *= 2
	if d > resubscribeMaxDelay {
		return resubscribeMaxDelay
	}
	return d
}
