package workers

import "context"

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start launches every worker in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse order, so later workers never observe
// an earlier dependency already gone.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// Func adapts a pair of start/stop functions into a Worker. It lets callers
// register workers whose Start signature carries extra parameters without
// defining a new type.
func Func(start func(ctx context.Context), stop func()) Worker {
	return &funcWorker{start: start, stop: stop}
}

type funcWorker struct {
	start func(ctx context.Context)
	stop  func()
}

func (f *funcWorker) Start(ctx context.Context) {
	if f.start != nil {
		f.start(ctx)
	}
}

func (f *funcWorker) Stop() {
	if f.stop != nil {
		f.stop()
	}
}
