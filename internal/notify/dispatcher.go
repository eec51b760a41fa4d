package notify

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/types"
)

// Dispatcher sends notifications from background goroutines so callers never
// wait on delivery. At most concurrency sends run at once.
type Dispatcher struct {
	sender  Sender
	sem     *semaphore.Weighted
	timeout time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher. Each send, including the wait for a free
// slot, is bounded by timeout.
func NewDispatcher(sender Sender, concurrency int, timeout time.Duration) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Dispatcher{
		sender:  sender,
		sem:     semaphore.NewWeighted(int64(concurrency)),
		timeout: timeout,
	}
}

// ApplicationSubmitted implements server.Notifier. It returns immediately;
// delivery errors are logged and counted.
func (d *Dispatcher) ApplicationSubmitted(ctx context.Context, event types.ApplicationEvent) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		log.WithField("application_id", event.Application.ID).Warn("dispatcher closed, notification dropped")
		metrics.NotifyFailed("closed")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	// The request context is cancelled once the response is written.
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()

		if err := d.sem.Acquire(ctx, 1); err != nil {
			log.WithError(err).WithField("application_id", event.Application.ID).Warn("no notification slot before deadline")
			metrics.NotifyFailed("send")
			return
		}
		defer d.sem.Release(1)

		if err := Deliver(ctx, d.sender, event); err != nil {
			log.WithError(err).WithField("application_id", event.Application.ID).Warn("notification failed")
			metrics.NotifyFailed("send")
			return
		}
		metrics.NotifySent()
	}()
}

// Close stops accepting events and waits for in-flight sends or ctx expiry.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
