package notify

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedSender blocks every send until release is closed.
type gatedSender struct {
	release  chan struct{}
	inFlight atomic.Int32
	peak     atomic.Int32
	done     atomic.Int32
}

func newGatedSender() *gatedSender {
	return &gatedSender{release: make(chan struct{})}
}

func (s *gatedSender) Send(ctx context.Context, _ Message) error {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}
	select {
	case <-s.release:
		s.done.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func closeDispatcher(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
}

func TestDispatcher_DoesNotBlockCaller(t *testing.T) {
	sender := newGatedSender()
	d := NewDispatcher(sender, 1, time.Minute)

	returned := make(chan struct{})
	go func() {
		d.ApplicationSubmitted(context.Background(), testEvent())
		d.ApplicationSubmitted(context.Background(), testEvent())
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("ApplicationSubmitted blocked on delivery")
	}

	close(sender.release)
	closeDispatcher(t, d)
	assert.Equal(t, int32(2), sender.done.Load())
}

func TestDispatcher_DetachedFromRequestContext(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 2, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.ApplicationSubmitted(ctx, testEvent())
	closeDispatcher(t, d)

	require.Equal(t, 1, sender.count())
	assert.NoError(t, sender.ctxErrs[0])
}

func TestDispatcher_BoundsConcurrency(t *testing.T) {
	sender := newGatedSender()
	d := NewDispatcher(sender, 2, time.Minute)

	for i := 0; i < 6; i++ {
		d.ApplicationSubmitted(context.Background(), testEvent())
	}

	require.Eventually(t, func() bool { return sender.inFlight.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(sender.release)
	closeDispatcher(t, d)

	assert.Equal(t, int32(2), sender.peak.Load())
	assert.Equal(t, int32(6), sender.done.Load())
}

func TestDispatcher_SwallowsSenderErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("mailbox unavailable")}
	d := NewDispatcher(sender, 1, time.Minute)

	d.ApplicationSubmitted(context.Background(), testEvent())
	closeDispatcher(t, d)

	assert.Equal(t, 1, sender.count())
}

func TestDispatcher_SendTimeout(t *testing.T) {
	var (
		mu     sync.Mutex
		gotErr error
	)
	sender := senderFunc(func(ctx context.Context, _ Message) error {
		<-ctx.Done()
		mu.Lock()
		gotErr = ctx.Err()
		mu.Unlock()
		return ctx.Err()
	})
	d := NewDispatcher(sender, 1, 20*time.Millisecond)

	d.ApplicationSubmitted(context.Background(), testEvent())
	closeDispatcher(t, d)

	mu.Lock()
	defer mu.Unlock()
	assert.ErrorIs(t, gotErr, context.DeadlineExceeded)
}

func TestDispatcher_CloseHonorsDeadline(t *testing.T) {
	sender := newGatedSender()
	defer close(sender.release)
	d := NewDispatcher(sender, 1, time.Minute)

	d.ApplicationSubmitted(context.Background(), testEvent())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

func TestDispatcher_DropsAfterClose(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, 1, time.Minute)
	closeDispatcher(t, d)

	d.ApplicationSubmitted(context.Background(), testEvent())
	closeDispatcher(t, d)

	assert.Equal(t, 0, sender.count())
}

type senderFunc func(ctx context.Context, msg Message) error

func (f senderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }
