package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/types"
)

// TypeApplicationNotify is the asynq task type shared by producer and worker.
const TypeApplicationNotify = "application:notify"

const (
	defaultEnqueueTimeout = 2 * time.Second
	taskMaxRetry          = 5
)

// NewApplicationNotifyTask wraps event in an asynq task.
func NewApplicationNotifyTask(event types.ApplicationEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeApplicationNotify, payload), nil
}

// Enqueuer is the subset of *asynq.Client the queue needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Queue hands notifications to a worker process through Redis.
type Queue struct {
	client      Enqueuer
	timeout     time.Duration
	sendTimeout time.Duration
}

// NewQueue creates a queue notifier. sendTimeout bounds each delivery attempt
// in the worker.
func NewQueue(client Enqueuer, sendTimeout time.Duration) *Queue {
	return &Queue{client: client, timeout: defaultEnqueueTimeout, sendTimeout: sendTimeout}
}

// ApplicationSubmitted implements server.Notifier. Enqueue failures are
// logged and counted, never returned.
func (q *Queue) ApplicationSubmitted(ctx context.Context, event types.ApplicationEvent) {
	logger := log.WithField("application_id", event.Application.ID)

	task, err := NewApplicationNotifyTask(event)
	if err != nil {
		logger.WithError(err).Error("failed to encode notification task")
		metrics.NotifyFailed("enqueue")
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
	defer cancel()

	opts := []asynq.Option{asynq.MaxRetry(taskMaxRetry)}
	if q.sendTimeout > 0 {
		opts = append(opts, asynq.Timeout(q.sendTimeout))
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		logger.WithError(err).Warn("failed to enqueue notification")
		metrics.NotifyFailed("enqueue")
		return
	}
	logger.WithField("task_id", info.ID).Debug("notification enqueued")
}

// TaskHandler consumes application:notify tasks.
type TaskHandler struct {
	sender Sender
}

// NewTaskHandler creates a handler that delivers through sender.
func NewTaskHandler(sender Sender) *TaskHandler {
	return &TaskHandler{sender: sender}
}

// ProcessTask implements asynq.Handler. Undecodable payloads and events
// without a recipient are not retried.
func (h *TaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var event types.ApplicationEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		metrics.NotifyFailed("decode")
		return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}

	if err := Deliver(ctx, h.sender, event); err != nil {
		metrics.NotifyFailed("send")
		if errors.Is(err, ErrNoRecipient) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	metrics.NotifySent()
	log.WithField("application_id", event.Application.ID).Info("notification sent")
	return nil
}
