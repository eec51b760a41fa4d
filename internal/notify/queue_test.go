package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/types"
)

type fakeEnqueuer struct {
	tasks       []*asynq.Task
	hadDeadline bool
	err         error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	_, f.hadDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func TestQueue_EnqueuesEvent(t *testing.T) {
	client := &fakeEnqueuer{}
	q := NewQueue(client, 10*time.Second)
	event := testEvent()

	q.ApplicationSubmitted(context.Background(), event)

	require.Len(t, client.tasks, 1)
	assert.True(t, client.hadDeadline)
	assert.Equal(t, TypeApplicationNotify, client.tasks[0].Type())

	var got types.ApplicationEvent
	require.NoError(t, json.Unmarshal(client.tasks[0].Payload(), &got))
	assert.Equal(t, event.Application.ID, got.Application.ID)
	assert.Equal(t, event.Applicant.Email, got.Applicant.Email)
	assert.Equal(t, event.Job.Title, got.Job.Title)
}

func TestQueue_EnqueueFailureIsSwallowed(t *testing.T) {
	client := &fakeEnqueuer{err: errors.New("redis: connection refused")}
	q := NewQueue(client, 0)

	assert.NotPanics(t, func() {
		q.ApplicationSubmitted(context.Background(), testEvent())
	})
	assert.Empty(t, client.tasks)
}

func TestTaskHandler_ProcessTask(t *testing.T) {
	sender := &recordingSender{}
	h := NewTaskHandler(sender)

	task, err := NewApplicationNotifyTask(testEvent())
	require.NoError(t, err)
	require.NoError(t, h.ProcessTask(context.Background(), task))

	require.Equal(t, 1, sender.count())
	assert.Equal(t, "Application Received - Senior Software Engineer", sender.msgs[0].Subject)
}

func TestTaskHandler_Errors(t *testing.T) {
	noEmail := testEvent()
	noEmail.Applicant.Email = ""
	noEmailTask, err := NewApplicationNotifyTask(noEmail)
	require.NoError(t, err)

	okTask, err := NewApplicationNotifyTask(testEvent())
	require.NoError(t, err)

	tests := []struct {
		name      string
		task      *asynq.Task
		sendErr   error
		skipRetry bool
	}{
		{"bad payload", asynq.NewTask(TypeApplicationNotify, []byte("{")), nil, true},
		{"no recipient", noEmailTask, nil, true},
		{"sender failure is retried", okTask, errors.New("quota exceeded"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTaskHandler(&recordingSender{err: tt.sendErr})
			err := h.ProcessTask(context.Background(), tt.task)
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}
