package notify

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/types"
)

func testEvent() types.ApplicationEvent {
	return types.ApplicationEvent{
		Application: types.Application{ID: uuid.New(), Status: types.StatusPending},
		Job:         types.Job{ID: uuid.New(), Title: "Senior Software Engineer", Company: "TechCorp Solutions"},
		Applicant:   types.User{ID: uuid.New(), Name: "Ann Lee", Email: "ann@example.com"},
	}
}

// recordingSender records every message and the context error seen at send time.
type recordingSender struct {
	mu      sync.Mutex
	msgs    []Message
	ctxErrs []error
	err     error
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}
