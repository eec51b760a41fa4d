package notify

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jonathan/jobboard/internal/types"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender logs messages instead of delivering them. It is used when no mail
// backend is configured.
type LogSender struct{}

// Send implements Sender.
func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info("notification (log only)")
	return nil
}

// Deliver renders the confirmation for event and hands it to sender.
func Deliver(ctx context.Context, sender Sender, event types.ApplicationEvent) error {
	msg, err := BuildApplicationReceived(event)
	if err != nil {
		return err
	}
	if err := sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send notification to %s: %w", msg.To, err)
	}
	return nil
}
