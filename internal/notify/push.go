// Package notify delivers push notifications to a user's device when a
// pairing request resolves or a direct message arrives.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
)

// PushSender delivers a single push notification to a user.
type PushSender interface {
	Send(ctx context.Context, recipientUserID int64, title, body string) error
}

// LoggingPushSender logs the notification instead of dispatching it to a
// push provider. No push SDK ships in this module's dependency set, so this
// stands in as the delivery boundary a real provider client would occupy.
type LoggingPushSender struct {
	log *logger.Logger
}

func NewLoggingPushSender(log *logger.Logger) *LoggingPushSender {
	if log == nil {
		log = logger.NewNop()
	}
	return &LoggingPushSender{log: log.Named("push")}
}

func (s *LoggingPushSender) Send(ctx context.Context, recipientUserID int64, title, body string) error {
	s.log.WithContext(ctx).Info("push notification",
		zap.Int64("recipient_user_id", recipientUserID),
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}
