package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/metrics"
	"github.com/blazern/recipe-calculator-server-sub000/internal/notify"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
	"github.com/blazern/recipe-calculator-server-sub000/internal/repository"
)

// DirectMessageService relays messages between two paired devices.
type DirectMessageService struct {
	repos  *repository.RepositoryContainer
	push   notify.PushSender
	logger *logger.Logger
}

func NewDirectMessageService(repos *repository.RepositoryContainer, push notify.PushSender, log *logger.Logger) *DirectMessageService {
	if log == nil {
		log = logger.NewNop()
	}
	return &DirectMessageService{repos: repos, push: push, logger: log.Named("direct_message_service")}
}

func (s *DirectMessageService) Send(ctx context.Context, senderUserID, recipientUserID int64, body string) (*domain.DirectMessage, error) {
	msg := domain.NewDirectMessage(senderUserID, recipientUserID, body)
	if err := s.repos.DirectMessages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create direct message: %w", err)
	}
	metrics.DirectMessagesSentTotal.Inc()

	if err := s.push.Send(ctx, recipientUserID, "New message", body); err != nil {
		s.logger.WithContext(ctx).Warn("push notification failed", zap.Error(err))
	}

	return msg, nil
}

func (s *DirectMessageService) Inbox(ctx context.Context, recipientUserID int64, limit int) ([]*domain.DirectMessage, error) {
	return s.repos.DirectMessages.ListForRecipient(ctx, recipientUserID, limit)
}

func (s *DirectMessageService) MarkDelivered(ctx context.Context, id domain.DirectMessageID) error {
	return s.repos.DirectMessages.MarkDelivered(ctx, id)
}
