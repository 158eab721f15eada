package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/metrics"
	"github.com/blazern/recipe-calculator-server-sub000/internal/notify"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
	"github.com/blazern/recipe-calculator-server-sub000/internal/pkg/logger"
	"github.com/blazern/recipe-calculator-server-sub000/internal/repository"
)

var (
	ErrTargetUserNotFound = errors.New("target user for pairing code not found")
)

const pairingRequestTTL = 5 * time.Minute

// PairingService fronts the pairing-code allocator and the pairing-request
// state machine it feeds into.
type PairingService struct {
	repos     *repository.RepositoryContainer
	allocator *pairing.Allocator
	conn      pairing.Connection
	push      notify.PushSender
	family    string
	logger    *logger.Logger
}

func NewPairingService(
	repos *repository.RepositoryContainer,
	allocator *pairing.Allocator,
	conn pairing.Connection,
	push notify.PushSender,
	family string,
	log *logger.Logger,
) *PairingService {
	if log == nil {
		log = logger.NewNop()
	}
	return &PairingService{repos: repos, allocator: allocator, conn: conn, push: push, family: family, logger: log.Named("pairing_service")}
}

// IssueCode borrows a fresh pairing code for the given user.
func (s *PairingService) IssueCode(ctx context.Context, userID int64) (string, error) {
	start := time.Now()

	code, err := s.allocator.BorrowPairingCode(ctx, pairing.UserRef(userID), s.conn)

	outcome := "ok"
	switch {
	case errors.Is(err, pairing.ErrOutOfPairingCodes):
		outcome = "out_of_codes"
	case err != nil:
		outcome = "error"
	}
	metrics.CodesBorrowedTotal.WithLabelValues(outcome).Inc()
	metrics.CodeBorrowDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.WithContext(ctx).Error("pairing code borrow failed",
			zap.Int64("user_id", userID), zap.Error(err))
		return "", err
	}
	return code, nil
}

// RequestPairingByCode resolves a typed-in pairing code to the user it
// currently belongs to, then opens a pending pairing request between the
// two devices. The code's val/family pair never carries a foreign key of
// its own — this is the one place a weak reference gets resolved into a
// strong one.
func (s *PairingService) RequestPairingByCode(ctx context.Context, requesterUserID int64, code int32) (*domain.PairingRequest, error) {
	taken, err := s.repos.TakenCodes.SelectByValue(ctx, code, s.family)
	if err != nil {
		return nil, fmt.Errorf("resolve pairing code: %w", err)
	}
	if taken == nil {
		return nil, domain.ErrPairingCodeUnknown
	}
	return s.RequestPairingByUser(ctx, requesterUserID, taken.AppUserID)
}

// RequestPairingByUser is called by the requester's device once it already
// knows the target device's user id: it opens a pending pairing request
// between the two.
func (s *PairingService) RequestPairingByUser(ctx context.Context, requesterUserID int64, targetUserID int64) (*domain.PairingRequest, error) {
	if requesterUserID == targetUserID {
		return nil, domain.ErrCannotPairWithSelf
	}

	if _, err := s.repos.Users.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTargetUserNotFound
		}
		return nil, fmt.Errorf("look up target user: %w", err)
	}

	req := domain.NewPairingRequest(requesterUserID, targetUserID, pairingRequestTTL)
	if err := s.repos.PairingRequests.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("create pairing request: %w", err)
	}

	if err := s.push.Send(ctx, targetUserID, "New pairing request", "Someone wants to pair with you"); err != nil {
		s.logger.WithContext(ctx).Warn("push notification failed", zap.Error(err))
	}

	return req, nil
}

// RequestsForUser lists the pairing requests that have already resolved to
// PAIRED for the given user, i.e. the devices it is now sharing with.
func (s *PairingService) RequestsForUser(ctx context.Context, userID int64) ([]*domain.PairingRequest, error) {
	return s.repos.PairingRequests.ListPairedForUser(ctx, userID)
}

// Confirm marks a pending request PAIRED once the target device accepts it.
func (s *PairingService) Confirm(ctx context.Context, id domain.PairingRequestID) (*domain.PairingRequest, error) {
	req, err := s.repos.PairingRequests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.IsExpired() {
		return nil, domain.ErrPairingRequestExpired
	}
	if err := req.Pair(); err != nil {
		return nil, err
	}
	if err := s.repos.PairingRequests.Update(ctx, req); err != nil {
		return nil, fmt.Errorf("persist pairing confirmation: %w", err)
	}

	if err := s.push.Send(ctx, req.RequesterUserID, "Pairing confirmed", "Your pairing request was accepted"); err != nil {
		s.logger.WithContext(ctx).Warn("push notification failed", zap.Error(err))
	}

	return req, nil
}

// ExpirePending sweeps pending requests whose deadline has passed, marking
// each EXPIRED. It is the body the background worker calls on a timer.
func (s *PairingService) ExpirePending(ctx context.Context, batchSize int) (int, error) {
	expired, err := s.repos.PairingRequests.ListExpiredPending(ctx, time.Now().UTC().Unix(), batchSize)
	if err != nil {
		return 0, fmt.Errorf("list expired pairing requests: %w", err)
	}

	count := 0
	for _, req := range expired {
		if err := req.Expire(); err != nil {
			s.logger.WithContext(ctx).Warn("cannot expire pairing request",
				zap.String("request_id", req.ID.String()), zap.Error(err))
			continue
		}
		if err := s.repos.PairingRequests.Update(ctx, req); err != nil {
			s.logger.WithContext(ctx).Error("failed to persist expiry",
				zap.String("request_id", req.ID.String()), zap.Error(err))
			continue
		}
		count++
	}

	if count > 0 {
		metrics.PairingRequestsExpiredTotal.Add(float64(count))
	}
	return count, nil
}
