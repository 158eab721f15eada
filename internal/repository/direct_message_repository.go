package repository

import (
	"context"
	"time"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
)

// DirectMessageRepositoryImpl adapts the generated-style Queries to
// domain.DirectMessageRepository.
type DirectMessageRepositoryImpl struct {
	q *Queries
}

func NewDirectMessageRepository(q *Queries) *DirectMessageRepositoryImpl {
	return &DirectMessageRepositoryImpl{q: q}
}

var _ domain.DirectMessageRepository = (*DirectMessageRepositoryImpl)(nil)

func (r *DirectMessageRepositoryImpl) Create(ctx context.Context, msg *domain.DirectMessage) error {
	row, err := r.q.CreateDirectMessage(ctx, CreateDirectMessageParams{
		ID:              uuidToPgtype(msg.ID.UUID()),
		SenderUserID:    msg.SenderUserID,
		RecipientUserID: msg.RecipientUserID,
		Body:            msg.Body,
		CreatedAt:       timeToPgtype(msg.CreatedAt),
	})
	if err != nil {
		return mapError(err)
	}
	*msg = *toDirectMessage(row)
	return nil
}

func (r *DirectMessageRepositoryImpl) ListForRecipient(ctx context.Context, recipientUserID int64, limit int) ([]*domain.DirectMessage, error) {
	rows, err := r.q.ListDirectMessagesForRecipient(ctx, recipientUserID, limit)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.DirectMessage, len(rows))
	for i, row := range rows {
		out[i] = toDirectMessage(row)
	}
	return out, nil
}

func (r *DirectMessageRepositoryImpl) MarkDelivered(ctx context.Context, id domain.DirectMessageID) error {
	now := timeToPgtype(time.Now().UTC())
	if err := r.q.MarkDirectMessageDelivered(ctx, uuidToPgtype(id.UUID()), now); err != nil {
		return mapError(err)
	}
	return nil
}

func toDirectMessage(row DirectMessageRow) *domain.DirectMessage {
	return &domain.DirectMessage{
		ID:              domain.DirectMessageID(pgtypeToUUID(row.ID)),
		SenderUserID:    row.SenderUserID,
		RecipientUserID: row.RecipientUserID,
		Body:            row.Body,
		CreatedAt:       pgtypeToTime(row.CreatedAt),
		DeliveredAt:     pgtypeToTimePtr(row.DeliveredAt),
	}
}
