package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// DirectMessageRow mirrors one row of the direct_messages table.
type DirectMessageRow struct {
	ID              pgtype.UUID
	SenderUserID    int64
	RecipientUserID int64
	Body            string
	CreatedAt       pgtype.Timestamptz
	DeliveredAt     pgtype.Timestamptz
}

type CreateDirectMessageParams struct {
	ID              pgtype.UUID
	SenderUserID    int64
	RecipientUserID int64
	Body            string
	CreatedAt       pgtype.Timestamptz
}

func (q *Queries) CreateDirectMessage(ctx context.Context, arg CreateDirectMessageParams) (DirectMessageRow, error) {
	const query = `
		INSERT INTO direct_messages (id, sender_user_id, recipient_user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sender_user_id, recipient_user_id, body, created_at, delivered_at`
	var row DirectMessageRow
	err := q.db.QueryRow(ctx, query, arg.ID, arg.SenderUserID, arg.RecipientUserID, arg.Body, arg.CreatedAt).
		Scan(&row.ID, &row.SenderUserID, &row.RecipientUserID, &row.Body, &row.CreatedAt, &row.DeliveredAt)
	return row, err
}

func (q *Queries) ListDirectMessagesForRecipient(ctx context.Context, recipientUserID int64, limit int) ([]DirectMessageRow, error) {
	const query = `
		SELECT id, sender_user_id, recipient_user_id, body, created_at, delivered_at
		FROM direct_messages
		WHERE recipient_user_id = $1
		ORDER BY created_at ASC
		LIMIT $2`
	rows, err := q.db.Query(ctx, query, recipientUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DirectMessageRow
	for rows.Next() {
		var row DirectMessageRow
		if err := rows.Scan(&row.ID, &row.SenderUserID, &row.RecipientUserID, &row.Body, &row.CreatedAt, &row.DeliveredAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (q *Queries) MarkDirectMessageDelivered(ctx context.Context, id pgtype.UUID, deliveredAt pgtype.Timestamptz) error {
	const query = `UPDATE direct_messages SET delivered_at = $2 WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id, deliveredAt)
	return err
}
