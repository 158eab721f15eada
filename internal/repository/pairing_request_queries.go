package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PairingRequestRow mirrors one row of the pairing_requests table.
type PairingRequestRow struct {
	ID              pgtype.UUID
	RequesterUserID int64
	TargetUserID    int64
	State           string
	CreatedAt       pgtype.Timestamptz
	ExpiresAt       pgtype.Timestamptz
	ResolvedAt      pgtype.Timestamptz
}

type CreatePairingRequestParams struct {
	ID              pgtype.UUID
	RequesterUserID int64
	TargetUserID    int64
	State           string
	CreatedAt       pgtype.Timestamptz
	ExpiresAt       pgtype.Timestamptz
}

func (q *Queries) CreatePairingRequest(ctx context.Context, arg CreatePairingRequestParams) (PairingRequestRow, error) {
	const query = `
		INSERT INTO pairing_requests (id, requester_user_id, target_user_id, state, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, requester_user_id, target_user_id, state, created_at, expires_at, resolved_at`
	var row PairingRequestRow
	err := q.db.QueryRow(ctx, query, arg.ID, arg.RequesterUserID, arg.TargetUserID, arg.State, arg.CreatedAt, arg.ExpiresAt).
		Scan(&row.ID, &row.RequesterUserID, &row.TargetUserID, &row.State, &row.CreatedAt, &row.ExpiresAt, &row.ResolvedAt)
	return row, err
}

func (q *Queries) GetPairingRequestByID(ctx context.Context, id pgtype.UUID) (PairingRequestRow, error) {
	const query = `SELECT id, requester_user_id, target_user_id, state, created_at, expires_at, resolved_at FROM pairing_requests WHERE id = $1`
	var row PairingRequestRow
	err := q.db.QueryRow(ctx, query, id).
		Scan(&row.ID, &row.RequesterUserID, &row.TargetUserID, &row.State, &row.CreatedAt, &row.ExpiresAt, &row.ResolvedAt)
	return row, err
}

type UpdatePairingRequestParams struct {
	ID         pgtype.UUID
	State      string
	ResolvedAt pgtype.Timestamptz
}

func (q *Queries) UpdatePairingRequest(ctx context.Context, arg UpdatePairingRequestParams) error {
	const query = `UPDATE pairing_requests SET state = $2, resolved_at = $3 WHERE id = $1`
	_, err := q.db.Exec(ctx, query, arg.ID, arg.State, arg.ResolvedAt)
	return err
}

func (q *Queries) ListExpiredPendingPairingRequests(ctx context.Context, asOf pgtype.Timestamptz, limit int) ([]PairingRequestRow, error) {
	const query = `
		SELECT id, requester_user_id, target_user_id, state, created_at, expires_at, resolved_at
		FROM pairing_requests
		WHERE state = 'PENDING' AND expires_at <= $1
		ORDER BY expires_at ASC
		LIMIT $2`
	rows, err := q.db.Query(ctx, query, asOf, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairingRequestRows(rows)
}

func (q *Queries) ListPairedPairingRequestsForUser(ctx context.Context, userID int64) ([]PairingRequestRow, error) {
	const query = `
		SELECT id, requester_user_id, target_user_id, state, created_at, expires_at, resolved_at
		FROM pairing_requests
		WHERE state = 'PAIRED' AND (requester_user_id = $1 OR target_user_id = $1)
		ORDER BY resolved_at ASC`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPairingRequestRows(rows)
}

func scanPairingRequestRows(rows pgx.Rows) ([]PairingRequestRow, error) {
	var out []PairingRequestRow
	for rows.Next() {
		var row PairingRequestRow
		if err := rows.Scan(&row.ID, &row.RequesterUserID, &row.TargetUserID, &row.State, &row.CreatedAt, &row.ExpiresAt, &row.ResolvedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
