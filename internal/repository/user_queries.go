package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// AppUser mirrors one row of the app_user table.
type AppUser struct {
	ID          int64
	ExternalUID pgtype.UUID
	Name        string
	ClientToken string
	CreatedAt   pgtype.Timestamptz
}

type CreateAppUserParams struct {
	ExternalUID pgtype.UUID
	Name        string
	ClientToken string
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) CreateAppUser(ctx context.Context, arg CreateAppUserParams) (AppUser, error) {
	const query = `
		INSERT INTO app_user (external_uid, name, client_token, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, external_uid, name, client_token, created_at`
	var row AppUser
	err := q.db.QueryRow(ctx, query, arg.ExternalUID, arg.Name, arg.ClientToken, arg.CreatedAt).
		Scan(&row.ID, &row.ExternalUID, &row.Name, &row.ClientToken, &row.CreatedAt)
	return row, err
}

func (q *Queries) GetAppUserByID(ctx context.Context, id int64) (AppUser, error) {
	const query = `SELECT id, external_uid, name, client_token, created_at FROM app_user WHERE id = $1`
	var row AppUser
	err := q.db.QueryRow(ctx, query, id).
		Scan(&row.ID, &row.ExternalUID, &row.Name, &row.ClientToken, &row.CreatedAt)
	return row, err
}

func (q *Queries) GetAppUserByExternalUID(ctx context.Context, externalUID pgtype.UUID) (AppUser, error) {
	const query = `SELECT id, external_uid, name, client_token, created_at FROM app_user WHERE external_uid = $1`
	var row AppUser
	err := q.db.QueryRow(ctx, query, externalUID).
		Scan(&row.ID, &row.ExternalUID, &row.Name, &row.ClientToken, &row.CreatedAt)
	return row, err
}

func (q *Queries) UpdateAppUserClientToken(ctx context.Context, id int64, token string) error {
	const query = `UPDATE app_user SET client_token = $2 WHERE id = $1`
	_, err := q.db.Exec(ctx, query, id, token)
	return err
}
