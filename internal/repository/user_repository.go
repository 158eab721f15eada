package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
)

// UserRepositoryImpl adapts the generated-style Queries to domain.UserRepository.
type UserRepositoryImpl struct {
	q *Queries
}

func NewUserRepository(q *Queries) *UserRepositoryImpl {
	return &UserRepositoryImpl{q: q}
}

var _ domain.UserRepository = (*UserRepositoryImpl)(nil)

func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.AppUser) error {
	row, err := r.q.CreateAppUser(ctx, CreateAppUserParams{
		ExternalUID: uuidToPgtype(user.ExternalUID),
		Name:        user.Name,
		ClientToken: user.ClientToken,
		CreatedAt:   timeToPgtype(user.CreatedAt),
	})
	if err != nil {
		return mapError(err)
	}
	*user = *toAppUser(row)
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id int64) (*domain.AppUser, error) {
	row, err := r.q.GetAppUserByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return toAppUser(row), nil
}

func (r *UserRepositoryImpl) GetByExternalUID(ctx context.Context, externalUID uuid.UUID) (*domain.AppUser, error) {
	row, err := r.q.GetAppUserByExternalUID(ctx, uuidToPgtype(externalUID))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return toAppUser(row), nil
}

func (r *UserRepositoryImpl) UpdateClientToken(ctx context.Context, id int64, token string) error {
	return mapError(r.q.UpdateAppUserClientToken(ctx, id, token))
}

func toAppUser(row AppUser) *domain.AppUser {
	return &domain.AppUser{
		ID:          row.ID,
		ExternalUID: pgtypeToUUID(row.ExternalUID),
		Name:        row.Name,
		ClientToken: row.ClientToken,
		CreatedAt:   pgtypeToTime(row.CreatedAt),
	}
}
