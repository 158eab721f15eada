package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
)

// TakenCodeRepositoryImpl adapts the generated-style Queries to the
// engine's TakenCodeStore capability interface.
type TakenCodeRepositoryImpl struct {
	q *Queries
}

func NewTakenCodeRepository(q *Queries) *TakenCodeRepositoryImpl {
	return &TakenCodeRepositoryImpl{q: q}
}

var _ pairing.TakenCodeStore = (*TakenCodeRepositoryImpl)(nil)

func (r *TakenCodeRepositoryImpl) Insert(ctx context.Context, appUserID int64, val int32, creationTime int64, family string) (*pairing.TakenCode, error) {
	row, err := r.q.InsertTakenPairingCode(ctx, InsertTakenPairingCodeParams{
		AppUserID:    appUserID,
		Val:          val,
		CreationTime: creationTime,
		Family:       family,
	})
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toTakenCode(row), nil
}

func (r *TakenCodeRepositoryImpl) SelectByID(ctx context.Context, id int64) (*pairing.TakenCode, error) {
	row, err := r.q.GetTakenPairingCodeByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toTakenCode(row), nil
}

func (r *TakenCodeRepositoryImpl) SelectByAppUser(ctx context.Context, appUserID int64, family string) (*pairing.TakenCode, error) {
	row, err := r.q.GetTakenPairingCodeByAppUser(ctx, appUserID, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toTakenCode(row), nil
}

func (r *TakenCodeRepositoryImpl) SelectByValue(ctx context.Context, val int32, family string) (*pairing.TakenCode, error) {
	row, err := r.q.GetTakenPairingCodeByValue(ctx, val, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toTakenCode(row), nil
}

func (r *TakenCodeRepositoryImpl) SelectAny(ctx context.Context, family string) (*pairing.TakenCode, error) {
	row, err := r.q.GetAnyTakenPairingCode(ctx, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toTakenCode(row), nil
}

func (r *TakenCodeRepositoryImpl) SelectFirstNewerThan(ctx context.Context, t int64, family string) (*pairing.TakenCode, error) {
	row, err := r.q.GetFirstTakenPairingCodeNewerThan(ctx, t, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toTakenCode(row), nil
}

func (r *TakenCodeRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := r.q.DeleteTakenPairingCodeByID(ctx, id); err != nil {
		return mapPairingError(err)
	}
	return nil
}

func (r *TakenCodeRepositoryImpl) DeleteFamily(ctx context.Context, family string) error {
	if err := r.q.DeleteTakenPairingCodesByFamily(ctx, family); err != nil {
		return mapPairingError(err)
	}
	return nil
}

func (r *TakenCodeRepositoryImpl) DeleteOlderThan(ctx context.Context, t int64, family string) ([]*pairing.TakenCode, error) {
	rows, err := r.q.DeleteTakenPairingCodesOlderThan(ctx, t, family)
	if err != nil {
		return nil, mapPairingError(err)
	}
	out := make([]*pairing.TakenCode, len(rows))
	for i, row := range rows {
		out[i] = toTakenCode(row)
	}
	return out, nil
}

func toTakenCode(row TakenPairingCode) *pairing.TakenCode {
	return &pairing.TakenCode{
		ID:           row.ID,
		AppUserID:    row.AppUserID,
		Val:          row.Val,
		CreationTime: row.CreationTime,
		Family:       row.Family,
	}
}
