package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/blazern/recipe-calculator-server-sub000/internal/pairing"
)

// RangeRepositoryImpl adapts the generated-style Queries to the engine's
// RangeStore capability interface.
type RangeRepositoryImpl struct {
	q *Queries
}

func NewRangeRepository(q *Queries) *RangeRepositoryImpl {
	return &RangeRepositoryImpl{q: q}
}

var _ pairing.RangeStore = (*RangeRepositoryImpl)(nil)

func (r *RangeRepositoryImpl) Insert(ctx context.Context, left, right int32, family string) (*pairing.CodeRange, error) {
	if right < left {
		return nil, pairing.NewInvalidBoundsError("right < left")
	}
	row, err := r.q.InsertPairingCodeRange(ctx, InsertPairingCodeRangeParams{Left: left, Right: right, Family: family})
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toCodeRange(row), nil
}

func (r *RangeRepositoryImpl) SelectByID(ctx context.Context, id int64) (*pairing.CodeRange, error) {
	row, err := r.q.GetPairingCodeRangeByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toCodeRange(row), nil
}

func (r *RangeRepositoryImpl) SelectFamily(ctx context.Context, family string) ([]*pairing.CodeRange, error) {
	rows, err := r.q.ListPairingCodeRangesByFamily(ctx, family)
	if err != nil {
		return nil, mapPairingError(err)
	}
	out := make([]*pairing.CodeRange, len(rows))
	for i, row := range rows {
		out[i] = toCodeRange(row)
	}
	return out, nil
}

func (r *RangeRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	if err := r.q.DeletePairingCodeRangeByID(ctx, id); err != nil {
		return mapPairingError(err)
	}
	return nil
}

func (r *RangeRepositoryImpl) DeleteFamily(ctx context.Context, family string) error {
	if err := r.q.DeletePairingCodeRangesByFamily(ctx, family); err != nil {
		return mapPairingError(err)
	}
	return nil
}

func (r *RangeRepositoryImpl) SelectFirstToTheLeftOf(ctx context.Context, v int32, family string) (*pairing.CodeRange, error) {
	row, err := r.q.GetFirstPairingCodeRangeToTheLeftOf(ctx, v, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toCodeRange(row), nil
}

func (r *RangeRepositoryImpl) SelectFirstToTheRightOf(ctx context.Context, v int32, family string) (*pairing.CodeRange, error) {
	row, err := r.q.GetFirstPairingCodeRangeToTheRightOf(ctx, v, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toCodeRange(row), nil
}

func (r *RangeRepositoryImpl) SelectFirstRangeWithValueInside(ctx context.Context, v int32, family string) (*pairing.CodeRange, error) {
	row, err := r.q.GetFirstPairingCodeRangeContaining(ctx, v, family)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, mapPairingError(err)
	}
	return toCodeRange(row), nil
}

func toCodeRange(row PairingCodeRange) *pairing.CodeRange {
	return &pairing.CodeRange{ID: row.ID, Left: row.Left, Right: row.Right, Family: row.Family}
}
