package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
)

// PairingRequestRepositoryImpl adapts the generated-style Queries to
// domain.PairingRequestRepository.
type PairingRequestRepositoryImpl struct {
	q *Queries
}

func NewPairingRequestRepository(q *Queries) *PairingRequestRepositoryImpl {
	return &PairingRequestRepositoryImpl{q: q}
}

var _ domain.PairingRequestRepository = (*PairingRequestRepositoryImpl)(nil)

func (r *PairingRequestRepositoryImpl) Create(ctx context.Context, req *domain.PairingRequest) error {
	row, err := r.q.CreatePairingRequest(ctx, CreatePairingRequestParams{
		ID:              uuidToPgtype(req.ID.UUID()),
		RequesterUserID: req.RequesterUserID,
		TargetUserID:    req.TargetUserID,
		State:           req.State.String(),
		CreatedAt:       timeToPgtype(req.CreatedAt),
		ExpiresAt:       timeToPgtype(req.ExpiresAt),
	})
	if err != nil {
		return mapError(err)
	}
	*req = *toPairingRequest(row)
	return nil
}

func (r *PairingRequestRepositoryImpl) GetByID(ctx context.Context, id domain.PairingRequestID) (*domain.PairingRequest, error) {
	row, err := r.q.GetPairingRequestByID(ctx, uuidToPgtype(id.UUID()))
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapError(err)
	}
	return toPairingRequest(row), nil
}

func (r *PairingRequestRepositoryImpl) Update(ctx context.Context, req *domain.PairingRequest) error {
	err := r.q.UpdatePairingRequest(ctx, UpdatePairingRequestParams{
		ID:         uuidToPgtype(req.ID.UUID()),
		State:      req.State.String(),
		ResolvedAt: timePtrToPgtype(req.ResolvedAt),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (r *PairingRequestRepositoryImpl) ListExpiredPending(ctx context.Context, asOf int64, limit int) ([]*domain.PairingRequest, error) {
	rows, err := r.q.ListExpiredPendingPairingRequests(ctx, unixToPgtype(asOf), limit)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.PairingRequest, len(rows))
	for i, row := range rows {
		out[i] = toPairingRequest(row)
	}
	return out, nil
}

func (r *PairingRequestRepositoryImpl) ListPairedForUser(ctx context.Context, userID int64) ([]*domain.PairingRequest, error) {
	rows, err := r.q.ListPairedPairingRequestsForUser(ctx, userID)
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]*domain.PairingRequest, len(rows))
	for i, row := range rows {
		out[i] = toPairingRequest(row)
	}
	return out, nil
}

func toPairingRequest(row PairingRequestRow) *domain.PairingRequest {
	return &domain.PairingRequest{
		ID:              domain.PairingRequestID(pgtypeToUUID(row.ID)),
		RequesterUserID: row.RequesterUserID,
		TargetUserID:    row.TargetUserID,
		State:           domain.PairingRequestState(row.State),
		CreatedAt:       pgtypeToTime(row.CreatedAt),
		ExpiresAt:       pgtypeToTime(row.ExpiresAt),
		ResolvedAt:      pgtypeToTimePtr(row.ResolvedAt),
	}
}
