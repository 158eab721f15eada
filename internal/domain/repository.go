package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists AppUser. It holds no relationship to the
// pairing-code engine's own tables — the engine references a user only by
// the integer id this repository assigns, and never joins against it.
type UserRepository interface {
	Create(ctx context.Context, user *AppUser) error
	GetByID(ctx context.Context, id int64) (*AppUser, error)
	GetByExternalUID(ctx context.Context, externalUID uuid.UUID) (*AppUser, error)
	UpdateClientToken(ctx context.Context, id int64, token string) error
}

type PairingRequestRepository interface {
	Create(ctx context.Context, req *PairingRequest) error
	GetByID(ctx context.Context, id PairingRequestID) (*PairingRequest, error)
	Update(ctx context.Context, req *PairingRequest) error
	ListExpiredPending(ctx context.Context, asOf int64, limit int) ([]*PairingRequest, error)
	ListPairedForUser(ctx context.Context, userID int64) ([]*PairingRequest, error)
}

type DirectMessageRepository interface {
	Create(ctx context.Context, msg *DirectMessage) error
	ListForRecipient(ctx context.Context, recipientUserID int64, limit int) ([]*DirectMessage, error)
	MarkDelivered(ctx context.Context, id DirectMessageID) error
}
