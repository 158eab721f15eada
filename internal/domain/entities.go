package domain

import (
	"time"

	"github.com/google/uuid"
)

// ==================== AppUser ====================

// AppUser is a registered device/account. ID is an integer surrogate key
// assigned by the store on insert (zero until persisted) — it is the value
// the pairing-code engine references when it records who a code belongs
// to, never ExternalUID.
type AppUser struct {
	ID          int64
	ExternalUID uuid.UUID
	Name        string
	ClientToken string
	CreatedAt   time.Time
}

func NewAppUser(externalUID uuid.UUID, name, clientToken string) *AppUser {
	return &AppUser{
		ExternalUID: externalUID,
		Name:        name,
		ClientToken: clientToken,
		CreatedAt:   time.Now().UTC(),
	}
}

// ==================== PairingRequest ====================

type PairingRequest struct {
	ID              PairingRequestID
	RequesterUserID int64
	TargetUserID    int64
	State           PairingRequestState
	CreatedAt       time.Time
	ExpiresAt       time.Time
	ResolvedAt      *time.Time
}

func NewPairingRequest(requesterUserID, targetUserID int64, ttl time.Duration) *PairingRequest {
	now := time.Now().UTC()
	return &PairingRequest{
		ID:              NewPairingRequestID(),
		RequesterUserID: requesterUserID,
		TargetUserID:    targetUserID,
		State:           PairingRequestStatePending,
		CreatedAt:       now,
		ExpiresAt:       now.Add(ttl),
	}
}

// Pair marks the request resolved once both sides recognize each other.
func (p *PairingRequest) Pair() error {
	if !p.State.CanTransitionTo(PairingRequestStatePaired) {
		return ErrInvalidStateTransition
	}
	now := time.Now().UTC()
	p.State = PairingRequestStatePaired
	p.ResolvedAt = &now
	return nil
}

// Expire marks a stale request as expired.
func (p *PairingRequest) Expire() error {
	if !p.State.CanTransitionTo(PairingRequestStateExpired) {
		return ErrInvalidStateTransition
	}
	now := time.Now().UTC()
	p.State = PairingRequestStateExpired
	p.ResolvedAt = &now
	return nil
}

func (p *PairingRequest) IsExpired() bool {
	return time.Now().UTC().After(p.ExpiresAt)
}

// ==================== DirectMessage ====================

type DirectMessage struct {
	ID              DirectMessageID
	SenderUserID    int64
	RecipientUserID int64
	Body            string
	CreatedAt       time.Time
	DeliveredAt     *time.Time
}

func NewDirectMessage(senderUserID, recipientUserID int64, body string) *DirectMessage {
	return &DirectMessage{
		ID:              NewDirectMessageID(),
		SenderUserID:    senderUserID,
		RecipientUserID: recipientUserID,
		Body:            body,
		CreatedAt:       time.Now().UTC(),
	}
}

func (m *DirectMessage) MarkDelivered() {
	now := time.Now().UTC()
	m.DeliveredAt = &now
}
