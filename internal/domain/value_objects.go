package domain

import (
	"errors"

	"github.com/google/uuid"
)

// ==================== PairingRequestState ====================

type PairingRequestState string

const (
	PairingRequestStatePending PairingRequestState = "PENDING"
	PairingRequestStatePaired  PairingRequestState = "PAIRED"
	PairingRequestStateExpired PairingRequestState = "EXPIRED"
)

func (s PairingRequestState) IsValid() bool {
	switch s {
	case PairingRequestStatePending, PairingRequestStatePaired, PairingRequestStateExpired:
		return true
	}
	return false
}

func (s PairingRequestState) String() string {
	return string(s)
}

// CanTransitionTo validates pairing request state transitions
func (s PairingRequestState) CanTransitionTo(target PairingRequestState) bool {
	transitions := map[PairingRequestState][]PairingRequestState{
		PairingRequestStatePending: {PairingRequestStatePaired, PairingRequestStateExpired},
		PairingRequestStatePaired:  {},
		PairingRequestStateExpired: {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ==================== PairingRequestID ====================

type PairingRequestID uuid.UUID

func NewPairingRequestID() PairingRequestID {
	return PairingRequestID(uuid.Must(uuid.NewV7()))
}

func ParsePairingRequestID(s string) (PairingRequestID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return PairingRequestID{}, errors.New("invalid pairing request ID format")
	}
	return PairingRequestID(id), nil
}

func (id PairingRequestID) String() string {
	return uuid.UUID(id).String()
}

func (id PairingRequestID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

func (id PairingRequestID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// ==================== DirectMessageID ====================

type DirectMessageID uuid.UUID

func NewDirectMessageID() DirectMessageID {
	return DirectMessageID(uuid.Must(uuid.NewV7()))
}

func ParseDirectMessageID(s string) (DirectMessageID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return DirectMessageID{}, errors.New("invalid direct message ID format")
	}
	return DirectMessageID(id), nil
}

func (id DirectMessageID) String() string {
	return uuid.UUID(id).String()
}

func (id DirectMessageID) UUID() uuid.UUID {
	return uuid.UUID(id)
}

func (id DirectMessageID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}
