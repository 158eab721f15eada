package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== AppUser Tests ====================

func TestNewAppUser(t *testing.T) {
	externalUID := uuid.New()

	user := NewAppUser(externalUID, "Test User", "tok")

	require.NotNil(t, user)
	assert.Equal(t, int64(0), user.ID, "surrogate id is assigned by the store, not the constructor")
	assert.Equal(t, externalUID, user.ExternalUID)
	assert.Equal(t, "Test User", user.Name)
	assert.Equal(t, "tok", user.ClientToken)
	assert.False(t, user.CreatedAt.IsZero())
}

// ==================== PairingRequest Tests ====================

func TestNewPairingRequest(t *testing.T) {
	req := NewPairingRequest(1, 2, 5*time.Minute)

	require.NotNil(t, req)
	assert.False(t, req.ID.IsZero())
	assert.Equal(t, int64(1), req.RequesterUserID)
	assert.Equal(t, int64(2), req.TargetUserID)
	assert.Equal(t, PairingRequestStatePending, req.State)
	assert.Nil(t, req.ResolvedAt)
	assert.True(t, req.ExpiresAt.After(req.CreatedAt))
}

func TestPairingRequest_Pair(t *testing.T) {
	req := NewPairingRequest(1, 2, 5*time.Minute)

	err := req.Pair()

	require.NoError(t, err)
	assert.Equal(t, PairingRequestStatePaired, req.State)
	require.NotNil(t, req.ResolvedAt)
	assert.False(t, req.ResolvedAt.IsZero())
}

func TestPairingRequest_Pair_InvalidFromTerminalState(t *testing.T) {
	req := NewPairingRequest(1, 2, 5*time.Minute)
	require.NoError(t, req.Pair())

	err := req.Pair()

	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestPairingRequest_Expire(t *testing.T) {
	req := NewPairingRequest(1, 2, 5*time.Minute)

	err := req.Expire()

	require.NoError(t, err)
	assert.Equal(t, PairingRequestStateExpired, req.State)
	require.NotNil(t, req.ResolvedAt)
}

func TestPairingRequest_Expire_InvalidAfterPaired(t *testing.T) {
	req := NewPairingRequest(1, 2, 5*time.Minute)
	require.NoError(t, req.Pair())

	err := req.Expire()

	assert.ErrorIs(t, err, ErrInvalidStateTransition)
}

func TestPairingRequest_IsExpired(t *testing.T) {
	req := NewPairingRequest(1, 2, -time.Minute)
	assert.True(t, req.IsExpired())

	req2 := NewPairingRequest(1, 2, time.Hour)
	assert.False(t, req2.IsExpired())
}

// ==================== PairingRequestState Tests ====================

func TestPairingRequestState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     PairingRequestState
		to       PairingRequestState
		expected bool
	}{
		{PairingRequestStatePending, PairingRequestStatePaired, true},
		{PairingRequestStatePending, PairingRequestStateExpired, true},
		{PairingRequestStatePaired, PairingRequestStateExpired, false},
		{PairingRequestStateExpired, PairingRequestStatePaired, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

// ==================== DirectMessage Tests ====================

func TestNewDirectMessage(t *testing.T) {
	msg := NewDirectMessage(1, 2, "hello")

	require.NotNil(t, msg)
	assert.False(t, msg.ID.IsZero())
	assert.Equal(t, int64(1), msg.SenderUserID)
	assert.Equal(t, int64(2), msg.RecipientUserID)
	assert.Equal(t, "hello", msg.Body)
	assert.Nil(t, msg.DeliveredAt)
}

func TestDirectMessage_MarkDelivered(t *testing.T) {
	msg := NewDirectMessage(1, 2, "hello")

	msg.MarkDelivered()

	require.NotNil(t, msg.DeliveredAt)
	assert.False(t, msg.DeliveredAt.IsZero())
}
