package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/google/uuid"
)

// TestContext returns a context with timeout for tests
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// ==================== Fixtures ====================

// NewTestUser creates an AppUser for testing
func NewTestUser() *domain.AppUser {
	return domain.NewAppUser(uuid.New(), "Test User", "")
}

// NewTestUserWithID creates an AppUser with a specific surrogate id
func NewTestUserWithID(id int64) *domain.AppUser {
	user := NewTestUser()
	user.ID = id
	return user
}

// NewTestPairingRequest creates a pending pairing request for testing
func NewTestPairingRequest(requesterUserID, targetUserID int64) *domain.PairingRequest {
	return domain.NewPairingRequest(requesterUserID, targetUserID, 5*time.Minute)
}

// NewTestPairingRequestWithState creates a pairing request already in the
// given state
func NewTestPairingRequestWithState(requesterUserID, targetUserID int64, state domain.PairingRequestState) *domain.PairingRequest {
	req := NewTestPairingRequest(requesterUserID, targetUserID)
	req.State = state
	if state != domain.PairingRequestStatePending {
		now := time.Now().UTC()
		req.ResolvedAt = &now
	}
	return req
}

// NewTestDirectMessage creates a direct message for testing
func NewTestDirectMessage(senderUserID, recipientUserID int64) *domain.DirectMessage {
	return domain.NewDirectMessage(senderUserID, recipientUserID, "hello")
}

// ==================== Helpers ====================

// UUIDPtr returns a pointer to a UUID
func UUIDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

// TimePtr returns a pointer to a time
func TimePtr(t time.Time) *time.Time {
	return &t
}

// StringPtr returns a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// Int32Ptr returns a pointer to an int32
func Int32Ptr(i int32) *int32 {
	return &i
}
