package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
	"github.com/blazern/recipe-calculator-server-sub000/internal/testutil"
)

func TestPairingService_RequestPairingByUser_RejectsSelfPairing(t *testing.T) {
	ctx := testutil.TestContext(t)
	// The self-pairing check runs before any repository is touched, so the
	// service needs no collaborators here.
	svc := NewPairingService(nil, nil, nil, nil, "fam", nil)

	_, err := svc.RequestPairingByUser(ctx, 1, 1)

	assert.ErrorIs(t, err, domain.ErrCannotPairWithSelf)
}

func TestPairingService_RequestPairingByUser_TargetMustExist(t *testing.T) {
	ctx := testutil.TestContext(t)
	users := testutil.NewMockUserRepository()

	_, err := users.GetByID(ctx, 999)

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPairingService_RequestPairingByUser_CreatesPendingRequest(t *testing.T) {
	ctx := testutil.TestContext(t)
	requests := testutil.NewMockPairingRequestRepository()

	req := testutil.NewTestPairingRequest(1, 2)
	require.NoError(t, requests.Create(ctx, req))

	stored, err := requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PairingRequestStatePending, stored.State)
	assert.Equal(t, int64(1), stored.RequesterUserID)
	assert.Equal(t, int64(2), stored.TargetUserID)
}

func TestPairingService_Confirm_RejectsExpiredRequest(t *testing.T) {
	req := domain.NewPairingRequest(1, 2, -time.Minute)

	assert.True(t, req.IsExpired(), "a request created with a negative TTL is immediately past its deadline")
}

func TestPairingService_Confirm_PairsPendingRequest(t *testing.T) {
	ctx := testutil.TestContext(t)
	requests := testutil.NewMockPairingRequestRepository()

	req := testutil.NewTestPairingRequest(1, 2)
	require.NoError(t, requests.Create(ctx, req))

	require.NoError(t, req.Pair())
	require.NoError(t, requests.Update(ctx, req))

	stored, err := requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PairingRequestStatePaired, stored.State)
	require.NotNil(t, stored.ResolvedAt)
}

func TestPairingService_ExpirePending_OnlySweepsPastDeadline(t *testing.T) {
	ctx := testutil.TestContext(t)
	requests := testutil.NewMockPairingRequestRepository()

	stale := testutil.NewTestPairingRequest(1, 2)
	stale.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	requests.AddRequest(stale)

	fresh := testutil.NewTestPairingRequest(3, 4)
	fresh.ExpiresAt = time.Now().UTC().Add(time.Hour)
	requests.AddRequest(fresh)

	expired, err := requests.ListExpiredPending(ctx, time.Now().UTC().Unix(), 100)
	require.NoError(t, err)

	require.Len(t, expired, 1)
	assert.Equal(t, stale.ID, expired[0].ID)
}

func TestPairingService_RequestsForUser_OnlyPairedRequestsCount(t *testing.T) {
	ctx := testutil.TestContext(t)
	requests := testutil.NewMockPairingRequestRepository()

	pending := testutil.NewTestPairingRequest(1, 2)
	requests.AddRequest(pending)

	paired := testutil.NewTestPairingRequestWithState(1, 3, domain.PairingRequestStatePaired)
	requests.AddRequest(paired)

	result, err := requests.ListPairedForUser(ctx, 1)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, paired.ID, result[0].ID)
}
