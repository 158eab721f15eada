package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := NewClientTokenIssuer("test-secret", time.Hour)
	externalUID := uuid.New()

	token, err := issuer.Issue(42, externalUID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, externalUID, claims.ExternalUID)
	assert.Equal(t, externalUID.String(), claims.Subject)
}

func TestClientTokenIssuer_Verify_Expired(t *testing.T) {
	issuer := NewClientTokenIssuer("test-secret", -time.Hour)
	token, err := issuer.Issue(1, uuid.New())
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestClientTokenIssuer_Verify_WrongSecret(t *testing.T) {
	issuer := NewClientTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Issue(1, uuid.New())
	require.NoError(t, err)

	other := NewClientTokenIssuer("other-secret", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestClientTokenIssuer_Verify_Garbage(t *testing.T) {
	issuer := NewClientTokenIssuer("test-secret", time.Hour)
	_, err := issuer.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
