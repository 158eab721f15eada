package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier_Verify(t *testing.T) {
	ctx := context.Background()
	var v StaticVerifier

	externalUID := uuid.New()
	got, err := v.Verify(ctx, externalUID.String())
	require.NoError(t, err)
	assert.Equal(t, externalUID, got)
}

func TestStaticVerifier_Verify_Invalid(t *testing.T) {
	ctx := context.Background()
	var v StaticVerifier

	_, err := v.Verify(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrProviderTokenInvalid)
}
