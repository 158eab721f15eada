package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrProviderTokenInvalid = errors.New("identity provider token invalid")

// ProviderVerifier checks a token minted by the external identity provider
// (e.g. a mobile OS account-manager token) and returns the stable external
// identity it asserts. The pairing-code engine never talks to this package
// directly — it only ever sees the int64 user id a verified identity maps to.
type ProviderVerifier interface {
	Verify(ctx context.Context, providerToken string) (uuid.UUID, error)
}

// StaticVerifier treats the raw token as the external UID itself. It exists
// so the registration flow can be exercised end to end without a live
// identity-provider integration wired in.
type StaticVerifier struct{}

func (StaticVerifier) Verify(ctx context.Context, providerToken string) (uuid.UUID, error) {
	id, err := uuid.Parse(providerToken)
	if err != nil {
		return uuid.Nil, ErrProviderTokenInvalid
	}
	return id, nil
}
