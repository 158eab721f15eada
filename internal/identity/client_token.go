// Package identity issues and verifies the opaque client tokens a device
// uses to authenticate subsequent requests, and verifies the
// identity-provider token a device presents on first registration.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("client token expired")
	ErrTokenInvalid = errors.New("client token invalid")
)

// ClientTokenClaims is the payload signed into every client token.
type ClientTokenClaims struct {
	jwt.RegisteredClaims
	UserID      int64     `json:"uid"`
	ExternalUID uuid.UUID `json:"ext_uid"`
}

// ClientTokenIssuer signs and verifies client tokens with an HMAC secret.
type ClientTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewClientTokenIssuer(secret string, ttl time.Duration) *ClientTokenIssuer {
	return &ClientTokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *ClientTokenIssuer) Issue(userID int64, externalUID uuid.UUID) (string, error) {
	now := time.Now().UTC()
	claims := ClientTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			Subject:   externalUID.String(),
		},
		UserID:      userID,
		ExternalUID: externalUID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign client token: %w", err)
	}
	return signed, nil
}

func (i *ClientTokenIssuer) Verify(raw string) (*ClientTokenClaims, error) {
	claims := &ClientTokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
