// Package token mints and verifies the signed, stateless session tokens
// carried by the `token` cookie.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"lingualink/infrastructure"
)

type Issuer struct {
	secretKey []byte
	ttl       time.Duration
}

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewIssuer(secretKey []byte, ttl time.Duration) *Issuer {
	return &Issuer{
		secretKey: secretKey,
		ttl:       ttl,
	}
}

// Issue signs a token asserting the user id, valid for the configured TTL.
func (i *Issuer) Issue(userID uuid.UUID) (string, error) {
	claims := &Claims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secretKey)
}

// Verify rejects tampered tokens with ErrInvalidToken and stale ones with
// ErrTokenExpired, and returns the asserted user id otherwise.
func (i *Issuer) Verify(tokenString string) (uuid.UUID, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, infrastructure.ErrInvalidToken
		}
		return i.secretKey, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return uuid.Nil, infrastructure.ErrTokenExpired
		}
		return uuid.Nil, infrastructure.ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return uuid.Nil, infrastructure.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, infrastructure.ErrInvalidToken
	}

	return userID, nil
}

// TTL reports the configured token lifetime, used for the cookie max-age.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}
