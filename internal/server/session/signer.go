package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Signer wraps a session id into an HS256 token so tampered cookies are
// rejected before the store is consulted. The token carries no user data.
type Signer struct {
	key []byte
	now func() time.Time
}

func NewSigner(key []byte) *Signer {
	return &Signer{key: key, now: time.Now}
}

// Sign returns a token for sessionID valid until expiresAt.
func (s *Signer) Sign(sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	return token.SignedString(s.key)
}

// Verify returns the session id of a valid token. Expired tokens yield
// common.ErrorSessionExpired, anything else common.ErrorInvalidToken.
func (s *Signer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrorSessionExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return "", common.ErrorInvalidToken
	}
	return claims.ID, nil
}
