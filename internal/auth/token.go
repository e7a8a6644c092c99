package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims extends the JWT registered claims with the client name the token
// was issued for. Slotboard has no user accounts; a token simply
// identifies which dashboard host or tool is calling.
type Claims struct {
	jwt.RegisteredClaims
	Client string `json:"client"`
}

// IssueToken creates a signed HS256 access token for a named client.
// Tokens are validated by signature and expiry only, with no revocation
// store, so keep the TTL short.
func IssueToken(client, secret string, ttl time.Duration) (string, error) {
	if client == "" {
		return "", fmt.Errorf("issuing token: %w", ErrClientEmpty)
	}
	if ttl == 0 {
		ttl = time.Hour
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   client,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Client: client,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a token's signature and expiry and returns its
// claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Client == "" {
		return nil, fmt.Errorf("%w: missing client", ErrTokenInvalid)
	}
	return claims, nil
}
