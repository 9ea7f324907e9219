package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	signingSecret []byte
	tokenTTL      = 24 * time.Hour
)

// Claims carries the token subject and role so the role middleware can
// authorize without a database lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"sub_id"`
	Role   string `json:"role"`
}

// Configure sets the signing secret and token lifetime. Must be called
// once at startup before any token is issued or parsed.
func Configure(secret string, ttl time.Duration) {
	signingSecret = []byte(secret)
	if ttl != 0 {
		tokenTTL = ttl
	}
}

// GenerateToken issues a signed HS256 token for the user.
func GenerateToken(userID, role string) (string, error) {
	if len(signingSecret) == 0 {
		return "", errors.New("jwt: signing secret not configured")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: userID,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingSecret)
}

// ParseToken validates a token and returns its claims. Expired or
// tampered tokens return an error.
func ParseToken(tokenString string) (*Claims, error) {
	if len(signingSecret) == 0 {
		return nil, errors.New("jwt: signing secret not configured")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwt: invalid claims")
	}
	return claims, nil
}
