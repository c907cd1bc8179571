package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenGenerator mints and verifies the HS256 session tokens handed
// out after onboarding. Tokens are signed locally; there is no identity
// provider behind them, the key-value login flag stays the source of truth.
type SessionTokenGenerator struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	TTL          time.Duration
}

// NewSessionTokenGenerator creates a generator with the given signing key and token lifetime
func NewSessionTokenGenerator(key []byte, ttl time.Duration) *SessionTokenGenerator {
	return &SessionTokenGenerator{
		SignedKey:    key,
		SignedMethod: jwt.SigningMethodHS256,
		TTL:          ttl,
	}
}

// Token generates a session token for the onboarded user
func (g *SessionTokenGenerator) Token(email, name string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("cannot generate token: no email available")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"name": name,
		"iat":  now.Unix(),
		"exp":  now.Add(g.TTL).Unix(),
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	return token.SignedString(g.SignedKey)
}

// Parse validates a session token and returns its claims
func (g *SessionTokenGenerator) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return g.SignedKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	now := time.Now()
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}
