package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "session"

const issuer = "salon-booking"

// SessionService issues and validates the signed tokens that represent an
// authenticated session. The token's Subject claim holds the user's store
// id in hex; nothing else about the user is embedded — the middleware
// resolves the full record on every request.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionService creates a SessionService with the given HMAC secret and
// session lifetime. The secret must be at least 16 characters; a ttl of 0
// defaults to 24 hours.
func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured session lifetime, used to set the cookie MaxAge.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

type claims struct {
	jwt.RegisteredClaims
}

// Issue creates and signs a session token for the given user id.
func (s *SessionService) Issue(userID string) (string, error) {
	return s.IssueWithDuration(userID, s.ttl)
}

// IssueWithDuration creates a token with a custom lifetime. Used by tests
// to mint already-expired tokens.
func (s *SessionService) IssueWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing session token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a session token, returning the user id from
// the Subject claim.
//
// jwt.WithValidMethods pins the algorithm to HS256 — without it a forged
// token could claim a different signing method and slip past verification.
func (s *SessionService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: session expired")
		}
		return "", fmt.Errorf("auth: invalid session token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid session claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: session token has no subject")
	}

	return c.Subject, nil
}
