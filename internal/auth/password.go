// Package auth implements the credential and session primitives: bcrypt
// password hashing, signed session tokens, the middleware that gates
// protected pages, and the Google OAuth provider.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor used when none is configured.
// Cost 12 takes roughly ~250ms on a modern server — negligible for a login,
// expensive for an attacker.
const defaultCost = 12

// PasswordHasher provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be injected: tests use
// the bcrypt minimum (4) to avoid paying ~250ms per hash.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the given bcrypt cost.
// A cost of 0 (or anything below the bcrypt minimum) selects the default.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = defaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is self-contained (salt and cost are embedded in the string),
// so it can be stored directly in the user document. Passwords longer than
// 72 bytes are rejected explicitly — bcrypt would silently truncate them.
func (p *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil on a match. bcrypt compares in constant time, so this is safe
// against timing attacks.
func (p *PasswordHasher) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
