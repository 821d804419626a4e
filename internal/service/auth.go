// Package service contains the business logic layer: handlers parse
// requests and choose response shapes, services enforce the rules, and
// repositories talk to the store. Services accept plain values and return
// domain errors — they know nothing about HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/auth"
	"github.com/sakif/salon-booking/internal/model"
	"github.com/sakif/salon-booking/internal/repository"
)

// AuthService handles signup and login.
type AuthService struct {
	users    repository.UserRepository
	hasher   *auth.PasswordHasher
	sessions *auth.SessionService
	logger   *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	hasher *auth.PasswordHasher,
	sessions *auth.SessionService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

// LoginResult bundles the authenticated user with the issued session token
// so the handler can set the cookie and redirect in one step.
type LoginResult struct {
	User  *model.User
	Token string
}

// Signup registers a new account. It never logs the user in — the handler
// redirects to the login page on success.
//
// Uniqueness is a check-then-insert: an exact-match email lookup immediately
// before the insert. Two concurrent signups for the same email can both pass
// the check; the store carries no unique index to stop them. The window is
// an accepted property of the system.
func (s *AuthService) Signup(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return apperror.ValidationFailed("password", "password is required")
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return apperror.Conflict("User already exists!")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("service/auth: checking email %s: %w", email, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("service/auth: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user signed up", slog.String("userID", user.IDHex()))
	return nil
}

// Login verifies the credentials and issues a session token.
//
// "No such user" and "wrong password" are distinct Unauthorized errors —
// the login page shows their messages as plain rejection text. Neither
// failure establishes a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid username!")
		}
		return nil, fmt.Errorf("service/auth: looking up %s: %w", email, err)
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("Invalid password!")
	}

	token, err := s.sessions.Issue(user.IDHex())
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for %s: %w", user.IDHex(), err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.IDHex()))

	return &LoginResult{User: user, Token: token}, nil
}

// LoginOrRegisterGoogle completes the Google OAuth flow: the account is
// looked up by the verified Google email and created on first login.
// OAuth accounts carry no password hash, so they can only ever log in
// through Google.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gUser *auth.GoogleUser) (*LoginResult, error) {
	if gUser == nil {
		return nil, fmt.Errorf("service/auth: Google user must not be nil")
	}

	user, err := s.users.GetByEmail(ctx, gUser.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		user = &model.User{Email: gUser.Email}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("service/auth: creating Google user: %w", err)
		}
		s.logger.Info("user registered via Google", slog.String("userID", user.IDHex()))
	} else if err != nil {
		return nil, fmt.Errorf("service/auth: looking up Google user %s: %w", gUser.Email, err)
	}

	token, err := s.sessions.Issue(user.IDHex())
	if err != nil {
		return nil, fmt.Errorf("service/auth: issuing session for %s: %w", user.IDHex(), err)
	}

	s.logger.Info("user logged in via Google", slog.String("userID", user.IDHex()))

	return &LoginResult{User: user, Token: token}, nil
}
