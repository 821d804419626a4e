package auth

import (
	"context"
	"net/http"

	"github.com/sakif/salon-booking/internal/model"
	"github.com/sakif/salon-booking/internal/repository"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the principal value.
type contextKey string

const principalKey contextKey = "principal"

// RequireAuth gates protected pages behind an authenticated session.
//
// It reads the session cookie, validates the token, and resolves the user
// id to a full user record (the loader contract). Any failure — missing
// cookie, bad signature, expired token, or a user id that no longer resolves
// — is treated the same way: the session is invalid and the browser is
// redirected to the login page. There is no redirect-back; after logging in
// the user always lands on the home page.
func RequireAuth(sessions *SessionService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolvePrincipal(r, sessions, users)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext retrieves the authenticated user from the request
// context. Returns (nil, false) on routes not behind RequireAuth.
func PrincipalFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(principalKey).(*model.User)
	return user, ok && user != nil
}

// resolvePrincipal turns a session cookie into a user record, or fails.
func resolvePrincipal(r *http.Request, sessions *SessionService, users repository.UserRepository) (*model.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}

	userID, err := sessions.Validate(cookie.Value)
	if err != nil {
		return nil, err
	}

	// A token can outlive its user record. Treat "no such user" as an
	// expired session and force re-authentication.
	return users.GetByID(r.Context(), userID)
}
