package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/auth"
	"github.com/sakif/salon-booking/internal/service"
)

// AuthHandler manages signup, login, logout and the Google OAuth flow.
//
// Failure shapes follow the store's long-standing behaviour: a signup email
// collision and a bad login are bare plain-text responses, not rendered
// error pages.
type AuthHandler struct {
	authSvc  *service.AuthService
	sessions *auth.SessionService
	google   *auth.GoogleProvider // nil when OAuth is not configured
	render   *Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. google may be nil; the Google
// routes are only registered when it isn't.
func NewAuthHandler(
	authSvc *service.AuthService,
	sessions *auth.SessionService,
	google *auth.GoogleProvider,
	render *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authSvc:  authSvc,
		sessions: sessions,
		google:   google,
		render:   render,
		logger:   logger,
	}
}

// HandleSignupForm serves the signup page.
//
// HTTP: GET /signup
func (h *AuthHandler) HandleSignupForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "signup", map[string]any{
		"Title": "Sign Up",
		"Flash": popFlash(w, r),
	})
}

// HandleSignupSubmit registers a new account and redirects to the login
// page. The user is never logged in automatically.
//
// HTTP: POST /signup (form fields: email, password)
func (h *AuthHandler) HandleSignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	err := h.authSvc.Signup(r.Context(), email, password)
	switch {
	case err == nil:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, apperror.ErrConflict):
		http.Error(w, "User already exists!", http.StatusConflict)
	case errors.Is(err, apperror.ErrValidation):
		http.Error(w, appErrorMessage(err), http.StatusBadRequest)
	default:
		h.logger.Error("signup failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleLoginForm serves the login page.
//
// HTTP: GET /login
func (h *AuthHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "login", map[string]any{
		"Title": "Log In",
		"Flash": popFlash(w, r),
	})
}

// HandleLoginSubmit verifies the credentials, sets the session cookie and
// redirects to the home page. Rejections are plain text: "Invalid
// username!" for an unknown email, "Invalid password!" for a hash mismatch.
//
// HTTP: POST /login (form fields: email, password)
func (h *AuthHandler) HandleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	result, err := h.authSvc.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) {
			http.Error(w, appErrorMessage(err), http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, result.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout tears down the session and redirects to the login page.
// The route sits behind RequireAuth, so only an authenticated session can
// reach it.
//
// HTTP: GET /logout (auth required)
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusFound)
}

// HandleGoogleLogin redirects the browser to Google's authorization page.
// A random state value is stored in a short-lived cookie and verified on
// callback so a CSRF-initiated flow can't complete.
//
// HTTP: GET /google_login
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback completes the OAuth flow: verify the state, exchange
// the code for a Google profile, find-or-create the account, set the
// session cookie, land on home.
//
// HTTP: GET /google_login/authorized?code=xxx&state=yyy
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("google callback: state mismatch or missing")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// Single-use state.
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("google callback: authorization denied", slog.String("error", errParam))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	gUser, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google callback: exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	result, err := h.authSvc.LoginOrRegisterGoogle(r.Context(), gUser)
	if err != nil {
		h.logger.Error("google callback: login failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, result.Token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// setSessionCookie stores the session token in an HttpOnly cookie.
// HttpOnly keeps it out of reach of page scripts; SameSite=Lax withholds it
// from cross-site POSTs.
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// appErrorMessage extracts the human-readable message from a domain error,
// falling back to the raw error text.
func appErrorMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
