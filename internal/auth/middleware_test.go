package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/salon-booking/internal/apperror"
	"github.com/sakif/salon-booking/internal/model"
)

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(context.Context, *model.User) error { return nil }

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, apperror.NotFound("user", email)
}

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if s.user != nil && s.user.IDHex() == id {
		return s.user, nil
	}
	return nil, apperror.NotFound("user", id)
}

// okHandler records whether the middleware let the request through, and
// what principal it saw.
func okHandler(called *bool, principal **model.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if user, ok := PrincipalFromContext(r.Context()); ok {
			*principal = user
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidSession(t *testing.T) {
	sessions := newTestSessionService(t)
	user := &model.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}
	repo := &stubUserRepo{user: user}

	token, err := sessions.Issue(user.IDHex())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var called bool
	var principal *model.User
	mw := RequireAuth(sessions, repo)(okHandler(&called, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if !called {
		t.Fatal("middleware blocked a valid session")
	}
	if principal == nil || principal.Email != "alice@example.com" {
		t.Errorf("principal = %+v, want alice@example.com", principal)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuth_NoCookie(t *testing.T) {
	sessions := newTestSessionService(t)
	var called bool
	var principal *model.User
	mw := RequireAuth(sessions, &stubUserRepo{})(okHandler(&called, &principal))

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if called {
		t.Fatal("middleware let an anonymous request through")
	}
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	sessions := newTestSessionService(t)
	user := &model.User{ID: primitive.NewObjectID(), Email: "alice@example.com"}

	token, err := sessions.IssueWithDuration(user.IDHex(), -1*time.Second)
	if err != nil {
		t.Fatalf("IssueWithDuration() error = %v", err)
	}

	var called bool
	var principal *model.User
	mw := RequireAuth(sessions, &stubUserRepo{user: user})(okHandler(&called, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if called {
		t.Fatal("middleware let an expired session through")
	}
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	sessions := newTestSessionService(t)

	// Token for a user id that no longer resolves.
	token, err := sessions.Issue(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var called bool
	var principal *model.User
	mw := RequireAuth(sessions, &stubUserRepo{})(okHandler(&called, &principal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if called {
		t.Fatal("middleware let a session for a deleted user through")
	}
	if rec.Code != http.StatusFound {
		t.Errorf("status = %d, want 302", rec.Code)
	}
}

func TestPrincipalFromContext_Absent(t *testing.T) {
	if _, ok := PrincipalFromContext(context.Background()); ok {
		t.Error("PrincipalFromContext() on a bare context should report absence")
	}
}
