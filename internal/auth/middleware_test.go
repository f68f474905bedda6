package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/accounts-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	users map[string]models.User
	err   error
}

func (s *stubResolver) GetBySessionToken(token string) (models.User, bool, error) {
	if s.err != nil {
		return models.User{}, false, s.err
	}
	user, ok := s.users[token]
	return user, ok, nil
}

// newGuardedRouter wires the session middleware and ownership guard around
// probe handlers that record whether they were reached.
func newGuardedRouter(resolver Resolver, reached *bool) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware(resolver, "session"))
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			*reached = true
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "no user", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(user.ID))
		})
		r.Route("/users/{id}", func(r chi.Router) {
			r.Use(RequireOwner())
			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				*reached = true
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})
	return r
}

func TestSessionMiddlewareRejectsWithoutReachingHandler(t *testing.T) {
	resolver := &stubResolver{users: map[string]models.User{
		"good-token": {ID: "alice-id", Username: "alice"},
	}}

	cases := []struct {
		name    string
		prepare func(r *http.Request)
	}{
		{"no credential", func(r *http.Request) {}},
		{"unknown token in cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "session", Value: "rotated-away"})
		}},
		{"malformed authorization header", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic not-a-bearer")
		}},
		{"empty bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer ")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			router := newGuardedRouter(resolver, &reached)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached, "handler must not run for %s", tc.name)
		})
	}
}

func TestSessionMiddlewareAttachesIdentity(t *testing.T) {
	resolver := &stubResolver{users: map[string]models.User{
		"good-token": {ID: "alice-id", Username: "alice"},
	}}

	reached := false
	router := newGuardedRouter(resolver, &reached)

	// Via cookie.
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice-id", rec.Body.String())

	// Via bearer header.
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice-id", rec.Body.String())
}

func TestSessionMiddlewareDirectoryFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("directory down")}
	reached := false
	router := newGuardedRouter(resolver, &reached)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer any-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reached)
	assert.NotContains(t, rec.Body.String(), "directory down")
}

func TestRequireOwner(t *testing.T) {
	resolver := &stubResolver{users: map[string]models.User{
		"alice-token": {ID: "alice-id", Username: "alice"},
	}}

	// Authenticated but targeting someone else's record.
	reached := false
	router := newGuardedRouter(resolver, &reached)
	req := httptest.NewRequest(http.MethodDelete, "/users/bob-id", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	// Targeting their own record.
	reached = false
	router = newGuardedRouter(resolver, &reached)
	req = httptest.NewRequest(http.MethodDelete, "/users/alice-id", nil)
	req.Header.Set("Authorization", "Bearer alice-token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, reached)
}
