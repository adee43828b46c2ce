// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/session"
)

func whoami(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(user.Username))
}

func TestMiddleware(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	var calls []hookCall
	b := newTestBackend(t, &calls)

	ada, err := b.Register(ctx, db, Registration{Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	tests := []struct {
		name        string
		prepare     func(s *session.Session)
		wantBody    string
		wantFlushed bool
	}{
		{
			name:     "anonymous",
			prepare:  func(*session.Session) {},
			wantBody: "anonymous",
		},
		{
			name:     "logged in",
			prepare:  func(s *session.Session) { require.NoError(t, b.Login(s, ada)) },
			wantBody: "ada",
		},
		{
			name: "deleted user",
			prepare: func(s *session.Session) {
				require.NoError(t, b.Login(s, model.LowboyUserRecord{ID: ada.ID + 100}))
			},
			wantBody:    "anonymous",
			wantFlushed: true,
		},
		{
			name: "credentials changed since login",
			prepare: func(s *session.Session) {
				old := "$argon2id$old"
				stale := ada
				stale.Password = &old
				require.NoError(t, b.Login(s, stale))
			},
			wantBody:    "anonymous",
			wantFlushed: true,
		},
		{
			name:        "unreadable user id",
			prepare:     func(s *session.Session) { require.NoError(t, s.Insert(KeyUserID, "ada")) },
			wantBody:    "anonymous",
			wantFlushed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.New()
			tt.prepare(s)

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(session.WithSession(r.Context(), s))
			w := httptest.NewRecorder()

			b.Middleware(db)(http.HandlerFunc(whoami)).ServeHTTP(w, r)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			if tt.wantFlushed {
				assert.Zero(t, s.Len())
			}
		})
	}
}

func TestMiddleware_WithoutSession(t *testing.T) {
	b := NewBackend(nil, nil, logger.Nop())
	w := httptest.NewRecorder()

	b.Middleware(nil)(http.HandlerFunc(whoami)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestLoginRequired(t *testing.T) {
	handler := LoginRequired(http.HandlerFunc(whoami))

	t.Run("anonymous is redirected", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?next=%2Fevents", w.Header().Get("Location"))
	})

	t.Run("query is kept in next", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/posts?page=2", nil))

		assert.Equal(t, "/login?next=%2Fposts%3Fpage%3D2", w.Header().Get("Location"))
	})

	t.Run("user passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/events", nil)
		r = r.WithContext(WithUser(r.Context(), model.LowboyUserRecord{ID: 1, Username: "ada"}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ada", w.Body.String())
	})
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                         "/",
		"/":                        "/",
		"/events":                  "/events",
		"/posts?page=2":            "/posts?page=2",
		"//evil.example.com":       "/",
		"/\\evil.example.com":      "/",
		"https://evil.example.com": "/",
		"events":                   "/",
	}
	for next, want := range tests {
		assert.Equal(t, want, SafeNext(next), next)
	}
}
