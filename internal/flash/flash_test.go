// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/session"
)

// sessionRequest returns a request carrying an empty session, as the session
// manager would attach it.
func sessionRequest(t *testing.T) (*http.Request, *session.Session) {
	t.Helper()
	s := session.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return r.WithContext(session.WithSession(r.Context(), s)), s
}

func TestMessages_PushAndDrain(t *testing.T) {
	r, s := sessionRequest(t)
	m := New(s)

	require.NoError(t, m.Success("Registration successful!"))
	require.NoError(t, m.Error("Invalid credentials"))
	require.NoError(t, m.Info("info"))
	require.NoError(t, m.Warning("warning"))
	assert.True(t, s.IsModified())

	peeked, err := m.Peek()
	require.NoError(t, err)
	assert.Len(t, peeked, 4)

	// a second store over the same session sees the same messages
	drained, err := New(session.FromRequest(r)).Drain()
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Level: LevelSuccess, Text: "Registration successful!"},
		{Level: LevelError, Text: "Invalid credentials"},
		{Level: LevelInfo, Text: "info"},
		{Level: LevelWarning, Text: "warning"},
	}, drained)

	drained, err = m.Drain()
	require.NoError(t, err)
	assert.Empty(t, drained, "messages are drained exactly once")
}

func TestMessages_Nil(t *testing.T) {
	var m *Messages
	assert.Nil(t, New(nil))
	assert.NoError(t, m.Success("dropped"))

	drained, err := m.Drain()
	assert.NoError(t, err)
	assert.Nil(t, drained)
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		withSession bool
		wantStore   bool
	}{
		{name: "inside the session manager", withSession: true, wantStore: true},
		{name: "without a session", withSession: false, wantStore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.withSession {
				r, _ = sessionRequest(t)
			}

			var got *Messages
			Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = FromRequest(r)
				Push(r, LevelInfo, "hello")
				w.WriteHeader(http.StatusNoContent)
			})).ServeHTTP(httptest.NewRecorder(), r)

			assert.Equal(t, tt.wantStore, got != nil)
			if tt.wantStore {
				list, err := got.Peek()
				require.NoError(t, err)
				assert.Equal(t, []Message{{Level: LevelInfo, Text: "hello"}}, list)
			}
		})
	}
}
