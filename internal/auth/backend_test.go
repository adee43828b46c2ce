// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/lowboy/internal/config"
	"github.com/MKhiriev/lowboy/internal/crypto"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/mock"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
)

var now = time.Unix(1_760_000_000, 0)

func newTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.NewConnectSQLite(context.Background(), filepath.Join(t.TempDir(), "lowboy.db"), 1, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(nil))
	return db
}

// hookCall records one invocation of the new user hook.
type hookCall struct {
	user    model.LowboyUserRecord
	details RegistrationDetails
}

func recordingHook(calls *[]hookCall) NewUserHook {
	return func(_ context.Context, _ store.Querier, user model.LowboyUserRecord, details RegistrationDetails) error {
		*calls = append(*calls, hookCall{user: user, details: details})
		return nil
	}
}

// fakeProvider is an OAuth provider with a token and a user-info endpoint.
type fakeProvider struct {
	server    *httptest.Server
	tokenHits int
	user      map[string]any
	tokenErr  bool
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	fp := &fakeProvider{user: map[string]any{
		"login":      "octocat",
		"email":      "octo@example.com",
		"avatar_url": "https://avatars.example.com/u/1",
		"name":       "The Octocat",
	}}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		fp.tokenHits++
		w.Header().Set("Content-Type", "application/json")
		if fp.tokenErr {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad_verification_code"}`))
			return
		}
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		_, _ = w.Write([]byte(`{"access_token":"gho_token","token_type":"bearer"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gho_token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fp.user)
	})
	fp.server = httptest.NewServer(mux)
	t.Cleanup(fp.server.Close)
	return fp
}

func (fp *fakeProvider) config() config.OAuthProvider {
	return config.OAuthProvider{
		Name:         "github",
		ClientID:     "client",
		ClientSecret: "secret",
		AuthURL:      fp.server.URL + "/authorize",
		TokenURL:     fp.server.URL + "/token",
		UserInfoURL:  fp.server.URL + "/user",
		RedirectURL:  "http://127.0.0.1:3000/login/oauth",
	}
}

func newTestBackend(t *testing.T, calls *[]hookCall, providers ...config.OAuthProvider) *Backend {
	t.Helper()
	ps, err := NewProviders(providers, utils.NewHTTPClient(5*time.Second), logger.Nop())
	require.NoError(t, err)
	return NewBackend(crypto.NewArgon2idHasher(), ps, logger.Nop(),
		WithNewUserHook(recordingHook(calls)),
		WithBackendClock(func() time.Time { return now }),
	)
}

// ─────────────────────────────────────────────
// Password registration and login
// ─────────────────────────────────────────────

func TestRegister(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	var calls []hookCall
	b := newTestBackend(t, &calls)

	user, err := b.Register(ctx, db, Registration{Name: "Ada Lovelace", Username: "ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "ada", user.Username)
	require.NotNil(t, user.Password)
	assert.NotEqual(t, "secret123", *user.Password, "the password is stored hashed")

	require.Len(t, calls, 1)
	assert.Equal(t, user.ID, calls[0].user.ID)
	assert.Equal(t, RegistrationDetails{Provider: ProviderLocal, Name: "Ada Lovelace"}, calls[0].details)

	_, err = b.Register(ctx, db, Registration{Name: "Ada", Username: "ada", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserExists)
	_, err = b.Register(ctx, db, Registration{Name: "Ada", Username: "other", Email: "ada@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserExists)
	assert.Len(t, calls, 1, "the hook runs for created users only")
}

func TestAuthenticate_Password(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	var calls []hookCall
	b := newTestBackend(t, &calls)

	registered, err := b.Register(ctx, db, Registration{Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	token := "gho_token"
	_, err = model.NewLowboyUser{Username: "octocat", Email: "octo@example.com", AccessToken: &token}.Create(ctx, db, now)
	require.NoError(t, err)

	tests := []struct {
		name   string
		creds  PasswordCredentials
		wantID int64
	}{
		{name: "correct password", creds: PasswordCredentials{Username: "ada", Password: "secret123"}, wantID: registered.ID},
		{name: "wrong password", creds: PasswordCredentials{Username: "ada", Password: "wrong"}},
		{name: "unknown user", creds: PasswordCredentials{Username: "nobody", Password: "secret123"}},
		{name: "user without password", creds: PasswordCredentials{Username: "octocat", Password: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := b.Authenticate(ctx, db, tt.creds)
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, user)
				return
			}
			require.NotNil(t, user)
			assert.Equal(t, tt.wantID, user.ID)
		})
	}
}

func TestAuthenticate_PasswordWithBrokenHash(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ctrl := gomock.NewController(t)
	hasher := mock.NewMockPasswordHasher(ctrl)
	b := NewBackend(hasher, nil, logger.Nop())

	hash := "not-a-phc-string"
	_, err := model.NewLowboyUser{Username: "ada", Email: "ada@example.com", Password: &hash}.Create(ctx, db, now)
	require.NoError(t, err)

	hasher.EXPECT().Verify("secret123", hash).Return(false, crypto.ErrInvalidHash)

	user, err := b.Authenticate(ctx, db, PasswordCredentials{Username: "ada", Password: "secret123"})
	assert.NoError(t, err)
	assert.Nil(t, user)
}

// ─────────────────────────────────────────────
// OAuth
// ─────────────────────────────────────────────

func TestAuthenticate_OAuth(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fp := newFakeProvider(t)
	var calls []hookCall
	b := newTestBackend(t, &calls, fp.config())

	creds := OAuthCredentials{Provider: "github", Code: "the-code", OldState: "state", NewState: "state"}

	user, err := b.Authenticate(ctx, db, creds)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "octocat", user.Username)
	require.NotNil(t, user.AccessToken)
	assert.Equal(t, "gho_token", *user.AccessToken)

	require.Len(t, calls, 1)
	assert.Equal(t, "github", calls[0].details.Provider)
	assert.Equal(t, "The Octocat", calls[0].details.Name)
	require.NotNil(t, calls[0].details.AvatarURL)
	assert.Equal(t, "https://avatars.example.com/u/1", *calls[0].details.AvatarURL)

	again, err := b.Authenticate(ctx, db, creds)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, user.ID, again.ID, "a returning user is updated, not created")
	assert.Len(t, calls, 1)
}

func TestAuthenticate_OAuthStateMismatch(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fp := newFakeProvider(t)
	var calls []hookCall
	b := newTestBackend(t, &calls, fp.config())

	for _, creds := range []OAuthCredentials{
		{Provider: "github", Code: "the-code", OldState: "Y", NewState: "X"},
		{Provider: "github", Code: "the-code", OldState: "", NewState: ""},
		{Provider: "github", Code: "the-code", OldState: "state", NewState: "stat"},
	} {
		user, err := b.Authenticate(ctx, db, creds)
		assert.NoError(t, err)
		assert.Nil(t, user)
	}
	assert.Zero(t, fp.tokenHits, "the code is never exchanged")

	users, err := model.FindLowboyUserRecords(ctx, db, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuthenticate_OAuthErrors(t *testing.T) {
	ctx := context.Background()
	creds := OAuthCredentials{Provider: "github", Code: "the-code", OldState: "s", NewState: "s"}

	tests := []struct {
		name    string
		setup   func(fp *fakeProvider)
		creds   OAuthCredentials
		wantErr error
	}{
		{name: "code rejected", setup: func(fp *fakeProvider) { fp.tokenErr = true }, creds: creds, wantErr: ErrOAuth2},
		{name: "no email", setup: func(fp *fakeProvider) { fp.user["email"] = nil }, creds: creds, wantErr: ErrMissingEmail},
		{name: "unknown provider", setup: func(*fakeProvider) {}, creds: OAuthCredentials{Provider: "gitlab", OldState: "s", NewState: "s"}, wantErr: ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			fp := newFakeProvider(t)
			tt.setup(fp)
			var calls []hookCall
			b := newTestBackend(t, &calls, fp.config())

			user, err := b.Authenticate(ctx, db, tt.creds)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
			assert.Empty(t, calls)
		})
	}
}

func TestAuthenticate_OAuthUserInfoDown(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fp := newFakeProvider(t)
	cfg := fp.config()
	cfg.UserInfoURL = fp.server.URL + "/missing"
	var calls []hookCall
	b := newTestBackend(t, &calls, cfg)

	_, err := b.Authenticate(ctx, db, OAuthCredentials{Provider: "github", Code: "the-code", OldState: "s", NewState: "s"})
	assert.ErrorIs(t, err, ErrHTTP)
}

func TestStartOAuthAndCallback(t *testing.T) {
	fp := newFakeProvider(t)
	var calls []hookCall
	b := newTestBackend(t, &calls, fp.config())
	s := session.New()

	redirect, err := b.StartOAuth(s, "github", "/events")
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, fp.server.URL+"/authorize", u.Scheme+"://"+u.Host+u.Path)
	assert.Equal(t, "client", u.Query().Get("client_id"))
	assert.Equal(t, "http://127.0.0.1:3000/login/oauth", u.Query().Get("redirect_uri"))
	state := u.Query().Get("state")
	require.NotEmpty(t, state)

	creds, err := b.OAuthCallback(s, "the-code", state)
	require.NoError(t, err)
	assert.Equal(t, OAuthCredentials{Provider: "github", Code: "the-code", OldState: state, NewState: state, Next: "/events"}, creds)

	replayed, err := b.OAuthCallback(s, "the-code", state)
	require.NoError(t, err)
	assert.Empty(t, replayed.OldState, "the state is single use")

	_, err = b.StartOAuth(s, "gitlab", "")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

// ─────────────────────────────────────────────
// Session user
// ─────────────────────────────────────────────

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	var calls []hookCall
	b := newTestBackend(t, &calls)

	user, err := b.Register(ctx, db, Registration{Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	got, err := b.GetUser(ctx, db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = b.GetUser(ctx, db, user.ID+100)
	assert.ErrorIs(t, err, ErrStaleSession)
}

func TestLoginLogout(t *testing.T) {
	b := NewBackend(nil, nil, logger.Nop())
	s := session.New()
	hash := "$argon2id$hash"

	require.NoError(t, b.Login(s, model.LowboyUserRecord{ID: 7, Username: "ada", Password: &hash}))

	var id int64
	found, err := s.Get(KeyUserID, &id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(7), id)

	b.Logout(s)
	found, err = s.Get(KeyUserID, &id)
	require.NoError(t, err)
	assert.False(t, found)
}
