// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/lowboy/internal/crypto"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/store"
)

// Backend authenticates visitors and manages their login state.
type Backend struct {
	hasher    crypto.PasswordHasher
	providers *Providers
	onNewUser NewUserHook
	now       func() time.Time
	logger    *logger.Logger
}

// BackendOption customises [NewBackend].
type BackendOption func(*Backend)

// WithNewUserHook sets the hook run for every newly created user.
func WithNewUserHook(hook NewUserHook) BackendOption {
	return func(b *Backend) { b.onNewUser = hook }
}

// WithBackendClock replaces time.Now.
func WithBackendClock(now func() time.Time) BackendOption {
	return func(b *Backend) { b.now = now }
}

func NewBackend(hasher crypto.PasswordHasher, providers *Providers, log *logger.Logger, opts ...BackendOption) *Backend {
	b := &Backend{
		hasher:    hasher,
		providers: providers,
		now:       time.Now,
		logger:    log.Component("auth"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Providers returns the configured OAuth providers.
func (b *Backend) Providers() *Providers {
	return b.providers
}

// Authenticate verifies creds. A nil user with a nil error means the
// credentials were rejected: unknown user, wrong password or a CSRF state
// mismatch.
func (b *Backend) Authenticate(ctx context.Context, q store.Querier, creds Credentials) (*model.LowboyUserRecord, error) {
	switch c := creds.(type) {
	case PasswordCredentials:
		return b.authenticatePassword(ctx, q, c)
	case OAuthCredentials:
		return b.authenticateOAuth(ctx, q, c)
	default:
		return nil, fmt.Errorf("auth: unsupported credentials %T", creds)
	}
}

func (b *Backend) authenticatePassword(ctx context.Context, q store.Querier, c PasswordCredentials) (*model.LowboyUserRecord, error) {
	user, err := model.FindUserByUsernameHavingPassword(ctx, q, c.Username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ok, err := b.hasher.Verify(c.Password, *user.Password)
	if err != nil {
		b.logger.Err(err).Str("func", "*Backend.authenticatePassword").Int64("user_id", user.ID).Msg("stored password hash is unusable")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (b *Backend) authenticateOAuth(ctx context.Context, q store.Querier, c OAuthCredentials) (*model.LowboyUserRecord, error) {
	if c.OldState == "" || subtle.ConstantTimeCompare([]byte(c.OldState), []byte(c.NewState)) != 1 {
		return nil, nil
	}

	provider, ok := b.providers.Get(c.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}

	identity, token, err := provider.identify(ctx, c.Code)
	if err != nil {
		return nil, err
	}

	user, op, err := model.NewLowboyUser{
		Username:    identity.Login,
		Email:       identity.Email,
		AccessToken: &token.AccessToken,
	}.CreateOrUpdate(ctx, q, b.now())
	if err != nil {
		return nil, err
	}

	b.logger.Info().Str("provider", provider.Name()).Int64("user_id", user.ID).Stringer("operation", op).Msg("oauth login")
	if op == model.OperationCreate {
		details := RegistrationDetails{Provider: provider.Name(), Name: identity.Name}
		if identity.AvatarURL != "" {
			details.AvatarURL = &identity.AvatarURL
		}
		b.runNewUserHook(ctx, q, user, details)
	}
	return &user, nil
}

// Registration is a password signup.
type Registration struct {
	Name     string
	Username string
	Email    string
	Password string
}

// Register creates a password user and runs the new user hook. A taken
// username or email returns [ErrUserExists].
func (b *Backend) Register(ctx context.Context, q store.Querier, reg Registration) (model.LowboyUserRecord, error) {
	hash, err := b.hasher.Hash(reg.Password)
	if err != nil {
		return model.LowboyUserRecord{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := model.NewLowboyUser{
		Username: reg.Username,
		Email:    reg.Email,
		Password: &hash,
	}.Create(ctx, q, b.now())
	if store.IsUniqueViolation(err) {
		return model.LowboyUserRecord{}, ErrUserExists
	}
	if err != nil {
		return model.LowboyUserRecord{}, err
	}

	// no mail is sent yet; the link is only reachable through the log
	if pending, err := model.FindUnverifiedEmail(ctx, q, reg.Email); err == nil {
		b.logger.Debug().Int64("user_id", user.ID).Str("verify_path", pending.VerificationPath()).Msg("email verification pending")
	}

	b.runNewUserHook(ctx, q, user, RegistrationDetails{Provider: ProviderLocal, Name: reg.Name})
	return user, nil
}

func (b *Backend) runNewUserHook(ctx context.Context, q store.Querier, user model.LowboyUserRecord, details RegistrationDetails) {
	if b.onNewUser == nil {
		return
	}
	if err := b.onNewUser(ctx, q, user, details); err != nil {
		b.logger.Err(err).Str("func", "*Backend.runNewUserHook").Int64("user_id", user.ID).Str("provider", details.Provider).Msg("new user hook failed")
	}
}

// GetUser reloads the user a session refers to. A user that no longer
// exists yields [ErrStaleSession].
func (b *Backend) GetUser(ctx context.Context, q store.Querier, id int64) (model.LowboyUserRecord, error) {
	user, err := model.ReadLowboyUserRecord(ctx, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.LowboyUserRecord{}, fmt.Errorf("%w: user %d", ErrStaleSession, id)
	}
	return user, err
}

// Login remembers user on s under a fresh session id.
func (b *Backend) Login(s *session.Session, user model.LowboyUserRecord) error {
	s.CycleID()
	if err := s.Insert(KeyUserID, user.ID); err != nil {
		return err
	}
	return s.Insert(KeyAuthHash, user.SessionAuthHash())
}

// Logout forgets everything on s.
func (b *Backend) Logout(s *session.Session) {
	s.Flush()
}

// StartOAuth stores a fresh CSRF state, the provider and the post-login
// target on s and returns the provider url to redirect the visitor to.
func (b *Backend) StartOAuth(s *session.Session, providerName, next string) (string, error) {
	provider, ok := b.providers.Get(providerName)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, providerName)
	}

	url, state := provider.AuthorizeURL()
	if err := s.Insert(KeyCSRFState, state); err != nil {
		return "", err
	}
	if err := s.Insert(KeyProvider, provider.Name()); err != nil {
		return "", err
	}
	if next != "" {
		if err := s.Insert(KeyNextURL, next); err != nil {
			return "", err
		}
	}
	return url, nil
}

// OAuthCallback builds the credentials of a provider callback from the
// values StartOAuth stored on s. The CSRF state is removed from s so it is
// used at most once.
func (b *Backend) OAuthCallback(s *session.Session, code, state string) (OAuthCredentials, error) {
	creds := OAuthCredentials{Code: code, NewState: state}
	if _, err := s.Remove(KeyCSRFState, &creds.OldState); err != nil {
		return creds, err
	}
	if _, err := s.Get(KeyProvider, &creds.Provider); err != nil {
		return creds, err
	}
	if _, err := s.Remove(KeyNextURL, &creds.Next); err != nil {
		return creds, err
	}
	return creds, nil
}
