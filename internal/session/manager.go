// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/utils"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "id"
	// DefaultInactivityExpiry is how long an untouched session lives.
	DefaultInactivityExpiry = 24 * time.Hour
)

// Manager is the session middleware. It loads the session named by the
// signed cookie, attaches it to the request context and stores it again
// right before the response headers are written.
type Manager struct {
	store  Store
	signer *utils.Signer
	ids    IDGenerator
	now    func() time.Time
	expiry time.Duration
	secure bool
	logger *logger.Logger
}

// ManagerOption customises [NewManager].
type ManagerOption func(*Manager)

// WithSecureCookie sets the Secure attribute of the session cookie.
func WithSecureCookie(secure bool) ManagerOption {
	return func(m *Manager) { m.secure = secure }
}

// WithInactivityExpiry replaces the one day inactivity expiry.
func WithInactivityExpiry(d time.Duration) ManagerOption {
	return func(m *Manager) { m.expiry = d }
}

// WithManagerClock replaces time.Now.
func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

// WithManagerIDGenerator replaces the UUIDv7 session id generator.
func WithManagerIDGenerator(ids IDGenerator) ManagerOption {
	return func(m *Manager) { m.ids = ids }
}

// NewManager returns a Manager storing sessions in st and signing cookies
// with key.
func NewManager(st Store, key []byte, log *logger.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  st,
		signer: utils.NewSigner(key),
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
		expiry: DefaultInactivityExpiry,
		logger: log.Component("session"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Middleware attaches the request's [*Session] to the context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s := m.load(ctx, r)

		sw := &sessionWriter{ResponseWriter: w}
		sw.commit = func() {
			cookie, err := m.persist(ctx, s)
			if err != nil {
				logger.FromContext(ctx).Err(err).Str("func", "*Manager.Middleware").Msg("error saving session")
				return
			}
			if cookie != nil {
				http.SetCookie(w, cookie)
			}
		}

		next.ServeHTTP(sw, r.WithContext(WithSession(ctx, s)))
		sw.commitOnce()

		// values changed after the headers went out still reach the store;
		// only the cookie cannot change any more
		if s.IsModified() {
			if _, err := m.persist(ctx, s); err != nil {
				logger.FromContext(ctx).Err(err).Str("func", "*Manager.Middleware").Msg("error saving session after response")
			}
		}
	})
}

func (m *Manager) load(ctx context.Context, r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return New()
	}

	log := logger.FromContext(ctx)
	id, ok := m.signer.Verify(c.Value)
	if !ok {
		log.Debug().Msg("ignoring session cookie with a bad signature")
		return New()
	}

	record, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Err(err).Str("func", "*Manager.load").Msg("error loading session")
		}
		return New()
	}

	values, err := decodeValues(record.Data)
	if err != nil {
		log.Err(err).Str("func", "*Manager.load").Msg("discarding undecodable session")
		return New()
	}
	return newSession(record.ID, values, record.ExpiryDate)
}

// persist writes s to the store and returns the cookie to send, or nil when
// the cookie does not change.
func (m *Manager) persist(ctx context.Context, s *Session) (*http.Cookie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// an untouched, non-empty session is saved anyway so its inactivity
	// expiry moves forward
	if !s.modified && (s.id == "" || len(s.values) == 0) {
		return nil, nil
	}

	oldID := s.id
	if (s.flushed || s.cycled) && oldID != "" {
		if err := m.store.Delete(ctx, oldID); err != nil {
			return nil, err
		}
		s.id = ""
	}
	s.flushed, s.cycled = false, false

	if len(s.values) == 0 {
		if s.id != "" {
			if err := m.store.Delete(ctx, s.id); err != nil {
				return nil, err
			}
			s.id = ""
		}
		s.modified = false
		if oldID == "" {
			return nil, nil
		}
		return m.removalCookie(), nil
	}

	data, err := encodeValues(s.values)
	if err != nil {
		return nil, err
	}
	s.expiry = m.now().Add(m.expiry)

	if s.id == "" {
		record := &Record{ID: m.ids.Generate(), Data: data, ExpiryDate: s.expiry}
		if err = m.store.Create(ctx, record); err != nil {
			return nil, err
		}
		s.id = record.ID
	} else if err = m.store.Save(ctx, Record{ID: s.id, Data: data, ExpiryDate: s.expiry}); err != nil {
		return nil, err
	}
	s.modified = false

	return &http.Cookie{
		Name:     CookieName,
		Value:    m.signer.Sign(s.id),
		Path:     "/",
		Expires:  s.expiry,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

func (m *Manager) removalCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionWriter saves the session right before the first byte of the
// response is written, so the cookie can still be set.
type sessionWriter struct {
	http.ResponseWriter
	commit func()
	once   sync.Once
}

func (w *sessionWriter) commitOnce() {
	w.once.Do(w.commit)
}

func (w *sessionWriter) WriteHeader(statusCode int) {
	w.commitOnce()
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commitOnce()
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher for streaming responses.
func (w *sessionWriter) Flush() {
	w.commitOnce()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
