// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/lowboy/internal/utils"
)

// Session is the state of one visitor, attached to the request context by
// [Manager]. Values are stored as JSON so any serialisable type can be kept;
// reads decode into the destination the caller hands in.
type Session struct {
	mu       sync.Mutex
	id       string
	values   map[string]json.RawMessage
	expiry   time.Time
	modified bool
	flushed  bool
	cycled   bool
}

func newSession(id string, values map[string]json.RawMessage, expiry time.Time) *Session {
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	return &Session{id: id, values: values, expiry: expiry}
}

// New returns an empty session that was never stored. [Manager] attaches one
// to every request without a valid cookie.
func New() *Session {
	return newSession("", nil, time.Time{})
}

// ID returns the current session id, empty for a session that was never
// stored.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Get decodes the value under key into dst. It reports false when the key is
// absent.
func (s *Session) Get(key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("%w: key %q: %w", ErrDecoding, key, err)
	}
	return true, nil
}

// Insert stores v under key.
func (s *Session) Insert(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: key %q: %w", ErrEncoding, key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	s.modified = true
	return nil
}

// Remove deletes key, decoding its value into dst first when dst is not nil.
// It reports whether the key was present.
func (s *Session) Remove(key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.values[key]
	if !ok {
		return false, nil
	}
	delete(s.values, key)
	s.modified = true

	if dst != nil {
		if err := json.Unmarshal(raw, dst); err != nil {
			return true, fmt.Errorf("%w: key %q: %w", ErrDecoding, key, err)
		}
	}
	return true, nil
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Flush clears all values and deletes the session from the store at the end
// of the request.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]json.RawMessage)
	s.flushed = true
	s.modified = true
}

// CycleID keeps the values but moves them to a fresh id when the session is
// saved. Login does this to prevent session fixation.
func (s *Session) CycleID() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycled = true
	s.modified = true
}

// IsModified reports whether the session changed since it was loaded.
func (s *Session) IsModified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}

// FromContext returns the session attached to ctx, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(utils.SessionCtxKey).(*Session)
	return s
}

// FromRequest returns the session of the request, or nil outside
// [Manager].
func FromRequest(r *http.Request) *Session {
	return FromContext(r.Context())
}

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, utils.SessionCtxKey, s)
}

// encodeValues serialises the value map into the opaque record payload.
func encodeValues(values map[string]json.RawMessage) ([]byte, error) {
	plain := make(map[string][]byte, len(values))
	for k, v := range values {
		plain[k] = v
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(plain); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

// decodeValues is the inverse of encodeValues.
func decodeValues(data []byte) (map[string]json.RawMessage, error) {
	var plain map[string][]byte
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&plain); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}

	values := make(map[string]json.RawMessage, len(plain))
	for k, v := range plain {
		values[k] = v
	}
	return values, nil
}
