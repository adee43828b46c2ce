// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package flash keeps one-shot messages for the next rendered page. Messages
// live in the visitor's session, so a message added before a redirect is shown
// by the page the browser lands on.
package flash

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// SessionKey is the session key messages are stored under.
const SessionKey = "_flash"

// Level is the kind of a message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Message is one flash message.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Messages is the flash store of one request. A nil *Messages drops
// everything pushed to it.
type Messages struct {
	session *session.Session
}

// New returns the flash store backed by s.
func New(s *session.Session) *Messages {
	if s == nil {
		return nil
	}
	return &Messages{session: s}
}

// Push appends a message. Messages are written to the session immediately.
func (m *Messages) Push(level Level, text string) error {
	if m == nil {
		return nil
	}

	var list []Message
	if _, err := m.session.Get(SessionKey, &list); err != nil {
		return fmt.Errorf("reading flash messages: %w", err)
	}
	list = append(list, Message{Level: level, Text: text})
	return m.session.Insert(SessionKey, list)
}

func (m *Messages) Success(text string) error { return m.Push(LevelSuccess, text) }
func (m *Messages) Error(text string) error   { return m.Push(LevelError, text) }
func (m *Messages) Info(text string) error    { return m.Push(LevelInfo, text) }
func (m *Messages) Warning(text string) error { return m.Push(LevelWarning, text) }

// Drain returns the pending messages in the order they were pushed and
// removes them from the session.
func (m *Messages) Drain() ([]Message, error) {
	if m == nil {
		return nil, nil
	}

	var list []Message
	if _, err := m.session.Remove(SessionKey, &list); err != nil {
		return nil, fmt.Errorf("draining flash messages: %w", err)
	}
	return list, nil
}

// Peek returns the pending messages without removing them.
func (m *Messages) Peek() ([]Message, error) {
	if m == nil {
		return nil, nil
	}

	var list []Message
	if _, err := m.session.Get(SessionKey, &list); err != nil {
		return nil, fmt.Errorf("reading flash messages: %w", err)
	}
	return list, nil
}

// FromContext returns the flash store attached by [Middleware], or nil.
func FromContext(ctx context.Context) *Messages {
	m, _ := ctx.Value(utils.FlashCtxKey).(*Messages)
	return m
}

// FromRequest returns the flash store of the request, or nil.
func FromRequest(r *http.Request) *Messages {
	return FromContext(r.Context())
}

// Middleware attaches the flash store of the request's session. It must run
// inside the session manager.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromRequest(r)
		if s == nil {
			logger.FromRequest(r).Warn().Msg("flash middleware mounted outside the session manager")
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), utils.FlashCtxKey, New(s))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Push adds a message to the flash store of the request, logging failures.
// Controllers use it where a lost message must not fail the request.
func Push(r *http.Request, level Level, text string) {
	if err := FromRequest(r).Push(level, text); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "flash.Push").Msg("error storing flash message")
	}
}
