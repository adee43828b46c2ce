// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apperror

import (
	"context"
	"net/http"
	"sync"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// Slot holds the error a handler reported for the request.
type Slot struct {
	mu  sync.Mutex
	err *Error
}

// Set stashes err, replacing an earlier one.
func (s *Slot) Set(err *Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Peek returns the stashed error, or nil.
func (s *Slot) Peek() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Take returns the stashed error and empties the slot.
func (s *Slot) Take() *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.err
	s.err = nil
	return err
}

// WithSlot installs a fresh slot on ctx. An inner slot shadows outer ones.
func WithSlot(ctx context.Context) (context.Context, *Slot) {
	s := &Slot{}
	return context.WithValue(ctx, utils.ErrorSlotCtxKey, s), s
}

// SlotFromContext returns the innermost slot of ctx, or nil.
func SlotFromContext(ctx context.Context) *Slot {
	s, _ := ctx.Value(utils.ErrorSlotCtxKey).(*Slot)
	return s
}

// Write reports err as the outcome of the request. Internal causes are
// logged here. With a slot installed only the status is written and the
// error page is left to the slot's owner; without one a plain text body is
// written.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	appErr := From(err)
	if appErr == nil {
		return
	}

	if appErr.Kind == KindInternal {
		logger.FromRequest(r).Err(appErr.Cause).
			Str("func", "apperror.Write").
			Str("uri", r.RequestURI).
			Msg("internal error")
	}

	if slot := SlotFromContext(r.Context()); slot != nil {
		slot.Set(appErr)
		w.WriteHeader(appErr.Status())
		return
	}

	http.Error(w, appErr.PublicMessage(), appErr.Status())
}
