// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package apperror defines the typed errors lowboy handlers return and the
// per-request slot that carries them to the error page middleware.
//
// A handler reports a failure with [Write]. When an error slot is installed
// on the request (see [WithSlot]) the error is stashed there and only a
// skeleton response is written; the middleware that owns the slot replaces it
// with a rendered error page at the same status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/validators"
)

// Kind classifies an [Error].
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindMethodNotAllowed
)

var kindStatus = map[Kind]int{
	KindInternal:         http.StatusInternalServerError,
	KindBadRequest:       http.StatusBadRequest,
	KindUnauthorized:     http.StatusUnauthorized,
	KindForbidden:        http.StatusForbidden,
	KindNotFound:         http.StatusNotFound,
	KindMethodNotAllowed: http.StatusMethodNotAllowed,
}

// Status returns the HTTP status code of k.
func (k Kind) Status() int {
	if status, ok := kindStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is a failure with a kind and an optional visitor-facing message.
type Error struct {
	Kind Kind
	// Message is shown on the error page. Internal errors never show it.
	Message string
	// Cause is logged, never shown.
	Cause error
}

// Error renders "400 Bad Request" style text, followed by the message.
func (e *Error) Error() string {
	status := e.Status()
	text := fmt.Sprintf("%d %s", status, http.StatusText(status))
	if e.Message != "" {
		text += ": " + e.Message
	}
	if e.Cause != nil {
		text += ": " + e.Cause.Error()
	}
	return text
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status code of the error.
func (e *Error) Status() int {
	return e.Kind.Status()
}

// PublicMessage is the text an error page may show: the literal
// "Internal Server Error" for internal errors, otherwise the message or the
// status text.
func (e *Error) PublicMessage() string {
	if e.Kind == KindInternal {
		return http.StatusText(http.StatusInternalServerError)
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status())
}

func BadRequest(msg string) *Error   { return &Error{Kind: KindBadRequest, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }

// MethodNotAllowed is answered for a known path with an unknown method.
func MethodNotAllowed() *Error { return &Error{Kind: KindMethodNotAllowed} }

// Internal wraps cause as an internal error.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Cause: cause}
}

var errorKindMap = map[error]Kind{
	model.ErrNotFound:          KindNotFound,
	model.ErrUserConflict:      KindBadRequest,
	model.ErrTokenVerification: KindBadRequest,
	validators.ErrInvalidForm:  KindBadRequest,
	validators.ErrUnknownField: KindBadRequest,
}

// From converts err into an *Error. Errors that already are an *Error are
// returned as is; known sentinels get their kind; everything else is
// internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	for target, kind := range errorKindMap {
		if errors.Is(err, target) {
			return &Error{Kind: kind, Message: messageFor(err), Cause: err}
		}
	}
	return Internal(err)
}

// messageFor keeps form messages, which are written for visitors, and drops
// the text of every other error.
func messageFor(err error) string {
	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return strings.Join(fieldErrs.Messages(), "; ")
	}
	return ""
}
