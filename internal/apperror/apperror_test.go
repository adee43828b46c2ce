// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/validators"
)

// ─────────────────────────────────────────────
// Error
// ─────────────────────────────────────────────

func TestError_StatusAndText(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
		wantText   string
		wantPublic string
	}{
		{name: "bad request", err: BadRequest("Invalid CSRF state"), wantStatus: 400, wantText: "400 Bad Request: Invalid CSRF state", wantPublic: "Invalid CSRF state"},
		{name: "unauthorized", err: Unauthorized(""), wantStatus: 401, wantText: "401 Unauthorized", wantPublic: "Unauthorized"},
		{name: "forbidden", err: Forbidden("no"), wantStatus: 403, wantText: "403 Forbidden: no", wantPublic: "no"},
		{name: "not found", err: NotFound(""), wantStatus: 404, wantText: "404 Not Found", wantPublic: "Not Found"},
		{name: "method not allowed", err: MethodNotAllowed(), wantStatus: 405, wantText: "405 Method Not Allowed", wantPublic: "Method Not Allowed"},
		{name: "internal hides cause", err: Internal(errors.New("pool exhausted")), wantStatus: 500, wantText: "500 Internal Server Error: pool exhausted", wantPublic: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status())
			assert.Equal(t, tt.wantText, tt.err.Error())
			assert.Equal(t, tt.wantPublic, tt.err.PublicMessage())
		})
	}
}

func TestFrom(t *testing.T) {
	cause := errors.New("disk I/O error")
	wrapped := fmt.Errorf("loading: %w", NotFound("no post"))

	assert.Nil(t, From(nil))
	assert.Equal(t, KindNotFound, From(wrapped).Kind)
	assert.Equal(t, "no post", From(wrapped).Message)

	fromModel := From(fmt.Errorf("reading user: %w", model.ErrNotFound))
	assert.Equal(t, KindNotFound, fromModel.Kind)
	assert.ErrorIs(t, fromModel, model.ErrNotFound)

	assert.Equal(t, KindBadRequest, From(validators.FieldErrors{{Field: "name", Message: "x"}}).Kind)

	internal := From(cause)
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Empty(t, internal.Message)
	assert.ErrorIs(t, internal, cause)
}

// ─────────────────────────────────────────────
// Write
// ─────────────────────────────────────────────

func TestWrite_WithoutSlot(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Write(w, r, errors.New("secret details"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
}

func TestWrite_WithSlot(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, slot := WithSlot(r.Context())
	r = r.WithContext(ctx)

	Write(w, r, BadRequest("Invalid CSRF state"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Body.String(), "the page is left to the slot's owner")

	stashed := slot.Peek()
	require.NotNil(t, stashed)
	assert.Equal(t, "Invalid CSRF state", stashed.Message)

	assert.Same(t, stashed, slot.Take())
	assert.Nil(t, slot.Peek())
}

func TestSlot_InnerShadowsOuter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	outerCtx, outer := WithSlot(r.Context())
	innerCtx, inner := WithSlot(outerCtx)

	Write(httptest.NewRecorder(), r.WithContext(innerCtx), NotFound(""))

	assert.NotNil(t, inner.Peek())
	assert.Nil(t, outer.Peek())
	assert.Same(t, outer, SlotFromContext(outerCtx))
}

func TestFrom_KeepsOnlyFormMessages(t *testing.T) {
	assert.Empty(t, From(fmt.Errorf("user 7: %w", model.ErrNotFound)).Message)

	formErr := From(validators.FieldErrors{{Field: "name", Message: "Your name cannot be empty"}, {Field: "email", Message: "Email provided is not valid"}})
	assert.Equal(t, "Your name cannot be empty; Email provided is not valid", formErr.Message)
}
