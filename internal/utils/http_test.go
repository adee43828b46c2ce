// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteHTML_Success(t *testing.T) {
	w := httptest.NewRecorder()
	body := []byte("<h1>hello</h1>")

	n, err := WriteHTML(w, body, http.StatusOK)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if n != len(body) {
		t.Errorf("expected %d bytes written, got %d", len(body), n)
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if cl := w.Header().Get("Content-Length"); cl != "14" {
		t.Errorf("expected Content-Length 14, got %q", cl)
	}
	if w.Body.String() != string(body) {
		t.Errorf("expected body %s, got %s", body, w.Body.String())
	}
}

func TestWriteHTML_CustomStatusCode(t *testing.T) {
	w := httptest.NewRecorder()

	_, err := WriteHTML(w, []byte("<p>gone</p>"), http.StatusNotFound)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestSeeOther(t *testing.T) {
	w := httptest.NewRecorder()

	SeeOther(w, "/login?next=%2Fevents")

	if w.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?next=%2Fevents" {
		t.Errorf("unexpected Location %q", loc)
	}
}
