// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"sync"

	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// Renderable is anything that writes an HTML fragment.
type Renderable interface {
	Render(w io.Writer) error
}

// RenderFunc adapts a function to [Renderable].
type RenderFunc func(w io.Writer) error

// Render implements [Renderable].
func (f RenderFunc) Render(w io.Writer) error {
	return f(w)
}

// HTML is a trusted fragment rendered as is.
type HTML string

// Render implements [Renderable].
func (h HTML) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(h))
	return err
}

// Template renders the named template of T with Data.
type Template struct {
	T    *template.Template
	Name string
	Data any
}

// Render implements [Renderable].
func (t Template) Render(w io.Writer) error {
	return t.T.ExecuteTemplate(w, t.Name, t.Data)
}

// Placeholder is a view waiting for the layout.
type Placeholder struct {
	View    Renderable
	Context *Context
}

type slot struct {
	mu sync.Mutex
	p  *Placeholder
}

func (s *slot) set(p *Placeholder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

func (s *slot) peek() *Placeholder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p
}

func (s *slot) take() *Placeholder {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.p
	s.p = nil
	return p
}

func withSlot(ctx context.Context) (context.Context, *slot) {
	s := &slot{}
	return context.WithValue(ctx, utils.ViewSlotCtxKey, s), s
}

func slotFromContext(ctx context.Context) *slot {
	s, _ := ctx.Value(utils.ViewSlotCtxKey).(*slot)
	return s
}

// Show answers the request with v wrapped in the layout, using layoutCtx
// for the layout (nil is fine).
func Show(w http.ResponseWriter, r *http.Request, v Renderable, layoutCtx *Context) {
	ShowStatus(w, r, http.StatusOK, v, layoutCtx)
}

// ShowStatus is Show with an explicit status code. Without a ViewWrap
// around the handler the bare view is written.
func ShowStatus(w http.ResponseWriter, r *http.Request, status int, v Renderable, layoutCtx *Context) {
	if s := slotFromContext(r.Context()); s != nil {
		s.set(&Placeholder{View: v, Context: layoutCtx})
		w.WriteHeader(status)
		return
	}

	body, err := renderToBytes(v)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "view.ShowStatus").Msg("error rendering view")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	_, _ = utils.WriteHTML(w, body, status)
}

// Fragment writes v alone, without the layout. It is meant for responses
// swapped into an existing page.
func Fragment(w http.ResponseWriter, r *http.Request, status int, v Renderable) {
	body, err := renderToBytes(v)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "view.Fragment").Msg("error rendering fragment")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	_, _ = utils.WriteHTML(w, body, status)
}
