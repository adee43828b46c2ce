// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/flash"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// ErrorTitle is the page title of every error page.
const ErrorTitle = "Error"

// UserLoader returns the domain user of the request, nil when anonymous.
type UserLoader func(r *http.Request) (any, error)

// Pipeline renders stashed views and errors through the layout.
type Pipeline struct {
	layout    Layout
	errorView ErrorViewFunc
	loadUser  UserLoader
	appTitle  string
	version   string
}

// Option customises [NewPipeline].
type Option func(*Pipeline)

// WithLayout replaces [DefaultLayout].
func WithLayout(l Layout) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.layout = l
		}
	}
}

// WithErrorView replaces [DefaultErrorView].
func WithErrorView(f ErrorViewFunc) Option {
	return func(p *Pipeline) {
		if f != nil {
			p.errorView = f
		}
	}
}

// WithUserLoader sets how the layout gets the logged-in user.
func WithUserLoader(f UserLoader) Option {
	return func(p *Pipeline) { p.loadUser = f }
}

// WithAppTitle sets the app_title layout key.
func WithAppTitle(title string) Option {
	return func(p *Pipeline) { p.appTitle = title }
}

// WithVersion sets the lowboy_version layout key.
func WithVersion(version string) Option {
	return func(p *Pipeline) { p.version = version }
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		layout:    DefaultLayout(),
		errorView: DefaultErrorView,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ViewWrap renders the view a handler stashed with [Show] inside the
// layout. The handler's status is kept; a view stashed without a status
// gets 200. Responses without a view pass through untouched.
func (p *Pipeline) ViewWrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, s := withSlot(r.Context())
		r = r.WithContext(ctx)
		iw := newInterceptWriter(w, func() bool { return s.peek() != nil })

		next.ServeHTTP(iw, r)

		if iw.passedThrough() {
			return
		}
		placeholder := s.take()
		if placeholder == nil {
			return
		}

		status := iw.status
		if status == 0 {
			status = http.StatusOK
		}
		if err := p.renderPage(w, r, status, placeholder, true); err != nil {
			p.renderError(w, r, apperror.Internal(err))
		}
	})
}

// ErrorWrap renders the error a handler reported with [apperror.Write] as
// an error page at the error's status. Only the innermost ErrorWrap sees
// an error.
func (p *Pipeline) ErrorWrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, s := apperror.WithSlot(r.Context())
		iw := newInterceptWriter(w, func() bool { return s.Peek() != nil })

		next.ServeHTTP(iw, r.WithContext(ctx))

		if iw.passedThrough() {
			return
		}
		if appErr := s.Take(); appErr != nil {
			p.renderError(w, r, appErr)
		}
	})
}

// renderError shows appErr through the error view. Internal details never
// reach the page.
func (p *Pipeline) renderError(w http.ResponseWriter, r *http.Request, appErr *apperror.Error) {
	placeholder := &Placeholder{
		View:    p.errorView(appErr.Status(), appErr.PublicMessage()),
		Context: Title(ErrorTitle),
	}
	if err := p.renderPage(w, r, appErr.Status(), placeholder, false); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Pipeline.renderError").Msg("error rendering error page")
		http.Error(w, appErr.PublicMessage(), appErr.Status())
	}
}

// renderPage writes the layout around placeholder. A failing user lookup
// fails the page when strictUser is set, and renders it anonymously
// otherwise, so error pages never fail on it.
func (p *Pipeline) renderPage(w http.ResponseWriter, r *http.Request, status int, placeholder *Placeholder, strictUser bool) error {
	content, err := renderToBytes(placeholder.View)
	if err != nil {
		return fmt.Errorf("rendering view: %w", err)
	}

	var user any
	if p.loadUser != nil {
		user, err = p.loadUser(r)
		if err != nil {
			if strictUser {
				return fmt.Errorf("loading user: %w", err)
			}
			logger.FromRequest(r).Err(err).Str("func", "*Pipeline.renderPage").Msg("rendering error page without user")
		}
	}

	layoutCtx := NewContext(KeyVersion, p.version, KeyAppTitle, p.appTitle).Merge(placeholder.Context)

	flashes := flash.New(session.FromRequest(r))
	messages, err := flashes.Peek()
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Pipeline.renderPage").Msg("dropping undecodable flash messages")
	}

	body, err := renderToBytes(RenderFunc(func(buf io.Writer) error {
		return p.layout.Render(buf, Page{
			Messages: messages,
			Content:  template.HTML(content),
			User:     user,
			Context:  layoutCtx,
		})
	}))
	if err != nil {
		return fmt.Errorf("rendering layout: %w", err)
	}

	// drained before the first write, which commits the session
	if _, err = flashes.Drain(); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Pipeline.renderPage").Msg("error draining flash messages")
	}

	_, err = utils.WriteHTML(w, body, status)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Pipeline.renderPage").Msg("error writing page")
	}
	return nil
}
