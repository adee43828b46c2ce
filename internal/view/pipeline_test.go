// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/flash"
	"github.com/MKhiriev/lowboy/internal/session"
)

// testLayout prints every part of the page on its own line.
var testLayout = TemplateLayout{
	T: template.Must(template.New("").Parse(`{{define "page"}}` +
		`{{range .Context.Keys}}{{.}}={{$.Context.Get .}};{{end}}` + "\n" +
		`{{range .Messages}}{{.Level}}:{{.Text}};{{end}}` + "\n" +
		`{{with .User}}user={{.}}{{else}}anonymous{{end}}` + "\n" +
		`{{.Content}}{{end}}`)),
	Name: "page",
}

func newTestPipeline(opts ...Option) *Pipeline {
	return NewPipeline(append([]Option{
		WithLayout(testLayout),
		WithAppTitle("Demo App"),
		WithVersion("1.2.3"),
	}, opts...)...)
}

func serve(h http.Handler, s *session.Session) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if s != nil {
		r = r.WithContext(session.WithSession(r.Context(), s))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// ─────────────────────────────────────────────
// View wrap
// ─────────────────────────────────────────────

func TestViewWrap(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantBody   string
		wantHTML   bool
	}{
		{
			name: "view in layout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				Show(w, r, HTML("<p>hi</p>"), Title("Home"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "lowboy_version=1.2.3;app_title=Demo App;title=Home;\n\nanonymous\n<p>hi</p>",
			wantHTML:   true,
		},
		{
			name: "status of the view is kept",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ShowStatus(w, r, http.StatusUnprocessableEntity, HTML("<p>fix it</p>"), nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "lowboy_version=1.2.3;app_title=Demo App;\n\nanonymous\n<p>fix it</p>",
			wantHTML:   true,
		},
		{
			name: "handler context overrides seeded keys",
			handler: func(w http.ResponseWriter, r *http.Request) {
				Show(w, r, HTML("x"), NewContext(KeyAppTitle, "Other"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "lowboy_version=1.2.3;app_title=Other;\n\nanonymous\nx",
			wantHTML:   true,
		},
		{
			name: "plain response passes through",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusTeapot)
				_, _ = w.Write([]byte("short and stout"))
			},
			wantStatus: http.StatusTeapot,
			wantBody:   "short and stout",
		},
		{
			name: "fragment skips the layout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				Fragment(w, r, http.StatusCreated, HTML("<li>post</li>"))
			},
			wantStatus: http.StatusCreated,
			wantBody:   "<li>post</li>",
			wantHTML:   true,
		},
		{
			name: "skeleton body is dropped",
			handler: func(w http.ResponseWriter, r *http.Request) {
				Show(w, r, HTML("page"), nil)
				_, _ = w.Write([]byte("skeleton"))
			},
			wantStatus: http.StatusOK,
			wantBody:   "lowboy_version=1.2.3;app_title=Demo App;\n\nanonymous\npage",
			wantHTML:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTestPipeline().ViewWrap(tt.handler), nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())
			if tt.wantHTML {
				assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestViewWrap_UserAndFlash(t *testing.T) {
	s := session.New()
	messages := flash.New(s)
	require.NoError(t, messages.Success("Registration successful!"))
	require.NoError(t, messages.Error("second"))

	p := newTestPipeline(WithUserLoader(func(*http.Request) (any, error) { return "ada", nil }))
	handler := p.ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Show(w, r, HTML("home"), nil)
	}))

	w := serve(handler, s)
	assert.Equal(t, "lowboy_version=1.2.3;app_title=Demo App;\nsuccess:Registration successful!;error:second;\nuser=ada\nhome", w.Body.String())

	left, err := messages.Peek()
	require.NoError(t, err)
	assert.Empty(t, left, "messages are shown once")

	w = serve(handler, s)
	assert.Contains(t, w.Body.String(), "\n\nuser=ada")
}

func TestViewWrap_Failures(t *testing.T) {
	broken := RenderFunc(func(io.Writer) error { return errors.New("template exploded") })

	t.Run("view fails", func(t *testing.T) {
		h := newTestPipeline().ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Show(w, r, broken, nil)
		}))
		w := serve(h, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "title=Error;")
		assert.NotContains(t, w.Body.String(), "exploded")
	})

	t.Run("user lookup fails", func(t *testing.T) {
		p := newTestPipeline(WithUserLoader(func(*http.Request) (any, error) { return nil, errors.New("pool closed") }))
		h := p.ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Show(w, r, HTML("home"), nil)
		}))
		w := serve(h, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "anonymous")
		assert.Contains(t, w.Body.String(), "500 Internal Server Error")
		assert.NotContains(t, w.Body.String(), "pool closed")
	})

	t.Run("layout fails", func(t *testing.T) {
		layout := TemplateLayout{T: template.Must(template.New("x").Parse(`{{define "page"}}{{.Nope}}{{end}}`)), Name: "page"}
		h := NewPipeline(WithLayout(layout)).ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Show(w, r, HTML("home"), nil)
		}))
		w := serve(h, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Internal Server Error\n", w.Body.String())
	})
}

func TestShowWithoutPipeline(t *testing.T) {
	w := serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ShowStatus(w, r, http.StatusAccepted, HTML("<p>bare</p>"), Title("ignored"))
	}), nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "<p>bare</p>", w.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
}

// ─────────────────────────────────────────────
// Error wrap
// ─────────────────────────────────────────────

func TestErrorWrap(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
		hidden     string
	}{
		{
			name:       "bad request",
			err:        apperror.BadRequest("Invalid CSRF state"),
			wantStatus: http.StatusBadRequest,
			wantText:   "Invalid CSRF state",
		},
		{
			name:       "not found",
			err:        apperror.NotFound(""),
			wantStatus: http.StatusNotFound,
			wantText:   "404 Not Found",
		},
		{
			name:       "internal cause is hidden",
			err:        errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantText:   "Internal Server Error",
			hidden:     "database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestPipeline().ErrorWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				apperror.Write(w, r, tt.err)
				_, _ = w.Write([]byte("skeleton"))
			}))
			w := serve(h, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			body := w.Body.String()
			assert.True(t, strings.HasPrefix(body, "lowboy_version=1.2.3;app_title=Demo App;title=Error;"), body)
			assert.Contains(t, body, tt.wantText)
			assert.NotContains(t, body, "skeleton")
			if tt.hidden != "" {
				assert.NotContains(t, body, tt.hidden)
			}
		})
	}
}

func TestErrorWrap_Stacked(t *testing.T) {
	p := newTestPipeline()

	var outerSawUser bool
	inner := p.ErrorWrap(p.ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apperror.Write(w, r, apperror.Forbidden("keep out"))
	})))
	auth := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("fail") {
			apperror.Write(w, r, apperror.Unauthorized("who are you"))
			return
		}
		outerSawUser = true
		inner.ServeHTTP(w, r)
	})
	h := p.ErrorWrap(auth)

	w := serve(h, nil)
	assert.True(t, outerSawUser)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), "title=Error;"), "rendered once")
	assert.Contains(t, w.Body.String(), "keep out")

	r := httptest.NewRequest(http.MethodGet, "/?fail", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "who are you")
}

func TestErrorWrap_PassThrough(t *testing.T) {
	h := newTestPipeline().ErrorWrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Location", "/login")
		w.WriteHeader(http.StatusSeeOther)
	}))
	w := serve(h, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Empty(t, w.Body.String())
}

func TestErrorWrap_LoaderFailureRendersAnonymously(t *testing.T) {
	p := newTestPipeline(WithUserLoader(func(*http.Request) (any, error) { return nil, errors.New("boom") }))
	h := p.ErrorWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apperror.Write(w, r, apperror.NotFound("no such page"))
	}))
	w := serve(h, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "anonymous")
	assert.Contains(t, w.Body.String(), "no such page")
}

// ─────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────

func TestDefaultTemplates(t *testing.T) {
	s := session.New()
	require.NoError(t, flash.New(s).Info("<b>hello</b>"))

	p := NewPipeline(WithAppTitle("Demo App"), WithVersion("0.1.0"))
	h := p.ErrorWrap(p.ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			apperror.Write(w, r, apperror.NotFound(""))
			return
		}
		Show(w, r, HTML("<p>content</p>"), Title("Home"))
	})))

	w := serve(h, s)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "<title>Home | Demo App</title>")
	assert.Contains(t, body, "<p>content</p>")
	assert.Contains(t, body, `class="flash flash-info"`)
	assert.Contains(t, body, "&lt;b&gt;hello&lt;/b&gt;", "flash text is escaped")
	assert.Contains(t, body, "lowboy 0.1.0")

	r := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<title>Error | Demo App</title>")
	assert.Contains(t, w.Body.String(), "<h1>404 Not Found</h1>")
}

func TestInterceptWriter_Flush(t *testing.T) {
	h := newTestPipeline().ViewWrap(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: NewPost\ndata: x\n\n"))
		http.NewResponseController(w).Flush()
	}))
	w := serve(h, nil)

	assert.True(t, w.Flushed)
	assert.Equal(t, "event: NewPost\ndata: x\n\n", w.Body.String())
}
