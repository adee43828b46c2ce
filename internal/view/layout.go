// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/MKhiriev/lowboy/internal/flash"
)

//go:embed templates/*.html
var templateFS embed.FS

// Defaults holds the built-in layout, error, login and registration
// templates. Applications may Clone it and redefine single blocks.
var Defaults = template.Must(template.New("lowboy").ParseFS(templateFS, "templates/*.html"))

// Page is what a layout renders: the inner view and its surroundings.
type Page struct {
	Messages []flash.Message
	Content  template.HTML
	// User is the application's domain user, nil for anonymous visitors.
	User    any
	Context *Context
}

// Layout wraps rendered views into a full document.
type Layout interface {
	Render(w io.Writer, page Page) error
}

// TemplateLayout renders the template Name of T with a [Page].
type TemplateLayout struct {
	T    *template.Template
	Name string
}

// Render implements [Layout].
func (l TemplateLayout) Render(w io.Writer, page Page) error {
	return l.T.ExecuteTemplate(w, l.Name, page)
}

// DefaultLayout is the built-in layout.
func DefaultLayout() Layout {
	return TemplateLayout{T: Defaults, Name: "layout"}
}

// ErrorViewFunc builds the view of an error page. message is safe to show.
type ErrorViewFunc func(status int, message string) Renderable

// ErrorPage is the data of the built-in error view.
type ErrorPage struct {
	Code    int
	Message string
}

// StatusText returns the reason phrase of Code.
func (e ErrorPage) StatusText() string {
	return http.StatusText(e.Code)
}

// DefaultErrorView is the built-in [ErrorViewFunc].
func DefaultErrorView(status int, message string) Renderable {
	return Template{T: Defaults, Name: "error", Data: ErrorPage{Code: status, Message: message}}
}

func renderToBytes(v Renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
