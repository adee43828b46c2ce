package http

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/lowboy/internal/appctx"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/flash"
)

// Init builds the router. appRoutes registers the application's own
// routes; they run behind the same middleware stack as the framework's.
// static, when not nil, is served under /static/.
//
// The order of the stack matters: the outer error wrap renders failures of
// the session, flash and auth layers, the inner one those of controllers,
// and the view wrap sits closest to the routes so that it lays out what
// controllers show.
func (h *Handler) Init(appRoutes func(r chi.Router), static fs.FS) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(appctx.Middleware(h.app))
	router.Use(h.sessions.Middleware)
	router.Use(h.pipeline.ErrorWrap)
	router.Use(flash.Middleware)
	router.Use(h.app.Auth.Middleware(h.app.DB))
	router.Use(h.pipeline.ErrorWrap)
	router.Use(h.pipeline.ViewWrap)

	router.Group(func(r chi.Router) {
		r.Get("/register", h.registerForm)
		r.Post("/register", h.register)
		r.Get("/login", h.loginForm)
		r.Post("/login", h.login)
		r.Get("/login/oauth", h.oauthCallback)
		r.Get("/login/oauth/{provider}", h.oauthStart)
		r.Get("/logout", h.logout)
		r.Get("/email/{address}/verify/{token}", h.verifyEmail)
	})

	// routes for logged in visitors only
	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)
		r.Get("/events", h.events)
	})

	if appRoutes != nil {
		router.Group(appRoutes)
	}

	if static != nil {
		files := http.StripPrefix("/static/", http.FileServerFS(static))
		router.Handle("/static/*", withGZip(files))
	}

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
