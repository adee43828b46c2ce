package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/MKhiriev/lowboy/internal/app"
	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/extract"
	"github.com/MKhiriev/lowboy/internal/flash"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/session"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
	"github.com/MKhiriev/lowboy/internal/validators"
	"github.com/MKhiriev/lowboy/internal/view"
)

// withNext appends the post-login target to path.
func withNext(path, next string) string {
	if next == "" {
		return path
	}
	return path + "?next=" + url.QueryEscape(next)
}

func requestSession(r *http.Request) (*session.Session, error) {
	s := session.FromRequest(r)
	if s == nil {
		return nil, apperror.Internal(ErrNoSession)
	}
	return s, nil
}

func (h *Handler) registerForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	next := r.URL.Query().Get("next")
	if _, ok := auth.UserFromContext(r.Context()); ok {
		utils.SeeOther(w, auth.SafeNext(next))
		return
	}

	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var form auth.RegistrationForm
	if _, err = s.Remove(auth.KeyRegistrationForm, &form); err != nil {
		log.Err(err).Str("func", "*Handler.registerForm").Msg("stored registration form is unreadable")
		form = auth.RegistrationForm{}
	}
	if next != "" {
		form.Next = next
	}

	view.Show(w, r, h.views.RegisterView(RegisterPage{Form: form}), view.Title("Register"))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form, err := auth.ParseRegistrationForm(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("unreadable registration form")
		apperror.Write(w, r, apperror.BadRequest(app.MsgInvalidForm))
		return
	}

	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	back := withNext("/register", form.Next)

	if err = h.validator.Validate(ctx, form); err != nil {
		if !h.flashFieldErrors(w, r, err) {
			return
		}
		h.keepForm(r, s, auth.KeyRegistrationForm, form)
		utils.SeeOther(w, back)
		return
	}

	var user model.LowboyUserRecord
	err = extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
		var err error
		user, err = h.app.Auth.Register(ctx, conn, form.Registration())
		return err
	})
	if errors.Is(err, auth.ErrUserExists) {
		flash.Push(r, flash.LevelError, app.MsgUserAlreadyExists)
		h.keepForm(r, s, auth.KeyRegistrationForm, form)
		utils.SeeOther(w, back)
		return
	}
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("user registered")
	flash.Push(r, flash.LevelSuccess, app.MsgRegistrationSuccessful)
	utils.SeeOther(w, withNext("/login", form.Next))
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	next := r.URL.Query().Get("next")
	if _, ok := auth.UserFromContext(r.Context()); ok {
		utils.SeeOther(w, auth.SafeNext(next))
		return
	}

	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var form auth.LoginForm
	if _, err = s.Remove(auth.KeyLoginForm, &form); err != nil {
		log.Err(err).Str("func", "*Handler.loginForm").Msg("stored login form is unreadable")
		form = auth.LoginForm{}
	}
	if form.Kind == "" {
		form.Kind = auth.KindPassword
	}
	if next != "" {
		form.Next = next
	}

	page := LoginPage{Form: form, Providers: h.app.Auth.Providers().Names()}
	view.Show(w, r, h.views.LoginView(page), view.Title("Login"))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form, err := auth.ParseLoginForm(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("unreadable login form")
		apperror.Write(w, r, apperror.BadRequest(app.MsgInvalidForm))
		return
	}

	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	back := withNext("/login", form.Next)

	if err = h.validator.Validate(ctx, form); err != nil {
		if !h.flashFieldErrors(w, r, err) {
			return
		}
		h.keepForm(r, s, auth.KeyLoginForm, form)
		utils.SeeOther(w, back)
		return
	}

	if form.Kind == auth.KindOAuth {
		h.startOAuth(w, r, s, form.Provider, form.Next)
		return
	}

	var user *model.LowboyUserRecord
	err = extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
		var err error
		user, err = h.app.Auth.Authenticate(ctx, conn, form.Credentials())
		return err
	})
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	if user == nil {
		flash.Push(r, flash.LevelError, app.MsgInvalidCredentials)
		h.keepForm(r, s, auth.KeyLoginForm, form)
		utils.SeeOther(w, back)
		return
	}

	if err = h.app.Auth.Login(s, *user); err != nil {
		apperror.Write(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("user logged in")
	utils.SeeOther(w, auth.SafeNext(form.Next))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	h.app.Auth.Logout(s)
	flash.Push(r, flash.LevelInfo, app.MsgLoggedOut)
	utils.SeeOther(w, "/")
}

// flashFieldErrors flashes every message of a failed validation. Any other
// error is written as a response and false is returned.
func (h *Handler) flashFieldErrors(w http.ResponseWriter, r *http.Request, err error) bool {
	var fieldErrors validators.FieldErrors
	if !errors.As(err, &fieldErrors) {
		apperror.Write(w, r, err)
		return false
	}
	for _, msg := range fieldErrors.Messages() {
		flash.Push(r, flash.LevelError, msg)
	}
	return true
}

// keepForm stores form on the session so the next render of the page is
// filled in. Passwords are excluded by the forms' json tags.
func (h *Handler) keepForm(r *http.Request, s *session.Session, key string, form any) {
	if err := s.Insert(key, form); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.keepForm").Str("key", key).Msg("error storing form on session")
	}
}
