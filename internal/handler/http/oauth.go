package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

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
)

// oauthStart handles GET /login/oauth/{provider}: a link that sends the
// visitor straight to the provider.
func (h *Handler) oauthStart(w http.ResponseWriter, r *http.Request) {
	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	h.startOAuth(w, r, s, chi.URLParam(r, "provider"), r.URL.Query().Get("next"))
}

func (h *Handler) startOAuth(w http.ResponseWriter, r *http.Request, s *session.Session, provider, next string) {
	location, err := h.app.Auth.StartOAuth(s, provider, next)
	if errors.Is(err, auth.ErrUnknownProvider) {
		flash.Push(r, flash.LevelError, app.MsgUnknownProvider)
		utils.SeeOther(w, withNext("/login", next))
		return
	}
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	utils.SeeOther(w, location)
}

// oauthCallback handles the provider's redirect back to
// /login/oauth?code=...&state=...
func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	query := r.URL.Query()

	s, err := requestSession(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if reason := query.Get("error"); reason != "" {
		log.Warn().Str("error", reason).Str("description", query.Get("error_description")).Msg("login provider refused authorization")
		flash.Push(r, flash.LevelError, app.MsgLoginFailed)
		utils.SeeOther(w, "/login")
		return
	}

	creds, err := h.app.Auth.OAuthCallback(s, query.Get("code"), query.Get("state"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var user *model.LowboyUserRecord
	err = extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
		var err error
		user, err = h.app.Auth.Authenticate(ctx, conn, creds)
		return err
	})
	switch {
	case errors.Is(err, auth.ErrMissingEmail):
		flash.Push(r, flash.LevelError, app.MsgMissingProviderEmail)
		utils.SeeOther(w, "/login")
		return
	case errors.Is(err, auth.ErrUnknownProvider):
		flash.Push(r, flash.LevelError, app.MsgUnknownProvider)
		utils.SeeOther(w, "/login")
		return
	case errors.Is(err, auth.ErrOAuth2), errors.Is(err, auth.ErrHTTP):
		log.Err(err).Str("func", "*Handler.oauthCallback").Str("provider", creds.Provider).Msg("login provider failed")
		flash.Push(r, flash.LevelError, app.MsgLoginFailed)
		utils.SeeOther(w, "/login")
		return
	case err != nil:
		apperror.Write(w, r, err)
		return
	}

	if user == nil {
		log.Warn().Str("provider", creds.Provider).Msg("oauth callback with mismatching csrf state")
		apperror.Write(w, r, apperror.BadRequest(app.MsgInvalidCSRFState))
		return
	}

	if err = h.app.Auth.Login(s, *user); err != nil {
		apperror.Write(w, r, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Str("provider", creds.Provider).Msg("user logged in")
	utils.SeeOther(w, auth.SafeNext(creds.Next))
}
