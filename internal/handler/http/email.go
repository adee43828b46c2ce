package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lowboy/internal/app"
	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/extract"
	"github.com/MKhiriev/lowboy/internal/flash"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/model"
	"github.com/MKhiriev/lowboy/internal/store"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// verifyEmail handles GET /email/{address}/verify/{token}.
func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	address := chi.URLParam(r, "address")
	token := chi.URLParam(r, "token")

	var email model.Email
	err := extract.WithDatabaseConnection(r, func(conn *store.Conn) error {
		pending, err := model.FindUnverifiedEmail(ctx, conn, address)
		if err != nil {
			return err
		}
		email, err = pending.Verify(ctx, conn, token, h.now())
		return err
	})
	switch {
	case errors.Is(err, model.ErrNotFound):
		apperror.Write(w, r, apperror.NotFound(""))
		return
	case errors.Is(err, model.ErrTokenVerification):
		flash.Push(r, flash.LevelError, app.MsgInvalidVerificationLink)
		utils.SeeOther(w, "/login")
		return
	case err != nil:
		apperror.Write(w, r, err)
		return
	}

	log.Info().Int64("user_id", email.UserID).Msg("email address verified")
	flash.Push(r, flash.LevelSuccess, app.MsgEmailVerified)
	utils.SeeOther(w, "/login")
}
