package http

import (
	"net/http"

	"github.com/MKhiriev/lowboy/internal/apperror"
	"github.com/MKhiriev/lowboy/internal/extract"
	"github.com/MKhiriev/lowboy/internal/logger"
	"github.com/MKhiriev/lowboy/internal/utils"
)

// events streams the broker's events to a logged in visitor.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	broker, err := extract.Events(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	log := logger.FromRequest(r)
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		log.Debug().Int64("user_id", userID).Int("subscribers", broker.Subscribers()).Msg("event stream opened")
	}
	broker.Handler().ServeHTTP(w, r)
}
