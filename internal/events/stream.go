// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/MKhiriev/lowboy/internal/logger"
)

// KeepAliveInterval is how often an idle stream sends a comment line.
const KeepAliveInterval = time.Second

const keepAlive = ":keep-alive-text\n\n"

// ErrStreamingUnsupported is returned when the response writer cannot flush.
var ErrStreamingUnsupported = errors.New("events: streaming unsupported")

// Stream writes the events of sub to w until the client goes away or the
// subscription is closed. keepAliveEvery <= 0 selects KeepAliveInterval.
func Stream(w http.ResponseWriter, r *http.Request, sub *Subscription, keepAliveEvery time.Duration) error {
	rc := http.NewResponseController(w)
	if keepAliveEvery <= 0 {
		keepAliveEvery = KeepAliveInterval
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return errors.Join(ErrStreamingUnsupported, err)
	}

	ticker := time.NewTicker(keepAliveEvery)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return nil
		case ev, ok := <-sub.C():
			if !ok {
				return nil
			}
			if _, err := ev.WriteTo(w); err != nil {
				return err
			}
		case <-ticker.C:
			if _, err := io.WriteString(w, keepAlive); err != nil {
				return err
			}
		}
		if err := rc.Flush(); err != nil {
			return err
		}
	}
}

// Handler serves GET /events: it subscribes to b and streams until the
// client disconnects or the broker shuts down.
func (b *Broker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		log.Info().Str("user_agent", r.UserAgent()).Msg("event stream connected")

		sub := b.Subscribe()
		defer sub.Close()

		if err := Stream(w, r, sub, KeepAliveInterval); err != nil {
			log.Err(err).Str("func", "*Broker.Handler").Msg("event stream ended")
			return
		}
		log.Debug().Msg("event stream closed")
	}
}
