// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lowboy/internal/apperror"
)

// CheckHTTPMethod returns the handler to register with
// [chi.Mux.MethodNotAllowed]. Chi calls it when the path of a request
// matches a route but the method does not.
//
// The response is a 405 reported through [apperror.Write], so it is
// rendered as an error page by the surrounding error wrap like any other
// failure. When a route pattern equals the request path exactly, its
// methods are listed in the Allow header; parameterised patterns are not
// expanded for this lookup.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		requestedURL := r.URL.Path

		for _, route := range router.Routes() {
			if route.Pattern != requestedURL {
				continue
			}
			methods := make([]string, 0, len(route.Handlers))
			for method := range route.Handlers {
				if method != "*" {
					methods = append(methods, method)
				}
			}
			sort.Strings(methods)
			if len(methods) > 0 {
				w.Header().Set("Allow", strings.Join(methods, ", "))
			}
			break
		}

		apperror.Write(w, r, apperror.MethodNotAllowed())
	}
}

// notFound is the router's NotFound handler.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	apperror.Write(w, r, apperror.NotFound(""))
}
