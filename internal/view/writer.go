// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package view

import "net/http"

// interceptWriter decides at the first WriteHeader whether the response
// belongs to the handler or to the pipeline. When intercept reports true
// the status is recorded and every later write is swallowed, leaving the
// page to the middleware; otherwise all calls pass through.
type interceptWriter struct {
	http.ResponseWriter

	intercept func() bool

	// status is the code of the first WriteHeader call, zero before it.
	status int
	// decided reports whether WriteHeader has been seen.
	decided bool
	// captured reports whether the response was taken over.
	captured bool
}

func newInterceptWriter(w http.ResponseWriter, intercept func() bool) *interceptWriter {
	return &interceptWriter{ResponseWriter: w, intercept: intercept}
}

func (w *interceptWriter) WriteHeader(statusCode int) {
	if w.decided {
		return
	}
	// informational headers never end the response
	if statusCode >= 100 && statusCode < 200 && statusCode != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}

	w.decided = true
	w.status = statusCode
	if w.intercept() {
		w.captured = true
		return
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *interceptWriter) Write(b []byte) (int, error) {
	if !w.decided {
		w.WriteHeader(http.StatusOK)
	}
	if w.captured {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}

// Flush keeps streaming responses such as server-sent events working.
func (w *interceptWriter) Flush() {
	if !w.decided {
		w.WriteHeader(http.StatusOK)
	}
	if w.captured {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *interceptWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// passedThrough reports whether the handler's own response reached the
// client.
func (w *interceptWriter) passedThrough() bool {
	return w.decided && !w.captured
}
