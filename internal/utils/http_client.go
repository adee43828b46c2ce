// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// UserAgent is sent on every outbound request. Some providers (GitHub)
// reject requests without one.
const UserAgent = "lowboy"

const defaultHTTPTimeout = 15 * time.Second

// HTTPClient is the outbound HTTP client used to talk to identity providers.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client with the lowboy User-Agent and a request
// timeout. A non-positive timeout selects the 15 second default.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &HTTPClient{Client: resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", UserAgent),
	}
}
