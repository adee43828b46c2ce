// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// ErrNoSession is reported when a controller that needs the visitor's
// session runs outside the session manager.
var ErrNoSession = errors.New("no session on request")
