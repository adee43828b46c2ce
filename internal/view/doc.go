// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package view turns handler views into full HTML pages.
//
// A handler does not render the page itself. It calls [Show] with the inner
// [Renderable] and an optional layout [Context]; the view is stashed in a
// per-request slot and only the status line is written. [Pipeline.ViewWrap]
// notices the stashed view, renders it, and wraps the result in the
// application's [Layout] together with the flash messages and the logged-in
// user.
//
// Errors travel the same way: [apperror.Write] stashes a typed error, and
// [Pipeline.ErrorWrap] renders it as an error view through the layout. The
// error wrap is installed twice, once outside the auth layer and once
// inside it, so failures raised by either still end up as pages:
//
//	session -> ErrorWrap -> flash -> auth -> ErrorWrap -> ViewWrap -> routes
package view
