// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/lowboy/internal/auth"
	"github.com/MKhiriev/lowboy/internal/view"
)

// LoginPage is the data of the login view.
type LoginPage struct {
	Form      auth.LoginForm
	Providers []string
}

// RegisterPage is the data of the registration view.
type RegisterPage struct {
	Form auth.RegistrationForm
}

// AuthViews builds the framework's form pages. Applications implement it to
// restyle them.
type AuthViews interface {
	LoginView(page LoginPage) view.Renderable
	RegisterView(page RegisterPage) view.Renderable
}

// DefaultAuthViews renders the templates in view.Defaults.
type DefaultAuthViews struct{}

func (DefaultAuthViews) LoginView(page LoginPage) view.Renderable {
	return view.Template{T: view.Defaults, Name: "login", Data: page}
}

func (DefaultAuthViews) RegisterView(page RegisterPage) view.Renderable {
	return view.Template{T: view.Defaults, Name: "register", Data: page}
}
