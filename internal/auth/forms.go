// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package auth

import (
	"net/http"
	"strings"
)

// Login form kinds.
const (
	KindPassword = "Password"
	KindOAuth    = "OAuth"
)

// RegistrationForm is the body of POST /register. It is kept on the session
// under KeyRegistrationForm to refill the form after a failed attempt; the
// password is never stored.
type RegistrationForm struct {
	Name     string `form:"name" json:"name" validate:"required" msg:"Your name cannot be empty"`
	Username string `form:"username" json:"username" validate:"min=1,max=32" msg:"Username must be between 1 and 32 characters"`
	Email    string `form:"email" json:"email" validate:"email" msg:"Email provided is not valid"`
	Password string `form:"password" json:"-" validate:"min=8" msg:"Password must be at least 8 characters"`
	Next     string `form:"next" json:"next,omitempty"`
}

// ParseRegistrationForm reads the registration form from the request body.
func ParseRegistrationForm(r *http.Request) (RegistrationForm, error) {
	if err := r.ParseForm(); err != nil {
		return RegistrationForm{}, err
	}
	return RegistrationForm{
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
		Next:     r.PostForm.Get("next"),
	}, nil
}

// Registration returns the signup described by the form.
func (f RegistrationForm) Registration() Registration {
	return Registration{Name: f.Name, Username: f.Username, Email: f.Email, Password: f.Password}
}

// LoginForm is the body of POST /login. Kind selects between a password
// login and a redirect to the OAuth provider named by Provider.
type LoginForm struct {
	Kind     string `form:"kind" json:"kind" validate:"oneof=Password OAuth" msg:"Unknown login method"`
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"-"`
	Provider string `form:"provider" json:"provider,omitempty"`
	Next     string `form:"next" json:"next,omitempty"`
}

// ParseLoginForm reads the login form from the request body. A missing kind
// means a password login.
func ParseLoginForm(r *http.Request) (LoginForm, error) {
	if err := r.ParseForm(); err != nil {
		return LoginForm{}, err
	}
	form := LoginForm{
		Kind:     r.PostForm.Get("kind"),
		Username: strings.TrimSpace(r.PostForm.Get("username")),
		Password: r.PostForm.Get("password"),
		Provider: r.PostForm.Get("provider"),
		Next:     r.PostForm.Get("next"),
	}
	if form.Kind == "" {
		form.Kind = KindPassword
	}
	return form, nil
}

// Credentials returns the password credentials of the form.
func (f LoginForm) Credentials() PasswordCredentials {
	return PasswordCredentials{Username: f.Username, Password: f.Password, Next: f.Next}
}
