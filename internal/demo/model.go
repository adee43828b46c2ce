package demo

//go:generate go run github.com/MKhiriev/lowboy/cmd/recordgen -in $GOFILE

import "github.com/MKhiriev/lowboy/internal/model"

// UserProfile is the public face of a user.
//
//lowboy:record
type UserProfile struct {
	ID     int64
	User   model.LowboyUser `record:"related"`
	Name   string
	Avatar *string
	Byline *string
	Posts  []Post `record:"many,fk=user_profile_id"`
}

// Post is a short message on the home page.
//
//lowboy:record
type Post struct {
	ID          int64
	UserProfile UserProfile `record:"related"`
	Content     string
}
