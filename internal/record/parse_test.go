// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blogSource = `package blog

import (
	"time"

	"github.com/MKhiriev/lowboy/internal/model"
)

//lowboy:record table=author
type Author struct {
	ID       int64
	User     model.LowboyUser ` + "`record:\"related\"`" + `
	Name     string
	Byline   *string
	Posts    []Post ` + "`record:\"many,fk=author_id\"`" + `
	internal string
}

//lowboy:record
type Post struct {
	ID        int64
	Author    Author    ` + "`record:\"related\"`" + `
	Content   string
	Published time.Time
	Draft     bool      ` + "`record:\"column=is_draft\"`" + `
	Cached    string    ` + "`record:\"-\"`" + `
}

type NotAModel struct {
	ID int64
}
`

func TestParse_Models(t *testing.T) {
	f, err := Parse("blog.go", []byte(blogSource))
	require.NoError(t, err)

	assert.Equal(t, "blog", f.Package)
	assert.Equal(t, "blog.go", f.Source)
	assert.Equal(t, `"github.com/MKhiriev/lowboy/internal/model"`, f.Imports["model"])
	require.Len(t, f.Models, 2)

	author := f.Models[0]
	assert.Equal(t, "Author", author.Name)
	assert.Equal(t, "author", author.Table)
	require.Len(t, author.Fields, 5, "unexported field is skipped")

	assert.Equal(t, Field{Name: "User", Type: "model.LowboyUser", Kind: Related, Column: "user_id", Target: "model.LowboyUser"}, author.Fields[1])
	assert.True(t, author.Fields[3].Nullable())
	assert.Equal(t, Field{Name: "Posts", Type: "[]Post", Kind: Many, Column: "author_id", Target: "Post"}, author.Fields[4])

	post := f.Models[1]
	assert.Equal(t, "post", post.Table)
	require.Len(t, post.Fields, 5, "record:\"-\" is skipped")
	assert.Equal(t, "is_draft", post.Fields[4].Column)
	assert.Equal(t, "time.Time", post.Fields[3].Type)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax", src: "package x\ntype"},
		{name: "no models", src: "package x\ntype A struct{ ID int64 }"},
		{name: "no id", src: "package x\n//lowboy:record\ntype A struct{ Name string }"},
		{name: "id not int64", src: "package x\n//lowboy:record\ntype A struct{ ID string }"},
		{name: "unsupported type", src: "package x\n//lowboy:record\ntype A struct{ ID int64; Tags map[string]string }"},
		{name: "many without fk", src: "package x\n//lowboy:record\ntype A struct{ ID int64; Bs []B `record:\"many\"` }"},
		{name: "many not a slice", src: "package x\n//lowboy:record\ntype A struct{ ID int64; B B `record:\"many,fk=a_id\"` }"},
		{name: "related primitive", src: "package x\n//lowboy:record\ntype A struct{ ID int64; B string `record:\"related\"` }"},
		{name: "unknown relation", src: "package x\n//lowboy:record\ntype A struct{ ID int64; B B `record:\"belongs\"` }"},
		{name: "nullable time", src: "package x\nimport \"time\"\n//lowboy:record\ntype A struct{ ID int64; At *time.Time }"},
		{name: "unknown directive arg", src: "package x\n//lowboy:record schema=x\ntype A struct{ ID int64 }"},
		{name: "embedded", src: "package x\n//lowboy:record\ntype A struct{ ID int64; B }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x.go", []byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestNaming(t *testing.T) {
	snake := map[string]string{
		"ID":            "id",
		"UserProfileID": "user_profile_id",
		"AccessToken":   "access_token",
		"HTTPAddress":   "http_address",
		"LowboyUser":    "lowboy_user",
		"Address2":      "address2",
	}
	for in, want := range snake {
		assert.Equal(t, want, snakeCase(in), in)
	}

	lower := map[string]string{
		"ID":          "id",
		"UserProfile": "userProfile",
		"HTTPServer":  "httpServer",
		"Type":        "type_",
	}
	for in, want := range lower {
		assert.Equal(t, want, lowerFirst(in), in)
	}

	plurals := map[string]string{
		"Post":       "Posts",
		"Address":    "Addresses",
		"Category":   "Categories",
		"Day":        "Days",
		"LowboyUser": "LowboyUsers",
	}
	for in, want := range plurals {
		assert.Equal(t, want, plural(in), in)
	}
}
