// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

// Kind classifies a model field.
type Kind int

const (
	// Primitive fields map one-to-one onto a column.
	Primitive Kind = iota
	// Related fields hold a nested model referenced by a foreign key column.
	Related
	// HasOne fields hold a single child that references this model.
	HasOne
	// Many fields hold the children that reference this model.
	Many
)

// File is a parsed Go source file holding one or more models.
type File struct {
	Source  string
	Package string
	// Imports maps the local package name to its import spec, e.g.
	// "model" -> `"github.com/MKhiriev/lowboy/internal/model"`.
	Imports map[string]string
	Models  []Model
}

// Model is one //lowboy:record struct.
type Model struct {
	Name   string
	Table  string
	Fields []Field
}

// Field is one struct field of a model.
type Field struct {
	// Name is the struct field name.
	Name string
	// Type is the Go type expression, e.g. "string", "*string", "time.Time".
	Type string
	Kind Kind
	// Column is the row column: snake_case of Name for primitives, the
	// foreign key for Related, and the child's back-reference for HasOne and
	// Many.
	Column string
	// Target is the related model type for relations, e.g. "model.LowboyUser".
	Target string
}

// Nullable reports whether a primitive field maps to a nullable column.
func (f Field) Nullable() bool {
	return f.Kind == Primitive && len(f.Type) > 0 && f.Type[0] == '*'
}
