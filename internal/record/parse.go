// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"reflect"
	"strconv"
	"strings"
)

const directive = "//lowboy:record"

var primitiveTypes = map[string]bool{
	"int64":     true,
	"int":       true,
	"int32":     true,
	"float64":   true,
	"bool":      true,
	"string":    true,
	"[]byte":    true,
	"time.Time": true,
}

// Parse reads every //lowboy:record model declared in src.
func Parse(filename string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	file := &File{
		Source:  path.Base(filename),
		Package: astFile.Name.Name,
		Imports: importsOf(astFile),
	}

	for _, decl := range astFile.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			args, ok := findDirective(doc)
			if !ok {
				continue
			}
			model, err := parseModel(ts, args)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fset.Position(ts.Pos()), err)
			}
			file.Models = append(file.Models, model)
		}
	}

	if len(file.Models) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoModels, filename)
	}
	return file, nil
}

func importsOf(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(importPath)
		quoted := strconv.Quote(importPath)
		if spec.Name != nil {
			name = spec.Name.Name
			quoted = name + " " + quoted
		}
		imports[name] = quoted
	}
	return imports
}

func findDirective(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if c.Text == directive {
			return "", true
		}
		if rest, ok := strings.CutPrefix(c.Text, directive+" "); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func parseModel(ts *ast.TypeSpec, args string) (Model, error) {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return Model{}, fmt.Errorf("%w: %s is not a struct", ErrInvalidModel, ts.Name.Name)
	}

	model := Model{Name: ts.Name.Name, Table: snakeCase(ts.Name.Name)}
	for _, arg := range strings.Fields(args) {
		key, value, _ := strings.Cut(arg, "=")
		switch key {
		case "table":
			model.Table = value
		default:
			return Model{}, fmt.Errorf("%w: unknown directive argument %q", ErrInvalidModel, arg)
		}
	}

	hasID := false
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			return Model{}, fmt.Errorf("%w: %s has an embedded field", ErrInvalidModel, model.Name)
		}

		var tag reflect.StructTag
		if f.Tag != nil {
			raw, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				return Model{}, fmt.Errorf("%w: bad tag %s", ErrInvalidModel, f.Tag.Value)
			}
			tag = reflect.StructTag(raw)
		}

		for _, name := range f.Names {
			if !name.IsExported() || tag.Get("record") == "-" {
				continue
			}
			field, err := parseField(name.Name, f.Type, tag.Get("record"))
			if err != nil {
				return Model{}, fmt.Errorf("%s.%s: %w", model.Name, name.Name, err)
			}
			if field.Name == "ID" {
				if field.Type != "int64" || field.Kind != Primitive {
					return Model{}, fmt.Errorf("%w: %s.ID must be int64", ErrInvalidModel, model.Name)
				}
				hasID = true
			}
			model.Fields = append(model.Fields, field)
		}
	}

	if !hasID {
		return Model{}, fmt.Errorf("%w: %s has no ID field", ErrInvalidModel, model.Name)
	}
	return model, nil
}

func parseField(name string, expr ast.Expr, tag string) (Field, error) {
	field := Field{Name: name, Type: types.ExprString(expr)}

	opts := strings.Split(tag, ",")
	kind := strings.TrimSpace(opts[0])
	params := map[string]string{}
	for _, opt := range opts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(opt), "=")
		params[key] = value
	}
	if strings.HasPrefix(kind, "column=") {
		params["column"] = strings.TrimPrefix(kind, "column=")
		kind = ""
	}

	switch kind {
	case "":
		field.Kind = Primitive
		field.Column = snakeCase(name)
		if c := params["column"]; c != "" {
			field.Column = c
		}
		base := strings.TrimPrefix(field.Type, "*")
		if !primitiveTypes[base] {
			return Field{}, fmt.Errorf("%w: unsupported column type %s", ErrInvalidModel, field.Type)
		}
		if field.Type == "*time.Time" || field.Type == "*[]byte" {
			return Field{}, fmt.Errorf("%w: %s cannot be nullable", ErrInvalidModel, base)
		}

	case "related":
		field.Kind = Related
		if !isModelRef(expr) {
			return Field{}, fmt.Errorf("%w: related field must be a struct type, got %s", ErrInvalidModel, field.Type)
		}
		field.Target = field.Type
		field.Column = snakeCase(name) + "_id"
		if c := params["column"]; c != "" {
			field.Column = c
		}

	case "has_one", "many":
		field.Kind = HasOne
		target := expr
		if kind == "many" {
			field.Kind = Many
			arr, ok := expr.(*ast.ArrayType)
			if !ok || arr.Len != nil {
				return Field{}, fmt.Errorf("%w: many field must be a slice, got %s", ErrInvalidModel, field.Type)
			}
			target = arr.Elt
		}
		if !isModelRef(target) {
			return Field{}, fmt.Errorf("%w: %s target must be a struct type, got %s", ErrInvalidModel, kind, field.Type)
		}
		field.Target = types.ExprString(target)
		field.Column = params["fk"]
		if field.Column == "" {
			return Field{}, fmt.Errorf("%w: %s needs fk=<column>", ErrInvalidModel, kind)
		}

	default:
		return Field{}, fmt.Errorf("%w: unknown relation %q", ErrInvalidModel, kind)
	}

	return field, nil
}

func isModelRef(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return !primitiveTypes[e.Name]
	case *ast.SelectorExpr:
		_, ok := e.X.(*ast.Ident)
		return ok && types.ExprString(e) != "time.Time"
	}
	return false
}
