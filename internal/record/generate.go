// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

// StoreImport is the package generated code runs its queries through.
const StoreImport = "github.com/MKhiriev/lowboy/internal/store"

type fileView struct {
	Source  string
	Package string
	Imports []string
	Models  []modelView
}

type modelView struct {
	Name           string
	Plural         string
	Table          string
	TableConst     string
	ColumnsVar     string
	ReturningConst string
	ColumnList     string
	ColumnCSV      string
	ScanList       string

	Columns    []columnView
	Inserts    []columnView
	Optionals  []columnView
	Primitives []columnView

	RequiredParams string
	RequiredAssign string

	Relateds []relationView
	HasOnes  []relationView
	Manys    []relationView
}

type columnView struct {
	GoName      string
	GoType      string
	ElemType    string
	Column      string
	FromModel   string
	InsertValue string
	UpdateValue string
}

type relationView struct {
	FieldName    string
	GoName       string
	Var          string
	FK           string
	Target       string
	TargetPkg    string
	TargetName   string
	TargetPlural string
}

// Generate renders the record code for f, gofmt-ed.
func Generate(f *File) ([]byte, error) {
	view, err := newFileView(f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = fileTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("record: executing template: %w", err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("record: formatting generated code: %w", err)
	}
	return out, nil
}

func newFileView(f *File) (fileView, error) {
	view := fileView{Source: f.Source, Package: f.Package}

	imports := map[string]bool{
		strconv.Quote("context"):                        true,
		strconv.Quote("database/sql"):                   true,
		`sq "github.com/Masterminds/squirrel"`:           true,
		strconv.Quote(StoreImport):                      true,
	}

	for _, m := range f.Models {
		mv := newModelView(m)
		view.Models = append(view.Models, mv)

		for _, field := range m.Fields {
			if field.Kind == Primitive && strings.TrimPrefix(field.Type, "*") == "time.Time" {
				imports[strconv.Quote("time")] = true
			}
			if field.Kind == Primitive {
				continue
			}
			pkg, _ := splitQualified(field.Target)
			if pkg == "" {
				continue
			}
			spec, ok := f.Imports[strings.TrimSuffix(pkg, ".")]
			if !ok {
				return fileView{}, fmt.Errorf("%w: %s", ErrUnknownImport, field.Target)
			}
			imports[spec] = true
		}
	}

	var std, others []string
	for spec := range imports {
		if isStdImport(spec) {
			std = append(std, spec)
		} else {
			others = append(others, spec)
		}
	}
	sort.Strings(std)
	sort.Strings(others)
	// the empty entry renders as the blank line between the groups
	view.Imports = append(append(std, ""), others...)
	return view, nil
}

func newModelView(m Model) modelView {
	local := lowerFirst(m.Name)
	mv := modelView{
		Name:           m.Name,
		Plural:         plural(m.Name),
		Table:          m.Table,
		TableConst:     local + "Table",
		ColumnsVar:     local + "Columns",
		ReturningConst: local + "Returning",
	}

	var columns, scans, params, assigns []string
	for _, f := range m.Fields {
		switch f.Kind {
		case Primitive:
			c := columnView{
				GoName:      f.Name,
				GoType:      f.Type,
				ElemType:    strings.TrimPrefix(f.Type, "*"),
				Column:      f.Column,
				FromModel:   "m." + f.Name,
				InsertValue: "n." + f.Name,
				UpdateValue: "u." + f.Name + ".V",
			}
			scan := "&r." + f.Name
			if f.Type == "time.Time" {
				c.InsertValue = "store.UnixTime(n." + f.Name + ")"
				c.UpdateValue = "store.UnixTime(u." + f.Name + ".V)"
				scan = "(*store.UnixTime)(&r." + f.Name + ")"
			}
			mv.Columns = append(mv.Columns, c)
			mv.Primitives = append(mv.Primitives, c)
			columns = append(columns, f.Column)
			scans = append(scans, scan)
			if f.Name == "ID" {
				continue
			}
			mv.Inserts = append(mv.Inserts, c)
			if f.Nullable() {
				mv.Optionals = append(mv.Optionals, c)
			} else {
				p := lowerFirst(f.Name)
				params = append(params, p+" "+f.Type)
				assigns = append(assigns, f.Name+": "+p)
			}

		case Related:
			goName := f.Name + "ID"
			pkg, name := splitQualified(f.Target)
			c := columnView{
				GoName:      goName,
				GoType:      "int64",
				ElemType:    "int64",
				Column:      f.Column,
				FromModel:   "m." + f.Name + ".ID",
				InsertValue: "n." + goName,
				UpdateValue: "u." + goName + ".V",
			}
			mv.Columns = append(mv.Columns, c)
			mv.Inserts = append(mv.Inserts, c)
			columns = append(columns, f.Column)
			scans = append(scans, "&r."+goName)
			p := lowerFirst(goName)
			params = append(params, p+" int64")
			assigns = append(assigns, goName+": "+p)
			mv.Relateds = append(mv.Relateds, relationView{
				FieldName:  f.Name,
				GoName:     goName,
				Var:        lowerFirst(f.Name),
				FK:         f.Column,
				Target:     f.Target,
				TargetPkg:  pkg,
				TargetName: name,
			})

		case HasOne, Many:
			pkg, name := splitQualified(f.Target)
			rv := relationView{
				FieldName:    f.Name,
				Var:          lowerFirst(f.Name),
				FK:           f.Column,
				Target:       f.Target,
				TargetPkg:    pkg,
				TargetName:   name,
				TargetPlural: plural(name),
			}
			if f.Kind == HasOne {
				mv.HasOnes = append(mv.HasOnes, rv)
			} else {
				mv.Manys = append(mv.Manys, rv)
			}
		}
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = strconv.Quote(c)
	}
	mv.ColumnList = strings.Join(quoted, ", ")
	mv.ColumnCSV = strings.Join(columns, ", ")
	mv.ScanList = strings.Join(scans, ", ")
	mv.RequiredParams = strings.Join(params, ", ")
	mv.RequiredAssign = strings.Join(assigns, ", ")
	return mv
}

// isStdImport reports whether an import spec names a standard library
// package: its first path element has no dot.
func isStdImport(spec string) bool {
	importPath := spec[strings.IndexByte(spec, '"')+1:]
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}

var fileTemplate = template.Must(template.New("file").Parse(fileTmpl))
