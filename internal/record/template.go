// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

const fileTmpl = `// Code generated by recordgen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)
{{range .Models}}{{template "model" .}}{{end}}
{{- define "model"}}
const {{.TableConst}} = ` + "`" + `"{{.Table}}"` + "`" + `

var {{.ColumnsVar}} = []string{ {{- .ColumnList -}} }

const {{.ReturningConst}} = "RETURNING {{.ColumnCSV}}"

// {{.Name}}Record is a row of the {{.Table}} table.
type {{.Name}}Record struct {
{{- range .Columns}}
	{{.GoName}} {{.GoType}}
{{- end}}
}

func scan{{.Name}}Record(row store.Scanner) ({{.Name}}Record, error) {
	var r {{.Name}}Record
	err := row.Scan({{.ScanList}})
	return r, err
}

// Read{{.Name}}Record loads the {{.Table}} row with the given id.
func Read{{.Name}}Record(ctx context.Context, q store.Querier, id int64) ({{.Name}}Record, error) {
	query, args, err := q.Builder().Select({{.ColumnsVar}}...).From({{.TableConst}}).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return {{.Name}}Record{}, err
	}
	return scan{{.Name}}Record(q.QueryRowContext(ctx, query, args...))
}

// Find{{.Name}}Records loads the {{.Table}} rows matching pred, ordered by id.
func Find{{.Name}}Records(ctx context.Context, q store.Querier, pred any) ([]{{.Name}}Record, error) {
	query, args, err := q.Builder().Select({{.ColumnsVar}}...).From({{.TableConst}}).Where(pred).OrderBy("id").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []{{.Name}}Record
	for rows.Next() {
		r, err := scan{{.Name}}Record(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Update starts an update of r.
func (r {{.Name}}Record) Update() Update{{.Name}}Record {
	return Update{{.Name}}RecordFrom(r)
}

// Delete removes the row of r.
func (r {{.Name}}Record) Delete(ctx context.Context, q store.Querier) error {
	query, args, err := q.Builder().Delete({{.TableConst}}).Where(sq.Eq{"id": r.ID}).ToSql()
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, query, args...)
	return err
}

// New{{.Name}}Record inserts a {{.Table}} row.
type New{{.Name}}Record struct {
{{- range .Inserts}}
	{{.GoName}} {{.GoType}}
{{- end}}
}

// Create{{.Name}}Record starts an insert with the required columns set.
func Create{{.Name}}Record({{.RequiredParams}}) New{{.Name}}Record {
	return New{{.Name}}Record{ {{- .RequiredAssign -}} }
}
{{range .Optionals}}
// With{{.GoName}} sets the optional {{.Column}} column.
func (n New{{$.Name}}Record) With{{.GoName}}(v {{.ElemType}}) New{{$.Name}}Record {
	n.{{.GoName}} = &v
	return n
}
{{end}}
// Create inserts n and returns the stored row.
func (n New{{.Name}}Record) Create(ctx context.Context, q store.Querier) ({{.Name}}Record, error) {
	query, args, err := q.Builder().Insert({{.TableConst}}).
		Columns({{range $i, $c := .Inserts}}{{if $i}}, {{end}}"{{$c.Column}}"{{end}}).
		Values({{range $i, $c := .Inserts}}{{if $i}}, {{end}}{{$c.InsertValue}}{{end}}).
		Suffix({{.ReturningConst}}).
		ToSql()
	if err != nil {
		return {{.Name}}Record{}, err
	}
	return scan{{.Name}}Record(q.QueryRowContext(ctx, query, args...))
}

// Update{{.Name}}Record writes the columns whose field is Valid.
type Update{{.Name}}Record struct {
	ID int64
{{- range .Inserts}}
	{{.GoName}} sql.Null[{{.GoType}}]
{{- end}}
}

// Update{{.Name}}RecordFrom starts an update with every column taken from r.
func Update{{.Name}}RecordFrom(r {{.Name}}Record) Update{{.Name}}Record {
	return Update{{.Name}}Record{
		ID: r.ID,
{{- range .Inserts}}
		{{.GoName}}: sql.Null[{{.GoType}}]{V: r.{{.GoName}}, Valid: true},
{{- end}}
	}
}
{{range .Inserts}}
// With{{.GoName}} sets the {{.Column}} column.
func (u Update{{$.Name}}Record) With{{.GoName}}(v {{.GoType}}) Update{{$.Name}}Record {
	u.{{.GoName}} = sql.Null[{{.GoType}}]{V: v, Valid: true}
	return u
}
{{end}}
// Save writes the set columns and returns the stored row.
func (u Update{{.Name}}Record) Save(ctx context.Context, q store.Querier) ({{.Name}}Record, error) {
	set := make(map[string]any, {{len .Inserts}})
{{- range .Inserts}}
	if u.{{.GoName}}.Valid {
		set["{{.Column}}"] = {{.UpdateValue}}
	}
{{- end}}
	if len(set) == 0 {
		return Read{{.Name}}Record(ctx, q, u.ID)
	}

	query, args, err := q.Builder().Update({{.TableConst}}).
		SetMap(set).
		Where(sq.Eq{"id": u.ID}).
		Suffix({{.ReturningConst}}).
		ToSql()
	if err != nil {
		return {{.Name}}Record{}, err
	}
	return scan{{.Name}}Record(q.QueryRowContext(ctx, query, args...))
}

// Record flattens m into its row.
func (m {{.Name}}) Record() {{.Name}}Record {
	return {{.Name}}Record{
{{- range .Columns}}
		{{.GoName}}: {{.FromModel}},
{{- end}}
	}
}

// {{.Name}}FromRecord lifts r into a {{.Name}}, loading its related rows on q.
func {{.Name}}FromRecord(ctx context.Context, q store.Querier, r {{.Name}}Record) ({{.Name}}, error) {
	m := {{.Name}}{
{{- range .Primitives}}
		{{.GoName}}: r.{{.GoName}},
{{- end}}
{{- range .Manys}}
		{{.FieldName}}: []{{.Target}}{},
{{- end}}
	}
{{- range .Relateds}}

	{{.Var}}Record, err := {{.TargetPkg}}Read{{.TargetName}}Record(ctx, q, r.{{.GoName}})
	if err != nil {
		return {{$.Name}}{}, err
	}
	if m.{{.FieldName}}, err = {{.TargetPkg}}{{.TargetName}}FromRecord(ctx, q, {{.Var}}Record); err != nil {
		return {{$.Name}}{}, err
	}
{{- end}}
{{- range .HasOnes}}

	{{.Var}}Records, err := {{.TargetPkg}}Find{{.TargetName}}Records(ctx, q, sq.Eq{"{{.FK}}": r.ID})
	if err != nil {
		return {{$.Name}}{}, err
	}
	if len({{.Var}}Records) == 0 {
		return {{$.Name}}{}, sql.ErrNoRows
	}
	if m.{{.FieldName}}, err = {{.TargetPkg}}{{.TargetName}}FromRecord(ctx, q, {{.Var}}Records[0]); err != nil {
		return {{$.Name}}{}, err
	}
{{- end}}
	return m, nil
}

// {{.Plural}}FromRecords lifts each record in order.
func {{.Plural}}FromRecords(ctx context.Context, q store.Querier, records []{{.Name}}Record) ([]{{.Name}}, error) {
	models := make([]{{.Name}}, 0, len(records))
	for _, r := range records {
		m, err := {{.Name}}FromRecord(ctx, q, r)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}
{{range .Manys}}
// With{{.FieldName}} loads the {{.FieldName}} of m by back-reference.
func (m *{{$.Name}}) With{{.FieldName}}(ctx context.Context, q store.Querier) error {
	records, err := {{.TargetPkg}}Find{{.TargetName}}Records(ctx, q, sq.Eq{"{{.FK}}": m.ID})
	if err != nil {
		return err
	}
	children, err := {{.TargetPkg}}{{.TargetPlural}}FromRecords(ctx, q, records)
	if err != nil {
		return err
	}
	m.{{.FieldName}} = children
	return nil
}
{{end}}
{{- end}}`
