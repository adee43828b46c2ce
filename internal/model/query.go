// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/lowboy/internal/store"
	sq "github.com/Masterminds/squirrel"
)

// queryRecords runs a hand-built select and scans every row with scan.
func queryRecords[R any](ctx context.Context, q store.Querier, b sq.SelectBuilder, scan func(store.Scanner) (R, error)) ([]R, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []R
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// first returns the first record, or ErrNotFound for an empty result.
func first[R any](records []R, err error) (R, error) {
	var zero R
	if err != nil {
		return zero, err
	}
	if len(records) == 0 {
		return zero, ErrNotFound
	}
	return records[0], nil
}

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
