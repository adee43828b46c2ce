// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=../mock/session_store_mock.go -package=mock

// Record is a persisted session.
type Record struct {
	ID         string
	Data       []byte
	ExpiryDate time.Time
}

// Expired reports whether the record is past its expiry at now.
func (r Record) Expired(now time.Time) bool {
	return !r.ExpiryDate.After(now)
}

// Store persists session records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Create inserts record. If its id is taken, a fresh id is generated
	// and the insert is retried; record.ID holds the id finally stored.
	Create(ctx context.Context, record *Record) error

	// Save inserts or replaces the record with record.ID.
	Save(ctx context.Context, record Record) error

	// Load returns the record with the given id, or ErrNotFound when it does
	// not exist or has expired.
	Load(ctx context.Context, id string) (Record, error)

	// Delete removes the record. Deleting a missing record succeeds.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every expired record and reports how many were
	// removed.
	DeleteExpired(ctx context.Context) (int64, error)
}

// IDGenerator produces fresh session ids.
type IDGenerator interface {
	Generate() string
}
