// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

//go:generate go run github.com/MKhiriev/lowboy/cmd/recordgen -in $GOFILE

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/lowboy/internal/store"
	sq "github.com/Masterminds/squirrel"
)

// LowboyUser is an account. It can log in with a password, an OAuth access
// token, or both; at least one of Password and AccessToken is set for any
// user that can authenticate.
//
//lowboy:record table=user
type LowboyUser struct {
	ID       int64
	Username string
	// Email is the primary address, loaded together with the user.
	Email Email `record:"has_one,fk=user_id"`
	// Password is an argon2id PHC string, never the plain password.
	Password    *string
	AccessToken *string
}

// Email is an address owned by a user.
//
//lowboy:record
type Email struct {
	ID       int64
	UserID   int64
	Address  string
	Verified bool
}

// UserModel is implemented by application user types. Every application
// user is built on a LowboyUser.
type UserModel interface {
	LowboyUser() LowboyUser
}

// LowboyUser implements UserModel.
func (u LowboyUser) LowboyUser() LowboyUser {
	return u
}

// SessionAuthHash is the value a session remembers at login. The session is
// invalidated once it changes, e.g. after a password change or a new OAuth
// access token.
func (u LowboyUser) SessionAuthHash() []byte {
	if u.AccessToken != nil {
		return []byte(*u.AccessToken)
	}
	if u.Password != nil {
		return []byte(*u.Password)
	}
	return nil
}

// SessionAuthHash is LowboyUser.SessionAuthHash for a record that has not
// been lifted.
func (r LowboyUserRecord) SessionAuthHash() []byte {
	return LowboyUser{AccessToken: r.AccessToken, Password: r.Password}.SessionAuthHash()
}

// GravatarURL returns the gravatar image of the user's primary address with
// the "mystery person" fallback and a PG rating.
func (u LowboyUser) GravatarURL(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email.Address))))
	params := url.Values{
		"s": {strconv.Itoa(size)},
		"d": {"mp"},
		"r": {"pg"},
	}
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?" + params.Encode()
}

// FindLowboyUser loads the user with the given id and its primary address.
func FindLowboyUser(ctx context.Context, q store.Querier, id int64) (LowboyUser, error) {
	record, err := ReadLowboyUserRecord(ctx, q, id)
	if err != nil {
		return LowboyUser{}, notFound(err)
	}
	user, err := LowboyUserFromRecord(ctx, q, record)
	return user, notFound(err)
}

// FindUserByUsername returns the user record with the given username.
func FindUserByUsername(ctx context.Context, q store.Querier, username string) (LowboyUserRecord, error) {
	return first(FindLowboyUserRecords(ctx, q, sq.Eq{"username": username}))
}

// FindUserByUsernameHavingPassword is FindUserByUsername restricted to users
// that can log in with a password.
func FindUserByUsernameHavingPassword(ctx context.Context, q store.Querier, username string) (LowboyUserRecord, error) {
	return first(FindLowboyUserRecords(ctx, q, sq.And{
		sq.Eq{"username": username},
		sq.NotEq{"password": nil},
	}))
}

// FindUserByEmail returns the user record owning the given address.
func FindUserByEmail(ctx context.Context, q store.Querier, address string) (LowboyUserRecord, error) {
	email, err := FindEmailByAddress(ctx, q, address)
	if err != nil {
		return LowboyUserRecord{}, err
	}
	record, err := ReadLowboyUserRecord(ctx, q, email.UserID)
	return record, notFound(err)
}

// FindEmailByAddress returns the email record with the given address.
func FindEmailByAddress(ctx context.Context, q store.Querier, address string) (EmailRecord, error) {
	return first(FindEmailRecords(ctx, q, sq.Eq{"address": address}))
}

// Operation tells whether CreateOrUpdate inserted a new user or updated an
// existing one.
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
)

func (o Operation) String() string {
	switch o {
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	}
	return "Operation(" + strconv.Itoa(int(o)) + ")"
}

// NewLowboyUser describes a user to register.
type NewLowboyUser struct {
	Username string
	Email    string
	// Password is the already hashed password, if any.
	Password    *string
	AccessToken *string
}

// Create inserts the user, its unverified primary address with a
// verification token, and assigns the unverified role, all in one
// transaction. A taken username or address fails with the driver's unique
// violation (see store.IsUniqueViolation).
func (n NewLowboyUser) Create(ctx context.Context, q store.Querier, now time.Time) (LowboyUserRecord, error) {
	var record LowboyUserRecord
	err := q.InTx(ctx, func(tx store.Querier) error {
		insert := CreateLowboyUserRecord(n.Username)
		if n.Password != nil {
			insert = insert.WithPassword(*n.Password)
		}
		if n.AccessToken != nil {
			insert = insert.WithAccessToken(*n.AccessToken)
		}

		var err error
		if record, err = insert.Create(ctx, tx); err != nil {
			return err
		}
		if _, err = NewUnverifiedEmail(ctx, tx, record.ID, n.Email, now); err != nil {
			return err
		}

		role, err := FindRoleByName(ctx, tx, RoleUnverified)
		if err != nil {
			return fmt.Errorf("loading role %q: %w", RoleUnverified, err)
		}
		return role.Assign(ctx, tx, record.ID)
	})
	return record, err
}

// CreateOrUpdate looks the user up by username, then by email address. A
// user found by either is updated with the credentials of n; otherwise n is
// created. When the username and the address belong to two different users
// nothing is written and ErrUserConflict is returned.
//
// A create that loses against a concurrent create of the same user fails
// with a unique violation; it is replayed once in a new transaction, which
// then finds the user and updates it.
func (n NewLowboyUser) CreateOrUpdate(ctx context.Context, q store.Querier, now time.Time) (LowboyUserRecord, Operation, error) {
	record, operation, err := n.createOrUpdate(ctx, q, now)
	if operation == OperationCreate && store.IsUniqueViolation(err) {
		return n.createOrUpdate(ctx, q, now)
	}
	return record, operation, err
}

func (n NewLowboyUser) createOrUpdate(ctx context.Context, q store.Querier, now time.Time) (LowboyUserRecord, Operation, error) {
	var (
		record    LowboyUserRecord
		operation Operation
	)
	err := q.InTx(ctx, func(tx store.Querier) error {
		existing, found, err := n.findExisting(ctx, tx)
		if err != nil {
			return err
		}
		if !found {
			operation = OperationCreate
			record, err = n.Create(ctx, tx, now)
			return err
		}

		operation = OperationUpdate
		update := UpdateLowboyUserRecord{ID: existing.ID}.WithUsername(n.Username)
		if n.Password != nil {
			update = update.WithPassword(n.Password)
		}
		if n.AccessToken != nil {
			update = update.WithAccessToken(n.AccessToken)
		}
		record, err = update.Save(ctx, tx)
		return err
	})
	return record, operation, err
}

func (n NewLowboyUser) findExisting(ctx context.Context, q store.Querier) (LowboyUserRecord, bool, error) {
	byName, err := FindUserByUsername(ctx, q, n.Username)
	nameFound := err == nil
	if err != nil && !isNotFound(err) {
		return LowboyUserRecord{}, false, err
	}

	byEmail, err := FindUserByEmail(ctx, q, n.Email)
	emailFound := err == nil
	if err != nil && !isNotFound(err) {
		return LowboyUserRecord{}, false, err
	}

	switch {
	case nameFound && emailFound && byName.ID != byEmail.ID:
		return LowboyUserRecord{}, false, ErrUserConflict
	case nameFound:
		return byName, true, nil
	case emailFound:
		return byEmail, true, nil
	}
	return LowboyUserRecord{}, false, nil
}
