// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/lowboy/internal/store"
	sq "github.com/Masterminds/squirrel"
)

// UnverifiedEmail is an email address still waiting for verification,
// together with the token that verifies it.
type UnverifiedEmail struct {
	ID      int64
	UserID  int64
	Address string
	Token   Token
}

// NewUnverifiedEmail inserts an unverified address for the user and the
// token that verifies it. The token is tied to the address through
// email_token, so a user with several pending addresses verifies each with
// its own token.
func NewUnverifiedEmail(ctx context.Context, q store.Querier, userID int64, address string, now time.Time) (UnverifiedEmail, error) {
	var unverified UnverifiedEmail
	err := q.InTx(ctx, func(tx store.Querier) error {
		email, err := CreateEmailRecord(userID, address, false).Create(ctx, tx)
		if err != nil {
			return err
		}
		token, err := CreateTokenRecord(userID, NewTokenSecret(), now.Add(TokenLifetime)).Create(ctx, tx)
		if err != nil {
			return err
		}

		query, args, err := tx.Builder().Insert("email_token").
			Columns("email_id", "token_id").
			Values(email.ID, token.ID).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		unverified = UnverifiedEmail{
			ID:      email.ID,
			UserID:  email.UserID,
			Address: email.Address,
			Token: Token{
				ID:         token.ID,
				UserID:     token.UserID,
				Secret:     token.Secret,
				Expiration: token.Expiration,
			},
		}
		return nil
	})
	return unverified, err
}

// VerificationPath is the link that verifies the address.
func (u UnverifiedEmail) VerificationPath() string {
	return "/email/" + url.PathEscape(u.Address) + "/verify/" + url.PathEscape(u.Token.Secret)
}

func scanUnverifiedEmail(row store.Scanner) (UnverifiedEmail, error) {
	var u UnverifiedEmail
	err := row.Scan(
		&u.ID, &u.UserID, &u.Address,
		&u.Token.ID, &u.Token.UserID, &u.Token.Secret, (*store.UnixTime)(&u.Token.Expiration),
	)
	return u, err
}

// FindUnverifiedEmail returns the pending verification of address, or
// ErrNotFound when the address is unknown or already verified.
func FindUnverifiedEmail(ctx context.Context, q store.Querier, address string) (UnverifiedEmail, error) {
	b := q.Builder().
		Select("email.id", "email.user_id", "email.address",
			"token.id", "token.user_id", "token.secret", "token.expiration").
		From("email").
		Join("email_token ON email_token.email_id = email.id").
		Join("token ON token.id = email_token.token_id").
		Where(sq.Eq{"email.address": address, "email.verified": false}).
		Limit(1)
	return first(queryRecords(ctx, q, b, scanUnverifiedEmail))
}

// Verify checks secret against the pending token and, in one transaction,
// marks the address verified, deletes the token and moves the user from the
// unverified to the verified role.
func (u UnverifiedEmail) Verify(ctx context.Context, q store.Querier, secret string, now time.Time) (Email, error) {
	if !u.Token.Verify(secret, now) {
		return Email{}, ErrTokenVerification
	}

	var email Email
	err := q.InTx(ctx, func(tx store.Querier) error {
		record, err := UpdateEmailRecord{ID: u.ID}.WithVerified(true).Save(ctx, tx)
		if err != nil {
			return err
		}
		if err = u.Token.Record().Delete(ctx, tx); err != nil {
			return err
		}

		unverified, err := FindRoleByName(ctx, tx, RoleUnverified)
		if err != nil {
			return fmt.Errorf("loading role %q: %w", RoleUnverified, err)
		}
		verified, err := FindRoleByName(ctx, tx, RoleVerified)
		if err != nil {
			return fmt.Errorf("loading role %q: %w", RoleVerified, err)
		}
		if err = unverified.Unassign(ctx, tx, u.UserID); err != nil {
			return err
		}
		if err = verified.Assign(ctx, tx, u.UserID); err != nil {
			return err
		}

		email, err = EmailFromRecord(ctx, tx, record)
		return err
	})
	return email, err
}
