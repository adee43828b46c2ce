// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package model

//go:generate go run github.com/MKhiriev/lowboy/cmd/recordgen -in $GOFILE

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lowboy/internal/store"
	sq "github.com/Masterminds/squirrel"
)

// Roles and permissions seeded by the core migrations.
const (
	RoleUnverified = "unverified"
	RoleVerified   = "verified"
	RoleAdmin      = "admin"

	PermissionPostCreate = "post.create"
	PermissionUserManage = "user.manage"
)

// Role is a named set of permissions attached to users.
//
//lowboy:record
type Role struct {
	ID   int64
	Name string
}

// Permission is a named capability granted through roles.
//
//lowboy:record
type Permission struct {
	ID   int64
	Name string
}

// FindRoleByName returns the role with the given name.
func FindRoleByName(ctx context.Context, q store.Querier, name string) (Role, error) {
	record, err := first(FindRoleRecords(ctx, q, sq.Eq{"name": name}))
	if err != nil {
		return Role{}, err
	}
	return RoleFromRecord(ctx, q, record)
}

// FindPermissionByName returns the permission with the given name.
func FindPermissionByName(ctx context.Context, q store.Querier, name string) (Permission, error) {
	record, err := first(FindPermissionRecords(ctx, q, sq.Eq{"name": name}))
	if err != nil {
		return Permission{}, err
	}
	return PermissionFromRecord(ctx, q, record)
}

// Assign attaches the role to the user. Assigning twice is a no-op.
func (r Role) Assign(ctx context.Context, q store.Querier, userID int64) error {
	query, args, err := q.Builder().Insert("user_role").
		Columns("user_id", "role_id").
		Values(userID, r.ID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	_, err = q.ExecContext(ctx, query, args...)
	return err
}

// Unassign detaches the role from the user.
func (r Role) Unassign(ctx context.Context, q store.Querier, userID int64) error {
	query, args, err := q.Builder().Delete("user_role").
		Where(sq.Eq{"user_id": userID, "role_id": r.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", store.ErrBuildingSQLQuery, err)
	}
	_, err = q.ExecContext(ctx, query, args...)
	return err
}

// Permissions returns the permissions the role grants.
func (r Role) Permissions(ctx context.Context, q store.Querier) ([]Permission, error) {
	b := q.Builder().
		Select("permission.id", "permission.name").
		From("permission").
		Join("role_permission ON role_permission.permission_id = permission.id").
		Where(sq.Eq{"role_permission.role_id": r.ID}).
		OrderBy("permission.id")
	records, err := queryRecords(ctx, q, b, scanPermissionRecord)
	if err != nil {
		return nil, err
	}
	return PermissionsFromRecords(ctx, q, records)
}

// Roles returns the roles assigned to the user.
func (u LowboyUser) Roles(ctx context.Context, q store.Querier) ([]Role, error) {
	b := q.Builder().
		Select("role.id", "role.name").
		From("role").
		Join("user_role ON user_role.role_id = role.id").
		Where(sq.Eq{"user_role.user_id": u.ID}).
		OrderBy("role.id")
	records, err := queryRecords(ctx, q, b, scanRoleRecord)
	if err != nil {
		return nil, err
	}
	return RolesFromRecords(ctx, q, records)
}

// Permissions returns every permission granted to the user by any of its
// roles, each once.
func (u LowboyUser) Permissions(ctx context.Context, q store.Querier) ([]Permission, error) {
	b := q.Builder().
		Select("permission.id", "permission.name").
		Distinct().
		From("permission").
		Join("role_permission ON role_permission.permission_id = permission.id").
		Join("user_role ON user_role.role_id = role_permission.role_id").
		Where(sq.Eq{"user_role.user_id": u.ID}).
		OrderBy("permission.id")
	records, err := queryRecords(ctx, q, b, scanPermissionRecord)
	if err != nil {
		return nil, err
	}
	return PermissionsFromRecords(ctx, q, records)
}

// HasPermission reports whether any role of the user grants the named
// permission.
func (u LowboyUser) HasPermission(ctx context.Context, q store.Querier, name string) (bool, error) {
	permissions, err := u.Permissions(ctx, q)
	if err != nil {
		return false, err
	}
	for _, p := range permissions {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}
