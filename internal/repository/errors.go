// Package repository persists principals and refresh sessions in MySQL.
// This file defines the closed set of errors the repositories may return.
// Driver and SQL errors are translated here, at the persistence boundary,
// so no layer above ever inspects store-specific error identifiers.
package repository

import "errors"

// ErrNotFound is returned when a principal lookup matches no row.
var ErrNotFound = errors.New("user not found")

// ErrEmailExists is returned when creating a principal with an email that
// is already registered.  The unique index on users.email enforces the
// invariant atomically.
var ErrEmailExists = errors.New("email already exists")

// ErrTokenNotFound is returned when no refresh session exists for a token.
var ErrTokenNotFound = errors.New("refresh token not found")
