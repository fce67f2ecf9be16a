// Package model holds the vault entities: credential items, vaults and user accounts.
package model

import "errors"

var (
	// ErrNotFound indicates the requested item or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates an item or user with the same key already exists.
	ErrDuplicate = errors.New("already exists")

	// ErrEmptyName is returned when an item without a name is stored in a vault.
	ErrEmptyName = errors.New("name is required")

	// ErrWrongPassword indicates the account password did not verify.
	ErrWrongPassword = errors.New("wrong password")
)
