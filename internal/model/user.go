package model

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// User is an account identity. Only the SHA-512 hex digest of the account
// password is kept; the login is the identity key.
type User struct {
	login        string
	passwordHash string
}

// NewUser creates a user from the plaintext account password.
func NewUser(login, password string) User {
	return User{login: login, passwordHash: HashPassword(password)}
}

// RestoreUser rebuilds a user from a persisted login and password digest.
func RestoreUser(login, passwordHash string) User {
	return User{login: login, passwordHash: passwordHash}
}

// Login returns the account login.
func (u User) Login() string { return u.login }

// PasswordHash returns the hex-encoded SHA-512 digest of the account password.
func (u User) PasswordHash() string { return u.passwordHash }

// VerifyPassword reports whether candidate is the password the user was created with.
func (u User) VerifyPassword(candidate string) bool {
	got := HashPassword(candidate)
	return subtle.ConstantTimeCompare([]byte(got), []byte(u.passwordHash)) == 1
}

// HashPassword returns the hex-encoded SHA-512 digest of password.
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}
