package repo

import (
	"errors"

	"Passman/internal/model"
)

var (
	// ErrCorruptStore indicates the store file exists but cannot be decoded.
	ErrCorruptStore = errors.New("corrupt store")

	// ErrIO indicates the store file cannot be read or written.
	ErrIO = errors.New("store i/o failure")
)

// Account is the persisted form of one user and the contents of their vault.
type Account struct {
	User  model.User
	Items []model.VaultItem
}

// Persister reads and writes the whole user→vault mapping as a single file.
type Persister interface {
	// Read returns the accounts stored at path. A missing file must be reported
	// with an error satisfying errors.Is(err, fs.ErrNotExist).
	Read(path string) ([]Account, error)

	// Write replaces the contents of path with accounts.
	Write(path string, accounts []Account) error
}
