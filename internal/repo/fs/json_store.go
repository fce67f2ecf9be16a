// Package fs stores the user→vault mapping as a JSON document in a single file.
//
// Layout:
//
//	{
//	  "format": "passman",
//	  "version": 1,
//	  "users": [
//	    {"login": "...", "password_hash": "<sha512 hex>",
//	     "items": [{"name": "...", "login": "...", "password": "..."}]}
//	  ]
//	}
package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"Passman/internal/model"
	"Passman/internal/repo"
)

const (
	formatName    = "passman"
	formatVersion = 1
)

type document struct {
	Format  string    `json:"format"`
	Version int       `json:"version"`
	Users   []userDoc `json:"users"`
}

type userDoc struct {
	Login        string    `json:"login"`
	PasswordHash string    `json:"password_hash"`
	Items        []itemDoc `json:"items"`
}

type itemDoc struct {
	Name     string `json:"name"`
	Login    string `json:"login"`
	Password string `json:"password"`
}

// JSONPersister хранит пользователей и их сейфы в одном JSON-файле.
type JSONPersister struct{}

var _ repo.Persister = JSONPersister{}

// Read decodes the document at path.
func (JSONPersister) Read(path string) ([]repo.Account, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		// os.ErrNotExist passes through so the store can start empty
		return nil, err
	}
	var doc document
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", repo.ErrCorruptStore, err)
	}
	if doc.Format != formatName || doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format %q version %d", repo.ErrCorruptStore, doc.Format, doc.Version)
	}

	accounts := make([]repo.Account, 0, len(doc.Users))
	for _, u := range doc.Users {
		if u.Login == "" || u.PasswordHash == "" {
			return nil, fmt.Errorf("%w: user record without login or password hash", repo.ErrCorruptStore)
		}
		items := make([]model.VaultItem, 0, len(u.Items))
		for _, it := range u.Items {
			items = append(items, model.NewVaultItem(it.Name, it.Login, it.Password))
		}
		accounts = append(accounts, repo.Account{
			User:  model.RestoreUser(u.Login, u.PasswordHash),
			Items: items,
		})
	}
	return accounts, nil
}

// Write encodes accounts and atomically replaces path with the result.
func (JSONPersister) Write(path string, accounts []repo.Account) error {
	doc := document{Format: formatName, Version: formatVersion, Users: make([]userDoc, 0, len(accounts))}
	for _, acc := range accounts {
		u := userDoc{
			Login:        acc.User.Login(),
			PasswordHash: acc.User.PasswordHash(),
			Items:        make([]itemDoc, 0, len(acc.Items)),
		}
		for _, it := range acc.Items {
			u.Items = append(u.Items, itemDoc{Name: it.Name(), Login: it.Login(), Password: it.Password()})
		}
		doc.Users = append(doc.Users, u)
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, append(b, '\n'))
}

// writeFileAtomic пишет во временный файл рядом с целевым и переименовывает его,
// чтобы прерванная запись не оставляла обрезанный файл.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	return nil
}
