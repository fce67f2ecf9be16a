// Package repo contains the user store: the mapping from accounts to their vaults
// together with its load/save contract.
package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"Passman/internal/model"
)

type entry struct {
	user  model.User
	vault *model.Vault
}

// UserStore maps every registered user to exactly one vault.
// It is not safe for concurrent use.
type UserStore struct {
	users     map[string]*entry
	persister Persister
}

// NewUserStore creates an empty store that loads and saves through p.
func NewUserStore(p Persister) *UserStore {
	return &UserStore{users: make(map[string]*entry), persister: p}
}

// Load replaces the store contents with the accounts persisted at path.
// A missing file yields an empty store.
func (s *UserStore) Load(path string) error {
	accounts, err := s.persister.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.users = make(map[string]*entry)
			return nil
		}
		if errors.Is(err, ErrCorruptStore) || errors.Is(err, ErrIO) {
			return fmt.Errorf("load %s: %w", path, err)
		}
		return fmt.Errorf("load %s: %w: %w", path, ErrIO, err)
	}

	users := make(map[string]*entry, len(accounts))
	for _, acc := range accounts {
		login := acc.User.Login()
		if _, dup := users[login]; dup {
			return fmt.Errorf("load %s: %w: user %q stored twice", path, ErrCorruptStore, login)
		}
		v := model.NewVault()
		for _, it := range acc.Items {
			if err := v.Add(it); err != nil {
				return fmt.Errorf("load %s: %w: user %q: %w", path, ErrCorruptStore, login, err)
			}
		}
		users[login] = &entry{user: acc.User, vault: v}
	}
	s.users = users
	return nil
}

// Save writes the full mapping to path, replacing its previous contents.
func (s *UserStore) Save(path string) error {
	accounts := make([]Account, 0, len(s.users))
	for _, login := range s.Logins() {
		e := s.users[login]
		accounts = append(accounts, Account{User: e.user, Items: e.vault.Items()})
	}
	if err := s.persister.Write(path, accounts); err != nil {
		if errors.Is(err, ErrIO) {
			return fmt.Errorf("save %s: %w", path, err)
		}
		return fmt.Errorf("save %s: %w: %w", path, ErrIO, err)
	}
	return nil
}

// Len returns the number of registered users.
func (s *UserStore) Len() int { return len(s.users) }

// Logins returns all registered logins, sorted.
func (s *UserStore) Logins() []string {
	logins := make([]string, 0, len(s.users))
	for login := range s.users {
		logins = append(logins, login)
	}
	slices.Sort(logins)
	return logins
}

// GetUser looks a user up by login. It is the only place that decides whether
// a login exists.
func (s *UserStore) GetUser(login string) (model.User, bool) {
	e, ok := s.users[login]
	if !ok {
		return model.User{}, false
	}
	return e.user, true
}

// CreateUser registers login with an empty vault. It returns false, and changes
// nothing, when the login is already taken.
func (s *UserStore) CreateUser(login, password string) bool {
	if _, exists := s.GetUser(login); exists {
		return false
	}
	s.users[login] = &entry{user: model.NewUser(login, password), vault: model.NewVault()}
	return true
}

// RemoveUser deletes the user and their vault. It returns false when the login is
// unknown or the password does not verify.
func (s *UserStore) RemoveUser(login, password string) bool {
	return s.Remove(login, password) == nil
}

// Remove is RemoveUser with the reason of a refusal: model.ErrNotFound for an
// unknown login, model.ErrWrongPassword for a failed verification.
func (s *UserStore) Remove(login, password string) error {
	u, ok := s.GetUser(login)
	if !ok {
		return fmt.Errorf("user %q: %w", login, model.ErrNotFound)
	}
	if !u.VerifyPassword(password) {
		return fmt.Errorf("user %q: %w", login, model.ErrWrongPassword)
	}
	delete(s.users, login)
	return nil
}

// GetVault returns the vault owned by user. Mutations through the returned
// pointer are visible to the store.
func (s *UserStore) GetVault(user model.User) (*model.Vault, error) {
	e, ok := s.users[user.Login()]
	if !ok {
		return nil, fmt.Errorf("vault of %q: %w", user.Login(), model.ErrNotFound)
	}
	return e.vault, nil
}
