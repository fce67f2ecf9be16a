// Package service holds the session controller that sits between the shell and the user store.
package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"Passman/internal/model"
)

var (
	// ErrAuthFailed is returned for any failed authentication. It never tells
	// whether the login or the password was wrong.
	ErrAuthFailed = errors.New("invalid login or password")

	// ErrLoginTaken is returned when registering an existing login.
	ErrLoginTaken = errors.New("login already in use")

	// ErrLoginRequired is returned when registering an empty login.
	ErrLoginRequired = errors.New("login is required")

	// ErrPasswordMismatch is returned when the confirmation differs from the password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrNoSession is returned by vault operations while no vault is open.
	ErrNoSession = errors.New("no open vault: login first")

	// ErrSessionOpen is returned by account operations while a vault is open.
	ErrSessionOpen = errors.New("a vault is already open: close it first")
)

// UserStore is the part of repo.UserStore the session needs.
type UserStore interface {
	GetUser(login string) (model.User, bool)
	CreateUser(login, password string) bool
	Remove(login, password string) error
	GetVault(user model.User) (*model.Vault, error)
	Save(path string) error
}

// State of a session.
type State int

const (
	LoggedOut State = iota
	InVault
)

func (s State) String() string {
	if s == InVault {
		return "in-vault"
	}
	return "logged-out"
}

// Session tracks the currently open vault and turns presentation requests into
// store and vault operations. Every successful mutation is saved to path.
type Session struct {
	store  UserStore
	path   string
	logger *zap.SugaredLogger

	login  string
	active *model.Vault
}

// NewSession creates a logged-out session over store.
func NewSession(store UserStore, path string, logger *zap.SugaredLogger) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{store: store, path: path, logger: logger}
}

// State returns LoggedOut or InVault.
func (s *Session) State() State {
	if s.active != nil {
		return InVault
	}
	return LoggedOut
}

// CurrentUser returns the login whose vault is open.
func (s *Session) CurrentUser() (string, bool) {
	return s.login, s.active != nil
}

// Login opens the vault of login when password verifies.
func (s *Session) Login(login, password string) error {
	if s.active != nil {
		return ErrSessionOpen
	}
	u, ok := s.store.GetUser(login)
	if !ok {
		s.logger.Infow("login refused", "login", login, "reason", "unknown login")
		return ErrAuthFailed
	}
	if !u.VerifyPassword(password) {
		s.logger.Infow("login refused", "login", login, "reason", "wrong password")
		return ErrAuthFailed
	}
	v, err := s.store.GetVault(u)
	if err != nil {
		s.logger.Errorw("user without vault", "login", login, "error", err)
		return ErrAuthFailed
	}
	s.login, s.active = login, v
	s.logger.Infow("vault opened", "login", login)
	return nil
}

// Logout drops the reference to the open vault. The vault itself is not touched.
func (s *Session) Logout() {
	if s.active != nil {
		s.logger.Infow("vault closed", "login", s.login)
	}
	s.login, s.active = "", nil
}

// CloseSession is Logout under the name used by the presentation layer.
func (s *Session) CloseSession() { s.Logout() }

// CreateUser registers login. The confirmation is checked before the store is consulted.
func (s *Session) CreateUser(login, password, confirm string) error {
	if s.active != nil {
		return ErrSessionOpen
	}
	if login == "" {
		return ErrLoginRequired
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if !s.store.CreateUser(login, password) {
		return ErrLoginTaken
	}
	s.logger.Infow("user created", "login", login)
	return s.persist()
}

// RemoveUser deletes login and its vault after verifying password.
func (s *Session) RemoveUser(login, password string) error {
	if s.active != nil {
		return ErrSessionOpen
	}
	if err := s.store.Remove(login, password); err != nil {
		reason := "wrong password"
		if errors.Is(err, model.ErrNotFound) {
			reason = "unknown login"
		}
		s.logger.Infow("user removal refused", "login", login, "reason", reason)
		return ErrAuthFailed
	}
	s.logger.Infow("user removed", "login", login)
	return s.persist()
}

func (s *Session) vault() (*model.Vault, error) {
	if s.active == nil {
		return nil, ErrNoSession
	}
	return s.active, nil
}

// ListElements returns the sorted item names of the open vault.
func (s *Session) ListElements() ([]string, error) {
	v, err := s.vault()
	if err != nil {
		return nil, err
	}
	return v.List(), nil
}

// GetElementDetails returns the login and password stored under name.
func (s *Session) GetElementDetails(name string) (string, string, error) {
	v, err := s.vault()
	if err != nil {
		return "", "", err
	}
	it, err := v.Get(name)
	if err != nil {
		return "", "", err
	}
	return it.Login(), it.Password(), nil
}

// AddElement stores a new item in the open vault.
func (s *Session) AddElement(name, login, password string) error {
	v, err := s.vault()
	if err != nil {
		return err
	}
	if err := v.Add(model.NewVaultItem(name, login, password)); err != nil {
		return err
	}
	return s.persist()
}

// EditElement replaces the item oldName with a new one, possibly renamed.
func (s *Session) EditElement(oldName, newName, newLogin, newPassword string) error {
	v, err := s.vault()
	if err != nil {
		return err
	}
	old, err := v.Get(oldName)
	if err != nil {
		return err
	}
	if err := v.Edit(old, model.NewVaultItem(newName, newLogin, newPassword)); err != nil {
		return err
	}
	return s.persist()
}

// RemoveElement deletes the item name from the open vault.
func (s *Session) RemoveElement(name string) error {
	v, err := s.vault()
	if err != nil {
		return err
	}
	it, err := v.Get(name)
	if err != nil {
		return err
	}
	if err := v.Remove(it); err != nil {
		return err
	}
	return s.persist()
}

// SearchByName returns the sorted names of the items starting with prefix.
func (s *Session) SearchByName(prefix string) ([]string, error) {
	v, err := s.vault()
	if err != nil {
		return nil, err
	}
	found := v.SearchByName(prefix)
	names := make([]string, 0, len(found))
	for _, it := range found {
		names = append(names, it.Name())
	}
	return names, nil
}

// Shutdown closes the open vault and writes the store one last time.
func (s *Session) Shutdown() error {
	s.Logout()
	return s.persist()
}

// persist saves the store. On failure the in-memory change is kept so that
// the next save can retry it.
func (s *Session) persist() error {
	if err := s.store.Save(s.path); err != nil {
		s.logger.Errorw("failed to save store", "path", s.path, "error", err)
		return fmt.Errorf("changes kept in memory: %w", err)
	}
	return nil
}
