package bootstrap

import (
	"fmt"

	"Passman/internal/config"
	"Passman/internal/repo"
	fsrepo "Passman/internal/repo/fs"
	reposqlite "Passman/internal/repo/sqlite"
)

// NewPersister returns the store format selected by driver.
func NewPersister(driver string) (repo.Persister, error) {
	switch driver {
	case config.DriverFile:
		return fsrepo.JSONPersister{}, nil
	case config.DriverSQLite:
		return reposqlite.Persister{}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q (expected: %s|%s)", driver, config.DriverFile, config.DriverSQLite)
	}
}

// OpenStore creates the user store for cfg and loads it from cfg.StorePath.
// A corrupt or unreadable file is returned as an error; it is never replaced
// by an empty store.
func OpenStore(cfg *config.Config) (*repo.UserStore, error) {
	p, err := NewPersister(cfg.Driver)
	if err != nil {
		return nil, err
	}
	store := repo.NewUserStore(p)
	if err := store.Load(cfg.StorePath); err != nil {
		return nil, err
	}
	return store, nil
}
