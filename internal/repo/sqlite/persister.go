// Package sqlite stores the user→vault mapping in a single SQLite file through gorm.
package sqlite

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"Passman/internal/model"
	"Passman/internal/repo"
)

type userRow struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	Login        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Items        []itemRow `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (userRow) TableName() string { return "users" }

type itemRow struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	UserID   string `gorm:"not null;uniqueIndex:idx_vault_items_user_name"`
	Name     string `gorm:"not null;uniqueIndex:idx_vault_items_user_name"`
	Login    string
	Password string
}

func (itemRow) TableName() string { return "vault_items" }

// Persister хранит пользователей в локальной БД SQLite.
type Persister struct{}

var _ repo.Persister = Persister{}

func open(path string) (*gorm.DB, func(), error) {
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: path}
	db, err := gorm.Open(dial, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, closeFn, nil
}

// Read loads all users with their items. A fresh database without tables is empty.
func (Persister) Read(path string) ([]repo.Account, error) {
	// opening would create a missing file, and a foreign file would read as an
	// empty database, so the header is checked first
	if err := probe(path); err != nil {
		if errors.Is(err, errNotSQLite) {
			return nil, fmt.Errorf("%w: %v", repo.ErrCorruptStore, err)
		}
		return nil, err
	}
	db, done, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	defer done()

	if !db.Migrator().HasTable(&userRow{}) {
		return []repo.Account{}, nil
	}

	var rows []userRow
	err = db.Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("name") }).
		Order("login").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repo.ErrCorruptStore, err)
	}

	accounts := make([]repo.Account, 0, len(rows))
	for _, r := range rows {
		items := make([]model.VaultItem, 0, len(r.Items))
		for _, it := range r.Items {
			items = append(items, model.NewVaultItem(it.Name, it.Login, it.Password))
		}
		accounts = append(accounts, repo.Account{
			User:  model.RestoreUser(r.Login, r.PasswordHash),
			Items: items,
		})
	}
	return accounts, nil
}

// Write replaces every stored row with accounts inside one transaction.
func (Persister) Write(path string, accounts []repo.Account) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	db, done, err := open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	defer done()

	if err := db.AutoMigrate(&userRow{}, &itemRow{}); err != nil {
		return fmt.Errorf("%w: migrate: %w", repo.ErrIO, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&itemRow{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&userRow{}).Error; err != nil {
			return err
		}
		for _, acc := range accounts {
			u := userRow{
				ID:           uuid.NewString(),
				Login:        acc.User.Login(),
				PasswordHash: acc.User.PasswordHash(),
				Items:        make([]itemRow, 0, len(acc.Items)),
			}
			for _, it := range acc.Items {
				u.Items = append(u.Items, itemRow{
					ID:       uuid.NewString(),
					Name:     it.Name(),
					Login:    it.Login(),
					Password: it.Password(),
				})
			}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	return nil
}

var errNotSQLite = errors.New("not a sqlite database")

const sqliteHeader = "SQLite format 3\x00"

// probe checks the file header. An empty file is a valid, empty database.
func probe(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	header := make([]byte, len(sqliteHeader))
	n, err := io.ReadFull(f, header)
	switch {
	case n == 0 && errors.Is(err, io.EOF):
		return nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return errNotSQLite
	case err != nil:
		return fmt.Errorf("%w: %w", repo.ErrIO, err)
	}
	if string(header) != sqliteHeader {
		return errNotSQLite
	}
	return nil
}
