package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"saraha/config"
	"saraha/db"
	"saraha/models"
)

// Store persists the user roster and each user's contacts and messages.
// LoadUsers returns users with empty collections; LoadUser fills them in.
type Store interface {
	LoadUsers() ([]*models.User, error)
	SaveUsers(users []*models.User) error
	LoadUser(u *models.User) error
	SaveUser(u *models.User) error
	Close() error
}

// Open returns the backend selected by cfg.Store.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		path := cfg.DatabasePath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
		return db.New(path)
	case config.StoreFile, "":
		return NewFileStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
