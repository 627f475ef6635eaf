// database.go - Handles database connection and setup

package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bistro-backend/models"

	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned by stores when no record matches.
var ErrNotFound = errors.New("not found")

// Open opens the database at dbPath and migrates every model. The returned
// handle is passed explicitly to each store. GORM warnings and slow queries
// go to log; misses are reported to callers as ErrNotFound, not logged.
func Open(dbPath string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	// SQLite allows one writer; a single connection queues writes instead of
	// failing them with "database is locked".
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Review{},
		&models.CartItem{},
		&models.Payment{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Stores bundles every store built on one database handle.
type Stores struct {
	Users    *Users
	Menu     *Menu
	Reviews  *Reviews
	Carts    *Carts
	Payments *Payments
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:    &Users{db: db},
		Menu:     &Menu{db: db},
		Reviews:  &Reviews{db: db},
		Carts:    &Carts{db: db},
		Payments: &Payments{db: db},
	}
}

// EnsureAdmin creates or promotes the bootstrap admin account. It is a
// no-op when email is empty.
func EnsureAdmin(ctx context.Context, users *Users, email string) error {
	if email == "" {
		return nil
	}
	if _, err := users.Register(ctx, &models.User{Email: email}); err != nil {
		return err
	}
	_, err := users.PromoteByEmail(ctx, email)
	return err
}

func newGormLogger(log *slog.Logger) logger.Interface {
	return logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// notFound maps gorm's miss to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
