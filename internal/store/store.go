package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daltonneres/finantrack/configs"
	"github.com/daltonneres/finantrack/internal/models"
)

// New opens the ledger store named by the config. The handle is passed down
// to services rather than held as a package global.
func New(cfg *configs.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{DSN: cfg.DB.DSN})
	case "sqlite":
		// Plain file paths need their parent directory to exist.
		if dsn := cfg.DB.DSN; !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if dir := filepath.Dir(dsn); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create db directory: %w", err)
				}
			}
		}
		dialector = sqlite.Open(cfg.DB.DSN)
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Account{}, &models.Transaction{})
}
