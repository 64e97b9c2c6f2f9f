// internal/domain/session/store.go
package session

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tazvirotechnologies-max/cafepos-terminal/internal/config"
)

// OpenStore opens the terminal's local SQLite database and migrates the
// session schema. The file lives next to the terminal binary; it is the
// durable local storage the session survives restarts in.
func OpenStore(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Store.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store %s: %w", cfg.Store.Path, err)
	}

	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return db, nil
}
