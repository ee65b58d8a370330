package db

import (
	"fmt"                        // Error wrapping
	"storefront/internal/config" // Application configuration

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // GORM log levels
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.IsProd {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent) // Keep SQL out of production logs
	}
	switch cfg.DBDriver {
	case "mysql", "":
		return gorm.Open(mysql.Open(cfg.DSN()), gormCfg)
	case "sqlite":
		return gorm.Open(sqlite.Open(cfg.DBPath+"?_foreign_keys=on"), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
