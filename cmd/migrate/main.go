package main

import (
	"storefront/internal/config" // Custom import path (Config)
	"storefront/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus"
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb, cfg); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
}
