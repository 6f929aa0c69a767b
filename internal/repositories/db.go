package repositories

import (
	"fmt"
	"log"

	"github.com/rohits-web03/blogd/internal/config"
	"github.com/rohits-web03/blogd/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDatabase opens the configured database and runs migrations.
// The sqlite driver exists for local development; production runs postgres.
func ConnectDatabase() *gorm.DB {
	var dialector gorm.Dialector
	switch config.Envs.DBDriver {
	case "sqlite":
		dsn := config.Envs.DB_URL
		if dsn == "" {
			dsn = "blogd.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(config.Envs.DB_URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Successfully connected to database")
	return db
}

// Migrate runs schema migrations for all entities.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
