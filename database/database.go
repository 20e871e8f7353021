package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mmartinez10/event-invitations-backend/config"
)

// DB is the shared gorm handle, set once by Connect
var DB *gorm.DB

// Connect opens the postgres connection and stores the handle in DB
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=America/Guayaquil",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// backing up the constraint-name inspection in the repositories.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to database: %v", err))
	}

	log.Println("✅ Database connection established")
	DB = db
	return db
}
