package infra

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nearby/internal/models/db_models"
	"nearby/pkg/config"
)

func InitPostgresql(cfg *config.Config) *gorm.DB {
	connectionPool, err := gorm.Open(postgres.Open(cfg.PostgresURL), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := Bootstrap(connectionPool); err != nil {
		log.Fatalf("Error bootstrapping schema: %v", err)
	}

	return connectionPool
}

// Bootstrap creates the geodesic-distance extensions and migrates the
// venue and vote tables. Every statement is idempotent, so running it
// on each startup is safe.
func Bootstrap(db *gorm.DB) error {
	for _, ext := range []string{
		"CREATE EXTENSION IF NOT EXISTS cube",
		"CREATE EXTENSION IF NOT EXISTS earthdistance",
	} {
		if err := db.Exec(ext).Error; err != nil {
			return err
		}
	}

	return db.AutoMigrate(&db_models.Venue{}, &db_models.Vote{})
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
