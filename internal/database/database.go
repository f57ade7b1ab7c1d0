package database

import (
	"log"

	"github.com/campushub/campus-events-api/internal/config"
	"github.com/campushub/campus-events-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.College{},
		&models.Admin{},
		&models.Student{},
		&models.EventType{},
		&models.Event{},
		&models.Registration{},
		&models.Attendance{},
		&models.Feedback{},
		&models.AuditLog{},
		&models.APIKey{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
