package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/myrsple/rezervace-sub000/internal/availability"
	"github.com/myrsple/rezervace-sub000/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.FishingSpot{},
		&models.Reservation{},
		&models.Competition{},
		&models.CompetitionRegistration{},
	); err != nil {
		return err
	}

	// Overlap lookups only ever read live reservations of one spot
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reservation_live
		ON reservations (spot_id, start_date, end_date)
		WHERE status <> 'CANCELLED'
	`).Error
}

// SeedSpots creates the default pond layout when no spots exist yet:
// long-stay spots 1-6, day-only spots 7-12 and the VIP spot.
func SeedSpots(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.FishingSpot{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	spots := make([]models.FishingSpot, 0, 13)
	for n := 1; n <= 12; n++ {
		spots = append(spots, models.FishingSpot{Number: n, Name: fmt.Sprintf("Lovné místo %d", n), Active: true})
	}
	spots = append(spots, models.FishingSpot{Number: availability.VIPSpotNumber, Name: "VIP", Active: true})

	if err := db.Create(&spots).Error; err != nil {
		return err
	}
	log.Printf("[Database] seeded %d fishing spots", len(spots))
	return nil
}

// Ping is the readiness probe for the database connection.
func Ping(db *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
